// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package s3fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"bucket"}, Split("bucket"))
	assert.Equal(t, []string{"bucket", "prefix"}, Split("bucket/prefix"))
	assert.Equal(t, []string{"bucket", "a", "b"}, Split("/bucket/a/b/"))
}
