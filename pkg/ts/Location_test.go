// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	location, err := ParseLocation("Local")
	assert.NoError(t, err)
	assert.Equal(t, time.Local, location)

	location, err = ParseLocation("-7")
	assert.NoError(t, err)
	assert.Equal(t, "UTC-7", location.String())
	_, offset := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).In(location).Zone()
	assert.Equal(t, -7*60*60, offset)

	location, err = ParseLocation("UTC")
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, location)

	_, err = ParseLocation("")
	assert.Error(t, err)

	_, err = ParseLocation("Not/AZone")
	assert.Error(t, err)
}
