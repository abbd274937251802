// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package s3fs

import (
	"strings"
)

// Split splits an s3 path of the form "bucket/key..." on the forward slash.
func Split(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
