// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"time"
)

type CopyInput struct {
	SourceName            string
	SourceFileSystem      FileSystem
	SourceModTime         time.Time
	DestinationName       string
	DestinationFileSystem FileSystem
	Parents               bool
	PreserveTimestamps    bool
	Logger                Logger
}
