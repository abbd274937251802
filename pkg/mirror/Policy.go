// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"time"
)

// Policy carries the transfer flags shared by every source in a run.
type Policy struct {
	// Compress requests transport-level compression. Neither the local nor
	// the S3 transport acts on it; the flag is accepted so configurations
	// written for compressing transports carry over.
	Compress bool
	// PreserveMetadata propagates source modification times to copied files.
	PreserveMetadata bool
	// Delete removes local files inside the mirrored scope that are no
	// longer present remotely.
	Delete bool
	// Parents creates the destination directory when it does not exist.
	Parents bool
	// CheckTimestamps also compares modification times when deciding
	// whether a file changed, truncated to TimestampPrecision.
	CheckTimestamps    bool
	TimestampPrecision time.Duration
}
