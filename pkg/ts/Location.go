// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"errors"
	"strconv"
	"time"
)

// ParseLocation resolves a timezone for timestamp rendering. It accepts
// "Local", a signed hour offset such as "-7", or an IANA name such as
// "America/Los_Angeles".
func ParseLocation(name string) (*time.Location, error) {
	if len(name) == 0 {
		return nil, errors.New("timezone is empty")
	}
	if name == "Local" {
		return time.Local, nil
	}
	if hours, err := strconv.Atoi(name); err == nil {
		return time.FixedZone("UTC"+name, hours*60*60), nil
	}
	return time.LoadLocation(name)
}
