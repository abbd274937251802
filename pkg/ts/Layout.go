// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import "time"

// Layout is a go time layout string used to render file timestamps.
type Layout string

func (l Layout) Format(t time.Time) string {
	return t.Format(string(l))
}

// NamedLayouts maps the names accepted by the time-layout flag to their
// layouts. "Default" fits a directory listing column; "Full" adds seconds
// and the year.
var NamedLayouts = map[string]Layout{
	"Default":     "Jan 02 15:04",
	"Full":        "Jan 02 15:04:05 2006",
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"DateTime":    time.DateTime,
	"DateOnly":    time.DateOnly,
	"TimeOnly":    time.TimeOnly,
}

// ParseLayout resolves a named layout, passing unrecognized values through
// as literal go layouts.
func ParseLayout(layout string) Layout {
	if named, ok := NamedLayouts[layout]; ok {
		return named
	}
	return Layout(layout)
}
