// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"github.com/navwar/gomirror/pkg/registry"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	// StatusSkipped marks sources never attempted because an earlier
	// failure aborted a fail-fast run or the run was interrupted.
	StatusSkipped Status = "skipped"
)

// Result reports one mirror operation.
type Result struct {
	FilesTransferred int
	FilesDeleted     int
}

// SourceResult reports the outcome for one source of a run.
type SourceResult struct {
	Source           registry.Source
	FilesTransferred int
	FilesDeleted     int
	Status           Status
	Err              error
}

// RunResult reports a whole run, one entry per selected source in registry
// order, whether the source was attempted or not.
type RunResult struct {
	Results    []SourceResult
	Incomplete bool
}

func (rr *RunResult) Counts() (succeeded int, failed int, skipped int) {
	for _, result := range rr.Results {
		switch result.Status {
		case StatusSuccess:
			succeeded++
		case StatusFailure:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return succeeded, failed, skipped
}

func (rr *RunResult) Failed() bool {
	for _, result := range rr.Results {
		if result.Status == StatusFailure {
			return true
		}
	}
	return rr.Incomplete
}
