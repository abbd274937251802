// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package rules

// Disposition is the outcome of evaluating a path against a rule set.
//
// A path whose first matching rule is an include transfers. A path whose
// first matching rule is an exclude is protected: it is outside the mirrored
// scope entirely, so it is neither transferred nor considered for deletion.
// A path matching no rule at all prunes: it is not transferred, and a local
// copy of it is extraneous.
type Disposition int

const (
	DispositionPrune Disposition = iota
	DispositionTransfer
	DispositionProtect
)

func (d Disposition) String() string {
	switch d {
	case DispositionTransfer:
		return "transfer"
	case DispositionProtect:
		return "protect"
	}
	return "prune"
}
