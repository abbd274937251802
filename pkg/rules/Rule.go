// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package rules

type Kind int

const (
	KindInclude Kind = iota
	KindExclude
)

func (k Kind) String() string {
	if k == KindInclude {
		return "include"
	}
	return "exclude"
}

// Rule pairs a disposition with a pattern matched against slash-separated
// paths relative to a source root.
type Rule struct {
	Kind    Kind
	Pattern string
}

func Include(pattern string) Rule {
	return Rule{Kind: KindInclude, Pattern: pattern}
}

func Exclude(pattern string) Rule {
	return Rule{Kind: KindExclude, Pattern: pattern}
}
