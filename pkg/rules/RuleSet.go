// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package rules

import (
	"fmt"
	"path"
	"strings"
)

// RuleSet is an ordered list of compiled rules evaluated first-match-wins.
// Rule order determines precedence, not specificity: an include for a narrow
// subtree must precede a broader exclude to take effect. A path matching no
// rule is not eligible for transfer (default exclude).
type RuleSet struct {
	rules []compiledRule
}

type compiledRule struct {
	kind     Kind
	pattern  string
	segments []string
	// subtree rules (trailing "/" or "/***") match the named path and
	// everything beneath it
	subtree bool
}

// Compile validates every pattern before any rule is evaluated, so a
// malformed pattern fails the whole run up front rather than per file.
func Compile(rules []Rule) (*RuleSet, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		cr, err := compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("error compiling rule %d (%s %q): %w", i, r.Kind, r.Pattern, err)
		}
		compiled = append(compiled, cr)
	}
	return &RuleSet{rules: compiled}, nil
}

func compileRule(r Rule) (compiledRule, error) {
	cr := compiledRule{kind: r.Kind, pattern: r.Pattern}
	p := r.Pattern
	if len(p) == 0 {
		return cr, fmt.Errorf("pattern is empty")
	}
	if strings.HasPrefix(p, "/") {
		return cr, fmt.Errorf("pattern must be relative to the source root")
	}
	if strings.HasSuffix(p, "/") {
		cr.subtree = true
		p = strings.TrimSuffix(p, "/")
	}
	segments := strings.Split(p, "/")
	if last := segments[len(segments)-1]; last == "***" {
		cr.subtree = true
		segments = segments[:len(segments)-1]
	}
	for _, segment := range segments {
		if len(segment) == 0 {
			return cr, fmt.Errorf("pattern contains an empty path segment")
		}
		if err := checkSegment(segment); err != nil {
			return cr, err
		}
	}
	if len(segments) == 0 && !cr.subtree {
		return cr, fmt.Errorf("pattern is empty")
	}
	cr.segments = segments
	return cr, nil
}

// checkSegment rejects the malformed patterns that path.Match only reports
// when matching happens to reach them.
func checkSegment(segment string) error {
	inClass := false
	for i := 0; i < len(segment); i++ {
		switch segment[i] {
		case '[':
			if inClass {
				return fmt.Errorf("syntax error in pattern segment %q", segment)
			}
			inClass = true
		case ']':
			inClass = false
		case '\\':
			i++
			if i >= len(segment) {
				return fmt.Errorf("syntax error in pattern segment %q", segment)
			}
		}
	}
	if inClass {
		return fmt.Errorf("syntax error in pattern segment %q", segment)
	}
	return nil
}

// Disposition evaluates a slash-separated relative path against the rules in
// declared order and returns the outcome of the first rule that matches.
func (rs *RuleSet) Disposition(name string) Disposition {
	parts := strings.Split(strings.Trim(name, "/"), "/")
	for _, r := range rs.rules {
		if r.match(parts) {
			if r.kind == KindInclude {
				return DispositionTransfer
			}
			return DispositionProtect
		}
	}
	return DispositionPrune
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

func (r *compiledRule) match(parts []string) bool {
	if r.subtree {
		if len(parts) < len(r.segments) {
			return false
		}
	} else {
		if len(parts) != len(r.segments) {
			return false
		}
	}
	for i, segment := range r.segments {
		// patterns are validated at compile time
		if ok, _ := path.Match(segment, parts[i]); !ok {
			return false
		}
	}
	return true
}
