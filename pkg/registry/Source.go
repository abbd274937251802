// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package registry

import (
	"fmt"

	"github.com/navwar/gomirror/pkg/rules"
)

// Source is a named remote content root paired with the local directory
// mirroring it. Identity is the name. Sources are immutable for the
// lifetime of a run.
type Source struct {
	Name       string       `mapstructure:"name"`
	RemoteRoot string       `mapstructure:"remote"`
	LocalRoot  string       `mapstructure:"local"`
	Rules      []RuleConfig `mapstructure:"rules"`
}

func (s Source) Validate() error {
	if len(s.Name) == 0 {
		return fmt.Errorf("source name is missing")
	}
	if len(s.RemoteRoot) == 0 {
		return fmt.Errorf("source %q has no remote root", s.Name)
	}
	if len(s.LocalRoot) == 0 {
		return fmt.Errorf("source %q has no local root", s.Name)
	}
	for i, rc := range s.Rules {
		if err := rc.Validate(); err != nil {
			return fmt.Errorf("source %q rule %d: %w", s.Name, i, err)
		}
	}
	return nil
}

// RuleConfig is one ordered include or exclude pattern as written in the
// configuration file. Exactly one of the two keys must be set.
type RuleConfig struct {
	Include string `mapstructure:"include"`
	Exclude string `mapstructure:"exclude"`
}

func (rc RuleConfig) Validate() error {
	if len(rc.Include) > 0 && len(rc.Exclude) > 0 {
		return fmt.Errorf("rule sets both include %q and exclude %q", rc.Include, rc.Exclude)
	}
	if len(rc.Include) == 0 && len(rc.Exclude) == 0 {
		return fmt.Errorf("rule sets neither include nor exclude")
	}
	return nil
}

func (rc RuleConfig) Rule() rules.Rule {
	if len(rc.Include) > 0 {
		return rules.Include(rc.Include)
	}
	return rules.Exclude(rc.Exclude)
}
