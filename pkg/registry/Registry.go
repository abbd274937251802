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

// Registry is the ordered list of sources to mirror and the filter rules
// shared by sources without rules of their own.
type Registry struct {
	Rules   []RuleConfig `mapstructure:"rules"`
	Sources []Source     `mapstructure:"sources"`
}

func (r *Registry) Validate() error {
	if len(r.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	names := map[string]struct{}{}
	for _, source := range r.Sources {
		if err := source.Validate(); err != nil {
			return err
		}
		if _, ok := names[source.Name]; ok {
			return fmt.Errorf("duplicate source name %q", source.Name)
		}
		names[source.Name] = struct{}{}
	}
	for i, rc := range r.Rules {
		if err := rc.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

// RulesFor returns the rule list applying to a source, preferring the
// source's own rules over the shared list.
func (r *Registry) RulesFor(source Source) []rules.Rule {
	configs := r.Rules
	if len(source.Rules) > 0 {
		configs = source.Rules
	}
	list := make([]rules.Rule, 0, len(configs))
	for _, rc := range configs {
		list = append(list, rc.Rule())
	}
	return list
}

// Select returns the named sources in registry order, or all sources when
// names is empty. An unknown name is a configuration error.
func (r *Registry) Select(names []string) ([]Source, error) {
	if len(names) == 0 {
		return r.Sources, nil
	}
	requested := map[string]struct{}{}
	for _, name := range names {
		requested[name] = struct{}{}
	}
	selected := []Source{}
	for _, source := range r.Sources {
		if _, ok := requested[source.Name]; ok {
			selected = append(selected, source)
			delete(requested, source.Name)
		}
	}
	for name := range requested {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return selected, nil
}
