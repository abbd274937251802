// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navwar/gomirror/pkg/rules"
)

func TestRegistryValidate(t *testing.T) {
	r := &Registry{
		Rules: []RuleConfig{
			{Include: "*.html"},
		},
		Sources: []Source{
			{Name: "alpha", RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"},
			{Name: "beta", RemoteRoot: "r:/beta", LocalRoot: "_raw/beta"},
		},
	}
	assert.NoError(t, r.Validate())
}

func TestRegistryValidateNoSources(t *testing.T) {
	r := &Registry{}
	err := r.Validate()
	assert.Error(t, err)
	assert.Equal(t, "no sources configured", err.Error())
}

func TestRegistryValidateDuplicateNames(t *testing.T) {
	r := &Registry{
		Sources: []Source{
			{Name: "alpha", RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"},
			{Name: "alpha", RemoteRoot: "r:/other", LocalRoot: "_raw/other"},
		},
	}
	err := r.Validate()
	assert.Error(t, err)
	assert.Equal(t, "duplicate source name \"alpha\"", err.Error())
}

func TestRegistryValidateMissingPaths(t *testing.T) {
	err := (&Registry{Sources: []Source{{Name: "alpha", LocalRoot: "_raw/alpha"}}}).Validate()
	assert.Error(t, err)
	assert.Equal(t, "source \"alpha\" has no remote root", err.Error())

	err = (&Registry{Sources: []Source{{Name: "alpha", RemoteRoot: "r:/alpha"}}}).Validate()
	assert.Error(t, err)
	assert.Equal(t, "source \"alpha\" has no local root", err.Error())

	err = (&Registry{Sources: []Source{{RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"}}}).Validate()
	assert.Error(t, err)
	assert.Equal(t, "source name is missing", err.Error())
}

func TestRuleConfigValidate(t *testing.T) {
	assert.NoError(t, RuleConfig{Include: "*.html"}.Validate())
	assert.NoError(t, RuleConfig{Exclude: "drafts/"}.Validate())
	assert.Error(t, RuleConfig{}.Validate())
	assert.Error(t, RuleConfig{Include: "*.html", Exclude: "drafts/"}.Validate())
}

func TestRegistryRulesFor(t *testing.T) {
	r := &Registry{
		Rules: []RuleConfig{
			{Include: "*.html"},
			{Exclude: "drafts/"},
		},
		Sources: []Source{
			{Name: "alpha", RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"},
			{
				Name:       "beta",
				RemoteRoot: "r:/beta",
				LocalRoot:  "_raw/beta",
				Rules: []RuleConfig{
					{Include: "***"},
				},
			},
		},
	}

	// alpha falls back to the shared rules
	assert.Equal(t, []rules.Rule{
		rules.Include("*.html"),
		rules.Exclude("drafts/"),
	}, r.RulesFor(r.Sources[0]))

	// beta's own rules take precedence
	assert.Equal(t, []rules.Rule{
		rules.Include("***"),
	}, r.RulesFor(r.Sources[1]))
}

func TestRegistrySelect(t *testing.T) {
	r := &Registry{
		Sources: []Source{
			{Name: "alpha", RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"},
			{Name: "beta", RemoteRoot: "r:/beta", LocalRoot: "_raw/beta"},
			{Name: "gamma", RemoteRoot: "r:/gamma", LocalRoot: "_raw/gamma"},
		},
	}

	all, err := r.Select(nil)
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// selection preserves registry order regardless of the requested order
	selected, err := r.Select([]string{"gamma", "alpha"})
	assert.NoError(t, err)
	assert.Len(t, selected, 2)
	assert.Equal(t, "alpha", selected[0].Name)
	assert.Equal(t, "gamma", selected[1].Name)

	_, err = r.Select([]string{"delta"})
	assert.Error(t, err)
	assert.Equal(t, "unknown source \"delta\"", err.Error())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gomirror.yaml")
	content := `rules:
  - include: "*.html"
  - include: "attachments/***"
  - exclude: "drafts/"
sources:
  - name: alpha
    remote: "r:/alpha"
    local: "_raw/alpha"
  - name: beta
    remote: "r:/beta"
    local: "_raw/beta"
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))

	r, err := LoadFile(path)
	assert.NoError(t, err)
	assert.Len(t, r.Sources, 2)
	assert.Equal(t, "alpha", r.Sources[0].Name)
	assert.Equal(t, "r:/alpha", r.Sources[0].RemoteRoot)
	assert.Equal(t, "_raw/alpha", r.Sources[0].LocalRoot)
	assert.Equal(t, []rules.Rule{
		rules.Include("*.html"),
		rules.Include("attachments/***"),
		rules.Exclude("drafts/"),
	}, r.RulesFor(r.Sources[0]))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gomirror.yaml")
	content := `sources:
  - name: alpha
    remote: "r:/alpha"
    local: "_raw/alpha"
  - name: alpha
    remote: "r:/other"
    local: "_raw/other"
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadFile(path)
	assert.Error(t, err)
	assert.Equal(t, "duplicate source name \"alpha\"", err.Error())
}
