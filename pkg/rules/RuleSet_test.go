// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSetDefaultExclude(t *testing.T) {
	rs, err := Compile([]Rule{
		Include("*.html"),
	})
	assert.NoError(t, err)

	assert.Equal(t, DispositionTransfer, rs.Disposition("index.html"))
	assert.Equal(t, DispositionPrune, rs.Disposition("notes.txt"))
	assert.Equal(t, DispositionPrune, rs.Disposition("attachments"))
}

func TestRuleSetWildcardSingleSegment(t *testing.T) {
	rs, err := Compile([]Rule{
		Include("*.html"),
	})
	assert.NoError(t, err)

	// a single-segment wildcard does not cross path separators
	assert.Equal(t, DispositionTransfer, rs.Disposition("index.html"))
	assert.Equal(t, DispositionPrune, rs.Disposition("drafts/tmp.html"))
}

func TestRuleSetSubtree(t *testing.T) {
	rs, err := Compile([]Rule{
		Include("attachments/***"),
	})
	assert.NoError(t, err)

	assert.Equal(t, DispositionTransfer, rs.Disposition("attachments"))
	assert.Equal(t, DispositionTransfer, rs.Disposition("attachments/img.png"))
	assert.Equal(t, DispositionTransfer, rs.Disposition("attachments/nested/deep/img.png"))
	assert.Equal(t, DispositionPrune, rs.Disposition("attachmentsextra"))
	assert.Equal(t, DispositionPrune, rs.Disposition("index.html"))
}

func TestRuleSetTrailingSlashSubtree(t *testing.T) {
	rs, err := Compile([]Rule{
		Exclude("drafts/"),
	})
	assert.NoError(t, err)

	assert.Equal(t, DispositionProtect, rs.Disposition("drafts"))
	assert.Equal(t, DispositionProtect, rs.Disposition("drafts/tmp.html"))
	assert.Equal(t, DispositionPrune, rs.Disposition("drafts.html"))
}

func TestRuleSetFirstMatchWins(t *testing.T) {
	includeFirst, err := Compile([]Rule{
		Include("attachments/***"),
		Exclude("attachments/private/**"),
	})
	assert.NoError(t, err)

	excludeFirst, err := Compile([]Rule{
		Exclude("attachments/private/**"),
		Include("attachments/***"),
	})
	assert.NoError(t, err)

	// rule order determines precedence, not specificity
	assert.Equal(t, DispositionTransfer, includeFirst.Disposition("attachments/private/key.pem"))
	assert.Equal(t, DispositionProtect, excludeFirst.Disposition("attachments/private/key.pem"))

	// paths outside the contested subtree are unaffected by the order
	assert.Equal(t, DispositionTransfer, includeFirst.Disposition("attachments/img.png"))
	assert.Equal(t, DispositionTransfer, excludeFirst.Disposition("attachments/img.png"))
}

func TestRuleSetLaterBroadExclude(t *testing.T) {
	rs, err := Compile([]Rule{
		Include("reports/summary.csv"),
		Exclude("reports/"),
	})
	assert.NoError(t, err)

	// the earlier, more specific include is not re-excluded
	assert.Equal(t, DispositionTransfer, rs.Disposition("reports/summary.csv"))
	assert.Equal(t, DispositionProtect, rs.Disposition("reports/details.csv"))
	assert.Equal(t, DispositionProtect, rs.Disposition("reports"))
}

func TestRuleSetExactMatch(t *testing.T) {
	rs, err := Compile([]Rule{
		Include("docs/readme.md"),
	})
	assert.NoError(t, err)

	assert.Equal(t, DispositionTransfer, rs.Disposition("docs/readme.md"))
	assert.Equal(t, DispositionPrune, rs.Disposition("docs/readme.md.bak"))
	assert.Equal(t, DispositionPrune, rs.Disposition("readme.md"))
}

func TestRuleSetCompileErrors(t *testing.T) {
	_, err := Compile([]Rule{Include("")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pattern is empty")

	_, err = Compile([]Rule{Include("/absolute/path")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "relative")

	_, err = Compile([]Rule{Include("a//b")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty path segment")

	_, err = Compile([]Rule{Include("logs/[a-z.txt")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")

	_, err = Compile([]Rule{Include(`logs/a\`)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestRuleSetLen(t *testing.T) {
	rs, err := Compile([]Rule{
		Include("*.html"),
		Exclude("drafts/"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, rs.Len())

	empty, err := Compile([]Rule{})
	assert.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}
