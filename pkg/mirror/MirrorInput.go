// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/rules"
)

type MirrorInput struct {
	Source      fs.FileSystem
	Destination fs.FileSystem
	RuleSet     *rules.RuleSet
	Policy      Policy
	DryRun      bool
	Logger      fs.Logger
	MaxThreads  int
}
