// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"context"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/registry"
	"github.com/navwar/gomirror/pkg/rules"
)

// FileSystemFactory opens a filesystem for a configured root, which may be
// a local path or any scheme the caller supports. Remote roots are opened
// read-only.
type FileSystemFactory func(ctx context.Context, root string, readOnly bool) (fs.FileSystem, error)

// Driver runs one mirror operation per source, sequentially, so remote
// load stays bounded and console output stays attributable to one source.
type Driver struct {
	Factory FileSystemFactory
	Logger  fs.Logger
	// Debug forwards per-file copy and delete events to the logger.
	Debug bool
}

type RunInput struct {
	Registry   *registry.Registry
	Only       []string
	Policy     Policy
	DryRun     bool
	FailFast   bool
	MaxThreads int
}

// Run validates and compiles every rule set before the first transfer, then
// iterates the selected sources in registry order. A source's failure is
// recorded and the run continues unless FailFast is set. The returned error
// is non-nil only for configuration errors, which abort before any side
// effect occurs.
func (d *Driver) Run(ctx context.Context, input *RunInput) (*RunResult, error) {
	sources, err := input.Registry.Select(input.Only)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	ruleSets := make([]*rules.RuleSet, len(sources))
	for i, source := range sources {
		ruleSet, err := rules.Compile(input.Registry.RulesFor(source))
		if err != nil {
			return nil, &ConfigurationError{Entry: source.Name, Err: err}
		}
		if ruleSet.Len() == 0 {
			// an empty rule set transfers nothing and would prune the whole
			// destination, so refuse it up front
			return nil, &ConfigurationError{Entry: source.Name, Err: errNoRules}
		}
		ruleSets[i] = ruleSet
	}

	run := &RunResult{}
	for i, source := range sources {
		if ctx.Err() != nil {
			run.Incomplete = true
			for _, skipped := range sources[i:] {
				run.Results = append(run.Results, SourceResult{Source: skipped, Status: StatusSkipped})
			}
			break
		}

		d.log("Starting source", map[string]interface{}{
			"source":  source.Name,
			"remote":  source.RemoteRoot,
			"local":   source.LocalRoot,
			"dry_run": input.DryRun,
		})

		result, sourceErr := d.syncSource(ctx, source, ruleSets[i], input)
		sourceResult := SourceResult{Source: source, Status: StatusSuccess}
		if result != nil {
			sourceResult.FilesTransferred = result.FilesTransferred
			sourceResult.FilesDeleted = result.FilesDeleted
		}
		if sourceErr != nil {
			sourceResult.Status = StatusFailure
			sourceResult.Err = sourceErr
			d.log("Finished source", map[string]interface{}{
				"source": source.Name,
				"status": string(StatusFailure),
				"err":    sourceErr.Error(),
			})
		} else {
			d.log("Finished source", map[string]interface{}{
				"source":      source.Name,
				"status":      string(StatusSuccess),
				"transferred": sourceResult.FilesTransferred,
				"deleted":     sourceResult.FilesDeleted,
			})
		}
		run.Results = append(run.Results, sourceResult)

		if sourceErr != nil && input.FailFast {
			run.Incomplete = true
			for _, skipped := range sources[i+1:] {
				run.Results = append(run.Results, SourceResult{Source: skipped, Status: StatusSkipped})
			}
			break
		}
	}

	succeeded, failed, skipped := run.Counts()
	d.log("Run summary", map[string]interface{}{
		"succeeded":  succeeded,
		"failed":     failed,
		"skipped":    skipped,
		"incomplete": run.Incomplete,
	})

	return run, nil
}

func (d *Driver) syncSource(ctx context.Context, source registry.Source, ruleSet *rules.RuleSet, input *RunInput) (*Result, error) {
	remote, err := d.Factory(ctx, source.RemoteRoot, true)
	if err != nil {
		return nil, &ConnectivityError{Root: source.RemoteRoot, Err: err}
	}
	local, err := d.Factory(ctx, source.LocalRoot, false)
	if err != nil {
		return nil, &FilesystemError{Path: source.LocalRoot, Err: err}
	}
	var logger fs.Logger
	if d.Debug {
		logger = d.Logger
	}
	return Mirror(ctx, &MirrorInput{
		Source:      remote,
		Destination: local,
		RuleSet:     ruleSet,
		Policy:      input.Policy,
		DryRun:      input.DryRun,
		Logger:      logger,
		MaxThreads:  input.MaxThreads,
	})
}

func (d *Driver) log(msg string, fields map[string]interface{}) {
	if d.Logger != nil {
		_ = d.Logger.Log(msg, fields)
	}
}
