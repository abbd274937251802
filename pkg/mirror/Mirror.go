// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"context"
	"fmt"
	"path"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/rules"
)

// Mirror makes the destination match the filtered view of the source:
// every transfer-eligible remote file whose content differs is copied, and,
// when the policy allows deletion, every local file inside the mirrored
// scope with no matching remote file is removed. Protected subtrees are
// never visited in either phase.
func Mirror(ctx context.Context, input *MirrorInput) (*Result, error) {
	if _, err := input.Destination.Stat(ctx, "/"); err != nil {
		if !input.Destination.IsNotExist(err) {
			return nil, &FilesystemError{Path: input.Destination.Root(), Err: err}
		}
		if !input.Policy.Parents {
			return nil, &FilesystemError{
				Path: input.Destination.Root(),
				Err:  fmt.Errorf("destination directory does not exist and parents is false"),
			}
		}
		if !input.DryRun {
			if err := input.Destination.MkdirAll(ctx, "/", 0755); err != nil {
				return nil, &FilesystemError{Path: input.Destination.Root(), Err: err}
			}
		}
	}

	m := &mirrorer{
		input:       input,
		remoteFiles: map[string]struct{}{},
		remoteDirs:  map[string]struct{}{},
	}

	group, groupCtx := errgroup.WithContext(ctx)
	threads := input.MaxThreads
	if threads < 1 {
		threads = 1
	}
	group.SetLimit(threads)
	m.group = group
	m.groupCtx = groupCtx

	walkErr := m.walk(ctx, "")
	// wait for in-flight copies even when the walk failed
	copyErr := group.Wait()

	result := &Result{FilesTransferred: int(m.transferred.Load())}
	if walkErr != nil {
		return result, walkErr
	}
	if copyErr != nil {
		return result, &PartialTransferError{FilesTransferred: result.FilesTransferred, Err: copyErr}
	}

	if input.Policy.Delete {
		if _, err := m.prune(ctx, ""); err != nil {
			result.FilesDeleted = m.deleted
			return result, err
		}
	}
	result.FilesDeleted = m.deleted
	return result, nil
}

type mirrorer struct {
	input       *MirrorInput
	group       *errgroup.Group
	groupCtx    context.Context
	remoteFiles map[string]struct{}
	remoteDirs  map[string]struct{}
	transferred atomic.Int64
	deleted     int
}

// walk enumerates the remote tree depth-first, recording matched paths and
// scheduling copies for changed files.
func (m *mirrorer) walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	directoryEntries, err := m.input.Source.ReadDir(ctx, "/"+dir)
	if err != nil {
		return &ConnectivityError{Root: m.input.Source.Root(), Err: err}
	}
	for _, directoryEntry := range directoryEntries {
		rel := path.Join(dir, directoryEntry.Name())
		disposition := m.input.RuleSet.Disposition(rel)
		if directoryEntry.IsDir() {
			if disposition == rules.DispositionProtect {
				continue
			}
			// descend even when the directory itself matches no rule, since
			// a deeper include may still match
			m.remoteDirs[rel] = struct{}{}
			if err := m.walk(ctx, rel); err != nil {
				return err
			}
			continue
		}
		if disposition != rules.DispositionTransfer {
			continue
		}
		m.remoteFiles[rel] = struct{}{}
		if err := m.consider(ctx, rel, directoryEntry); err != nil {
			return err
		}
	}
	return nil
}

// consider decides whether one remote file needs copying and schedules the
// copy on the bounded group.
func (m *mirrorer) consider(ctx context.Context, rel string, directoryEntry fs.DirectoryEntry) error {
	copyFile := false
	destinationFileInfo, err := m.input.Destination.Stat(ctx, "/"+rel)
	if err != nil {
		if m.input.Destination.IsNotExist(err) {
			copyFile = true
		} else {
			return &FilesystemError{Path: rel, Err: err}
		}
	} else {
		if directoryEntry.Size() != destinationFileInfo.Size() {
			copyFile = true
		}
		if m.input.Policy.CheckTimestamps {
			if !fs.EqualTimestamp(directoryEntry.ModTime(), destinationFileInfo.ModTime(), m.input.Policy.TimestampPrecision) {
				copyFile = true
			}
		}
	}
	if !copyFile {
		return nil
	}
	if m.input.DryRun {
		m.transferred.Add(1)
		if m.input.Logger != nil {
			_ = m.input.Logger.Log("Would copy file", map[string]interface{}{
				"path": rel,
			})
		}
		return nil
	}
	modTime := directoryEntry.ModTime()
	m.group.Go(func() error {
		err := fs.Copy(m.groupCtx, &fs.CopyInput{
			SourceName:            "/" + rel,
			SourceFileSystem:      m.input.Source,
			SourceModTime:         modTime,
			DestinationName:       "/" + rel,
			DestinationFileSystem: m.input.Destination,
			Parents:               true,
			PreserveTimestamps:    m.input.Policy.PreserveMetadata,
			Logger:                m.input.Logger,
		})
		if err != nil {
			return err
		}
		// counted on completion so partial results report finished copies
		m.transferred.Add(1)
		return nil
	})
	return nil
}

// prune removes extraneous local files and returns how many entries remain
// under dir, so emptied directories can be removed on the way back up.
func (m *mirrorer) prune(ctx context.Context, dir string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	directoryEntries, err := m.input.Destination.ReadDir(ctx, "/"+dir)
	if err != nil {
		// a dry run never creates the destination, so a missing root has
		// nothing to prune
		if m.input.Destination.IsNotExist(err) {
			return 0, nil
		}
		return 0, &FilesystemError{Path: dir, Err: err}
	}
	remaining := 0
	for _, directoryEntry := range directoryEntries {
		rel := path.Join(dir, directoryEntry.Name())
		disposition := m.input.RuleSet.Disposition(rel)
		if directoryEntry.IsDir() {
			if disposition == rules.DispositionProtect {
				remaining++
				continue
			}
			n, err := m.prune(ctx, rel)
			if err != nil {
				return remaining, err
			}
			if n == 0 {
				if _, ok := m.remoteDirs[rel]; !ok {
					if !m.input.DryRun {
						if err := m.input.Destination.RemoveDir(ctx, "/"+rel); err != nil {
							return remaining, &FilesystemError{Path: rel, Err: err}
						}
					}
					continue
				}
			}
			remaining++
			continue
		}
		keep := disposition == rules.DispositionProtect
		if !keep && disposition == rules.DispositionTransfer {
			_, keep = m.remoteFiles[rel]
		}
		if keep {
			remaining++
			continue
		}
		m.deleted++
		if m.input.Logger != nil {
			_ = m.input.Logger.Log("Deleting extraneous file", map[string]interface{}{
				"path":    rel,
				"dry_run": m.input.DryRun,
			})
		}
		if !m.input.DryRun {
			if err := m.input.Destination.Remove(ctx, "/"+rel); err != nil {
				return remaining, &FilesystemError{Path: rel, Err: err}
			}
		}
	}
	return remaining, nil
}
