// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navwar/gomirror/pkg/fs"
	"github.com/navwar/gomirror/pkg/lfs"
	"github.com/navwar/gomirror/pkg/registry"
)

// newTestFactory returns a factory serving pre-built in-memory filesystems
// by root, failing for any root listed in unreachable.
func newTestFactory(filesystems map[string]fs.FileSystem, unreachable map[string]struct{}) FileSystemFactory {
	return func(ctx context.Context, root string, readOnly bool) (fs.FileSystem, error) {
		if _, ok := unreachable[root]; ok {
			return nil, fmt.Errorf("remote %q unreachable", root)
		}
		fileSystem, ok := filesystems[root]
		if !ok {
			return nil, fmt.Errorf("unknown root %q", root)
		}
		return fileSystem, nil
	}
}

func newTestRegistry() *registry.Registry {
	return &registry.Registry{
		Rules: []registry.RuleConfig{
			{Include: "***"},
		},
		Sources: []registry.Source{
			{Name: "alpha", RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"},
			{Name: "beta", RemoteRoot: "r:/beta", LocalRoot: "_raw/beta"},
			{Name: "gamma", RemoteRoot: "r:/gamma", LocalRoot: "_raw/gamma"},
		},
	}
}

func TestDriverIsolationOnFailure(t *testing.T) {
	ctx := context.Background()

	remoteAlpha := lfs.NewMemoryFileSystem("/remote/alpha")
	remoteGamma := lfs.NewMemoryFileSystem("/remote/gamma")
	localAlpha := lfs.NewMemoryFileSystem("/raw/alpha")
	localBeta := lfs.NewMemoryFileSystem("/raw/beta")
	localGamma := lfs.NewMemoryFileSystem("/raw/gamma")

	writeTestFile(t, ctx, remoteAlpha, "/a.txt", "alpha content")
	writeTestFile(t, ctx, remoteGamma, "/g.txt", "gamma content")

	driver := &Driver{
		Factory: newTestFactory(map[string]fs.FileSystem{
			"r:/alpha":   remoteAlpha,
			"r:/gamma":   remoteGamma,
			"_raw/alpha": localAlpha,
			"_raw/beta":  localBeta,
			"_raw/gamma": localGamma,
		}, map[string]struct{}{
			"r:/beta": {},
		}),
	}

	run, err := driver.Run(ctx, &RunInput{
		Registry: newTestRegistry(),
		Policy:   Policy{Delete: true, Parents: true},
	})
	assert.NoError(t, err)
	assert.NotNil(t, run)
	assert.Len(t, run.Results, 3)

	assert.Equal(t, StatusSuccess, run.Results[0].Status)
	assert.Equal(t, StatusFailure, run.Results[1].Status)
	assert.Equal(t, StatusSuccess, run.Results[2].Status)

	connectivityError := &ConnectivityError{}
	assert.ErrorAs(t, run.Results[1].Err, &connectivityError)
	assert.Equal(t, "r:/beta", connectivityError.Root)

	// the failure of beta did not touch alpha's or gamma's destinations
	assert.Equal(t, "alpha content", readTestFile(t, ctx, localAlpha, "/a.txt"))
	assert.Equal(t, "gamma content", readTestFile(t, ctx, localGamma, "/g.txt"))

	assert.False(t, run.Incomplete)
	assert.True(t, run.Failed())

	succeeded, failed, skipped := run.Counts()
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, skipped)
}

func TestDriverFailFast(t *testing.T) {
	ctx := context.Background()

	remoteGamma := lfs.NewMemoryFileSystem("/remote/gamma")
	localGamma := lfs.NewMemoryFileSystem("/raw/gamma")
	writeTestFile(t, ctx, remoteGamma, "/g.txt", "gamma content")

	driver := &Driver{
		Factory: newTestFactory(map[string]fs.FileSystem{
			"r:/alpha":   lfs.NewMemoryFileSystem("/remote/alpha"),
			"r:/gamma":   remoteGamma,
			"_raw/alpha": lfs.NewMemoryFileSystem("/raw/alpha"),
			"_raw/gamma": localGamma,
		}, map[string]struct{}{
			"r:/beta": {},
		}),
	}

	run, err := driver.Run(ctx, &RunInput{
		Registry: newTestRegistry(),
		Policy:   Policy{Delete: true, Parents: true},
		FailFast: true,
	})
	assert.NoError(t, err)
	assert.Len(t, run.Results, 3)

	assert.Equal(t, StatusSuccess, run.Results[0].Status)
	assert.Equal(t, StatusFailure, run.Results[1].Status)
	assert.Equal(t, StatusSkipped, run.Results[2].Status)

	assert.True(t, run.Incomplete)
	assert.True(t, run.Failed())

	// gamma was never attempted
	assert.False(t, fileExists(ctx, localGamma, "/g.txt"))
}

func TestDriverSelectSource(t *testing.T) {
	ctx := context.Background()

	remoteAlpha := lfs.NewMemoryFileSystem("/remote/alpha")
	localAlpha := lfs.NewMemoryFileSystem("/raw/alpha")
	writeTestFile(t, ctx, remoteAlpha, "/a.txt", "alpha content")

	driver := &Driver{
		Factory: newTestFactory(map[string]fs.FileSystem{
			"r:/alpha":   remoteAlpha,
			"_raw/alpha": localAlpha,
		}, nil),
	}

	run, err := driver.Run(ctx, &RunInput{
		Registry: newTestRegistry(),
		Only:     []string{"alpha"},
		Policy:   Policy{Delete: true, Parents: true},
	})
	assert.NoError(t, err)
	assert.Len(t, run.Results, 1)
	assert.Equal(t, "alpha", run.Results[0].Source.Name)
	assert.Equal(t, StatusSuccess, run.Results[0].Status)
	assert.Equal(t, 1, run.Results[0].FilesTransferred)
	assert.False(t, run.Failed())
}

func TestDriverUnknownSource(t *testing.T) {
	ctx := context.Background()

	driver := &Driver{
		Factory: newTestFactory(nil, nil),
	}

	run, err := driver.Run(ctx, &RunInput{
		Registry: newTestRegistry(),
		Only:     []string{"delta"},
	})
	assert.Nil(t, run)
	assert.Error(t, err)

	configurationError := &ConfigurationError{}
	assert.ErrorAs(t, err, &configurationError)
}

func TestDriverEmptyRuleSet(t *testing.T) {
	ctx := context.Background()

	driver := &Driver{
		Factory: newTestFactory(nil, nil),
	}

	run, err := driver.Run(ctx, &RunInput{
		Registry: &registry.Registry{
			Sources: []registry.Source{
				{Name: "alpha", RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"},
			},
		},
	})
	assert.Nil(t, run)
	assert.Error(t, err)

	configurationError := &ConfigurationError{}
	assert.ErrorAs(t, err, &configurationError)
	assert.Equal(t, "alpha", configurationError.Entry)
	assert.True(t, errors.Is(err, errNoRules))
}

func TestDriverMalformedRuleAbortsBeforeTransfer(t *testing.T) {
	ctx := context.Background()

	remoteAlpha := lfs.NewMemoryFileSystem("/remote/alpha")
	localAlpha := lfs.NewMemoryFileSystem("/raw/alpha")
	writeTestFile(t, ctx, remoteAlpha, "/a.txt", "alpha content")

	driver := &Driver{
		Factory: newTestFactory(map[string]fs.FileSystem{
			"r:/alpha":   remoteAlpha,
			"_raw/alpha": localAlpha,
		}, nil),
	}

	// alpha's rules are valid but beta's are not, so nothing runs at all
	run, err := driver.Run(ctx, &RunInput{
		Registry: &registry.Registry{
			Rules: []registry.RuleConfig{
				{Include: "***"},
			},
			Sources: []registry.Source{
				{Name: "alpha", RemoteRoot: "r:/alpha", LocalRoot: "_raw/alpha"},
				{
					Name:       "beta",
					RemoteRoot: "r:/beta",
					LocalRoot:  "_raw/beta",
					Rules: []registry.RuleConfig{
						{Include: "logs/[a-z.txt"},
					},
				},
			},
		},
		Policy: Policy{Delete: true, Parents: true},
	})
	assert.Nil(t, run)
	assert.Error(t, err)

	configurationError := &ConfigurationError{}
	assert.ErrorAs(t, err, &configurationError)
	assert.Equal(t, "beta", configurationError.Entry)

	// no side effects before the configuration error surfaced
	assert.False(t, fileExists(ctx, localAlpha, "/a.txt"))
}

func TestDriverCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := &Driver{
		Factory: newTestFactory(nil, nil),
	}

	run, err := driver.Run(ctx, &RunInput{
		Registry: newTestRegistry(),
	})
	assert.NoError(t, err)
	assert.Len(t, run.Results, 3)
	for _, result := range run.Results {
		assert.Equal(t, StatusSkipped, result.Status)
	}
	assert.True(t, run.Incomplete)
	assert.True(t, run.Failed())
}
