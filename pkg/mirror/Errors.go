// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package mirror

import (
	"errors"
	"fmt"
)

var errNoRules = errors.New("no filter rules configured")

// ConfigurationError is fatal and raised before any transfer begins.
type ConfigurationError struct {
	Entry string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if len(e.Entry) > 0 {
		return fmt.Sprintf("configuration error for source %q: %v", e.Entry, e.Err)
	}
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ConnectivityError records a remote root that could not be reached or read.
type ConnectivityError struct {
	Root string
	Err  error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("error reaching remote %q: %v", e.Root, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// FilesystemError records a local destination that could not be created,
// written, or pruned.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem error at %q: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// PartialTransferError records a source where some files copied and others
// failed. Copied files are not rolled back; a later run repairs the rest.
type PartialTransferError struct {
	FilesTransferred int
	Err              error
}

func (e *PartialTransferError) Error() string {
	return fmt.Sprintf("partial transfer after %d files: %v", e.FilesTransferred, e.Err)
}

func (e *PartialTransferError) Unwrap() error {
	return e.Err
}
