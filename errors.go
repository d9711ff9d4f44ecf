package packager

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for the pipeline stages. Each stage wraps these with
// context; callers match them through errors.Cause.
var (
	ErrSourceFileUnreadable       = errors.New("source file unreadable")
	ErrVersionDeclarationNotFound = errors.New("version declaration not found")
	ErrInvalidVersionComponent    = errors.New("invalid version component")
	ErrDescriptorWriteFailed      = errors.New("descriptor write failed")
)

// PackagingError reports a failed packaging tool invocation together with
// the tool's combined output for diagnosis. An ExitCode of -1 means the
// tool could not be started at all.
type PackagingError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("%s exited with code %d:\n%s", e.Tool, e.ExitCode, e.Output)
}
