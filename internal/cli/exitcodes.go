package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdrefs/internal/configloader"
)

// Exit codes for mdrefs.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChangesNeeded indicates --check found files that would change.
	ExitChangesNeeded = 1

	// ExitUsageError indicates invalid command-line usage or configuration.
	ExitUsageError = 2

	// ExitInternalError indicates any other failure, including I/O errors.
	ExitInternalError = 3
)

var (
	// ErrChangesNeeded is returned in check mode when files would change.
	ErrChangesNeeded = errors.New("link definitions need organizing")

	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrFilesFailed is returned when one or more files could not be processed.
	ErrFilesFailed = errors.New("files failed")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesNeeded):
		return ExitChangesNeeded
	case errors.Is(err, ErrUsage), errors.Is(err, configloader.ErrInvalidConfig):
		return ExitUsageError
	default:
		return ExitInternalError
	}
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
