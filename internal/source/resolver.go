// Package source executes the external commands that produce secret
// values. A source command is run in one of two modes: handed to `sh -c`
// as a single line, or split on whitespace and executed directly.
package source

import (
	"context"
	goerrors "errors"
	"os/exec"
	"strings"

	herrors "github.com/hoardsec/hoard/internal/errors"
	"github.com/hoardsec/hoard/internal/logging"
	"github.com/hoardsec/hoard/internal/secret"
	pkgexec "github.com/hoardsec/hoard/pkg/exec"
)

// Resolver runs source commands and captures their trimmed stdout.
type Resolver struct {
	executor pkgexec.CommandExecutor
	logger   *logging.Logger
}

// New creates a resolver using the real process executor.
func New(logger *logging.Logger) *Resolver {
	return &Resolver{
		executor: pkgexec.DefaultExecutor(),
		logger:   logger,
	}
}

// NewWithExecutor creates a resolver with a custom executor. This is
// primarily for testing, allowing command execution to be mocked.
func NewWithExecutor(logger *logging.Logger, executor pkgexec.CommandExecutor) *Resolver {
	return &Resolver{
		executor: executor,
		logger:   logger,
	}
}

// Fetch runs command under the given mode and returns its standard
// output trimmed of surrounding whitespace. A non-zero exit surfaces as
// a SourceError carrying the exit status and trimmed stderr. The call
// blocks for the command's entire duration; no timeout is applied.
func (r *Resolver) Fetch(ctx context.Context, command string, mode secret.SourceMode) (string, error) {
	var name string
	var args []string

	switch mode {
	case secret.ModeShell:
		name = "sh"
		args = []string{"-c", command}
	case secret.ModeDirect:
		parts := strings.Fields(command)
		if len(parts) == 0 {
			return "", herrors.SourceError{
				Command: command,
				Err:     goerrors.New("empty command"),
			}
		}
		name = parts[0]
		args = parts[1:]
	default:
		return "", herrors.SourceError{
			Command: command,
			Err:     goerrors.New("unknown source mode " + string(mode)),
		}
	}

	r.logger.Debug("running source command: %s (mode %s)", command, mode)

	stdout, stderr, err := r.executor.Execute(ctx, name, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) {
			return "", herrors.SourceError{
				Command:  command,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(string(stderr)),
			}
		}
		// The command never ran (not found, permission, canceled context).
		return "", herrors.SourceError{
			Command: command,
			Err:     err,
		}
	}

	return strings.TrimSpace(string(stdout)), nil
}
