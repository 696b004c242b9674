// Package lookup runs the auxiliary shell commands that produce the
// choice lists for from: placeholders and snippet functions.
package lookup

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/logging"
	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/rs/zerolog"
)

// DefaultShell is used when no shell is configured.
const DefaultShell = "sh"

// Executor runs a lookup command and returns its output rows.
type Executor interface {
	Run(ctx context.Context, command string) ([]snippet.Row, error)
}

// Shell runs commands through "<shell> -c". The command string is trusted
// and not sandboxed.
type Shell struct {
	Path   string
	Env    []string
	Dir    string
	logger zerolog.Logger
}

// NewShell creates a Shell executor. An empty path selects DefaultShell.
func NewShell(path string) *Shell {
	if path == "" {
		path = DefaultShell
	}
	return &Shell{
		Path:   path,
		logger: logging.GetLogger("lookup"),
	}
}

// Run executes command and splits its stdout into rows. A non-zero exit or a
// spawn failure returns COMMAND_EXECUTION_FAILED; empty output is not an error.
func (s *Shell) Run(ctx context.Context, command string) ([]snippet.Row, error) {
	logging.LogCommand(s.logger, s.Path, command)

	cmd := exec.CommandContext(ctx, s.Path, "-c", command)
	if s.Env != nil {
		cmd.Env = s.Env
	}
	cmd.Dir = s.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		s.logger.Debug().
			Str("event", "external_command_failed").
			Str("command", command).
			Int("code", exitCode).
			Msg("Lookup command failed")

		return nil, errors.Wrapf(err, errors.ErrCommandExecution, "command failed: %s", command).
			WithDetail(errors.DetailCommand, command).
			WithDetail(errors.DetailExitCode, exitCode).
			WithDetail(errors.DetailStderr, strings.TrimSpace(stderr.String()))
	}

	rows := SplitRows(stdout.String())

	s.logger.Debug().
		Str("event", "external_command_executed").
		Str("command", command).
		Int("rows", len(rows)).
		Msg("Lookup command finished")

	return rows, nil
}

// SplitRows splits command output into lines and each line into
// whitespace separated fields. Blank lines produce no row.
func SplitRows(output string) []snippet.Row {
	var rows []snippet.Row
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, snippet.Row(fields))
	}
	return rows
}
