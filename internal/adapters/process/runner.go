// Package process runs external commands.
package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"
)

// CommandRunner executes an external command and returns its standard output.
// The output is returned even when the command fails, because solvers report
// their errors as JSON on stdout.
type CommandRunner interface {
	Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec, inheriting the process environment.
type ExecRunner struct{}

// Run executes name with args. env entries override the inherited environment.
// A failed command returns its stdout alongside an error carrying the exit
// code and stderr as metadata.
func (ExecRunner) Run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // command names come from validated configuration
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		runErr := zerr.With(zerr.Wrap(err, "command failed"), "command", name+" "+strings.Join(args, " "))
		runErr = zerr.With(runErr, "exit_code", exitCode)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			runErr = zerr.With(runErr, "stderr", msg)
		}
		return stdout.Bytes(), runErr
	}

	return stdout.Bytes(), nil
}
