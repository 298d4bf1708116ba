// Package exec runs external commands behind a small interface so
// callers that shell out, like the static-function scan, can be tested
// against a fake.
package exec

import (
	"bytes"
	"errors"
	osexec "os/exec"
)

// Result holds the outcome of one command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs external commands.
type Executor interface {
	Run(command string, args ...string) (*Result, error)
}

// CommandExecutor runs commands on the host system.
type CommandExecutor struct{}

// NewCommandExecutor creates a new CommandExecutor.
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{}
}

// Run executes the given command. A non-zero exit code is reported
// through the Result, not as an error — grep exits 1 to mean "no
// matches" and callers need to tell that apart from a failed launch.
// Only errors like a missing binary are returned as errors.
func (e *CommandExecutor) Run(command string, args ...string) (*Result, error) {
	cmd := osexec.Command(command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *osexec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}
