package toolserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// defaultCommandTimeout bounds run_command execution, in seconds.
const defaultCommandTimeout = 300

// CommandResult reports the outcome of one shell command.
type CommandResult struct {
	Command  string  `json:"command"`
	ExitCode int     `json:"exit_code"`
	Stdout   string  `json:"stdout"`
	Stderr   string  `json:"stderr"`
	Duration float64 `json:"duration"`
	Cwd      string  `json:"cwd"`
}

// runCommand executes a shell command line with a timeout. Failures are
// reported in the result, never as an error: a failing command is a valid
// tool outcome.
func runCommand(ctx context.Context, command, cwd string, timeoutSeconds int) *CommandResult {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = cwd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start).Seconds()

	result := &CommandResult{
		Command:  command,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
		Cwd:      cwd,
	}

	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.ExitCode = -1
		result.Stderr = fmt.Sprintf("Command timed out after %d seconds", timeoutSeconds)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			result.Stderr = fmt.Sprintf("Error executing command: %v", err)
		}
	}

	return result
}
