// Package shell runs saved session commands through the host shell.
//
// Output is never captured: commands write straight to the streams they are
// given. What comes back is a Result describing how the process ended, so
// callers can log failures even when they choose not to surface them.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// exits or ctx is cancelled.
const waitDelay = time.Second

// Result describes one command invocation.
type Result struct {
	// Command is the exact string handed to the shell.
	Command string

	// ExitCode is the process exit status, or -1 when the process never
	// started or was killed by a signal.
	ExitCode int

	// Err is set when the command could not be started or did not exit 0.
	Err error

	// Skipped is true when the command was not run at all.
	Skipped bool

	Duration time.Duration
}

// Succeeded reports whether the command ran and exited 0.
func (r Result) Succeeded() bool {
	return !r.Skipped && r.Err == nil && r.ExitCode == 0
}

// Runner executes one command string synchronously.
type Runner interface {
	Run(ctx context.Context, command string) Result
}

// DefaultShell returns the shell used when none is configured:
// /bin/sh everywhere except Windows, where it is cmd.
func DefaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "/bin/sh"
}

// ShellRunner hands commands to a shell via "<shell> -c <command>"
// (or "cmd /C <command>").
type ShellRunner struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner creates a runner for the given shell, falling back to
// DefaultShell when shell is empty.
//
// Stdin is only inherited when it is an *os.File. Any other reader would be
// drained by the child's copy goroutine, stealing input from the caller.
func NewShellRunner(shell string, stdin io.Reader, stdout, stderr io.Writer) *ShellRunner {
	if shell == "" {
		shell = DefaultShell()
	}
	if _, ok := stdin.(*os.File); !ok {
		stdin = nil
	}
	return &ShellRunner{
		Shell:  shell,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Run executes command and blocks until it exits or ctx is cancelled.
func (r *ShellRunner) Run(ctx context.Context, command string) Result {
	start := time.Now()
	res := Result{Command: command}

	cmd := exec.CommandContext(ctx, r.Shell, commandFlag(r.Shell), command) //nolint:gosec // running saved commands is the point
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	res.Duration = time.Since(start)
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		res.Err = fmt.Errorf("command exited with status %d: %w", res.ExitCode, err)
		return res
	}

	res.ExitCode = -1
	res.Err = fmt.Errorf("failed to run command: %w", err)
	return res
}

// commandFlag returns the flag that makes the shell read a command string.
func commandFlag(shell string) string {
	switch shellBase(shell) {
	case "cmd", "cmd.exe":
		return "/C"
	case "powershell", "powershell.exe", "pwsh", "pwsh.exe":
		return "-Command"
	default:
		return "-c"
	}
}

// shellBase strips any directory from a shell path, accepting both separators.
func shellBase(shell string) string {
	for i := len(shell) - 1; i >= 0; i-- {
		if shell[i] == '/' || shell[i] == '\\' {
			return shell[i+1:]
		}
	}
	return shell
}

// ConfirmFunc asks whether command should run.
type ConfirmFunc func(command string) (bool, error)

// ConfirmRunner asks before delegating each command to Next.
// A declined or failed prompt yields a skipped Result.
type ConfirmRunner struct {
	Next    Runner
	Confirm ConfirmFunc
}

// Run implements Runner.
func (r *ConfirmRunner) Run(ctx context.Context, command string) Result {
	ok, err := r.Confirm(command)
	if err != nil {
		return Result{Command: command, ExitCode: -1, Skipped: true, Err: fmt.Errorf("confirmation failed: %w", err)}
	}
	if !ok {
		return Result{Command: command, Skipped: true}
	}
	return r.Next.Run(ctx, command)
}
