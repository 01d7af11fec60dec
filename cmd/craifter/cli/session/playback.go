package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/craifter/cli/cmd/craifter/cli/logging"
	"github.com/craifter/cli/cmd/craifter/cli/shell"
	"github.com/craifter/cli/redact"

	"github.com/google/uuid"
)

// trimCutset matches the characters stripped from both ends of a command line.
const trimCutset = " \t\n\r\f\v"

// PlaybackReport summarizes one playback run.
type PlaybackReport struct {
	RunID   string
	Results []shell.Result
}

// Failed returns the number of commands that ran and did not succeed.
func (p *PlaybackReport) Failed() int {
	n := 0
	for _, r := range p.Results {
		if !r.Skipped && !r.Succeeded() {
			n++
		}
	}
	return n
}

// NormalizeCommand turns a commands-log line into the string handed to the
// shell: surrounding whitespace is trimmed, then one pair of enclosing double
// quotes is removed. Embedded quotes and escapes are left alone.
func NormalizeCommand(line string) string {
	cmd := strings.Trim(line, trimCutset)
	if cmd == "" || cmd[0] != '"' || cmd[len(cmd)-1] != '"' {
		return cmd
	}
	if len(cmd) == 1 {
		return ""
	}
	return cmd[1 : len(cmd)-1]
}

// Playback prints the commands log, running each command right after its line
// is printed, then prints the notes log. The data and results logs are not
// part of playback.
//
// A failing command never stops playback, and neither does cancelling ctx.
// Errors reading a log are returned after both logs have been processed.
func (s Session) Playback(ctx context.Context, out io.Writer, runner shell.Runner) (*PlaybackReport, error) {
	report := &PlaybackReport{RunID: uuid.NewString()}
	ctx = logging.WithSession(ctx, s.name)
	ctx = logging.WithComponent(ctx, "playback")
	ctx = logging.WithRun(ctx, report.RunID)

	start := time.Now()
	logging.Info(ctx, "playback started")

	fmt.Fprintf(out, "Playback for session: %s\n", s.name)

	// An interrupt reaches the running child through the terminal; the rest
	// of the session still plays.
	runCtx := context.WithoutCancel(ctx)

	fmt.Fprintln(out, "Commands:")
	cmdErr := forEachLine(s.LogPath(LogCommands), func(line string) {
		fmt.Fprintln(out, line)

		command := NormalizeCommand(line)
		fmt.Fprintf(out, "Executing: %s\n", command)

		res := runner.Run(runCtx, command)
		report.Results = append(report.Results, res)
		logResult(ctx, res)
	})

	fmt.Fprintln(out, "Notes:")
	noteErr := forEachLine(s.LogPath(LogNotes), func(line string) {
		fmt.Fprintln(out, line)
	})

	logging.LogDuration(ctx, slog.LevelInfo, "playback finished", start,
		slog.Int("commands", len(report.Results)),
		slog.Int("failed", report.Failed()),
	)

	return report, errors.Join(cmdErr, noteErr)
}

func logResult(ctx context.Context, res shell.Result) {
	attrs := []any{
		slog.String("command", redact.String(res.Command)),
		slog.Int("exit_code", res.ExitCode),
		slog.Int64("duration_ms", res.Duration.Milliseconds()),
	}
	switch {
	case res.Skipped:
		logging.Info(ctx, "command skipped", attrs...)
	case res.Err != nil:
		attrs = append(attrs, slog.String("error", res.Err.Error()))
		logging.Warn(ctx, "command failed", attrs...)
	default:
		logging.Debug(ctx, "command executed", attrs...)
	}
}

// forEachLine calls fn for every line of the file at path, without its
// trailing "\n". A missing file yields no lines and no error.
func forEachLine(path string, fn func(line string)) error {
	f, err := os.Open(path) //nolint:gosec // path derived from validated session name
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			fn(strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
}
