package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	replPrompt  = "Craifter> "
	exitKeyword = "exit"
)

// runREPL prompts for lines and hands each non-blank one to route, trimmed,
// until the user types exit, input ends, or ctx is cancelled.
//
// Input is only read between routed commands, so executed commands and
// confirmation prompts have the terminal to themselves. Lines have no
// length limit.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, route func(context.Context, string)) error {
	lines := make(chan string)
	next := make(chan struct{})
	done := make(chan struct{})
	defer close(done)

	var readErr error
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			select {
			case <-next:
			case <-done:
				return
			}
			line, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				readErr = err
				return
			}
			if line == "" && err != nil {
				return
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, replPrompt)

		select {
		case next <- struct{}{}:
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		}

		var (
			line string
			ok   bool
		)
		select {
		case line, ok = <-lines:
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		}
		if !ok {
			fmt.Fprintln(out)
			if readErr != nil {
				return fmt.Errorf("failed to read input: %w", readErr)
			}
			return nil
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case exitKeyword:
			return nil
		}
		route(ctx, line)
	}
}
