// Package router dispatches one line of user input to the session registry,
// a session, or the todo list.
//
// Failures stay quiet for the user: unknown sessions and malformed todo
// commands are no-ops, and file system or subprocess errors go to the
// structured log only.
package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/craifter/cli/cmd/craifter/cli/logging"
	"github.com/craifter/cli/cmd/craifter/cli/session"
	"github.com/craifter/cli/cmd/craifter/cli/shell"
	"github.com/craifter/cli/cmd/craifter/cli/todo"
	"github.com/craifter/cli/cmd/craifter/cli/validation"
)

// User-visible notices.
const (
	unknownCommandNotice  = "Unknown command. Type 'help' for commands."
	projectNotFoundNotice = "Project not found."
)

// saveTargets maps each save keyword to the log it appends to.
var saveTargets = map[Op]session.LogKind{
	OpSaveCommand: session.LogCommands,
	OpSaveNote:    session.LogNotes,
	OpSaveData:    session.LogData,
	OpSaveResult:  session.LogResults,
}

// Router holds the state one process works against. It is not safe for
// concurrent use.
type Router struct {
	registry *session.Registry
	todos    *todo.List
	runner   shell.Runner
	out      io.Writer
}

// New creates a router writing user-visible output to out.
func New(registry *session.Registry, todos *todo.List, runner shell.Runner, out io.Writer) *Router {
	return &Router{
		registry: registry,
		todos:    todos,
		runner:   runner,
		out:      out,
	}
}

// Route parses and executes one line and returns the operation it resolved to.
func (r *Router) Route(ctx context.Context, line string) Op {
	cmd, err := Parse(line)
	ctx = logging.WithComponent(logging.WithOperation(ctx, string(cmd.Op)), "router")

	if errors.Is(err, ErrMalformed) {
		logging.Debug(ctx, "skipping malformed command", slog.Int("length", len(line)))
		return cmd.Op
	}

	switch cmd.Op {
	case OpHelp:
		fmt.Fprint(r.out, HelpText)
	case OpAddTodo:
		r.addTodo(cmd.Args)
	case OpUpdateTodo:
		r.updateTodo(cmd.Args)
	case OpShowTodos:
		r.todos.Display(r.out)
	case OpListSessions:
		r.listSessions()
	case OpNewSession:
		r.newSession(ctx, cmd.Args[0])
	case OpSaveCommand, OpSaveNote, OpSaveData, OpSaveResult:
		r.save(ctx, saveTargets[cmd.Op], cmd.Args[0], cmd.Args[1])
	case OpPlayback:
		r.playback(ctx, cmd.Args[0], false)
	case OpRunProject:
		r.playback(ctx, cmd.Args[0], true)
	default:
		fmt.Fprintln(r.out, unknownCommandNotice)
	}
	return cmd.Op
}

func (r *Router) addTodo(args []string) {
	priority := ""
	if len(args) > 2 {
		priority = args[2]
	}
	r.todos.Add(args[0], args[1], todo.ParsePriority(priority))
	fmt.Fprintf(r.out, "Added todo: %s\n", args[0])
}

func (r *Router) updateTodo(args []string) {
	if r.todos.UpdateStatus(args[0], todo.ParseStatus(args[1])) {
		fmt.Fprintf(r.out, "Updated todo: %s\n", args[0])
	}
}

func (r *Router) listSessions() {
	fmt.Fprintln(r.out, "Sessions:")
	for _, name := range r.registry.Names() {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
}

func (r *Router) newSession(ctx context.Context, name string) {
	ctx = logging.WithSession(ctx, name)

	if err := validation.ValidateSessionName(name); err != nil {
		logging.Debug(ctx, "rejected session name", slog.String("error", err.Error()))
		fmt.Fprintf(r.out, "Invalid session name: %s\n", name)
		return
	}

	s, err := r.registry.Create(ctx, name)
	switch {
	case errors.Is(err, session.ErrIndexWrite):
		// Created in memory; the index is rewritten again at shutdown.
		logging.Warn(ctx, "failed to persist session index", slog.String("error", err.Error()))
	case err != nil:
		logging.Warn(ctx, "failed to create session", slog.String("error", err.Error()))
		return
	}

	logging.Info(ctx, "session created", slog.String("path", s.BasePath()))
	fmt.Fprintf(r.out, "Created session: %s\n", name)
}

func (r *Router) save(ctx context.Context, kind session.LogKind, name, text string) {
	ctx = logging.WithSession(ctx, name)

	s, err := r.registry.FindByName(name)
	if err != nil {
		logging.Debug(ctx, "save to unknown session ignored", slog.String("log", kind.String()))
		return
	}

	if err := s.Append(kind, text); err != nil {
		logging.Warn(ctx, "failed to append to session log",
			slog.String("log", kind.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	logging.Debug(ctx, "appended to session log", slog.String("log", kind.String()))
}

func (r *Router) playback(ctx context.Context, name string, reportMissing bool) {
	ctx = logging.WithSession(ctx, name)

	s, err := r.registry.FindByName(name)
	if err != nil {
		if reportMissing {
			fmt.Fprintln(r.out, projectNotFoundNotice)
		}
		logging.Debug(ctx, "playback of unknown session ignored")
		return
	}

	if _, err := s.Playback(ctx, r.out, r.runner); err != nil {
		logging.Warn(ctx, "playback could not read a session log", slog.String("error", err.Error()))
	}
}
