package router

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/craifter/cli/cmd/craifter/cli/session"
	"github.com/craifter/cli/cmd/craifter/cli/shell"
	"github.com/craifter/cli/cmd/craifter/cli/todo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	commands []string
}

func (r *recordingRunner) Run(_ context.Context, command string) shell.Result {
	r.commands = append(r.commands, command)
	return shell.Result{Command: command}
}

type testEnv struct {
	root   string
	out    *bytes.Buffer
	runner *recordingRunner
	todos  *todo.List
	reg    *session.Registry
	router *Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		root:   t.TempDir(),
		out:    &bytes.Buffer{},
		runner: &recordingRunner{},
		todos:  todo.NewList(),
	}
	env.reg = session.NewRegistry(env.root)
	require.NoError(t, env.reg.Load(context.Background()))
	env.router = New(env.reg, env.todos, env.runner, env.out)
	return env
}

// route runs each line and returns everything printed, resetting the buffer.
func (e *testEnv) route(lines ...string) string {
	for _, line := range lines {
		e.router.Route(context.Background(), line)
	}
	s := e.out.String()
	e.out.Reset()
	return s
}

func TestRoute_ReturnsOp(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	assert.Equal(t, OpHelp, env.router.Route(context.Background(), "help"))
	assert.Equal(t, OpUnknown, env.router.Route(context.Background(), "frobnicate"))
	assert.Equal(t, OpAddTodo, env.router.Route(context.Background(), "addtodo x"))
}

func TestRoute_Help(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out := env.route("help")

	assert.Equal(t, HelpText, out)
	for _, kw := range []string{"addtodo", "updatetodo", "showtodos", "newsession", "savecommand", "savenote", "playback", "listsessions", "runproject", "exit"} {
		assert.Contains(t, out, kw)
	}
}

func TestRoute_UnknownCommand(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, line := range []string{"frobnicate", "", "playback", "help me"} {
		assert.Equal(t, unknownCommandNotice+"\n", env.route(line), line)
	}
}

func TestRoute_NewSessionAndList(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	assert.Equal(t, "Created session: web\n", env.route("newsession web"))
	assert.Equal(t, "Created session: api\n", env.route("newsession api"))
	assert.Equal(t, "Sessions:\n  web\n  api\n", env.route("listsessions"))

	index, err := os.ReadFile(filepath.Join(env.root, "sessions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "web\napi\n", string(index))
}

func TestRoute_NewSessionRejectsUnsafeName(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	assert.Equal(t, "Invalid session name: ../etc\n", env.route("newsession ../etc"))
	assert.Equal(t, "Invalid session name: two words\n", env.route("newsession two words"))
	assert.Equal(t, "Sessions:\n", env.route("listsessions"))
}

func TestRoute_SaveAppendsToLogs(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.route("newsession web")

	out := env.route(
		`savecommand web "git push origin main"`,
		"savenote web Deploy to production server",
		"savedata web rows=3",
		"saveresult web ok",
	)
	assert.Empty(t, out, "save keywords print nothing")

	s, err := env.reg.FindByName("web")
	require.NoError(t, err)
	for kind, want := range map[session.LogKind]string{
		session.LogCommands: "\"git push origin main\"\n",
		session.LogNotes:    "Deploy to production server\n",
		session.LogData:     "rows=3\n",
		session.LogResults:  "ok\n",
	} {
		content, err := os.ReadFile(s.LogPath(kind))
		require.NoError(t, err)
		assert.Equal(t, want, string(content), kind.String())
	}
}

func TestRoute_UnknownSessionIsNoOp(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out := env.route(
		`savecommand ghost "x"`,
		"savenote ghost x",
		"playback ghost",
	)
	assert.Empty(t, out)
	assert.Equal(t, "Sessions:\n", env.route("listsessions"))

	_, err := os.Stat(filepath.Join(env.root, "ghost"))
	assert.True(t, os.IsNotExist(err), "no folder may be created for an unknown session")
	assert.Empty(t, env.runner.commands)
}

func TestRoute_RunProjectUnknownReports(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	assert.Equal(t, projectNotFoundNotice+"\n", env.route("runproject ghost"))
}

func TestRoute_PlaybackRoundTrip(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.route(
		"newsession S",
		`savecommand S "echo hi"`,
		`savenote S "hello"`,
	)
	out := env.route("playback S")

	assert.Equal(t, []string{"echo hi"}, env.runner.commands)
	assert.Contains(t, out, "Executing: echo hi\n")
	assert.Contains(t, out, "hello")
	assert.Less(t, strings.Index(out, "Commands:"), strings.Index(out, "Executing: echo hi"))
	assert.Less(t, strings.Index(out, "Notes:"), strings.Index(out, "hello"))
}

func TestRoute_RunProjectMatchesPlayback(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.route("newsession S", "savecommand S make", "savenote S note")

	playback := env.route("playback S")
	runproject := env.route("runproject S")

	assert.Equal(t, playback, runproject)
	assert.Equal(t, []string{"make", "make"}, env.runner.commands)
}

func TestRoute_PlaybackOrdering(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.route(
		"newsession S",
		"savecommand S echo 1",
		"savecommand S echo 2",
		"savecommand S echo 3",
	)

	env.route("playback S")

	assert.Equal(t, []string{"echo 1", "echo 2", "echo 3"}, env.runner.commands)
}

func TestRoute_DuplicateSessionsShareFolder(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.route("newsession S", "newsession S", "savenote S once")

	assert.Equal(t, "Sessions:\n  S\n  S\n", env.route("listsessions"))

	s, err := env.reg.FindByName("S")
	require.NoError(t, err)
	content, err := os.ReadFile(s.LogPath(session.LogNotes))
	require.NoError(t, err)
	assert.Equal(t, "once\n", string(content))
}

func TestRoute_Todos(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	assert.Equal(t, "Added todo: t1\n", env.route(`addtodo t1 "Fix it"`))
	assert.Equal(t, "[t1] Fix it (pending, medium)\n", env.route("showtodos"))

	assert.Equal(t, "Updated todo: t1\n", env.route("updatetodo t1 in_progress"))
	assert.Equal(t, "[t1] Fix it (in progress, medium)\n", env.route("showtodos"))

	env.route("updatetodo t1 bogus_status")
	item, ok := env.todos.Get("t1")
	require.True(t, ok)
	assert.Equal(t, todo.StatusPending, item.Status)
	assert.Equal(t, todo.PriorityMedium, item.Priority)
}

func TestRoute_TodoPriorities(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.route("addtodo a task high", "addtodo b task low", "addtodo c task urgent")

	assert.Equal(t,
		"[a] task (pending, high)\n[b] task (pending, low)\n[c] task (pending, medium)\n",
		env.route("showtodos"))
}

func TestRoute_MalformedTodosAreSilent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	assert.Empty(t, env.route("addtodo onlyid"))
	assert.Empty(t, env.route("updatetodo onlyid"))
	assert.Empty(t, env.route("updatetodo ghost completed"), "unknown id is a silent no-op")
	assert.Empty(t, env.todos.Items())
}

func TestRoute_AppendFailureIsSilent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.route("newsession S")

	s, err := env.reg.FindByName("S")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(s.BasePath()))

	assert.Empty(t, env.route("savenote S lost"))
}

func TestRoute_PlaybackWithRealShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell")
	}
	t.Parallel()

	root := t.TempDir()
	var out bytes.Buffer
	reg := session.NewRegistry(root)
	r := New(reg, todo.NewList(), shell.NewShellRunner("", nil, &out, &out), &out)
	ctx := context.Background()

	r.Route(ctx, "newsession S")
	r.Route(ctx, `savecommand S "echo hi"`)
	r.Route(ctx, "savecommand S exit 7")
	r.Route(ctx, "savecommand S echo after")
	r.Route(ctx, `savenote S "hello"`)
	out.Reset()

	r.Route(ctx, "playback S")

	want := "Playback for session: S\n" +
		"Commands:\n" +
		"\"echo hi\"\n" +
		"Executing: echo hi\n" +
		"hi\n" +
		"exit 7\n" +
		"Executing: exit 7\n" +
		"echo after\n" +
		"Executing: echo after\n" +
		"after\n" +
		"Notes:\n" +
		"\"hello\"\n"
	assert.Equal(t, want, out.String())
}
