package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/shell"
	"taskboard/internal/testutil"
)

// runCommand is a helper to run a command against a FakeGateway.
func runCommand(t *testing.T, cmd commands.Command, gw *testutil.FakeGateway, in shell.LineReader, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := config.New(t.TempDir())
	cfg.Quiet = quiet

	env := &commands.Env{
		Config: cfg,
		Logger: logging.Discard(),
		Input:  in,
	}
	if gw != nil {
		env.Gateway = gw
	}

	code = cmd.Run(context.Background(), env, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func twoTasks() *testutil.FakeGateway {
	return testutil.NewFakeGateway(
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Walk dog"},
	)
}

func assertOps(t *testing.T, gw *testutil.FakeGateway, want ...string) {
	t.Helper()
	if got := gw.Ops(); !slices.Equal(got, want) {
		t.Errorf("expected ops %v, got %v", want, got)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "taskboard list", "taskboard edit", "TASKBOARD_BASE_URL"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected help output to contain %q", want)
		}
	}
}

func TestRegistry_FindAlias(t *testing.T) {
	for alias, name := range map[string]string{"ls": "list", "done": "edit", "delete": "rm", "create": "add"} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q: expected %q, got %q", alias, name, cmd.Name())
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(&commands.ListCmd{}); err == nil {
		t.Error("expected error registering a duplicate name")
	}
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	gw := testutil.NewFakeGateway(
		service.Task{ID: "1", Title: "Buy milk"},
		service.Task{ID: "2", Title: "Walk dog", Completed: true},
	)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, gw, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Walk dog\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	assertOps(t, gw, "list")
}

func TestListCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeGateway(), nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected empty message, got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeGateway(), nil, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	gw := twoTasks()
	gw.ListErr = errors.New("connection refused")

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, gw, nil, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: backend error: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, twoTasks(), nil, []string{"extra"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	gw := testutil.NewFakeGateway()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, gw, nil, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	assertOps(t, gw, "create", "list")
	if calls := gw.Calls(); calls[0].Title != "Buy milk" {
		t.Errorf("expected title %q, got %q", "Buy milk", calls[0].Title)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	gw := testutil.NewFakeGateway()

	stdout, _, code := runCommand(t, &commands.AddCmd{}, gw, nil, []string{"Buy milk"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
	if len(gw.Tasks()) != 1 {
		t.Errorf("expected 1 task, got %d", len(gw.Tasks()))
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	gw := testutil.NewFakeGateway()

	_, stderr, code := runCommand(t, &commands.AddCmd{}, gw, nil, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	assertOps(t, gw)
}

func TestAddCommand_BackendError(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.CreateErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, gw, nil, []string{"Buy milk"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	// The list is re-fetched even after a failed create.
	assertOps(t, gw, "create", "list")
}

// Tests for edit command
func TestEditCommand_Yes(t *testing.T) {
	gw := twoTasks()
	cmd := &commands.EditCmd{}
	cmd.SetAnswer(true, false)

	stdout, stderr, code := runCommand(t, cmd, gw, nil, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  [ ] Buy milk\n   2  [x] Walk dog\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	assertOps(t, gw, "list", "update", "list")
	if call := gw.Calls()[1]; call.ID != "2" || !call.Completed {
		t.Errorf("expected update(2, true), got %+v", call)
	}
}

func TestEditCommand_No(t *testing.T) {
	gw := testutil.NewFakeGateway(service.Task{ID: "5", Title: "Pay rent", Completed: true})
	cmd := &commands.EditCmd{}
	cmd.SetAnswer(false, true)

	_, _, code := runCommand(t, cmd, gw, nil, []string{"#5"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	assertOps(t, gw, "update", "list")
	if call := gw.Calls()[0]; call.ID != "5" || call.Completed {
		t.Errorf("expected update(5, false), got %+v", call)
	}
}

func TestEditCommand_Prompt(t *testing.T) {
	gw := twoTasks()
	in := testutil.NewScriptedInput("maybe", "y")

	stdout, _, code := runCommand(t, &commands.EditCmd{}, gw, in, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{`Mark "Buy milk" as completed?`, "Please enter y or n.", "   1  [x] Buy milk\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q, got %q", want, stdout)
		}
	}
	if got := in.Prompts(); len(got) != 2 || got[0] != shell.ConfirmPrompt {
		t.Errorf("unexpected prompts %q", got)
	}
}

func TestEditCommand_PromptDismissed(t *testing.T) {
	gw := testutil.NewFakeGateway(service.Task{ID: "1", Title: "Buy milk", Completed: true})
	in := testutil.NewScriptedInput("")

	_, _, code := runCommand(t, &commands.EditCmd{}, gw, in, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if tasks := gw.Tasks(); tasks[0].Completed {
		t.Error("expected dismissed confirmation to mark the task open")
	}
}

func TestEditCommand_BothAnswers(t *testing.T) {
	gw := twoTasks()
	cmd := &commands.EditCmd{}
	cmd.SetAnswer(true, true)

	_, stderr, code := runCommand(t, cmd, gw, nil, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: cannot use both --yes and --no\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	assertOps(t, gw)
}

func TestEditCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.EditCmd{}, twoTasks(), nil, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestEditCommand_InvalidRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.EditCmd{}, twoTasks(), nil, []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task reference: abc\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestEditCommand_OutOfRange(t *testing.T) {
	gw := twoTasks()

	_, stderr, code := runCommand(t, &commands.EditCmd{}, gw, nil, []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	assertOps(t, gw, "list")
}

func TestEditCommand_UnknownID(t *testing.T) {
	gw := twoTasks()
	cmd := &commands.EditCmd{}
	cmd.SetAnswer(true, false)

	_, stderr, code := runCommand(t, cmd, gw, nil, []string{"#9"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.HasPrefix(stderr, "error: backend error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	assertOps(t, gw, "update", "list")
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	gw := twoTasks()

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, gw, nil, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  [ ] Walk dog\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	assertOps(t, gw, "list", "delete", "list")
}

func TestRmCommand_NoRef(t *testing.T) {
	gw := twoTasks()

	_, stderr, code := runCommand(t, &commands.RmCmd{}, gw, nil, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	assertOps(t, gw)
}

func TestRmCommand_BackendError(t *testing.T) {
	gw := twoTasks()
	gw.DeleteErr = errors.New("boom")

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, gw, nil, []string{"#2"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	// Rows are re-rendered from a fresh list after the failed delete.
	if stdout != "   1  [ ] Buy milk\n   2  [ ] Walk dog\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

// Tests for shell command
func TestShellCommand_Session(t *testing.T) {
	gw := twoTasks()
	in := testutil.NewScriptedInput("add Call mom", "rm 1", "exit")

	stdout, stderr, code := runCommand(t, &commands.ShellCmd{}, gw, in, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasSuffix(stdout, "   1  [ ] Walk dog\n   2  [ ] Call mom\nBye!\n") {
		t.Errorf("unexpected output %q", stdout)
	}
	assertOps(t, gw, "list", "create", "list", "delete", "list")
}

func TestShellCommand_BackendErrorKeepsRunning(t *testing.T) {
	gw := twoTasks()
	gw.ListErr = errors.New("down")
	in := testutil.NewScriptedInput("ls", "ls")

	_, _, code := runCommand(t, &commands.ShellCmd{}, gw, in, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	assertOps(t, gw, "list", "list", "list")
}

func TestShellCommand_CreatesHistoryDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "taskboard")
	env := &commands.Env{
		Config:  config.New(dir),
		Gateway: testutil.NewFakeGateway(),
		Logger:  logging.Discard(),
		Input:   testutil.NewScriptedInput(),
	}

	var out, errOut bytes.Buffer
	code := (&commands.ShellCmd{}).Run(context.Background(), env, nil, &out, &errOut)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected config dir %s to be created, got %v", dir, err)
	}
}

func TestShellCommand_HistoryDisabledLeavesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "taskboard")
	cfg := config.New(dir)
	cfg.History = false
	env := &commands.Env{
		Config:  cfg,
		Gateway: testutil.NewFakeGateway(),
		Logger:  logging.Discard(),
		Input:   testutil.NewScriptedInput(),
	}

	var out, errOut bytes.Buffer
	(&commands.ShellCmd{}).Run(context.Background(), env, nil, &out, &errOut)

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected no config dir, got %v", err)
	}
}
