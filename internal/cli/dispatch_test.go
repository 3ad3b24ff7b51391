package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

// testFactory creates a gateway factory that returns the given FakeGateway
// and remembers the config it was called with.
func testFactory(gw *testutil.FakeGateway, seen **config.Config) cli.GatewayFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Gateway, error) {
		if seen != nil {
			*seen = cfg
		}
		return gw, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeGateway(), nil))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsStartsShell(t *testing.T) {
	gw := testutil.NewFakeGateway(service.Task{ID: "1", Title: "Buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(gw, nil))
	dispatcher.SetInput(testutil.NewScriptedInput())

	stdout, _, code := run(t, dispatcher, "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "   1  [ ] Buy milk\n") || !strings.HasSuffix(stdout, "Bye!\n") {
		t.Errorf("unexpected shell output %q", stdout)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected 'taskboard 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: --unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "list", "--config")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: flag needs an argument") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_BaseURLOverride(t *testing.T) {
	var seen *config.Config
	gw := testutil.NewFakeGateway()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(gw, &seen))

	_, _, code := run(t, dispatcher, "list", "--config", t.TempDir(), "--base-url", "http://tasks.example:8080", "-q")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if seen == nil {
		t.Fatal("factory was not called")
	}
	if seen.BaseURL != "http://tasks.example:8080" {
		t.Errorf("expected base URL override, got %q", seen.BaseURL)
	}
	if !seen.Quiet {
		t.Error("expected -q to set quiet")
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(`{"base_url": "not a url"}`), 0600); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeGateway(), nil))

	_, stderr, code := run(t, dispatcher, "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr, "invalid config") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	// help still works
	_, _, code = run(t, dispatcher, "help", "--config", dir)
	if code != exitcode.Success {
		t.Errorf("expected help to succeed with a broken config, got %d", code)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Gateway, error) {
		return nil, errors.New("invalid base URL")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir())

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: invalid base URL\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_BackendError(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.ListErr = errors.New("connection refused")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(gw, nil))

	_, stderr, code := run(t, dispatcher, "ls", "--config", t.TempDir())

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	// The failure is logged and then reported.
	if !strings.Contains(stderr, "list tasks failed") || !strings.HasSuffix(stderr, "error: backend error: connection refused\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_EditFlags(t *testing.T) {
	gw := testutil.NewFakeGateway(service.Task{ID: "1", Title: "Buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(gw, nil))

	stdout, _, code := run(t, dispatcher, "done", "1", "-y", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [x] Buy milk\n" {
		t.Errorf("unexpected output %q", stdout)
	}

	// Flags do not leak into the next invocation.
	in := testutil.NewScriptedInput("n")
	dispatcher.SetInput(in)
	_, _, code = run(t, dispatcher, "edit", "1", "--config", t.TempDir())
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if len(in.Prompts()) != 1 {
		t.Errorf("expected one confirmation prompt, got %d", len(in.Prompts()))
	}
	if gw.Tasks()[0].Completed {
		t.Error("expected the task to be marked open")
	}
}
