package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/shell"
	"taskboard/internal/view"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the interactive shell. It is also what runs when no
// command is given. Gateway failures are logged and never end the session.
type ShellCmd struct{}

func (c *ShellCmd) Name() string       { return "shell" }
func (c *ShellCmd) Aliases() []string  { return nil }
func (c *ShellCmd) Synopsis() string   { return "Start the interactive shell" }
func (c *ShellCmd) Usage() string      { return "taskboard shell [common flags]" }
func (c *ShellCmd) NeedsGateway() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	historyPath := ""
	if env.Config.History {
		historyPath = env.Config.HistoryFile
		if env.Config.HistoryInDir() {
			if err := env.Config.EnsureDir(); err != nil {
				env.Logger.Warn("creating config directory failed", "dir", env.Config.Dir, "error", err)
			}
		}
	}

	in := env.Input
	if in == nil {
		l := shell.NewLiner(historyPath)
		defer func() {
			if err := l.Close(); err != nil {
				env.Logger.Warn("closing terminal failed", "error", err)
			}
		}()
		in = l
	}

	doc := view.NewTextDocument(out, false)
	modal := view.NewModal(shell.NewPromptSurface(in, out))
	ctrl := view.NewController(env.Gateway, doc, modal, env.Logger)

	if err := shell.New(ctrl, doc, in, out).Run(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
