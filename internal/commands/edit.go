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
	Register(&EditCmd{})
}

// EditCmd implements the edit command: it asks for confirmation and marks
// the task completed when confirmed, open otherwise.
type EditCmd struct {
	yes bool
	no  bool
}

// SetAnswer pre-answers the confirmation (for testing).
func (c *EditCmd) SetAnswer(yes, no bool) {
	c.yes = yes
	c.no = no
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"done"} }
func (c *EditCmd) Synopsis() string   { return "Confirm to mark a task completed, decline to mark it open" }
func (c *EditCmd) Usage() string      { return "taskboard edit [common flags] [--yes|--no] <ref>" }
func (c *EditCmd) NeedsGateway() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.yes, "yes", "y", false, "")
	fs.BoolVarP(&c.no, "no", "n", false, "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if c.yes && c.no {
		fmt.Fprintln(errOut, "error: cannot use both --yes and --no")
		return exitcode.UserError
	}

	task, code := resolveTaskArg(ctx, env.Gateway, args, errOut)
	if code != exitcode.Success {
		return code
	}

	var surface view.Surface
	switch {
	case c.yes:
		surface = view.AnswerSurface{Answer: true}
	case c.no:
		surface = view.AnswerSurface{Answer: false}
	default:
		in := env.Input
		if in == nil {
			l := shell.NewLiner("")
			defer func() {
				if err := l.Close(); err != nil {
					env.Logger.Warn("restoring terminal failed", "error", err)
				}
			}()
			in = l
		}
		surface = shell.NewPromptSurface(in, out)
	}

	docOut := out
	if env.Config.Quiet {
		docOut = io.Discard
	}

	ctrl := newController(env, docOut, surface)
	ctrl.Edit(ctx, task)
	return backendResult(ctrl, errOut)
}
