package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/view"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskboard rm [common flags] <ref>" }
func (c *RmCmd) NeedsGateway() bool { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	task, code := resolveTaskArg(ctx, env.Gateway, args, errOut)
	if code != exitcode.Success {
		return code
	}

	docOut := out
	if env.Config.Quiet {
		docOut = io.Discard
	}

	ctrl := newController(env, docOut, view.AnswerSurface{})
	ctrl.Delete(ctx, task.ID)
	return backendResult(ctrl, errOut)
}
