package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/view"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command. On success the refreshed list is
// printed unless --quiet is set.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskboard add [common flags] <title...>" }
func (c *AddCmd) NeedsGateway() bool { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	// Join args to form title
	title := strings.Join(args, " ")
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	docOut := out
	if env.Config.Quiet {
		docOut = io.Discard
	}

	ctrl := newController(env, docOut, view.AnswerSurface{})
	ctrl.SubmitNewTask(ctx, title)
	return backendResult(ctrl, errOut)
}
