package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskboard help" }
func (c *HelpCmd) NeedsGateway() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	registry := c.registry
	if registry == nil {
		registry = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-50s %s\n", "taskboard [common flags]", "Start the interactive shell")
	for _, cmd := range registry.All() {
		fmt.Fprintf(out, "  %-50s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
<ref> is a row number as printed by list (3) or a task id (#17).

Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override the task service base URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

Environment:
  TASKBOARD_BASE_URL, TASKBOARD_TIMEOUT, TASKBOARD_LOG_LEVEL,
  TASKBOARD_HISTORY, TASKBOARD_HISTORY_FILE
`
