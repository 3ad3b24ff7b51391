// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/shell"
)

// DefaultCommand runs when no command name is given.
const DefaultCommand = "shell"

// GatewayFactory creates the task gateway from config.
// Used to inject the backend during dispatch.
type GatewayFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Gateway, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  GatewayFactory
	input    shell.LineReader
}

// NewDispatcher creates a new dispatcher with the given registry and gateway factory.
func NewDispatcher(registry *commands.Registry, factory GatewayFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// SetInput makes prompts read from in instead of the terminal (for testing).
func (d *Dispatcher) SetInput(in shell.LineReader) {
	d.input = in
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No command name -> interactive shell, common flags still apply
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return d.dispatch(ctx, DefaultCommand, args, out, errOut)
	}
	return d.dispatch(ctx, args[0], args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var in config.LoadInput
	fs.StringVar(&in.Dir, "config", "", "")
	fs.StringVar(&in.BaseURL, "base-url", "", "")
	fs.BoolVarP(&in.Quiet, "quiet", "q", false, "")
	fs.BoolVar(&in.Debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.Load(in)
	if err != nil {
		if cmd.NeedsGateway() {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.ConfigError
		}
		// help and version work with a broken config
		cfg = config.New(in.Dir)
		cfg.Quiet = in.Quiet
		cfg.Debug = in.Debug
	}

	logger := logging.New(errOut, cfg)
	logger.Debug("config loaded", "dir", cfg.Dir, "base_url", cfg.BaseURL, "sources", cfg.Sources)

	env := &commands.Env{
		Config: cfg,
		Logger: logger,
		Input:  d.input,
	}

	if cmd.NeedsGateway() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no task service configured")
			return exitcode.ConfigError
		}
		gw, err := d.factory(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.ConfigError
		}
		env.Gateway = gw
	}

	return cmd.Run(ctx, env, fs.Args(), out, errOut)
}
