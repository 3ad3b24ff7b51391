// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"taskboard/internal/config"
	"taskboard/internal/service"
	"taskboard/internal/shell"
)

// Env is what a command runs against.
type Env struct {
	// Config is always provided.
	Config *config.Config

	// Gateway is nil if NeedsGateway() returns false.
	Gateway service.Gateway

	// Logger is the diagnostic logger (stderr).
	Logger *slog.Logger

	// Input answers prompts. Nil means the terminal.
	Input shell.LineReader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsGateway returns true if the command talks to the task service.
	// Commands like help and version return false.
	NeedsGateway() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
