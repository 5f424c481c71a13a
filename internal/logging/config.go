package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for log configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Level  string
	Format string
}

// Config holds CLI flag values for log configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewHandler] to build a [slog.Handler].
type Config struct {
	Flags  Flags
	Level  string
	Format string
}

// NewConfig returns a new [Config] with default flag names and an INFO
// default level.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{Level: "log-level", Format: "log-format"},
		Level: "INFO",
	}
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("log level, one of: %s", AllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, "text",
		fmt.Sprintf("log format, one of: %s", AllFormatStrings()))
}

// RegisterCompletions registers shell completions for log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(AllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(AllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// NewHandler creates a new [slog.Handler] that writes to w, using the
// level and format strings stored in c.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	return NewHandlerFromStrings(w, c.Level, c.Format)
}
