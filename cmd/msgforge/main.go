// Package main provides the CLI entry point for msgforge, a tool that
// generates XML, POJO, and OpenAPI artifacts from a message spec
// workbook.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mqspecgen/msgforge/audit"
	"github.com/mqspecgen/msgforge/internal/config"
	"github.com/mqspecgen/msgforge/internal/logging"
	"github.com/mqspecgen/msgforge/orchestrate"
	"github.com/mqspecgen/msgforge/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	shared := &sharedFlags{
		cfgFlags:   config.NewFlagConfig(),
		auditFlags: audit.NewFlagConfig(),
		logCfg:     logging.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:           "msgforge",
		Short:         "Generate XML, POJO, and OpenAPI artifacts from a message spec workbook",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newCLIError(ExitCodeCLIMissingCommand, fmt.Errorf("no command specified; see --help"))
			}

			return newCLIError(ExitCodeCLIUnknownCommand, fmt.Errorf("unknown command %q for %q", args[0], "msgforge"))
		},
	}

	rootCmd.PersistentFlags().StringVar(&shared.configFile, "config", "", "path to a YAML configuration file (output.root-dir, parser.*, xml.*, java.*, openapi.*, audit.*, validation.*, parallel.*)")

	shared.logCfg.RegisterFlags(rootCmd.PersistentFlags())
	shared.cfgFlags.RegisterFlags(rootCmd.PersistentFlags())
	shared.auditFlags.RegisterFlags(rootCmd.PersistentFlags())

	if err := shared.logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := shared.cfgFlags.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register config completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newGenerateCmd(shared),
		newValidateCmd(shared),
		newParseCmd(shared),
		newVersionCmd(),
	)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	err = classifyCobraError(err)

	fmt.Fprintf(os.Stderr, "msgforge: %v\n", err)

	return orchestrate.ExitCode(err)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Println(version.String())

			return nil
		},
	}
}
