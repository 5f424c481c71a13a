package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mqspecgen/msgforge/audit"
	"github.com/mqspecgen/msgforge/internal/config"
	"github.com/mqspecgen/msgforge/internal/logging"
	"github.com/mqspecgen/msgforge/orchestrate"
	"github.com/mqspecgen/msgforge/workbook"
)

// generateOpts holds the generate/validate subcommands' own flags,
// layered on top of the persistent configuration/logging/audit flags
// registered on rootCmd.
type generateOpts struct {
	sharedHeaderPath   string
	payloadPath        string
	payloadMessageType string
}

func (o *generateOpts) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.sharedHeaderPath, "shared-header", "", "path to a separately supplied shared-header workbook")
	flags.StringVar(&o.payloadPath, "payload", "", "path to a raw fixed-width payload to check against the computed offsets")
	flags.StringVar(&o.payloadMessageType, "payload-message-type", "request", "message the --payload is checked against: request or response")
}

func newGenerateCmd(shared *sharedFlags) *cobra.Command {
	opts := &generateOpts{payloadMessageType: "request"}

	cmd := &cobra.Command{
		Use:   "generate <workbook>",
		Short: "Parse a message spec workbook and generate XML, POJO, and OpenAPI artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, shared, opts, args[0])
		},
	}

	opts.registerFlags(cmd.Flags())

	return cmd
}

func newValidateCmd(shared *sharedFlags) *cobra.Command {
	opts := &generateOpts{payloadMessageType: "request"}

	cmd := &cobra.Command{
		Use:   "validate <workbook>",
		Short: "Run every validation phase against a scratch output directory without persisting artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, shared, opts, args[0])
		},
	}

	opts.registerFlags(cmd.Flags())

	return cmd
}

func runGenerate(cmd *cobra.Command, shared *sharedFlags, opts *generateOpts, sourcePath string) error {
	cfg, err := resolveConfig(cmd, shared.configFile, shared.cfgFlags, shared.auditFlags, shared.logCfg)
	if err != nil {
		return err
	}

	if err := installLogger(shared.logCfg); err != nil {
		return err
	}

	payload, err := readOptionalFile(opts.payloadPath)
	if err != nil {
		return err
	}

	result, err := orchestrate.Run(orchestrate.Options{
		SourcePath:         sourcePath,
		SharedHeaderPath:   opts.sharedHeaderPath,
		Config:             cfg,
		Payload:            payload,
		PayloadMessageType: opts.payloadMessageType,
	})
	if err != nil {
		return reportFailure(result, err)
	}

	fmt.Printf("msgforge: committed %d file(s) to %s (transaction %s)\n",
		len(result.Manifest.Files), cfg.Output.RootDir, result.Manifest.TransactionID)

	reportConsistencyFindings(result)

	return nil
}

// runValidate runs the exact same pipeline as generate but into a
// scratch output directory that is always removed afterward. The
// command exists purely to surface findings, never to persist
// artifacts.
func runValidate(cmd *cobra.Command, shared *sharedFlags, opts *generateOpts, sourcePath string) error {
	cfg, err := resolveConfig(cmd, shared.configFile, shared.cfgFlags, shared.auditFlags, shared.logCfg)
	if err != nil {
		return err
	}

	if err := installLogger(shared.logCfg); err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "msgforge-validate-")
	if err != nil {
		return fmt.Errorf("create scratch output directory: %w", err)
	}

	defer os.RemoveAll(scratch)
	defer os.RemoveAll(scratch + ".audit")

	cfg.Output.RootDir = scratch

	payload, err := readOptionalFile(opts.payloadPath)
	if err != nil {
		return err
	}

	result, err := orchestrate.Run(orchestrate.Options{
		SourcePath:         sourcePath,
		SharedHeaderPath:   opts.sharedHeaderPath,
		Config:             cfg,
		Payload:            payload,
		PayloadMessageType: opts.payloadMessageType,
	})
	if err != nil {
		return reportFailure(result, err)
	}

	fmt.Println("msgforge: validation passed; no artifacts were persisted")
	reportConsistencyFindings(result)

	if result.PayloadReport != nil {
		fmt.Printf("payload: %d leaf field(s) matched, %d finding(s)\n",
			len(result.PayloadReport.Matched), len(result.PayloadReport.Findings))
	}

	return nil
}

func reportFailure(result *orchestrate.Result, err error) error {
	if result != nil && len(result.ConsistencyFindings) > 0 {
		reportConsistencyFindings(result)
	}

	return err
}

func reportConsistencyFindings(result *orchestrate.Result) {
	if len(result.ConsistencyFindings) == 0 {
		return
	}

	fmt.Printf("consistency: %d finding(s)\n", len(result.ConsistencyFindings))

	for _, f := range result.ConsistencyFindings {
		fmt.Println("  " + f.String())
	}
}

func readOptionalFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, workbook.NewInputError(path, "read payload file", err)
	}

	return data, nil
}

// installLogger builds the slog handler from the resolved logging
// configuration and installs it as the process default.
func installLogger(logCfg *logging.Config) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return fmt.Errorf("build log handler: %w", err)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

// sharedFlags bundles the persistent, root-level flag owners every
// subcommand's RunE needs.
type sharedFlags struct {
	configFile string
	cfgFlags   *config.FlagConfig
	auditFlags *audit.FlagConfig
	logCfg     *logging.Config
}
