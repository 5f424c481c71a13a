package main

import (
	"github.com/spf13/cobra"

	"github.com/mqspecgen/msgforge/audit"
	"github.com/mqspecgen/msgforge/internal/config"
	"github.com/mqspecgen/msgforge/internal/logging"
)

// resolveConfig layers defaults, an optional config file, and the
// registered CLI flags, in that order: each layer's non-empty values
// replace the layer beneath.
func resolveConfig(cmd *cobra.Command, configFile string, cfgFlags *config.FlagConfig, auditFlags *audit.FlagConfig, logCfg *logging.Config) (config.Config, error) {
	cfg := config.Defaults()

	if configFile != "" {
		filePartial, err := config.LoadFile(configFile)
		if err != nil {
			return config.Config{}, err
		}

		cfg = config.Merge(cfg, filePartial)
	}

	cfg = config.Merge(cfg, cfgFlags.Partial())

	// audit.FlagConfig registers its own flags independently of
	// internal/config, so its two booleans are folded in here rather
	// than through [config.Partial], consulting Changed the same way
	// every other boolean override does.
	if cmd.Flags().Changed(auditFlags.Flags.HashOutputs) {
		cfg.Audit.HashOutputs = auditFlags.HashOutputs
	}

	if cmd.Flags().Changed(auditFlags.Flags.RedactFilePaths) {
		cfg.Audit.RedactFilePaths = auditFlags.RedactFilePaths
	}

	if cmd.Flags().Changed(logCfg.Flags.Level) {
		cfg.LogLevel = logCfg.Level
	}

	logCfg.Level = cfg.LogLevel

	return cfg, nil
}
