package audit

import (
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for audit configuration.
type Flags struct {
	HashOutputs     string
	RedactFilePaths string
}

// FlagConfig holds CLI flag values for audit configuration, registered
// with [FlagConfig.RegisterFlags] and merged into an [Config] by
// internal/config, mirroring internal/logging.Config's
// Flags/RegisterFlags pattern.
type FlagConfig struct {
	Flags           Flags
	HashOutputs     bool
	RedactFilePaths bool
}

// NewFlagConfig returns a FlagConfig with default flag names; both
// options default to off.
func NewFlagConfig() *FlagConfig {
	return &FlagConfig{
		Flags: Flags{
			HashOutputs:     "audit-hash-outputs",
			RedactFilePaths: "audit-redact-file-paths",
		},
	}
}

// RegisterFlags adds audit flags to the given [*pflag.FlagSet].
func (c *FlagConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.HashOutputs, c.Flags.HashOutputs, c.HashOutputs,
		"include sha256 of staged outputs in the audit trail")
	flags.BoolVar(&c.RedactFilePaths, c.Flags.RedactFilePaths, c.RedactFilePaths,
		"redact absolute file paths in the audit trail")
}

// Config converts the registered flag values into an [Config].
func (c *FlagConfig) Config() Config {
	return Config{HashOutputs: c.HashOutputs, RedactFilePaths: c.RedactFilePaths}
}
