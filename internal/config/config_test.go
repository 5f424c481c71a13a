package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/internal/config"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	d := config.Defaults()

	assert.Equal(t, "./output", d.Output.RootDir)
	assert.Equal(t, 50, d.Parser.MaxNestingDepth)
	assert.Equal(t, "3.0.3", d.OpenAPI.Version)
	assert.Equal(t, "by-object", d.OpenAPI.SplitStrategy)
	assert.True(t, d.Validation.RedactPayload)
	assert.True(t, d.Validation.Consistency.StrictMode)
	assert.Equal(t, "string", d.Validation.Consistency.TypeMappingRules["string"], "built-in type mapping covers the canonical lexicon")
	assert.False(t, d.Java.UseLombok)
	assert.False(t, d.Parallel.Generators)
}

func TestMergeNonEmptyOverrideWins(t *testing.T) {
	t.Parallel()

	base := config.Defaults()

	no := false
	override := config.Partial{
		OutputRootDir:          "/tmp/custom",
		ValidationStrictMode:   &no,
		ValidationRedactPayload: &no,
	}

	merged := config.Merge(base, override)

	assert.Equal(t, "/tmp/custom", merged.Output.RootDir)
	assert.False(t, merged.Validation.Consistency.StrictMode)
	assert.False(t, merged.Validation.RedactPayload)
	// Untouched fields retain base values.
	assert.Equal(t, base.Parser.MaxNestingDepth, merged.Parser.MaxNestingDepth)
}

func TestMergeEmptyOverrideLeavesBaseUnchanged(t *testing.T) {
	t.Parallel()

	base := config.Defaults()
	merged := config.Merge(base, config.Partial{})

	assert.Equal(t, base, merged)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "msgforge.yaml")

	doc := `
output:
  root-dir: /staged
xml:
  namespace:
    inbound: urn:inbound
    outbound: urn:outbound
  project:
    group-id: com.example
    artifact-id: messages
validation:
  consistency:
    strict-mode: false
    ignore-fields: ["metadata.internalNote"]
`

	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/staged", p.OutputRootDir)
	assert.Equal(t, "urn:inbound", p.XMLNamespaceInbound)
	assert.Equal(t, "urn:outbound", p.XMLNamespaceOutbound)
	assert.Equal(t, "com.example", p.XMLGroupID)
	assert.Equal(t, "messages", p.XMLArtifactID)
	require.NotNil(t, p.ValidationStrictMode)
	assert.False(t, *p.ValidationStrictMode)
	assert.Equal(t, []string{"metadata.internalNote"}, p.ValidationIgnoreFields)

	merged := config.Merge(config.Defaults(), p)
	assert.Equal(t, "/staged", merged.Output.RootDir)
	assert.False(t, merged.Validation.Consistency.StrictMode)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile("/does/not/exist.yaml")
	require.Error(t, err)

	var cfgErr *config.Error

	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, config.ExitCodeConfig, cfgErr.ExitCode())
}

func TestFlagConfigPartialOnlyAppliesChangedBooleans(t *testing.T) {
	t.Parallel()

	fc := config.NewFlagConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fc.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--output-root-dir", "/out"}))

	p := fc.Partial()

	assert.Equal(t, "/out", p.OutputRootDir)
	assert.Nil(t, p.ValidationStrictMode, "unset bool flag must not override the file layer")

	merged := config.Merge(config.Defaults(), p)
	assert.Equal(t, "/out", merged.Output.RootDir)
	assert.True(t, merged.Validation.Consistency.StrictMode)
}

func TestFlagConfigPartialAppliesExplicitBoolean(t *testing.T) {
	t.Parallel()

	fc := config.NewFlagConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fc.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--consistency-strict-mode=false"}))

	p := fc.Partial()

	require.NotNil(t, p.ValidationStrictMode)
	assert.False(t, *p.ValidationStrictMode)
}
