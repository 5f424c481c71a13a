package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for configuration, following the same
// Flags/FlagConfig/RegisterFlags/RegisterCompletions shape as
// [github.com/mqspecgen/msgforge/internal/logging.Config] and
// [github.com/mqspecgen/msgforge/audit.FlagConfig].
type Flags struct {
	OutputRootDir         string
	ParserMaxNestingDepth string
	XMLNamespaceInbound   string
	XMLNamespaceOutbound  string
	XMLGroupID            string
	XMLArtifactID         string
	JavaPackageName       string
	JavaUseLombok         string
	OpenAPIVersion        string
	OpenAPISplitStrategy  string
	ConsistencyStrict     string
	ConsistencyIgnore     string
	RedactPayload         string
	Parallel              string
}

// FlagConfig holds CLI flag values for configuration, registered with
// [FlagConfig.RegisterFlags] and converted to a [Partial] override layer
// with [FlagConfig.Partial]. Boolean fields are only treated as set when
// [pflag.FlagSet.Changed] reports true for their flag, so an unset
// `--java-use-lombok` never forces the value back to false against a
// config-file override.
type FlagConfig struct {
	Flags Flags
	fs    *pflag.FlagSet

	outputRootDir         string
	parserMaxNestingDepth int
	xmlNamespaceInbound   string
	xmlNamespaceOutbound  string
	xmlGroupID            string
	xmlArtifactID         string
	javaPackageName       string
	javaUseLombok         bool
	openAPIVersion        string
	openAPISplitStrategy  string
	consistencyStrict     bool
	consistencyIgnore     []string
	redactPayload         bool
	parallelGenerators    bool
}

// NewFlagConfig returns a FlagConfig with default flag names, one flag
// per configuration option.
func NewFlagConfig() *FlagConfig {
	return &FlagConfig{
		Flags: Flags{
			OutputRootDir:         "output-root-dir",
			ParserMaxNestingDepth: "max-nesting-depth",
			XMLNamespaceInbound:   "xml-namespace-inbound",
			XMLNamespaceOutbound:  "xml-namespace-outbound",
			XMLGroupID:            "xml-group-id",
			XMLArtifactID:         "xml-artifact-id",
			JavaPackageName:       "java-package",
			JavaUseLombok:         "java-use-lombok",
			OpenAPIVersion:        "openapi-version",
			OpenAPISplitStrategy:  "openapi-split-strategy",
			ConsistencyStrict:     "consistency-strict-mode",
			ConsistencyIgnore:     "consistency-ignore-fields",
			RedactPayload:         "redact-payload",
			Parallel:              "parallel-generators",
		},
	}
}

// RegisterFlags adds configuration flags to flags, remembering the set
// so [FlagConfig.Partial] can later consult [pflag.FlagSet.Changed].
func (c *FlagConfig) RegisterFlags(flags *pflag.FlagSet) {
	c.fs = flags

	flags.StringVar(&c.outputRootDir, c.Flags.OutputRootDir, "", "target output directory (output.root-dir)")
	flags.IntVar(&c.parserMaxNestingDepth, c.Flags.ParserMaxNestingDepth, 0, "max container depth before a parse error (parser.max-nesting-depth)")
	flags.StringVar(&c.xmlNamespaceInbound, c.Flags.XMLNamespaceInbound, "", "inbound bean XML namespace (xml.namespace.inbound)")
	flags.StringVar(&c.xmlNamespaceOutbound, c.Flags.XMLNamespaceOutbound, "", "outbound bean XML namespace (xml.namespace.outbound)")
	flags.StringVar(&c.xmlGroupID, c.Flags.XMLGroupID, "", "forType group id (xml.project.group-id)")
	flags.StringVar(&c.xmlArtifactID, c.Flags.XMLArtifactID, "", "forType artifact id (xml.project.artifact-id)")
	flags.StringVar(&c.javaPackageName, c.Flags.JavaPackageName, "", "POJO package name (java.package-name)")
	flags.BoolVar(&c.javaUseLombok, c.Flags.JavaUseLombok, false, "enable Lombok-style data classes (java.use-lombok)")
	flags.StringVar(&c.openAPIVersion, c.Flags.OpenAPIVersion, "", "OpenAPI version string (openapi.version)")
	flags.StringVar(&c.openAPISplitStrategy, c.Flags.OpenAPISplitStrategy, "", "schema split strategy: none, by-message, by-object (openapi.split-strategy)")
	flags.BoolVar(&c.consistencyStrict, c.Flags.ConsistencyStrict, true, "escalate consistency warnings to errors (validation.consistency.strict-mode)")
	flags.StringSliceVar(&c.consistencyIgnore, c.Flags.ConsistencyIgnore, nil, "field paths excluded from consistency checks (validation.consistency.ignore-fields)")
	flags.BoolVar(&c.redactPayload, c.Flags.RedactPayload, true, "redact literal payload contents in reports (validation.redact-payload)")
	flags.BoolVar(&c.parallelGenerators, c.Flags.Parallel, false, "run the three generators concurrently")
}

// RegisterCompletions registers shell completions for configuration
// flags on cmd.
func (c *FlagConfig) RegisterCompletions(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc(c.Flags.OpenAPISplitStrategy,
		cobra.FixedCompletions([]string{"none", "by-message", "by-object"}, cobra.ShellCompDirectiveNoFileComp))
}

// Partial converts the registered flag values into a [Partial] override
// layer, consulting [pflag.FlagSet.Changed] for every boolean flag so
// only explicitly-passed flags override the config-file layer beneath
// them.
func (c *FlagConfig) Partial() Partial {
	p := Partial{
		OutputRootDir:         c.outputRootDir,
		ParserMaxNestingDepth: c.parserMaxNestingDepth,
		XMLNamespaceInbound:   c.xmlNamespaceInbound,
		XMLNamespaceOutbound:  c.xmlNamespaceOutbound,
		XMLGroupID:            c.xmlGroupID,
		XMLArtifactID:         c.xmlArtifactID,
		JavaPackageName:       c.javaPackageName,
		OpenAPIVersion:        c.openAPIVersion,
		OpenAPISplitStrategy:  c.openAPISplitStrategy,
		ValidationIgnoreFields: c.consistencyIgnore,
	}

	if c.changed(c.Flags.JavaUseLombok) {
		p.JavaUseLombok = boolPtr(c.javaUseLombok)
	}

	if c.changed(c.Flags.ConsistencyStrict) {
		p.ValidationStrictMode = boolPtr(c.consistencyStrict)
	}

	if c.changed(c.Flags.RedactPayload) {
		p.ValidationRedactPayload = boolPtr(c.redactPayload)
	}

	if c.changed(c.Flags.Parallel) {
		p.ParallelGenerators = boolPtr(c.parallelGenerators)
	}

	return p
}

func (c *FlagConfig) changed(name string) bool {
	return c.fs != nil && c.fs.Changed(name)
}
