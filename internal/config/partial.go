package config

// Partial mirrors [Config] but leaves every field optional, so a layer
// (config file or CLI flags) can express "I didn't touch this" instead
// of an ambiguous zero value. Several options default to true
// (validation.redact-payload, validation.consistency.strict-mode), and
// a plain bool zero value could never turn them back off.
type Partial struct {
	OutputRootDir string

	ParserMaxNestingDepth int

	XMLNamespaceInbound  string
	XMLNamespaceOutbound string
	XMLGroupID           string
	XMLArtifactID        string

	JavaPackageName string
	JavaUseLombok   *bool

	OpenAPIVersion       string
	OpenAPISplitStrategy string

	AuditHashOutputs     *bool
	AuditRedactFilePaths *bool

	ValidationRedactPayload    *bool
	ValidationStrictMode       *bool
	ValidationTypeMappingRules map[string]string
	ValidationIgnoreFields     []string

	LogLevel string

	ParallelGenerators *bool
}

// Merge layers override on top of base: every non-empty scalar, every
// non-nil bool pointer, every non-empty map or slice in override
// replaces the corresponding field in base. Fields left at their zero
// value in override (empty string, 0, nil) leave base untouched.
func Merge(base Config, override Partial) Config {
	out := base

	if override.OutputRootDir != "" {
		out.Output.RootDir = override.OutputRootDir
	}

	if override.ParserMaxNestingDepth != 0 {
		out.Parser.MaxNestingDepth = override.ParserMaxNestingDepth
	}

	if override.XMLNamespaceInbound != "" {
		out.XML.Namespace.Inbound = override.XMLNamespaceInbound
	}

	if override.XMLNamespaceOutbound != "" {
		out.XML.Namespace.Outbound = override.XMLNamespaceOutbound
	}

	if override.XMLGroupID != "" {
		out.XML.Project.GroupID = override.XMLGroupID
	}

	if override.XMLArtifactID != "" {
		out.XML.Project.ArtifactID = override.XMLArtifactID
	}

	if override.JavaPackageName != "" {
		out.Java.PackageName = override.JavaPackageName
	}

	if override.JavaUseLombok != nil {
		out.Java.UseLombok = *override.JavaUseLombok
	}

	if override.OpenAPIVersion != "" {
		out.OpenAPI.Version = override.OpenAPIVersion
	}

	if override.OpenAPISplitStrategy != "" {
		out.OpenAPI.SplitStrategy = override.OpenAPISplitStrategy
	}

	if override.AuditHashOutputs != nil {
		out.Audit.HashOutputs = *override.AuditHashOutputs
	}

	if override.AuditRedactFilePaths != nil {
		out.Audit.RedactFilePaths = *override.AuditRedactFilePaths
	}

	if override.ValidationRedactPayload != nil {
		out.Validation.RedactPayload = *override.ValidationRedactPayload
	}

	if override.ValidationStrictMode != nil {
		out.Validation.Consistency.StrictMode = *override.ValidationStrictMode
	}

	if len(override.ValidationTypeMappingRules) > 0 {
		out.Validation.Consistency.TypeMappingRules = override.ValidationTypeMappingRules
	}

	if len(override.ValidationIgnoreFields) > 0 {
		out.Validation.Consistency.IgnoreFields = override.ValidationIgnoreFields
	}

	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}

	if override.ParallelGenerators != nil {
		out.Parallel.Generators = *override.ParallelGenerators
	}

	return out
}
