package config

// OutputConfig holds output.* options.
type OutputConfig struct {
	RootDir string `yaml:"root-dir"`
}

// ParserConfig holds parser.* options.
type ParserConfig struct {
	MaxNestingDepth int `yaml:"max-nesting-depth"`
}

// XMLNamespaceConfig holds xml.namespace.* options.
type XMLNamespaceConfig struct {
	Inbound  string `yaml:"inbound"`
	Outbound string `yaml:"outbound"`
}

// XMLProjectConfig holds xml.project.* options.
type XMLProjectConfig struct {
	GroupID    string `yaml:"group-id"`
	ArtifactID string `yaml:"artifact-id"`
}

// XMLConfig holds xml.* options.
type XMLConfig struct {
	Namespace XMLNamespaceConfig `yaml:"namespace"`
	Project   XMLProjectConfig   `yaml:"project"`
}

// JavaConfig holds java.* options.
type JavaConfig struct {
	PackageName string `yaml:"package-name"`
	UseLombok   bool   `yaml:"use-lombok"`
}

// OpenAPIConfig holds openapi.* options.
type OpenAPIConfig struct {
	Version       string `yaml:"version"`
	SplitStrategy string `yaml:"split-strategy"`
}

// AuditConfig holds audit.* options.
type AuditConfig struct {
	HashOutputs     bool `yaml:"hash-outputs"`
	RedactFilePaths bool `yaml:"redact-file-paths"`
}

// ConsistencyConfig holds validation.consistency.* options.
type ConsistencyConfig struct {
	StrictMode       bool              `yaml:"strict-mode"`
	TypeMappingRules map[string]string `yaml:"type-mapping-rules"`
	IgnoreFields     []string          `yaml:"ignore-fields"`
}

// ValidationConfig holds validation.* options.
type ValidationConfig struct {
	RedactPayload bool              `yaml:"redact-payload"`
	Consistency   ConsistencyConfig `yaml:"consistency"`
}

// ParallelConfig holds the parallel.* options: whether the three
// generators may run concurrently.
type ParallelConfig struct {
	Generators bool `yaml:"generators"`
}

// Config is msgforge's fully resolved configuration record, produced
// by layering [Defaults], a config file, and CLI flags. Every field
// here is a concrete value, never a pointer, since Config is the form
// every downstream package (generate, validate, output, audit)
// actually consumes; [Partial] is the layer-merging intermediate.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Parser     ParserConfig     `yaml:"parser"`
	XML        XMLConfig        `yaml:"xml"`
	Java       JavaConfig       `yaml:"java"`
	OpenAPI    OpenAPIConfig    `yaml:"openapi"`
	Audit      AuditConfig      `yaml:"audit"`
	Validation ValidationConfig `yaml:"validation"`
	LogLevel   string           `yaml:"logging-level"`
	Parallel   ParallelConfig   `yaml:"parallel"`
}

// Defaults returns the built-in default [Config].
func Defaults() Config {
	return Config{
		Output: OutputConfig{RootDir: "./output"},
		Parser: ParserConfig{MaxNestingDepth: 50},
		XML:    XMLConfig{},
		Java:   JavaConfig{UseLombok: false},
		OpenAPI: OpenAPIConfig{
			Version:       "3.0.3",
			SplitStrategy: "by-object",
		},
		Audit: AuditConfig{HashOutputs: false, RedactFilePaths: false},
		Validation: ValidationConfig{
			RedactPayload: true,
			Consistency: ConsistencyConfig{
				StrictMode:       true,
				TypeMappingRules: builtinTypeMappingRules(),
			},
		},
		LogLevel: "INFO",
		Parallel: ParallelConfig{Generators: false},
	}
}

// builtinTypeMappingRules is the default validation.consistency.
// type-mapping-rules table: the identity mapping over the canonical
// type lexicon the per-artifact validators emit, so every type they
// produce counts as "mapped" out of the box. A config file or flag
// replaces the whole table.
func builtinTypeMappingRules() map[string]string {
	return map[string]string{
		"string":  "string",
		"integer": "integer",
		"decimal": "decimal",
		"object":  "object",
		"array":   "array",
	}
}
