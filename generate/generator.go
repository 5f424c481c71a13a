package generate

import "github.com/mqspecgen/msgforge/spec"

// XMLConfig configures the XML bean generator.
type XMLConfig struct {
	NamespaceInbound  string
	NamespaceOutbound string
	GroupID           string
	ArtifactID        string
}

// JavaConfig configures the POJO generator.
type JavaConfig struct {
	PackageName string
	UseLombok   bool
}

// SplitStrategy selects how the OpenAPI generator distributes nested
// schemas across files.
type SplitStrategy string

const (
	SplitNone      SplitStrategy = "none"
	SplitByMessage SplitStrategy = "by-message"
	SplitByObject  SplitStrategy = "by-object"
)

// OpenAPIConfig configures the OpenAPI generator.
type OpenAPIConfig struct {
	Version       string
	SplitStrategy SplitStrategy
}

// GenConfig bundles the per-generator configuration sub-records so every
// [Generator] implementation can be called through the same signature
// while reading only the fields relevant to it.
type GenConfig struct {
	XML     XMLConfig
	Java    JavaConfig
	OpenAPI OpenAPIConfig
}

// Generator is the common shape every artifact family implements: a
// name plus a single projection operation. Generate is a pure function
// of it and cfg: the returned map is keyed by path relative to the
// artifact's output subdirectory.
type Generator interface {
	Name() string
	Generate(it *spec.IntermediateTree, cfg GenConfig) (map[string][]byte, error)
}
