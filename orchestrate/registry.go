package orchestrate

import (
	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/generate/openapigen"
	"github.com/mqspecgen/msgforge/generate/pojogen"
	"github.com/mqspecgen/msgforge/generate/xmlgen"
)

// DefaultRegistry maps artifact family names to generator
// constructors. Keys double as each artifact's output subdirectory
// name under the output root.
func DefaultRegistry() map[string]func() generate.Generator {
	return map[string]func() generate.Generator{
		"xml":     func() generate.Generator { return xmlgen.New() },
		"java":    func() generate.Generator { return pojogen.New() },
		"openapi": func() generate.Generator { return openapigen.New() },
	}
}
