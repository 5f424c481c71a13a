package openapigen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/spec"
)

var _ generate.Generator = (*Generator)(nil)

// Generator produces the OpenAPI schema document.
type Generator struct{}

// New returns an OpenAPI [generate.Generator].
func New() *Generator {
	return &Generator{}
}

func (g *Generator) Name() string {
	return "openapi"
}

// Generate emits "api.yaml" (and, per cfg.OpenAPI.SplitStrategy, one
// additional file per split-out schema) under the caller's openapi/
// output directory.
func (g *Generator) Generate(it *spec.IntermediateTree, cfg generate.GenConfig) (map[string][]byte, error) {
	opID := it.Metadata.OperationID
	if opID == "" {
		return nil, generate.NewGenerationError("openapi", "api.yaml", "operation id is required", nil)
	}

	className := spec.ClassName(opID)

	builder := newSchemaBuilder(cfg.OpenAPI.SplitStrategy == generate.SplitByMessage)

	builder.buildMessageSchema(className+"Request", it.Request)

	responseSchemaName := ""
	if len(it.Response) > 0 {
		responseSchemaName = className + "Response"
		builder.buildMessageSchema(responseSchemaName, it.Response)
	}

	version := cfg.OpenAPI.Version
	if version == "" {
		version = "3.0.3"
	}

	kebabOpID := kebabCase(opID)

	responses := map[string]Response{
		"200": {Description: "OK"},
	}

	if responseSchemaName != "" {
		responses["200"] = Response{
			Description: "OK",
			Content: map[string]MediaType{
				"application/json": {Schema: ref(responseSchemaName)},
			},
		}
	}

	doc := Document{
		OpenAPI: version,
		Info:    Info{Title: opID, Version: it.Metadata.Version},
		Paths: Paths{
			"/" + kebabOpID: PathItem{
				Post: Operation{
					OperationID: opID,
					RequestBody: RequestBody{
						Required: true,
						Content: map[string]MediaType{
							"application/json": {Schema: ref(className + "Request")},
						},
					},
					Responses: responses,
				},
			},
		},
		Components: Components{Schemas: builder.components},
	}

	return renderFiles(doc, builder, cfg.OpenAPI.SplitStrategy)
}

// renderFiles emits api.yaml plus the configured side files. by-object
// splits every registered component schema into its own file, with the
// main document referencing each via an external $ref; by-message splits
// only the request/response root schemas, each carrying its nested
// containers inline (the builder already inlined them); none keeps the
// whole schema set inline under components/schemas.
func renderFiles(doc Document, builder *schemaBuilder, strategy generate.SplitStrategy) (map[string][]byte, error) {
	files := make(map[string][]byte)

	switch strategy {
	case generate.SplitByObject, generate.SplitByMessage:
		for _, name := range builder.order {
			schema := builder.components[name]

			out, err := marshalYAML(schema)
			if err != nil {
				return nil, fmt.Errorf("openapigen: marshal schema %q: %w", name, err)
			}

			files["schemas/"+name+".yaml"] = out
			doc.Components.Schemas[name] = externalRef("./schemas/" + name + ".yaml")
		}
	}

	out, err := marshalYAML(doc)
	if err != nil {
		return nil, fmt.Errorf("openapigen: marshal document: %w", err)
	}

	files["api.yaml"] = out

	return files, nil
}

// marshalYAML renders v through its JSON encoding first, so
// [jsonschema.Schema]'s own marshaling rules decide key spellings
// ($ref and friends), then re-encodes the generic document as YAML.
// encoding/json emits map keys in sorted order and the ordered-map
// decode preserves that order through the YAML encoder, which keeps the
// output deterministic.
func marshalYAML(v any) ([]byte, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.UnmarshalWithOptions(jsonBytes, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}

	return yaml.Marshal(doc)
}

func kebabCase(s string) string {
	var b strings.Builder

	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}

			b.WriteRune(r - 'A' + 'a')

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
