package validate

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

var forbiddenOpenAPINames = forbiddenPOJONames

// ExtractOpenAPIFields normalizes the generated OpenAPI document into
// [ArtifactFields]. files is the full generator
// output map so split-strategy side files can be resolved when a schema
// is referenced by an external $ref. rootSchema is the request or
// response schema name to start the walk from (e.g. "CreateApplicationRequest").
func ExtractOpenAPIFields(files map[string][]byte, rootSchema string) (ArtifactFields, []Finding, error) {
	apiDoc, ok := files["api.yaml"]
	if !ok {
		return nil, nil, fmt.Errorf("openapi validator: api.yaml not found in generator output")
	}

	var doc map[string]any

	if err := yaml.Unmarshal(apiDoc, &doc); err != nil {
		return nil, nil, fmt.Errorf("openapi validator: parse api.yaml: %w", err)
	}

	components, _ := lookupMap(doc, "components")
	schemas, _ := lookupMap(components, "schemas")

	root, ok := schemas[rootSchema].(map[string]any)
	if !ok {
		return nil, []Finding{{
			Category: "OA-001", Severity: SeverityError,
			Message: fmt.Sprintf("schema %q not found in components/schemas", rootSchema),
		}}, nil
	}

	fields := make(ArtifactFields)

	var findings []Finding

	walkOpenAPISchema(root, "", schemas, files, fields, &findings, make(map[string]bool))

	return fields, findings, nil
}

func lookupMap(parent map[string]any, key string) (map[string]any, bool) {
	v, ok := parent[key]
	if !ok {
		return nil, false
	}

	m, ok := v.(map[string]any)

	return m, ok
}

func walkOpenAPISchema(schema map[string]any, parentPath string, schemas map[string]any, files map[string][]byte, fields ArtifactFields, findings *[]Finding, visiting map[string]bool) {
	schema = resolveRef(schema, schemas, files, findings)
	if schema == nil {
		return
	}

	properties, _ := lookupMap(schema, "properties")

	required := stringSet(schema["required"])

	for name, raw := range properties {
		propSchema, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		path := name
		if parentPath != "" {
			path = parentPath + "." + name
		}

		if forbiddenOpenAPINames[name] {
			*findings = append(*findings, Finding{
				Category: "OA-002", Severity: SeverityError, Path: path,
				Message: fmt.Sprintf("forbidden control field name %q present in OpenAPI output", name),
			})
		}

		resolved := resolveRef(propSchema, schemas, files, findings)
		if resolved == nil {
			continue
		}

		typ, _ := resolved["type"].(string)
		req := required[name]

		switch typ {
		case "object":
			fields[path] = FieldInfo{Type: "object", CanonicalType: "object", Shape: ShapeObject, Required: req}
			walkNested(resolved, path, propSchema, name, schemas, files, fields, findings, visiting)
		case "array":
			fields[path] = FieldInfo{Type: "array", CanonicalType: "array", Shape: ShapeArray, Required: req}

			items, _ := resolved["items"].(map[string]any)
			if items != nil {
				resolvedItems := resolveRef(items, schemas, files, findings)
				if resolvedItems != nil && resolvedItems["type"] == "object" {
					refName := refTargetName(items)
					walkNested(resolvedItems, path, items, refName, schemas, files, fields, findings, visiting)
				}
			}
		case "":
			fields[path] = FieldInfo{Type: "unknown", CanonicalType: "string", Shape: ShapePrimitive, Required: req}

			*findings = append(*findings, Finding{
				Category: "OA-003", Severity: SeverityWarning, Path: path,
				Message: "schema has no resolvable type",
			})
		default:
			fields[path] = FieldInfo{Type: typ, CanonicalType: canonicalFromOpenAPIType(typ), Shape: ShapePrimitive, Required: req}
		}
	}
}

func walkNested(resolved map[string]any, path string, original map[string]any, refName string, schemas map[string]any, files map[string][]byte, fields ArtifactFields, findings *[]Finding, visiting map[string]bool) {
	if refName != "" {
		if visiting[refName] {
			return
		}

		visiting[refName] = true
		defer delete(visiting, refName)
	}

	walkOpenAPISchema(resolved, path, schemas, files, fields, findings, visiting)
}

func refTargetName(schema map[string]any) string {
	ref, _ := schema["$ref"].(string)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return strings.TrimSuffix(ref[i+1:], ".yaml")
	}

	return ""
}

// maxRefHops bounds $ref chain traversal; a chain this long is a cycle
// or a corrupted document, never a legitimate schema.
const maxRefHops = 8

// resolveRef follows internal ("#/components/schemas/X") and external
// ("./schemas/X.yaml", from the split strategies) $refs to the target
// schema object. Chains are followed until a schema with no $ref is
// reached, since a component entry may itself point at a split-out
// side file.
func resolveRef(schema map[string]any, schemas map[string]any, files map[string][]byte, findings *[]Finding) map[string]any {
	for hop := 0; hop < maxRefHops; hop++ {
		ref, ok := schema["$ref"].(string)
		if !ok || ref == "" {
			return schema
		}

		schema = resolveRefOnce(ref, schemas, files, findings)
		if schema == nil {
			return nil
		}
	}

	*findings = append(*findings, Finding{
		Category: "OA-004", Severity: SeverityError,
		Message: fmt.Sprintf("$ref chain exceeds %d hops", maxRefHops),
	})

	return nil
}

func resolveRefOnce(ref string, schemas map[string]any, files map[string][]byte, findings *[]Finding) map[string]any {
	if strings.HasPrefix(ref, "#/components/schemas/") {
		name := strings.TrimPrefix(ref, "#/components/schemas/")

		target, ok := schemas[name].(map[string]any)
		if !ok {
			*findings = append(*findings, Finding{
				Category: "OA-004", Severity: SeverityError,
				Message: fmt.Sprintf("unresolved $ref %q", ref),
			})

			return nil
		}

		return target
	}

	path := strings.TrimPrefix(ref, "./")

	content, ok := files[path]
	if !ok {
		*findings = append(*findings, Finding{
			Category: "OA-004", Severity: SeverityError,
			Message: fmt.Sprintf("unresolved external $ref %q", ref),
		})

		return nil
	}

	var target map[string]any

	if err := yaml.Unmarshal(content, &target); err != nil {
		*findings = append(*findings, Finding{
			Category: "OA-004", Severity: SeverityError,
			Message: fmt.Sprintf("invalid schema file %q: %v", path, err),
		})

		return nil
	}

	return target
}

func stringSet(v any) map[string]bool {
	set := make(map[string]bool)

	list, _ := v.([]any)
	for _, item := range list {
		if s, ok := item.(string); ok {
			set[s] = true
		}
	}

	return set
}

func canonicalFromOpenAPIType(typ string) string {
	switch typ {
	case "integer":
		return "integer"
	case "number":
		return "decimal"
	default:
		return "string"
	}
}
