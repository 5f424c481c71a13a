package openapigen

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/mqspecgen/msgforge/spec"
)

// schemaBuilder accumulates named component schemas while walking a
// field group, registering one entry per object/array-of-object
// container so the caller can emit them under components/schemas (and,
// under the by-object split strategy, as individual files). With
// inlineNested set, only the request/response roots are registered and
// nested containers stay inline inside their parent schema, which is
// what the by-message split strategy needs: one self-contained file per
// message.
type schemaBuilder struct {
	components   map[string]*jsonschema.Schema
	order        []string
	inlineNested bool
}

func newSchemaBuilder(inlineNested bool) *schemaBuilder {
	return &schemaBuilder{components: make(map[string]*jsonschema.Schema), inlineNested: inlineNested}
}

// buildMessageSchema builds the request/response root schema for
// className, registering it in components rather than returning it
// inline, since the path operation always references it by $ref.
func (b *schemaBuilder) buildMessageSchema(className string, group spec.FieldGroup) *jsonschema.Schema {
	return b.register(className, b.objectSchema(group))
}

func (b *schemaBuilder) register(className string, schema *jsonschema.Schema) *jsonschema.Schema {
	if _, exists := b.components[className]; !exists {
		b.components[className] = schema
		b.order = append(b.order, className)
	}

	return ref(className)
}

func (b *schemaBuilder) objectSchema(group spec.FieldGroup) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema)

	var required []string

	for _, n := range group {
		if n.IsTransitory {
			continue
		}

		properties[n.NormalizedName] = b.fieldSchema(n)

		if n.IsRequired() {
			required = append(required, n.NormalizedName)
		}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func (b *schemaBuilder) fieldSchema(n *spec.FieldNode) *jsonschema.Schema {
	switch {
	case n.EnumConstraint != "":
		return enumSchema(n.EnumConstraint)
	case n.IsArray:
		item := b.containerItemSchema(n)

		arr := &jsonschema.Schema{Type: "array", Items: item}

		if n.FixedCount > 0 {
			max := n.FixedCount
			arr.MaxItems = &max
		}

		return arr
	case n.IsObject:
		return b.containerItemSchema(n)
	default:
		return primitiveSchema(n)
	}
}

// containerItemSchema returns the $ref to n's own class, registering it
// (built from n.Children) the first time it is encountered. In
// inline-nested mode the object schema is returned directly instead of
// going through the component registry.
func (b *schemaBuilder) containerItemSchema(n *spec.FieldNode) *jsonschema.Schema {
	if b.inlineNested {
		return b.objectSchema(n.Children)
	}

	className := n.ClassName
	if className == "" {
		className = spec.ClassName(n.NormalizedName)
	}

	if _, exists := b.components[className]; exists {
		return ref(className)
	}

	return b.register(className, b.objectSchema(n.Children))
}

func ref(className string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/components/schemas/" + className}
}

func externalRef(path string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: path}
}

func primitiveSchema(n *spec.FieldNode) *jsonschema.Schema {
	switch dataTypeKind(n.DataType) {
	case kindAmount:
		return &jsonschema.Schema{Type: "number"}
	case kindNumeric:
		return &jsonschema.Schema{Type: "integer"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

func enumSchema(literal string) *jsonschema.Schema {
	var enum []any

	for _, part := range strings.Split(literal, ",") {
		code, _, _ := strings.Cut(strings.TrimSpace(part), ":")
		if code == "" {
			continue
		}

		enum = append(enum, code)
	}

	return &jsonschema.Schema{Type: "string", Enum: enum}
}

type kind int

const (
	kindText kind = iota
	kindNumeric
	kindAmount
)

func dataTypeKind(dataType string) kind {
	upper := strings.ToUpper(strings.TrimSpace(dataType))

	switch {
	case strings.HasPrefix(upper, "AMT"), strings.HasPrefix(upper, "CUR"):
		return kindAmount
	case strings.HasPrefix(upper, "N"):
		return kindNumeric
	default:
		return kindText
	}
}
