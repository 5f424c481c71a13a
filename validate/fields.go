package validate

// Shape classifies a field's structural kind for cross-artifact
// comparison.
type Shape string

const (
	ShapePrimitive Shape = "primitive"
	ShapeObject    Shape = "object"
	ShapeArray     Shape = "array"
)

// FieldInfo is the normalized view of one field, keyed by dot-separated
// path in [ArtifactFields].
type FieldInfo struct {
	Type          string
	CanonicalType string
	Shape         Shape
	Required      bool
}

// ArtifactFields is the normalized `{path -> info}` map produced by
// each per-artifact validator and consumed by the consistency
// validator.
type ArtifactFields map[string]FieldInfo

// transitoryNames lists the control-field names the consistency
// validator excludes from comparison, since they are XML-only by
// projection rule.
var transitoryNames = map[string]bool{
	"groupId":          true,
	"occurrenceCount":  true,
}
