package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mqspecgen/msgforge/validate"
)

func TestCheckConsistency_TypeAndRequiredMismatch(t *testing.T) {
	t.Parallel()

	xml := validate.ArtifactFields{
		"accountId": {CanonicalType: "string", Shape: validate.ShapePrimitive, Required: true},
	}
	pojo := validate.ArtifactFields{
		"accountId": {CanonicalType: "integer", Shape: validate.ShapePrimitive, Required: false},
	}
	openapi := validate.ArtifactFields{
		"accountId": {CanonicalType: "string", Shape: validate.ShapePrimitive, Required: true},
	}

	findings := validate.CheckConsistency(xml, pojo, openapi, validate.ConsistencyConfig{StrictMode: true})

	var categories []string
	for _, f := range findings {
		categories = append(categories, f.Category)
	}

	assert.ElementsMatch(t, []string{validate.CategoryType, validate.CategoryRequired}, categories)
}

func TestCheckConsistency_MissingFieldIsPresenceError(t *testing.T) {
	t.Parallel()

	xml := validate.ArtifactFields{"name": {CanonicalType: "string", Shape: validate.ShapePrimitive}}
	pojo := validate.ArtifactFields{}
	openapi := validate.ArtifactFields{"name": {CanonicalType: "string", Shape: validate.ShapePrimitive}}

	findings := validate.CheckConsistency(xml, pojo, openapi, validate.ConsistencyConfig{})
	assert.Len(t, findings, 1)
	assert.Equal(t, validate.CategoryPresence, findings[0].Category)
}

func TestCheckConsistency_ResolvedTypeMismatchIsAlwaysError(t *testing.T) {
	t.Parallel()

	// Every side resolves via TypeMappingRules but still disagrees; a
	// resolved-type disagreement is unconditional, so lenient mode must
	// not downgrade it to a WARNING.
	xml := validate.ArtifactFields{
		"amount": {CanonicalType: "AMT", Shape: validate.ShapePrimitive},
	}
	pojo := validate.ArtifactFields{
		"amount": {CanonicalType: "N9", Shape: validate.ShapePrimitive},
	}
	openapi := validate.ArtifactFields{
		"amount": {CanonicalType: "AMT", Shape: validate.ShapePrimitive},
	}

	cfg := validate.ConsistencyConfig{
		StrictMode: false,
		TypeMappingRules: map[string]string{
			"AMT": "decimal",
			"N9":  "integer",
		},
	}

	findings := validate.CheckConsistency(xml, pojo, openapi, cfg)

	var typeFindings []validate.Finding

	for _, f := range findings {
		if f.Category == validate.CategoryType {
			typeFindings = append(typeFindings, f)
		}
	}

	assert.Len(t, typeFindings, 1)
	assert.Equal(t, validate.SeverityError, typeFindings[0].Severity)
}

func TestCheckConsistency_UnmappedTypeMismatchIsWarningUnderLenientMode(t *testing.T) {
	t.Parallel()

	// Neither side resolves via TypeMappingRules (an empty rule set),
	// so the mismatch is an "unmapped type" disagreement: WARNING under
	// lenient mode, ERROR under strict mode.
	xml := validate.ArtifactFields{
		"note": {CanonicalType: "string", Shape: validate.ShapePrimitive},
	}
	pojo := validate.ArtifactFields{
		"note": {CanonicalType: "integer", Shape: validate.ShapePrimitive},
	}
	openapi := validate.ArtifactFields{
		"note": {CanonicalType: "string", Shape: validate.ShapePrimitive},
	}

	lenient := validate.CheckConsistency(xml, pojo, openapi, validate.ConsistencyConfig{StrictMode: false})
	var lenientSeverity validate.Severity

	for _, f := range lenient {
		if f.Category == validate.CategoryType {
			lenientSeverity = f.Severity
		}
	}

	assert.Equal(t, validate.SeverityWarning, lenientSeverity)

	strict := validate.CheckConsistency(xml, pojo, openapi, validate.ConsistencyConfig{StrictMode: true})
	var strictSeverity validate.Severity

	for _, f := range strict {
		if f.Category == validate.CategoryType {
			strictSeverity = f.Severity
		}
	}

	assert.Equal(t, validate.SeverityError, strictSeverity)
}

func TestCheckConsistency_TransitoryFieldsExcluded(t *testing.T) {
	t.Parallel()

	xml := validate.ArtifactFields{"groupId": {CanonicalType: "string", Shape: validate.ShapePrimitive}}
	pojo := validate.ArtifactFields{}
	openapi := validate.ArtifactFields{}

	findings := validate.CheckConsistency(xml, pojo, openapi, validate.ConsistencyConfig{})
	assert.Empty(t, findings)
}
