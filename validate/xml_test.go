package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/validate"
)

func TestExtractXMLFields(t *testing.T) {
	t.Parallel()

	doc := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<beans xmlns="urn:test">
  <DataField name="accountId" required="true" converter="string"></DataField>
  <CompositeField name="person" required="false" forType="a.b.Person">
    <DataField name="age" required="false" converter="numeric"></DataField>
  </CompositeField>
</beans>`)

	fields, findings, err := validate.ExtractXMLFields(doc)
	require.NoError(t, err)
	assert.Empty(t, findings)

	assert.Equal(t, validate.FieldInfo{Type: "string", CanonicalType: "string", Shape: validate.ShapePrimitive, Required: true}, fields["accountId"])
	assert.Equal(t, validate.ShapeObject, fields["person"].Shape)
	assert.Equal(t, validate.FieldInfo{Type: "numeric", CanonicalType: "integer", Shape: validate.ShapePrimitive, Required: false}, fields["person.age"])
}
