package xmlgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/generate/xmlgen"
	"github.com/mqspecgen/msgforge/spec"
)

func TestGenerate_PreservesTransitoryFields(t *testing.T) {
	t.Parallel()

	length := 3

	it := &spec.IntermediateTree{
		Request: spec.FieldGroup{
			{
				NormalizedName: "person",
				ClassName:      "Person",
				IsArray:        true,
				FixedCount:     2,
				Children: []*spec.FieldNode{
					{NormalizedName: "groupId", IsTransitory: true, GroupID: "PER"},
					{NormalizedName: "occurrenceCount", IsTransitory: true, FixedCount: 2, OccurrenceLit: "0..2"},
					{NormalizedName: "name", DataType: "AN", Length: &length},
				},
			},
		},
	}

	cfg := generate.GenConfig{XML: generate.XMLConfig{
		NamespaceOutbound: "urn:msgforge:outbound",
		GroupID:           "com.example",
		ArtifactID:        "orders",
	}}

	g := xmlgen.New()
	assert.Equal(t, "xml", g.Name())

	files, err := g.Generate(it, cfg)
	require.NoError(t, err)

	out, ok := files["outbound-bean.xml"]
	require.True(t, ok)

	doc := string(out)
	assert.Contains(t, doc, `RepeatingField`)
	assert.Contains(t, doc, `fixedCount="2"`)
	assert.Contains(t, doc, `transitory="true"`)
	assert.Contains(t, doc, `forType="com.example.orders.Person"`)
}
