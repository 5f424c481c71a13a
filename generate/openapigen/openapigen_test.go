package openapigen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/generate/openapigen"
	"github.com/mqspecgen/msgforge/spec"
)

func buildIT() *spec.IntermediateTree {
	length := 5

	return &spec.IntermediateTree{
		Metadata: spec.Metadata{OperationID: "createApplication", Version: "1"},
		Request: spec.FieldGroup{
			{NormalizedName: "groupId", IsTransitory: true, GroupID: "APP"},
			{NormalizedName: "name", DataType: "AN", Length: &length, Optionality: spec.Mandatory},
			{
				NormalizedName: "person",
				ClassName:      "Person",
				IsObject:       true,
				Children: []*spec.FieldNode{
					{NormalizedName: "age", DataType: "N", Length: &length, Optionality: spec.Optional},
				},
			},
		},
	}
}

func TestGenerate_DropsTransitoryAndInlinesByDefault(t *testing.T) {
	t.Parallel()

	g := openapigen.New()
	assert.Equal(t, "openapi", g.Name())

	files, err := g.Generate(buildIT(), generate.GenConfig{})
	require.NoError(t, err)

	api, ok := files["api.yaml"]
	require.True(t, ok)

	doc := string(api)
	assert.NotContains(t, doc, "groupId")
	assert.Contains(t, doc, "CreateApplicationRequest")
	assert.Contains(t, doc, "/create-application")
	assert.Len(t, files, 1)
}

func TestGenerate_SplitByObjectEmitsSideFiles(t *testing.T) {
	t.Parallel()

	cfg := generate.GenConfig{OpenAPI: generate.OpenAPIConfig{SplitStrategy: generate.SplitByObject}}

	files, err := openapigen.New().Generate(buildIT(), cfg)
	require.NoError(t, err)

	_, ok := files["schemas/Person.yaml"]
	assert.True(t, ok)

	api := string(files["api.yaml"])
	assert.Contains(t, api, "./schemas/Person.yaml")
}

func TestGenerate_SplitByMessageEmitsSelfContainedMessageFiles(t *testing.T) {
	t.Parallel()

	cfg := generate.GenConfig{OpenAPI: generate.OpenAPIConfig{SplitStrategy: generate.SplitByMessage}}

	files, err := openapigen.New().Generate(buildIT(), cfg)
	require.NoError(t, err)

	msg, ok := files["schemas/CreateApplicationRequest.yaml"]
	require.True(t, ok)

	// Nested containers are inlined inside the message file rather than
	// split out or referenced.
	doc := string(msg)
	assert.Contains(t, doc, "age")
	assert.NotContains(t, doc, "$ref")

	_, ok = files["schemas/Person.yaml"]
	assert.False(t, ok)

	api := string(files["api.yaml"])
	assert.Contains(t, api, "./schemas/CreateApplicationRequest.yaml")
}
