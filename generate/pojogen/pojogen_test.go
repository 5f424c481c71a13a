package pojogen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/generate/pojogen"
	"github.com/mqspecgen/msgforge/spec"
)

func TestGenerate_DropsTransitoryAndExpandsEnum(t *testing.T) {
	t.Parallel()

	length := 5

	it := &spec.IntermediateTree{
		Metadata: spec.Metadata{OperationID: "createApplication"},
		Request: spec.FieldGroup{
			{NormalizedName: "groupId", IsTransitory: true, GroupID: "APP"},
			{NormalizedName: "status", ClassName: "Status", EnumConstraint: "A:Active,I:Inactive"},
			{
				NormalizedName: "person",
				ClassName:      "Person",
				IsObject:       true,
				Children: []*spec.FieldNode{
					{NormalizedName: "name", DataType: "AN", Length: &length},
				},
			},
		},
	}

	cfg := generate.GenConfig{Java: generate.JavaConfig{PackageName: "com.example.msg"}}

	g := pojogen.New()
	assert.Equal(t, "pojo", g.Name())

	files, err := g.Generate(it, cfg)
	require.NoError(t, err)

	root, ok := files["com/example/msg/CreateApplicationRequest.java"]
	require.True(t, ok)
	assert.NotContains(t, string(root), "groupId")
	assert.Contains(t, string(root), "private Status status;")
	assert.Contains(t, string(root), "private Person person;")

	person, ok := files["com/example/msg/Person.java"]
	require.True(t, ok)
	assert.Contains(t, string(person), "private String name;")

	enum, ok := files["com/example/msg/Status.java"]
	require.True(t, ok)
	assert.Contains(t, string(enum), "public enum Status")
	assert.Contains(t, string(enum), "isValid")
	assert.Contains(t, string(enum), "fromCode")
	assert.Contains(t, string(enum), "getCode")
	assert.Contains(t, string(enum), "getDescription")
}
