package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/spec"
)

func row(level int, nameCell string) spec.Row {
	return spec.Row{Sheet: "Request", Index: level, Level: level, NameCell: nameCell, Optionality: "M"}
}

// TestBuildHierarchy_MixedContainersAndLeaves covers the interplay of
// sibling containers, same-level leaves, and a nested container closing
// back to a top-level leaf.
func TestBuildHierarchy_MixedContainersAndLeaves(t *testing.T) {
	t.Parallel()

	rows := []spec.Row{
		{Sheet: "Request", Index: 1, Level: 1, NameCell: "limit", Optionality: "M"},
		{Sheet: "Request", Index: 2, Level: 1, NameCell: "createApp:CreateApplication", Optionality: "M"},
		{Sheet: "Request", Index: 3, Level: 1, NameCell: "name", Optionality: "M"},
		{Sheet: "Request", Index: 4, Level: 1, NameCell: "age", Optionality: "M"},
		{Sheet: "Request", Index: 5, Level: 1, NameCell: "person:Person", Optionality: "M"},
		{Sheet: "Request", Index: 6, Level: 1, NameCell: "address", Optionality: "M"},
		{Sheet: "Request", Index: 7, Level: 1, NameCell: "phone", Optionality: "M"},
		{Sheet: "Request", Index: 8, Level: 2, NameCell: "cid:Child", Optionality: "M"},
		{Sheet: "Request", Index: 9, Level: 2, NameCell: "name", Optionality: "M"},
		{Sheet: "Request", Index: 10, Level: 2, NameCell: "age", Optionality: "M"},
		{Sheet: "Request", Index: 11, Level: 1, NameCell: "birth", Optionality: "M"},
	}

	group, err := spec.BuildHierarchy(rows, 0)
	require.NoError(t, err)
	require.Len(t, group, 4)

	names := func(g spec.FieldGroup) []string {
		out := make([]string, len(g))
		for i, n := range g {
			out[i] = n.NormalizedName
		}

		return out
	}

	assert.Equal(t, []string{"limit", "createApp", "person", "birth"}, names(group))

	createApp := group[1]
	assert.Equal(t, []string{"name", "age"}, names(createApp.Children))
	assert.Equal(t, "CreateApplication", createApp.ClassName)

	person := group[2]
	require.Len(t, person.Children, 3)
	assert.Equal(t, []string{"address", "phone", "cid"}, names(person.Children))

	cid := person.Children[2]
	assert.Equal(t, "Child", cid.ClassName)
	assert.Equal(t, []string{"name", "age"}, names(cid.Children))
}

func TestBuildHierarchy_LevelJumpIsFatal(t *testing.T) {
	t.Parallel()

	rows := []spec.Row{
		row(1, "a"),
		row(3, "b:B"),
	}

	_, err := spec.BuildHierarchy(rows, 0)
	require.Error(t, err)

	var parseErr *spec.ParseError

	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, spec.ExitCodeParse, parseErr.ExitCode())
}

func TestBuildHierarchy_MaxNestingDepth(t *testing.T) {
	t.Parallel()

	rows := []spec.Row{
		row(1, "a:A"),
		row(2, "b:B"),
	}

	_, err := spec.BuildHierarchy(rows, 1)
	require.Error(t, err)
}

func TestBuildHierarchy_DuplicateSiblingsAreFatal(t *testing.T) {
	t.Parallel()

	rows := []spec.Row{
		row(1, "Account Id"),
		row(1, "account-id"),
	}

	_, err := spec.BuildHierarchy(rows, 0)
	require.Error(t, err)

	var parseErr *spec.ParseError

	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "duplicate normalized name")
}

func TestBuildHierarchy_EmptyContainerIsAllowed(t *testing.T) {
	t.Parallel()

	rows := []spec.Row{
		row(1, "empty:Empty"),
	}

	group, err := spec.BuildHierarchy(rows, 0)
	require.NoError(t, err)
	require.Len(t, group, 1)
	assert.Empty(t, group[0].Children)
}
