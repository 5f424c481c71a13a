package validate

import (
	"fmt"

	"github.com/mqspecgen/msgforge/spec"
)

// OffsetEntry is one row of an [OffsetTable].
type OffsetEntry struct {
	FieldPath    string
	Offset       int
	Length       int
	EndOffset    int
	NestingLevel int
}

// OffsetTable is the ordered, cumulative byte-offset layout of a message
// type, produced by [ComputeOffsets].
type OffsetTable struct {
	Entries     []OffsetEntry
	TotalLength int
}

// ErrOffsetLength reports a leaf with a missing or negative length.
type ErrOffsetLength struct {
	FieldPath string
	Length    int
}

func (e *ErrOffsetLength) Error() string {
	return fmt.Sprintf("field %q has invalid length %d", e.FieldPath, e.Length)
}

// ExitCode classifies a bad length as a validation failure.
func (e *ErrOffsetLength) ExitCode() int {
	return ExitCodeValidation
}

// ComputeOffsets is a pure, depth-first traversal of group producing the
// cumulative OffsetTable. Container nodes contribute no bytes; only
// leaves do. Array-of-primitive with finite max N produces N entries
// name[0]..name[N-1]; array-of-object expands each child once per index;
// occurrence-max = 0 skips the field entirely.
func ComputeOffsets(group spec.FieldGroup) (*OffsetTable, error) {
	table := &OffsetTable{}

	offset := 0

	for _, n := range group {
		next, err := appendNode(table, n, "", 0, offset)
		if err != nil {
			return nil, err
		}

		offset = next
	}

	table.TotalLength = offset

	return table, nil
}

func appendNode(table *OffsetTable, n *spec.FieldNode, parentPath string, level int, offset int) (int, error) {
	if n.FixedCount == 0 {
		return offset, nil
	}

	path := fieldPathName(n)
	if parentPath != "" {
		path = parentPath + "." + path
	}

	if n.IsArray {
		count := n.FixedCount
		if count <= 0 {
			count = 1
		}

		for i := 0; i < count; i++ {
			indexed := fmt.Sprintf("%s[%d]", path, i)

			var err error

			offset, err = appendExpanded(table, n, indexed, level, offset)
			if err != nil {
				return 0, err
			}
		}

		return offset, nil
	}

	if n.IsObject {
		return appendChildren(table, n.Children, path, level+1, offset)
	}

	return appendLeaf(table, path, level, offset, n.Length)
}

// appendExpanded renders one array index's worth of fields: either a
// single leaf entry (array-of-primitive) or the full child set
// (array-of-object).
func appendExpanded(table *OffsetTable, n *spec.FieldNode, indexedPath string, level int, offset int) (int, error) {
	if len(n.Children) == 0 {
		return appendLeaf(table, indexedPath, level, offset, n.Length)
	}

	return appendChildren(table, n.Children, indexedPath, level+1, offset)
}

func appendChildren(table *OffsetTable, children []*spec.FieldNode, parentPath string, level int, offset int) (int, error) {
	for _, child := range children {
		next, err := appendNode(table, child, parentPath, level, offset)
		if err != nil {
			return 0, err
		}

		offset = next
	}

	return offset, nil
}

func appendLeaf(table *OffsetTable, path string, level int, offset int, length *int) (int, error) {
	if length == nil || *length < 0 {
		l := -1
		if length != nil {
			l = *length
		}

		return 0, &ErrOffsetLength{FieldPath: path, Length: l}
	}

	end := offset + *length

	table.Entries = append(table.Entries, OffsetEntry{
		FieldPath:    path,
		Offset:       offset,
		Length:       *length,
		EndOffset:    end,
		NestingLevel: level,
	})

	return end, nil
}

func fieldPathName(n *spec.FieldNode) string {
	if n.NormalizedName != "" {
		return n.NormalizedName
	}

	return n.OriginalName
}
