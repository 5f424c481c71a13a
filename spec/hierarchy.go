package spec

import "fmt"

// DefaultMaxNestingDepth is the default value of parser.max-nesting-depth.
const DefaultMaxNestingDepth = 50

// stackEntry represents one open container on the reconstruction stack.
// lastChildLevel is the segment level of the most recently attached
// child; it is the signal used to detect when control should return to
// an ancestor container.
type stackEntry struct {
	node           *FieldNode // nil for the level-0 root sentinel
	level          int
	lastChildLevel int
}

// BuildHierarchy reconstructs an ordered [FieldGroup] tree from a flat,
// ordered row list using segment-level depth and `name:ClassName`
// container markers. maxDepth bounds container nesting;
// exceeding it is a [ParseError]. A level jump of more than one between
// consecutive rows (e.g. 1 → 3) is a [ParseError] with row context.
func BuildHierarchy(rows []Row, maxDepth int) (FieldGroup, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxNestingDepth
	}

	var root FieldGroup

	stack := []stackEntry{{node: nil, level: 0}}

	var prevLevel int

	for i, row := range rows {
		if i > 0 && row.Level > prevLevel+1 {
			return nil, newParseError(row.Sheet, row.Index, row.Name(),
				fmt.Sprintf("segment level jump from %d to %d is not allowed", prevLevel, row.Level), nil)
		}

		stack = closeScopes(stack, row)

		if len(stack)-1 >= maxDepth {
			return nil, newParseError(row.Sheet, row.Index, row.Name(),
				fmt.Sprintf("maximum nesting depth %d exceeded", maxDepth), nil)
		}

		node, err := newFieldNode(row)
		if err != nil {
			return nil, err
		}

		parent := &stack[len(stack)-1]
		if parent.node == nil {
			root = append(root, node)
		} else {
			parent.node.Children = append(parent.node.Children, node)
			parent.node.IsObject = parent.node.IsObject || !node.IsTransitory
		}

		parent.lastChildLevel = row.Level

		if row.IsContainer() {
			stack = append(stack, stackEntry{node: node, level: row.Level})
		}

		prevLevel = row.Level
	}

	if err := detectDuplicates(root); err != nil {
		return nil, err
	}

	return root, nil
}

// closeScopes pops every stack entry whose container scope has ended
// before row is attached:
//
//   - a sibling container at the same level is encountered (row is
//     itself a container whose level equals the open container's own
//     level);
//   - the new row's level is strictly less than the container's most
//     recently attached child level (control is returning from a more
//     deeply nested sub-container).
//
// Two consecutive leaf rows at the same level both remain siblings of
// the nearest open container whose child level is <= the row's level,
// which falls directly out of these two rules: neither condition fires
// for a second same-level leaf, since it is not itself a container and
// its level is not less than the level already recorded.
func closeScopes(stack []stackEntry, row Row) []stackEntry {
	for len(stack) > 1 {
		top := stack[len(stack)-1]

		returningFromDeeperScope := top.lastChildLevel != 0 && row.Level < top.lastChildLevel
		siblingContainerAtSameLevel := row.IsContainer() && row.Level == top.level

		if !returningFromDeeperScope && !siblingContainerAtSameLevel {
			break
		}

		stack = stack[:len(stack)-1]
	}

	return stack
}

func newFieldNode(row Row) (*FieldNode, error) {
	occ, err := ParseOccurrence(row.Sheet, row.Index, row.Name(), row.OccurrenceLit)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(row.Name())
	if normalized == "" {
		return nil, newParseError(row.Sheet, row.Index, row.Name(), "field name normalizes to empty string", nil)
	}

	node := &FieldNode{
		OriginalName:     row.Name(),
		NormalizedName:   normalized,
		SegmentLevel:     row.Level,
		DataType:         row.DataType,
		Optionality:      optionalityFromOccurrence(row.Optionality, occ),
		DefaultValue:     row.Default,
		HardCodedLiteral: row.HardCoded,
		GroupID:          row.GroupID,
		OccurrenceLit:    row.OccurrenceLit,
		IsArray:          occ.IsArray(),
		FixedCount:       occ.FixedCount(),
		EnumConstraint:   row.EnumConstraint,
		Provenance: Provenance{
			Sheet:        row.Sheet,
			Row:          row.Index,
			OriginalCell: row.NameCell,
		},
	}

	if row.IsContainer() {
		node.IsObject = true

		class := row.DeclaredClassName()
		if class == "" {
			class = ClassName(normalized)
		}

		node.ClassName = class
	}

	if length, ok := parseLength(row.Length); ok {
		node.Length = &length
	}

	node.IsTransitory = isTransitoryField(row)
	if node.IsTransitory {
		node.IsObject = false
	}

	return node, nil
}

func optionalityFromOccurrence(literal string, occ Occurrence) Optionality {
	if literal != "" {
		if literal == string(Optional) {
			return Optional
		}

		return Mandatory
	}

	if occ.IsOptional() {
		return Optional
	}

	return Mandatory
}

func parseLength(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	n := 0

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}

		n = n*10 + int(r-'0')
	}

	return n, true
}

// isTransitoryField reports whether row is a groupId or occurrenceCount
// control field, identified by a non-empty group-id or occurrence-count
// literal paired with a name that names the control itself.
func isTransitoryField(row Row) bool {
	switch Normalize(row.Name()) {
	case "groupId":
		return row.GroupID != ""
	case "occurrenceCount":
		return row.OccurrenceLit != ""
	}

	return false
}

// detectDuplicates walks group and every nested group, returning a fatal
// [ParseError] the moment two siblings share a normalized name.
func detectDuplicates(group FieldGroup) error {
	seen := make(map[string]*FieldNode, len(group))

	for _, node := range group {
		if existing, ok := seen[node.NormalizedName]; ok {
			return newParseError(node.Provenance.Sheet, node.Provenance.Row, node.OriginalName,
				fmt.Sprintf("duplicate normalized name %q also used by row %d (%q)",
					node.NormalizedName, existing.Provenance.Row, existing.OriginalName), nil)
		}

		seen[node.NormalizedName] = node

		if len(node.Children) > 0 {
			if err := detectDuplicates(node.Children); err != nil {
				return err
			}
		}
	}

	return nil
}
