package spec

import (
	"fmt"
	"sort"
	"strings"
)

// RenameEntry is one row of the human-readable rename table emitted as
// diff.md.
type RenameEntry struct {
	Sheet          string
	Row            int
	OriginalName   string
	NormalizedName string
}

// RenameTable collects every field's original-to-normalized mapping from
// an [IntermediateTree], sorted by sheet then row for deterministic
// output.
func RenameTable(it *IntermediateTree) []RenameEntry {
	var entries []RenameEntry

	collect := func(group FieldGroup) {
		group.Walk(func(node *FieldNode, _ []string) {
			entries = append(entries, RenameEntry{
				Sheet:          node.Provenance.Sheet,
				Row:            node.Provenance.Row,
				OriginalName:   node.OriginalName,
				NormalizedName: node.NormalizedName,
			})
		})
	}

	collect(it.SharedHeader)
	collect(it.Request)
	collect(it.Response)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Sheet != entries[j].Sheet {
			return entries[i].Sheet < entries[j].Sheet
		}

		return entries[i].Row < entries[j].Row
	})

	return entries
}

// RenderRenameTableMarkdown renders entries as the diff.md Markdown table.
func RenderRenameTableMarkdown(entries []RenameEntry) string {
	var b strings.Builder

	b.WriteString("| Sheet | Row | Original Name | Normalized Name |\n")
	b.WriteString("|---|---|---|---|\n")

	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", e.Sheet, e.Row, e.OriginalName, e.NormalizedName)
	}

	return b.String()
}
