package spec

import "strings"

// Row is a single spec-sheet row after column mapping, ready for
// hierarchy reconstruction. Column header names are matched
// case-insensitively by [ReadRows].
type Row struct {
	Sheet          string
	Index          int // 1-based sheet row number, kept for provenance
	Level          int
	NameCell       string // may contain "name:ClassName"
	Length         string
	DataType       string
	Optionality    string
	Default        string
	HardCoded      string
	GroupID        string
	OccurrenceLit  string
	EnumConstraint string
}

// Name returns the field name portion of NameCell, stripping any
// `:ClassName` container marker.
func (r Row) Name() string {
	name, _, _ := strings.Cut(r.NameCell, ":")

	return strings.TrimSpace(name)
}

// IsContainer reports whether NameCell declares a nested class, i.e.
// contains a `:` separator.
func (r Row) IsContainer() bool {
	return strings.Contains(r.NameCell, ":")
}

// DeclaredClassName returns the explicit class name from a `name:ClassName`
// marker, or "" if this row is not a container.
func (r Row) DeclaredClassName() string {
	_, class, found := strings.Cut(r.NameCell, ":")
	if !found {
		return ""
	}

	return strings.TrimSpace(class)
}

// ReadRows maps a sheet's raw string rows into [Row] values using a
// header row. The header row is the first row containing a case-
// insensitive match for "Level" and "Field Name"; all preceding rows are
// treated as metadata/title rows and ignored by the hierarchy builder
// (metadata is read separately by fixed coordinates).
func ReadRows(sheetName string, rawRows [][]string) ([]Row, error) {
	headerIdx, columns, found := findHeader(rawRows)
	if !found {
		return nil, newParseError(sheetName, 0, "", "no header row found", nil)
	}

	var rows []Row

	for i := headerIdx + 1; i < len(rawRows); i++ {
		raw := rawRows[i]
		rowNum := i + 1 // 1-based

		levelStr := cellFor(raw, columns, "level")
		if strings.TrimSpace(levelStr) == "" {
			continue
		}

		level, err := parseLevel(levelStr)
		if err != nil {
			return nil, newParseError(sheetName, rowNum, "", "invalid segment level", err)
		}

		rows = append(rows, Row{
			Sheet:          sheetName,
			Index:          rowNum,
			Level:          level,
			NameCell:       cellFor(raw, columns, "field name"),
			Length:         cellFor(raw, columns, "length"),
			DataType:       cellFor(raw, columns, "type"),
			Optionality:    cellFor(raw, columns, "m/o"),
			Default:        cellFor(raw, columns, "default"),
			HardCoded:      cellFor(raw, columns, "hardcoded"),
			GroupID:        cellFor(raw, columns, "group id"),
			OccurrenceLit:  cellFor(raw, columns, "occurrence"),
			EnumConstraint: cellFor(raw, columns, "enum"),
		})
	}

	return rows, nil
}

func findHeader(rawRows [][]string) (int, map[string]int, bool) {
	for i, row := range rawRows {
		columns := make(map[string]int)

		for idx, cell := range row {
			key := strings.ToLower(strings.TrimSpace(cell))
			columns[key] = idx
		}

		_, hasLevel := columns["level"]
		_, hasName := columns["field name"]

		if hasLevel && hasName {
			return i, columns, true
		}
	}

	return 0, nil, false
}

func cellFor(row []string, columns map[string]int, header string) string {
	idx, ok := columns[header]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseLevel(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &ParseError{Message: "segment level must be a positive integer"}
		}

		n = n*10 + int(r-'0')
	}

	if n <= 0 {
		return 0, &ParseError{Message: "segment level must be >= 1"}
	}

	return n, nil
}
