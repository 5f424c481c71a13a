package workbook

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Canonical sheet names recognized by sheet discovery.
const (
	SheetRequest      = "Request"
	SheetResponse     = "Response"
	SheetSharedHeader = "Shared Header"
)

// Workbook is a thin, read-only view over a spreadsheet file.
type Workbook struct {
	path  string
	file  *excelize.File
	names []string
}

// Open opens the workbook at path. The caller must call [Workbook.Close]
// when finished.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, newInputError(path, "open workbook", err)
	}

	return &Workbook{path: path, file: f, names: f.GetSheetList()}, nil
}

// Path returns the filesystem path this workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	if w.file == nil {
		return nil
	}

	return w.file.Close()
}

// Sheet resolves a canonical sheet name against this workbook's sheet
// list in three tiers: exact match first, then case-insensitive, then
// whitespace-insensitive (collapsing runs of whitespace and trimming
// before comparing).
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for _, candidate := range w.names {
		if candidate == name {
			return w.sheetByName(candidate), true
		}
	}

	for _, candidate := range w.names {
		if strings.EqualFold(candidate, name) {
			return w.sheetByName(candidate), true
		}
	}

	target := normalizeWhitespace(name)
	for _, candidate := range w.names {
		if strings.EqualFold(normalizeWhitespace(candidate), target) {
			return w.sheetByName(candidate), true
		}
	}

	return nil, false
}

func (w *Workbook) sheetByName(name string) *Sheet {
	return &Sheet{workbook: w, name: name}
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Sheet is a single worksheet within a [Workbook].
type Sheet struct {
	workbook *Workbook
	name     string
}

// Name returns the sheet's actual (non-canonicalized) name.
func (s *Sheet) Name() string {
	return s.name
}

// Rows returns every row of the sheet as trimmed, formula/numeric-
// normalized strings. Trailing fully-blank rows are stripped; interior
// blank rows are kept so slice index + 1 stays equal to the sheet's
// 1-based row number, which field provenance depends on.
func (s *Sheet) Rows() ([][]string, error) {
	raw, err := s.workbook.file.GetRows(s.name)
	if err != nil {
		return nil, newInputError(s.workbook.path, "read rows from sheet "+s.name, err)
	}

	rows := make([][]string, 0, len(raw))

	for _, row := range raw {
		trimmed := make([]string, len(row))
		for i, cell := range row {
			trimmed[i] = strings.TrimSpace(cell)
		}

		rows = append(rows, trimmed)
	}

	for len(rows) > 0 && rowIsBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	return rows, nil
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}

	return true
}

// Cell returns the trimmed string value of the cell at 1-based row and
// column (e.g. Cell(2, "C") for row 2, column C), as used by the
// metadata extractor's fixed cell coordinates.
func (s *Sheet) Cell(row int, col string) (string, error) {
	axis, err := excelize.CoordinatesToCellName(columnIndex(col), row)
	if err != nil {
		return "", newInputError(s.workbook.path, "resolve cell "+col, err)
	}

	value, err := s.workbook.file.GetCellValue(s.name, axis, excelize.Options{RawCellValue: false})
	if err != nil {
		return "", newInputError(s.workbook.path, "read cell "+axis, err)
	}

	return strings.TrimSpace(value), nil
}

// columnIndex converts a spreadsheet column letter ("A", "B", ... "AA")
// into a 1-based column index.
func columnIndex(col string) int {
	idx := 0
	for _, r := range strings.ToUpper(col) {
		idx = idx*26 + int(r-'A'+1)
	}

	return idx
}
