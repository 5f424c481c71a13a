package spec

import (
	"strings"
	"time"

	"github.com/mqspecgen/msgforge/workbook"
)

// ErrMissingOperationID indicates no metadata source produced a
// non-empty operation id, the one identity field generation cannot
// proceed without: it seeds every generated class and endpoint name.
var ErrMissingOperationID = newParseError("", 0, "operationId", "operation id is required but was empty in every metadata source", nil)

// metadataSource reads a [Metadata] candidate from a single sheet. Only
// the operation-id field's presence determines whether the source "wins".
type metadataSource struct {
	name  string
	sheet *workbook.Sheet
}

// ExtractMetadata reads operation identity from fixed cell coordinates
// in the first seven rows of each candidate sheet, resolving across
// sources in first-non-empty-operation-id-wins order: Request
// sheet, then a separately supplied shared-header file's Request sheet,
// then an embedded Shared Header sheet.
func ExtractMetadata(request *workbook.Sheet, sharedHeaderFile *workbook.Sheet, embeddedSharedHeader *workbook.Sheet) (Metadata, error) {
	sources := []metadataSource{
		{name: "request", sheet: request},
		{name: "shared-header-file", sheet: sharedHeaderFile},
		{name: "embedded-shared-header", sheet: embeddedSharedHeader},
	}

	var resolved Metadata

	for _, src := range sources {
		if src.sheet == nil {
			continue
		}

		candidate, err := extractFrom(src.sheet)
		if err != nil {
			return Metadata{}, err
		}

		if candidate.OperationID != "" {
			resolved = candidate

			break
		}
	}

	if resolved.OperationID == "" {
		return Metadata{}, ErrMissingOperationID
	}

	resolved.ParseTimestamp = time.Now().UTC()

	return resolved, nil
}

// extractFrom reads the fixed cell coordinates from sheet's first seven
// rows: row 2 col C = operation name, row 3 col C =
// operation id, row 3 col E = version, row 4 col C.. = service fields,
// row 5 col C = description.
func extractFrom(sheet *workbook.Sheet) (Metadata, error) {
	name, err := numericAwareCell(sheet, 2, "C")
	if err != nil {
		return Metadata{}, err
	}

	opID, err := numericAwareCell(sheet, 3, "C")
	if err != nil {
		return Metadata{}, err
	}

	version, err := numericAwareCell(sheet, 3, "E")
	if err != nil {
		return Metadata{}, err
	}

	category, err := numericAwareCell(sheet, 4, "C")
	if err != nil {
		return Metadata{}, err
	}

	iface, err := numericAwareCell(sheet, 4, "E")
	if err != nil {
		return Metadata{}, err
	}

	component, err := numericAwareCell(sheet, 4, "G")
	if err != nil {
		return Metadata{}, err
	}

	svcID, err := numericAwareCell(sheet, 4, "I")
	if err != nil {
		return Metadata{}, err
	}

	description, err := numericAwareCell(sheet, 5, "C")
	if err != nil {
		return Metadata{}, err
	}

	return Metadata{
		OperationName:    name,
		OperationID:      opID,
		Version:          version,
		ServiceCategory:  category,
		ServiceInterface: iface,
		ServiceComponent: component,
		ServiceID:        svcID,
		Description:      description,
	}, nil
}

// numericAwareCell reads a cell and normalizes it: values are trimmed;
// empty becomes "". Numeric cells stored as whole
// doubles (e.g. "3.0") are coerced to an integer-string representation
// ("3").
func numericAwareCell(sheet *workbook.Sheet, row int, col string) (string, error) {
	value, err := sheet.Cell(row, col)
	if err != nil {
		return "", err
	}

	return coerceWholeDouble(value), nil
}

func coerceWholeDouble(value string) string {
	if value == "" || !strings.Contains(value, ".") {
		return value
	}

	intPart, fracPart, ok := strings.Cut(value, ".")
	if !ok {
		return value
	}

	for _, r := range fracPart {
		if r != '0' {
			return value
		}
	}

	if intPart == "" {
		return value
	}

	return intPart
}
