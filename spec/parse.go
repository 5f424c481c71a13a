package spec

import (
	"github.com/mqspecgen/msgforge/workbook"
)

// ParserVersion is embedded in every [Metadata] record.
const ParserVersion = "1.0.0"

// Options configures [Parse].
type Options struct {
	// SourcePath is recorded in Metadata.SourceFile.
	SourcePath string
	// SharedHeaderPath is recorded in Metadata.SharedHeaderFile, if a
	// separate shared-header workbook was supplied.
	SharedHeaderPath string
	// MaxNestingDepth bounds container depth (parser.max-nesting-depth).
	// Zero uses [DefaultMaxNestingDepth].
	MaxNestingDepth int
}

// Parse builds the [IntermediateTree] from a primary workbook and an
// optional separately supplied shared-header workbook. main must be
// open; sharedHeaderWorkbook may be nil.
func Parse(main *workbook.Workbook, sharedHeaderWorkbook *workbook.Workbook, opts Options) (*IntermediateTree, error) {
	requestSheet, ok := main.Sheet(workbook.SheetRequest)
	if !ok {
		return nil, newParseError(main.Path(), 0, "", "required sheet \"Request\" not found", nil)
	}

	responseSheet, _ := main.Sheet(workbook.SheetResponse)

	var sharedHeaderFileSheet *workbook.Sheet

	if sharedHeaderWorkbook != nil {
		sharedHeaderFileSheet, _ = sharedHeaderWorkbook.Sheet(workbook.SheetRequest)
		if sharedHeaderFileSheet == nil {
			sharedHeaderFileSheet, _ = sharedHeaderWorkbook.Sheet(workbook.SheetSharedHeader)
		}
	}

	embeddedSharedHeader, _ := main.Sheet(workbook.SheetSharedHeader)

	metadata, err := ExtractMetadata(requestSheet, sharedHeaderFileSheet, embeddedSharedHeader)
	if err != nil {
		return nil, err
	}

	metadata.SourceFile = opts.SourcePath
	metadata.SharedHeaderFile = opts.SharedHeaderPath
	metadata.ParserVersion = ParserVersion

	request, err := buildGroup(requestSheet, opts.MaxNestingDepth)
	if err != nil {
		return nil, err
	}

	var response FieldGroup

	if responseSheet != nil {
		response, err = buildGroup(responseSheet, opts.MaxNestingDepth)
		if err != nil {
			return nil, err
		}
	}

	var sharedHeader FieldGroup

	sharedHeaderSheet := sharedHeaderFileSheet
	if sharedHeaderSheet == nil {
		sharedHeaderSheet = embeddedSharedHeader
	}

	if sharedHeaderSheet != nil {
		sharedHeader, err = buildGroup(sharedHeaderSheet, opts.MaxNestingDepth)
		if err != nil {
			return nil, err
		}
	}

	return &IntermediateTree{
		Metadata:     metadata,
		SharedHeader: sharedHeader,
		Request:      request,
		Response:     response,
	}, nil
}

func buildGroup(sheet *workbook.Sheet, maxDepth int) (FieldGroup, error) {
	raw, err := sheet.Rows()
	if err != nil {
		return nil, err
	}

	rows, err := ReadRows(sheet.Name(), raw)
	if err != nil {
		return nil, err
	}

	return BuildHierarchy(rows, maxDepth)
}
