package spec_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mqspecgen/msgforge/spec"
	"github.com/mqspecgen/msgforge/workbook"
)

// metadataSheet writes operation identity into the fixed coordinates the
// extractor reads, returning an open workbook around it.
func metadataSheet(t *testing.T, opID string) *workbook.Sheet {
	t.Helper()

	f := excelize.NewFile()
	name := f.GetSheetName(0)

	require.NoError(t, f.SetCellValue(name, "C2", "Create Application"))
	require.NoError(t, f.SetCellValue(name, "C3", opID))
	require.NoError(t, f.SetCellValue(name, "E3", 3.0))
	require.NoError(t, f.SetCellValue(name, "C4", "lending"))
	require.NoError(t, f.SetCellValue(name, "C5", "Creates a new application"))

	path := filepath.Join(t.TempDir(), "meta.xlsx")
	require.NoError(t, f.SaveAs(path))

	wb, err := workbook.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = wb.Close() })

	sheet, ok := wb.Sheet(name)
	require.True(t, ok)

	return sheet
}

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	md, err := spec.ExtractMetadata(metadataSheet(t, "createApplication"), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Create Application", md.OperationName)
	assert.Equal(t, "createApplication", md.OperationID)
	assert.Equal(t, "3", md.Version, "whole-double cell is coerced to an integer string")
	assert.Equal(t, "lending", md.ServiceCategory)
	assert.Equal(t, "Creates a new application", md.Description)
	assert.False(t, md.ParseTimestamp.IsZero())
}

func TestExtractMetadata_FirstNonEmptyOperationIDWins(t *testing.T) {
	t.Parallel()

	request := metadataSheet(t, "")
	sharedHeaderFile := metadataSheet(t, "fromSharedHeaderFile")
	embedded := metadataSheet(t, "fromEmbeddedSheet")

	md, err := spec.ExtractMetadata(request, sharedHeaderFile, embedded)
	require.NoError(t, err)
	assert.Equal(t, "fromSharedHeaderFile", md.OperationID)
}

func TestExtractMetadata_MissingOperationIDEverywhereIsFatal(t *testing.T) {
	t.Parallel()

	_, err := spec.ExtractMetadata(metadataSheet(t, ""), nil, nil)
	require.Error(t, err)

	var parseErr *spec.ParseError

	require.ErrorAs(t, err, &parseErr)
}
