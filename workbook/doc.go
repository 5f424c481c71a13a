// Package workbook wraps [github.com/xuri/excelize/v2] to provide the
// sheet-discovery and cell-access primitives the spec parser depends on.
// msgforge treats the tabular workbook format itself as someone else's
// problem and consumes only normalized rows of trimmed strings.
package workbook
