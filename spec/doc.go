// Package spec implements the Intermediate Tree (IT) data model and the
// parser that builds it from a tabular fixed-length-message specification:
// sheet discovery, metadata extraction, segment-level hierarchy
// reconstruction, occurrence-count interpretation, and name normalization.
//
// The IT (see [IntermediateTree]) is msgforge's single source of truth.
// It is built once per run by [Parse] and is read-only from that point
// forward; every generator and validator in the repository consumes it
// without mutation.
//
// # Parsing Pipeline
//
// [Parse] processes a [workbook.Workbook] (plus an optional separate
// shared-header workbook) through five phases:
//
//  1. Sheet discovery: locate Request (required), Response (optional),
//     and Shared Header (optional) sheets by canonical name.
//  2. Metadata extraction: read operation identity from fixed cell
//     coordinates, resolving across sources in first-non-empty-wins
//     order (Request sheet, then shared-header file, then embedded
//     shared-header sheet).
//  3. Hierarchy reconstruction: each sheet's rows are turned into an
//     ordered [FieldGroup] tree via [BuildHierarchy], using segment
//     level and `name:ClassName` container markers.
//  4. Occurrence interpretation: each row's `min..max` literal is parsed
//     by [ParseOccurrence] into array/optional/fixed-count classification.
//  5. Name normalization: [Normalize] derives a deterministic camelCase
//     identifier for every field, detecting duplicate siblings.
//
// Errors from any phase are [ParseError] values carrying sheet name,
// 1-based row index, and (where applicable) the offending field name.
package spec
