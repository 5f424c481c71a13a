// Package validate implements the per-artifact, consistency, offset,
// and payload validators. Per-artifact validators
// normalize a generated XML, POJO, or OpenAPI artifact into an
// [ArtifactFields] map; the consistency validator compares those maps
// pairwise; the offset engine computes a byte-offset table by pure
// traversal of the intermediate tree; the payload validator checks a
// literal byte string against that table.
package validate
