// Package generate defines the common Generator contract implemented by
// the XML, POJO, and OpenAPI artifact generators (subpackages xmlgen,
// pojogen, openapigen). Each generator is a pure function of an
// [*spec.IntermediateTree] and a [GenConfig]: it never mutates the tree
// and never performs I/O itself, returning the artifact as a set of
// relative-path-to-bytes entries for the output manager to stage.
package generate
