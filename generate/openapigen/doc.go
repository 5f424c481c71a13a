// Package openapigen emits an OpenAPI 3.x schema document from an
// intermediate tree. Schema nodes are [*jsonschema.Schema] values,
// since OpenAPI 3.0.x's Schema Object is a JSON-Schema-compatible
// subset, composed with $ref; transitory control fields are dropped,
// and nested object schemas may be split into side files per the
// configured split strategy.
package openapigen
