package openapigen

import "github.com/google/jsonschema-go/jsonschema"

// Document is the top-level OpenAPI document. It is rendered to YAML
// through its JSON encoding (see marshalYAML), so the tags here are
// json tags; encoding/json writes every map key in sorted order and the
// ordered YAML re-encode keeps that order, which keeps
// components/schemas deterministic.
type Document struct {
	OpenAPI    string     `json:"openapi"`
	Info       Info       `json:"info"`
	Paths      Paths      `json:"paths"`
	Components Components `json:"components"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Paths map[string]PathItem

type PathItem struct {
	Post Operation `json:"post"`
}

type Operation struct {
	OperationID string              `json:"operationId"`
	RequestBody RequestBody         `json:"requestBody"`
	Responses   map[string]Response `json:"responses"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

type Components struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}
