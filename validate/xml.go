package validate

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// rawElement generically captures any XML element's attributes and
// children, letting [ExtractXMLFields] walk a bean document without a
// schema-specific struct per element kind.
type rawElement struct {
	XMLName  xml.Name   `xml:""`
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []rawElement `xml:",any"`
}

func (e rawElement) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

// ExtractXMLFields normalizes a generated bean document into
// [ArtifactFields]. Findings report malformed documents and fields
// with unresolvable converters.
func ExtractXMLFields(document []byte) (ArtifactFields, []Finding, error) {
	var root rawElement

	if err := xml.Unmarshal(document, &root); err != nil {
		return nil, nil, fmt.Errorf("xml validator: parse bean document: %w", err)
	}

	if root.XMLName.Local != "beans" {
		return nil, []Finding{{
			Category: "XML-001", Severity: SeverityError,
			Message: fmt.Sprintf("root element is %q, expected \"beans\"", root.XMLName.Local),
		}}, nil
	}

	fields := make(ArtifactFields)

	var findings []Finding

	for _, child := range root.Children {
		walkXMLElement(child, "", fields, &findings)
	}

	return fields, findings, nil
}

func walkXMLElement(el rawElement, parentPath string, fields ArtifactFields, findings *[]Finding) {
	name, _ := el.attr("name")
	if name == "" {
		*findings = append(*findings, Finding{
			Category: "XML-002", Severity: SeverityError,
			Message: fmt.Sprintf("%s element missing name attribute", el.XMLName.Local),
		})

		return
	}

	path := name
	if parentPath != "" {
		path = parentPath + "." + name
	}

	required, _ := el.attr("required")

	switch el.XMLName.Local {
	case "DataField":
		converter, _ := el.attr("converter")

		canonical, ok := canonicalFromXMLConverter(converter)
		if !ok {
			*findings = append(*findings, Finding{
				Category: "XML-003", Severity: SeverityWarning, Path: path,
				Message: fmt.Sprintf("unrecognized converter %q", converter),
			})
		}

		fields[path] = FieldInfo{Type: converter, CanonicalType: canonical, Shape: ShapePrimitive, Required: required == "true"}
	case "CompositeField":
		fields[path] = FieldInfo{Type: "object", CanonicalType: "object", Shape: ShapeObject, Required: required == "true"}

		for _, child := range el.Children {
			walkXMLElement(child, path, fields, findings)
		}
	case "RepeatingField":
		fields[path] = FieldInfo{Type: "array", CanonicalType: "array", Shape: ShapeArray, Required: required == "true"}

		for _, child := range el.Children {
			walkXMLElement(child, path, fields, findings)
		}
	default:
		*findings = append(*findings, Finding{
			Category: "XML-004", Severity: SeverityError, Path: path,
			Message: fmt.Sprintf("unexpected element %q", el.XMLName.Local),
		})
	}
}

func canonicalFromXMLConverter(converter string) (string, bool) {
	switch strings.ToLower(converter) {
	case "string":
		return "string", true
	case "numeric", "counter":
		return "integer", true
	case "amount":
		return "decimal", true
	default:
		return "string", false
	}
}
