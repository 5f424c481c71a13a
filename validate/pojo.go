package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var pojoFieldPattern = regexp.MustCompile(`(?m)^(\s*@NotNull\s*\n)?\s*private\s+([\w<>]+)\s+(\w+);`)

var forbiddenPOJONames = map[string]bool{
	"groupId":         true,
	"occurrenceCount": true,
}

// ExtractPOJOFields normalizes a generated class hierarchy into
// [ArtifactFields]. files is the full generator output map
// (class name derived from its .java path), so container-typed fields
// can be resolved to the file that defines them.
func ExtractPOJOFields(files map[string][]byte, rootClassPath string) (ArtifactFields, []Finding, error) {
	root, ok := files[rootClassPath]
	if !ok {
		return nil, nil, fmt.Errorf("pojo validator: root class %q not found in generator output", rootClassPath)
	}

	classes := indexClassesByName(files)

	fields := make(ArtifactFields)

	var findings []Finding

	walkPOJOClass(root, "", classes, fields, &findings, make(map[string]bool))

	return fields, findings, nil
}

// indexClassesByName maps bare class name ("Person") to its source, by
// the final path segment of every .java file in files.
func indexClassesByName(files map[string][]byte) map[string][]byte {
	classes := make(map[string][]byte, len(files))

	for path, content := range files {
		base := path
		if i := strings.LastIndex(base, "/"); i >= 0 {
			base = base[i+1:]
		}

		base = strings.TrimSuffix(base, ".java")
		classes[base] = content
	}

	return classes
}

func walkPOJOClass(source []byte, parentPath string, classes map[string][]byte, fields ArtifactFields, findings *[]Finding, visiting map[string]bool) {
	for _, m := range pojoFieldPattern.FindAllSubmatch(source, -1) {
		required := len(m[1]) > 0
		javaType := string(m[2])
		name := string(m[3])

		path := name
		if parentPath != "" {
			path = parentPath + "." + name
		}

		if forbiddenPOJONames[name] {
			*findings = append(*findings, Finding{
				Category: "JB-001", Severity: SeverityError, Path: path,
				Message: fmt.Sprintf("forbidden control field name %q present in POJO output", name),
			})
		}

		elemType, isArray := strings.CutPrefix(javaType, "List<")
		elemType = strings.TrimSuffix(elemType, ">")

		canonical, shape, ok := canonicalFromJavaType(elemType)
		if !ok && isEnumClass(classes[elemType]) {
			// An enum-typed field is a coded string on the wire, matching
			// the string-with-enum shape the other artifact families give
			// it.
			fields[path] = FieldInfo{Type: javaType, CanonicalType: "string", Shape: ShapePrimitive, Required: required}

			continue
		}

		if !ok && classes[elemType] != nil {
			if isArray {
				fields[path] = FieldInfo{Type: javaType, CanonicalType: "array", Shape: ShapeArray, Required: required}
			} else {
				fields[path] = FieldInfo{Type: javaType, CanonicalType: "object", Shape: ShapeObject, Required: required}
			}

			if !visiting[elemType] {
				visiting[elemType] = true
				walkPOJOClass(classes[elemType], path, classes, fields, findings, visiting)
				delete(visiting, elemType)
			}

			continue
		}

		if !ok {
			*findings = append(*findings, Finding{
				Category: "JB-002", Severity: SeverityWarning, Path: path,
				Message: fmt.Sprintf("unrecognized java type %q", javaType),
			})
		}

		if isArray {
			shape = ShapeArray
		}

		fields[path] = FieldInfo{Type: javaType, CanonicalType: canonical, Shape: shape, Required: required}
	}
}

func isEnumClass(source []byte) bool {
	if source == nil {
		return false
	}

	return enumDeclPattern.Match(source)
}

var enumDeclPattern = regexp.MustCompile(`(?m)^\s*(?:public\s+)?enum\s+\w+`)

func canonicalFromJavaType(javaType string) (canonical string, shape Shape, ok bool) {
	switch javaType {
	case "String":
		return "string", ShapePrimitive, true
	case "Integer", "Long":
		return "integer", ShapePrimitive, true
	case "BigDecimal":
		return "decimal", ShapePrimitive, true
	default:
		return "", ShapePrimitive, false
	}
}
