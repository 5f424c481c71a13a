package validate

import "sort"

// ConsistencyConfig configures the consistency validator.
type ConsistencyConfig struct {
	StrictMode       bool
	TypeMappingRules map[string]string
	IgnoreFields     []string
}

// Consistency finding categories. One category per cross-artifact rule,
// so a report line names the rule that fired.
const (
	CategoryPresence = "PRESENCE_MISMATCH"
	CategoryType     = "TYPE_MISMATCH"
	CategoryShape    = "SHAPE_MISMATCH"
	CategoryRequired = "REQUIRED_MISMATCH"
)

// CheckConsistency compares xml, pojo, and openapi field maps for the
// union of field-paths, excluding cfg.IgnoreFields and the XML-only
// transitory names, iterating in sorted path order for deterministic
// reporting.
func CheckConsistency(xmlFields, pojoFields, openAPIFields ArtifactFields, cfg ConsistencyConfig) []Finding {
	ignore := make(map[string]bool, len(cfg.IgnoreFields))
	for _, f := range cfg.IgnoreFields {
		ignore[f] = true
	}

	paths := unionPaths(xmlFields, pojoFields, openAPIFields, ignore)

	var findings []Finding

	for _, path := range paths {
		x, xOK := xmlFields[path]
		p, pOK := pojoFields[path]
		o, oOK := openAPIFields[path]

		findings = append(findings, checkPresence(path, xOK, pOK, oOK)...)

		if !xOK || !pOK || !oOK {
			continue
		}

		findings = append(findings, checkType(path, x, p, o, cfg)...)
		findings = append(findings, checkShape(path, x, p, o)...)
		findings = append(findings, checkRequired(path, x, p, o, cfg)...)
	}

	return findings
}

func unionPaths(xmlFields, pojoFields, openAPIFields ArtifactFields, ignore map[string]bool) []string {
	seen := make(map[string]bool)

	var paths []string

	add := func(fields ArtifactFields) {
		for path := range fields {
			if ignore[path] || seen[path] || isTransitoryPath(path) {
				continue
			}

			seen[path] = true

			paths = append(paths, path)
		}
	}

	add(xmlFields)
	add(pojoFields)
	add(openAPIFields)

	sort.Strings(paths)

	return paths
}

func isTransitoryPath(path string) bool {
	segment := path
	if i := lastDot(path); i >= 0 {
		segment = path[i+1:]
	}

	return transitoryNames[segment]
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}

	return -1
}

// checkPresence flags a field missing from any artifact as an ERROR.
// XML is exempt from presence comparison when the path is transitory
// (already excluded by [unionPaths]), so any remaining absence is a
// genuine projection bug.
func checkPresence(path string, xOK, pOK, oOK bool) []Finding {
	if xOK && pOK && oOK {
		return nil
	}

	var missing []string

	if !xOK {
		missing = append(missing, "xml")
	}

	if !pOK {
		missing = append(missing, "pojo")
	}

	if !oOK {
		missing = append(missing, "openapi")
	}

	return []Finding{{
		Category: CategoryPresence, Severity: SeverityError, Path: path,
		Message: "field missing from: " + joinComma(missing),
	}}
}

// checkType applies two distinct rules: canonical types that every side
// resolved via the mapping table but still disagree are an
// unconditional ERROR; a disagreement where one or more sides never
// resolved (an "unmapped type") is an ERROR only under strict mode, a
// WARNING otherwise.
func checkType(path string, x, p, o FieldInfo, cfg ConsistencyConfig) []Finding {
	cx, xMapped := canonicalize(x.CanonicalType, cfg)
	cp, pMapped := canonicalize(p.CanonicalType, cfg)
	co, oMapped := canonicalize(o.CanonicalType, cfg)

	if cx == cp && cp == co {
		return nil
	}

	severity := SeverityError

	if !(xMapped && pMapped && oMapped) && !cfg.StrictMode {
		severity = SeverityWarning
	}

	return []Finding{{
		Category: CategoryType, Severity: severity, Path: path,
		Message: "canonical type mismatch: xml=" + cx + " pojo=" + cp + " openapi=" + co,
	}}
}

// canonicalize resolves canonical through cfg.TypeMappingRules, also
// reporting whether the lookup actually matched a rule; a miss means
// the raw value passed through unresolved ("unmapped").
func canonicalize(canonical string, cfg ConsistencyConfig) (string, bool) {
	if mapped, ok := cfg.TypeMappingRules[canonical]; ok {
		return mapped, true
	}

	return canonical, false
}

// checkShape requires {primitive, object, array} to agree.
func checkShape(path string, x, p, o FieldInfo) []Finding {
	if x.Shape == p.Shape && p.Shape == o.Shape {
		return nil
	}

	return []Finding{{
		Category: CategoryShape, Severity: SeverityError, Path: path,
		Message: "shape mismatch: xml=" + string(x.Shape) + " pojo=" + string(p.Shape) + " openapi=" + string(o.Shape),
	}}
}

// checkRequired flags disagreement on the required flag: an ERROR in
// strict mode, a WARNING otherwise.
func checkRequired(path string, x, p, o FieldInfo, cfg ConsistencyConfig) []Finding {
	if x.Required == p.Required && p.Required == o.Required {
		return nil
	}

	severity := SeverityWarning
	if cfg.StrictMode {
		severity = SeverityError
	}

	return []Finding{{
		Category: CategoryRequired, Severity: severity, Path: path,
		Message: "required flag disagreement",
	}}
}

func joinComma(items []string) string {
	out := ""

	for i, item := range items {
		if i > 0 {
			out += ", "
		}

		out += item
	}

	return out
}
