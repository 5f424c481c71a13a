package validate

import (
	"fmt"
	"strings"

	"github.com/mqspecgen/msgforge/spec"
)

// PayloadConfig configures the payload validator.
type PayloadConfig struct {
	RedactPayload bool
}

// PayloadReport is the structured result of [CheckPayload]: matched
// leaves, and any findings for mismatches.
type PayloadReport struct {
	Matched  []string
	Findings []Finding
}

// LeafConstraint carries the spec-derived constraints a payload slice
// must satisfy for one leaf field, addressed by [OffsetEntry.FieldPath].
type LeafConstraint struct {
	HardCodedLiteral string
	DefaultValue     string
	EnumValues       []string
}

// CheckPayload compares payload against table, applying per-leaf
// constraints. Sensitive payload content is redacted
// from any returned message unless cfg.RedactPayload is false.
func CheckPayload(payload []byte, table *OffsetTable, constraints map[string]LeafConstraint, cfg PayloadConfig) *PayloadReport {
	report := &PayloadReport{}

	if len(payload) < table.TotalLength {
		report.Findings = append(report.Findings, Finding{
			Category: "PL-001", Severity: SeverityError,
			Message: fmt.Sprintf("payload too short: have %d bytes, need %d", len(payload), table.TotalLength),
		})

		return report
	}

	for _, entry := range table.Entries {
		slice := payload[entry.Offset:entry.EndOffset]
		constraint := constraints[entry.FieldPath]

		if finding, ok := checkLeaf(entry, slice, constraint, cfg.RedactPayload); !ok {
			report.Findings = append(report.Findings, finding)

			continue
		}

		report.Matched = append(report.Matched, entry.FieldPath)
	}

	return report
}

func checkLeaf(entry OffsetEntry, slice []byte, constraint LeafConstraint, redact bool) (Finding, bool) {
	value := strings.TrimRight(string(slice), " ")

	if constraint.HardCodedLiteral != "" && value != constraint.HardCodedLiteral {
		return Finding{
			Category: "PL-002", Severity: SeverityError, Path: entry.FieldPath,
			Message: fmt.Sprintf("hard-coded literal mismatch: want %q, got %s", constraint.HardCodedLiteral, displayValue(value, redact)),
		}, false
	}

	if value == "" && constraint.DefaultValue != "" {
		value = constraint.DefaultValue
	}

	if len(constraint.EnumValues) > 0 && !containsString(constraint.EnumValues, value) {
		return Finding{
			Category: "PL-003", Severity: SeverityError, Path: entry.FieldPath,
			Message: fmt.Sprintf("value %s not in enum constraint", displayValue(value, redact)),
		}, false
	}

	return Finding{}, true
}

func displayValue(value string, redact bool) string {
	if redact {
		return "[REDACTED]"
	}

	return fmt.Sprintf("%q", value)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}

	return false
}

// BuildConstraints walks group the same way [ComputeOffsets] does,
// producing the matching `{field-path -> LeafConstraint}` map so
// [CheckPayload] can address every leaf [ComputeOffsets] addresses.
// Paths are derived identically to the offset engine:
// dot-separated nesting, bracket-indices for array expansion.
func BuildConstraints(group spec.FieldGroup) map[string]LeafConstraint {
	constraints := make(map[string]LeafConstraint)

	collectConstraints(group, "", constraints)

	return constraints
}

func collectConstraints(group spec.FieldGroup, parentPath string, out map[string]LeafConstraint) {
	for _, n := range group {
		if n.FixedCount == 0 {
			continue
		}

		path := n.NormalizedName
		if path == "" {
			path = n.OriginalName
		}

		if parentPath != "" {
			path = parentPath + "." + path
		}

		if n.IsArray {
			count := n.FixedCount
			if count <= 0 {
				count = 1
			}

			for i := 0; i < count; i++ {
				indexed := fmt.Sprintf("%s[%d]", path, i)
				collectExpanded(n, indexed, out)
			}

			continue
		}

		if n.IsObject {
			collectConstraints(n.Children, path, out)

			continue
		}

		out[path] = leafConstraintOf(n)
	}
}

func collectExpanded(n *spec.FieldNode, indexedPath string, out map[string]LeafConstraint) {
	if len(n.Children) == 0 {
		out[indexedPath] = leafConstraintOf(n)

		return
	}

	collectConstraints(n.Children, indexedPath, out)
}

func leafConstraintOf(n *spec.FieldNode) LeafConstraint {
	return LeafConstraint{
		HardCodedLiteral: n.HardCodedLiteral,
		DefaultValue:     n.DefaultValue,
		EnumValues:       enumCodes(n.EnumConstraint),
	}
}

// enumCodes extracts the bare codes from a "code:description,..." enum
// constraint literal, matching the parsing rule the POJO generator uses
// for its enum helpers.
func enumCodes(literal string) []string {
	if literal == "" {
		return nil
	}

	var codes []string

	for _, part := range strings.Split(literal, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		code, _, _ := strings.Cut(part, ":")
		codes = append(codes, strings.TrimSpace(code))
	}

	return codes
}
