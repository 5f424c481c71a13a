package pojogen

import (
	"strconv"
	"strings"
)

// javaType maps a declared spec type to a Java field type: textual
// fields become String, numeric fields become Integer
// when they fit a machine int (<=9 digits, the largest value guaranteed
// to round-trip through int32) and String otherwise to avoid silent
// truncation, amount/currency fields become BigDecimal.
func javaType(dataType string, length *int) string {
	upper := strings.ToUpper(strings.TrimSpace(dataType))

	switch {
	case strings.HasPrefix(upper, "AMT"), strings.HasPrefix(upper, "CUR"):
		return "BigDecimal"
	case strings.HasPrefix(upper, "N"):
		if length != nil && *length <= 9 {
			return "Integer"
		}

		return "String"
	default:
		return "String"
	}
}

// enumValue is one member of an enum-constraint field, parsed from a
// "code:description" literal.
type enumValue struct {
	Code        string
	Description string
}

// parseEnumConstraint parses a comma-separated "code:description,..."
// literal. An entry with no colon uses the code as its own description.
func parseEnumConstraint(literal string) []enumValue {
	var values []enumValue

	for _, part := range strings.Split(literal, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		code, desc, ok := strings.Cut(part, ":")
		if !ok {
			desc = code
		}

		values = append(values, enumValue{Code: strings.TrimSpace(code), Description: strings.TrimSpace(desc)})
	}

	return values
}

// enumConstantName renders a Java enum constant identifier from a code
// literal, falling back to an index-based name for non-identifier codes.
func enumConstantName(code string, index int) string {
	var b strings.Builder

	for _, r := range strings.ToUpper(code) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return "VALUE_" + strconv.Itoa(index)
	}

	return name
}
