package spec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var occurrencePattern = regexp.MustCompile(`^(\d+)\.\.(\d+)$`)

// Occurrence is the parsed `min..max` cardinality literal.
type Occurrence struct {
	Min int
	Max int
}

// IsArray reports whether max > 1.
func (o Occurrence) IsArray() bool {
	return o.Max > 1
}

// IsOptional reports whether min == 0.
func (o Occurrence) IsOptional() bool {
	return o.Min == 0
}

// FixedCount is the max of the occurrence, used by XML repeating-field
// emission.
func (o Occurrence) FixedCount() int {
	return o.Max
}

// ParseOccurrence parses a trimmed `min..max` literal. An empty literal
// is treated as "1..1". `min > max` is a [ParseError].
func ParseOccurrence(sheet string, row int, field, literal string) (Occurrence, error) {
	literal = strings.TrimSpace(literal)
	if literal == "" {
		return Occurrence{Min: 1, Max: 1}, nil
	}

	m := occurrencePattern.FindStringSubmatch(literal)
	if m == nil {
		return Occurrence{}, newParseError(sheet, row, field,
			fmt.Sprintf("invalid occurrence literal %q, expected min..max", literal), nil)
	}

	minV, err := strconv.Atoi(m[1])
	if err != nil {
		return Occurrence{}, newParseError(sheet, row, field, "invalid occurrence min", err)
	}

	maxV, err := strconv.Atoi(m[2])
	if err != nil {
		return Occurrence{}, newParseError(sheet, row, field, "invalid occurrence max", err)
	}

	if minV > maxV {
		return Occurrence{}, newParseError(sheet, row, field,
			fmt.Sprintf("occurrence min %d exceeds max %d", minV, maxV), nil)
	}

	return Occurrence{Min: minV, Max: maxV}, nil
}
