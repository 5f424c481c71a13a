package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mqspecgen/msgforge/spec"
	"github.com/mqspecgen/msgforge/validate"
)

func TestCheckPayload_TooShort(t *testing.T) {
	t.Parallel()

	table := &validate.OffsetTable{
		Entries:     []validate.OffsetEntry{{FieldPath: "a", Offset: 0, Length: 5, EndOffset: 5}},
		TotalLength: 5,
	}

	report := validate.CheckPayload([]byte("ab"), table, nil, validate.PayloadConfig{})
	assert.Len(t, report.Findings, 1)
	assert.Equal(t, "PL-001", report.Findings[0].Category)
}

func TestCheckPayload_HardCodedLiteralMismatch(t *testing.T) {
	t.Parallel()

	table := &validate.OffsetTable{
		Entries:     []validate.OffsetEntry{{FieldPath: "code", Offset: 0, Length: 3, EndOffset: 3}},
		TotalLength: 3,
	}

	constraints := map[string]validate.LeafConstraint{
		"code": {HardCodedLiteral: "ABC"},
	}

	report := validate.CheckPayload([]byte("XYZ"), table, constraints, validate.PayloadConfig{RedactPayload: false})
	assert.Len(t, report.Findings, 1)
	assert.Equal(t, "PL-002", report.Findings[0].Category)
	assert.Contains(t, report.Findings[0].Message, `"XYZ"`)
}

func TestCheckPayload_MatchesAndRedacts(t *testing.T) {
	t.Parallel()

	table := &validate.OffsetTable{
		Entries:     []validate.OffsetEntry{{FieldPath: "code", Offset: 0, Length: 3, EndOffset: 3}},
		TotalLength: 3,
	}

	constraints := map[string]validate.LeafConstraint{
		"code": {HardCodedLiteral: "XYZ"},
	}

	report := validate.CheckPayload([]byte("XYZ"), table, constraints, validate.PayloadConfig{RedactPayload: true})
	assert.Empty(t, report.Findings)
	assert.Equal(t, []string{"code"}, report.Matched)
}

func TestBuildConstraints_ZeroOccurrenceSkipsField(t *testing.T) {
	t.Parallel()

	// A real "0..0" leaf parses to IsArray=false, FixedCount=0; the skip
	// in collectConstraints must key on FixedCount alone. Ordinary fields
	// carry FixedCount=1, the "1..1" default every real leaf gets from
	// [spec.ParseOccurrence].
	group := spec.FieldGroup{
		{NormalizedName: "limit", FixedCount: 1},
		{NormalizedName: "skipped", IsArray: false, FixedCount: 0},
		{NormalizedName: "birth", FixedCount: 1},
	}

	constraints := validate.BuildConstraints(group)

	assert.Contains(t, constraints, "limit")
	assert.Contains(t, constraints, "birth")
	assert.NotContains(t, constraints, "skipped")
}
