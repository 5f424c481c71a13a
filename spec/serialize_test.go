package spec_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/spec"
)

func TestWriteReadJSONRoundTrip(t *testing.T) {
	t.Parallel()

	length := 10

	original := &spec.IntermediateTree{
		Metadata: spec.Metadata{
			OperationName:  "Create Application",
			OperationID:    "createApplication",
			Version:        "1",
			ParseTimestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			ParserVersion:  spec.ParserVersion,
		},
		Request: spec.FieldGroup{
			{
				OriginalName:   "limit",
				NormalizedName: "limit",
				Length:         &length,
				DataType:       "N",
				Optionality:    spec.Mandatory,
				Provenance:     spec.Provenance{Sheet: "Request", Row: 7, OriginalCell: "limit"},
			},
			{
				OriginalName:   "createApp",
				NormalizedName: "createApp",
				ClassName:      "CreateApplication",
				IsObject:       true,
				Optionality:    spec.Mandatory,
				Provenance:     spec.Provenance{Sheet: "Request", Row: 8, OriginalCell: "createApp:CreateApplication"},
				Children: []*spec.FieldNode{
					{
						OriginalName:   "name",
						NormalizedName: "name",
						DataType:       "AN",
						Optionality:    spec.Mandatory,
						Provenance:     spec.Provenance{Sheet: "Request", Row: 9, OriginalCell: "name"},
					},
				},
			},
		},
	}

	var buf bytes.Buffer

	require.NoError(t, spec.WriteJSON(&buf, original))

	got, err := spec.ReadJSON(&buf)
	require.NoError(t, err)

	assert.Equal(t, original, got)
}
