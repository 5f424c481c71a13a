package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mqspecgen/msgforge/spec"
)

func TestParseOccurrence(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		literal      string
		wantMin      int
		wantMax      int
		wantArray    bool
		wantOptional bool
		wantFixed    int
		wantErr      bool
	}{
		"explicit range":  {literal: "0..9", wantMin: 0, wantMax: 9, wantArray: true, wantOptional: true, wantFixed: 9},
		"singleton":       {literal: "1..1", wantMin: 1, wantMax: 1, wantFixed: 1},
		"zero occurrence": {literal: "0..0", wantMin: 0, wantMax: 0, wantOptional: true},
		"empty defaults to 1..1": {literal: "", wantMin: 1, wantMax: 1, wantFixed: 1},
		"whitespace only":        {literal: "   ", wantMin: 1, wantMax: 1, wantFixed: 1},
		"min exceeds max":        {literal: "5..2", wantErr: true},
		"malformed":               {literal: "many", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			occ, err := spec.ParseOccurrence("Request", 1, "field", tc.literal)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantMin, occ.Min)
			assert.Equal(t, tc.wantMax, occ.Max)
			assert.Equal(t, tc.wantArray, occ.IsArray())
			assert.Equal(t, tc.wantOptional, occ.IsOptional())
			assert.Equal(t, tc.wantFixed, occ.FixedCount())
		})
	}
}
