package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected []FlexID
		wantErr  bool
	}{
		{
			name:     "numbers",
			payload:  `{"trend_ids": [1, 2, 3]}`,
			expected: []FlexID{1, 2, 3},
		},
		{
			name:     "numeric strings",
			payload:  `{"trend_ids": ["4", "5"]}`,
			expected: []FlexID{4, 5},
		},
		{
			name:     "mixed numbers and strings",
			payload:  `{"trend_ids": [1, "2", 3]}`,
			expected: []FlexID{1, 2, 3},
		},
		{
			// a non-numeric string coerces to zero and matches no row
			name:     "non-numeric string",
			payload:  `{"trend_ids": [1, "abc"]}`,
			expected: []FlexID{1, 0},
		},
		{
			name:    "object is rejected",
			payload: `{"trend_ids": [{}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req BulkRequest
			err := json.Unmarshal([]byte(tt.payload), &req)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, req.TrendIDs)
		})
	}
}

func TestFlexIDs(t *testing.T) {
	assert.Equal(t, []uint{1, 0, 7}, flexIDs([]FlexID{1, 0, 7}))
	assert.Empty(t, flexIDs(nil))
}
