package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParseNumbers(t *testing.T) {
	assert.Equal(t, "3,17,42", FormatNumbers([]int{3, 17, 42}))
	assert.Equal(t, "", FormatNumbers(nil))

	got, err := ParseNumbers(" 3, 17,,42 ")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 17, 42}, got)

	empty, err := ParseNumbers("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseNumbers("1,x")
	assert.Error(t, err)
}

func TestPadNumbers(t *testing.T) {
	assert.Equal(t, "03 17 42", PadNumbers([]int{3, 17, 42}))
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		page        int
		perPage     int
		wantPages   int
		wantCurrent int
		wantOffset  int
	}{
		{"empty", 0, 1, 30, 1, 1, 0},
		{"first page", 95, 1, 30, 4, 1, 0},
		{"last page", 95, 4, 30, 4, 4, 90},
		{"page past end is clamped", 95, 9, 30, 4, 4, 90},
		{"page below one is clamped", 95, -2, 30, 4, 1, 0},
		{"exact multiple", 60, 2, 30, 2, 2, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, current, offset := Paginate(tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.wantPages, pages)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
