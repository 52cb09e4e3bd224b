package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParams_HugePageStaysNonNegative(t *testing.T) {
	p := ListParams{Page: math.MaxInt32, PageSize: 100}.Normalize(nil, "createdAt")

	assert.Equal(t, MaxPage, p.Page)
	assert.Positive(t, p.Offset())
	assert.LessOrEqual(t, p.Offset(), int64(math.MaxInt32))
}

func TestListParams_OffsetWithoutNormalize(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   int64
	}{
		{"first page", ListParams{Page: 1, PageSize: 20}, 0},
		{"zero page", ListParams{Page: 0, PageSize: 20}, 0},
		{"int32 overflow", ListParams{Page: math.MaxInt32, PageSize: 100}, int64(math.MaxInt32-1) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}
