package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		current int
		delta   int
		want    int
	}{
		{"previous from first wraps to last", 1, DeltaPrevious, 151},
		{"next from last wraps to first", 151, DeltaNext, 1},
		{"back ten near start wraps to last", 5, DeltaBack10, 151},
		{"back ten landing on zero", 10, DeltaBack10, 151},
		{"forward ten past end wraps to first", 145, DeltaForward10, 1},
		{"forward ten landing on end", 141, DeltaForward10, 151},
		{"plain next", 24, DeltaNext, 25},
		{"plain previous", 25, DeltaPrevious, 24},
		{"plain back ten", 35, DeltaBack10, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.current, tt.delta, DefaultMaxID))
		})
	}
}

func TestWrap_AlwaysInRange(t *testing.T) {
	deltas := []int{DeltaPrevious, DeltaNext, DeltaBack10, DeltaForward10}
	for _, maxID := range []int{1, 9, 10, 11, 151} {
		for current := 1; current <= maxID; current++ {
			for _, d := range deltas {
				got := Wrap(current, d, maxID)
				assert.GreaterOrEqual(t, got, 1, "current=%d delta=%d max=%d", current, d, maxID)
				assert.LessOrEqual(t, got, maxID, "current=%d delta=%d max=%d", current, d, maxID)

				if next := current + d; next >= 1 && next <= maxID {
					assert.Equal(t, current, Wrap(got, -d, maxID), "inverse move")
				}
			}
		}
	}
}

func TestWrap_DegenerateMax(t *testing.T) {
	assert.Equal(t, 1, Wrap(3, DeltaNext, 0))
}

func TestClampID(t *testing.T) {
	assert.Equal(t, 42, ClampID(42, 151, 1))
	assert.Equal(t, 1, ClampID(0, 151, 1))
	assert.Equal(t, 1, ClampID(152, 151, 1))
	assert.Equal(t, 7, ClampID(-3, 151, 7))
}
