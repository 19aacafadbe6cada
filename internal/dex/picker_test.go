package dex

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPicker_NeverReturnsCurrent(t *testing.T) {
	p := NewPicker(rand.NewPCG(1, 2), DefaultMaxID, 0)
	seen := make(map[int]bool)

	for i := range 5000 {
		current := i%DefaultMaxID + 1
		id, anomalous := p.Pick(current)
		assert.False(t, anomalous)
		assert.NotEqual(t, current, id)
		assert.GreaterOrEqual(t, id, 1)
		assert.LessOrEqual(t, id, DefaultMaxID)
		seen[id] = true
	}

	assert.Greater(t, len(seen), DefaultMaxID/2, "picks should spread over the range")
}

func TestPicker_Anomaly(t *testing.T) {
	always := NewPicker(rand.NewPCG(3, 4), DefaultMaxID, 1)
	id, anomalous := always.Pick(10)
	assert.True(t, anomalous)
	assert.Zero(t, id)

	sometimes := NewPicker(rand.NewPCG(5, 6), DefaultMaxID, DefaultAnomalyChance)
	hits := 0
	const draws = 20000
	for range draws {
		if _, anomalous := sometimes.Pick(1); anomalous {
			hits++
		}
	}
	assert.InDelta(t, DefaultAnomalyChance, float64(hits)/draws, 0.01)
}

func TestPicker_SingleRecordRange(t *testing.T) {
	p := NewPicker(rand.NewPCG(7, 8), 1, 0)
	id, anomalous := p.Pick(1)
	assert.False(t, anomalous)
	assert.Equal(t, 1, id)
}

func TestNewPicker_Defaults(t *testing.T) {
	p := NewPicker(nil, 0, 0)
	assert.Equal(t, DefaultMaxID, p.maxID)
	id, _ := p.Pick(1)
	assert.NotEqual(t, 1, id)
}
