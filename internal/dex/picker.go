package dex

import (
	"math/rand/v2"
)

// DefaultAnomalyChance is the probability a random pick lands on the
// anomalous record instead of a real id.
const DefaultAnomalyChance = 0.02

// Picker draws random ids for the random-selection control.
type Picker struct {
	rng           *rand.Rand
	maxID         int
	anomalyChance float64
}

// NewPicker returns a Picker over [1, maxID]. A nil src seeds from the
// runtime's random source.
func NewPicker(src rand.Source, maxID int, anomalyChance float64) *Picker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if maxID < 1 {
		maxID = DefaultMaxID
	}
	return &Picker{
		rng:           rand.New(src),
		maxID:         maxID,
		anomalyChance: anomalyChance,
	}
}

// Pick returns a uniformly random id different from current, or
// anomalous=true with the configured probability. With a single-record
// range the only id is returned even if it equals current.
func (p *Picker) Pick(current int) (id int, anomalous bool) {
	if p.anomalyChance > 0 && p.rng.Float64() < p.anomalyChance {
		return 0, true
	}
	for {
		id = p.rng.IntN(p.maxID) + 1
		if id != current || p.maxID == 1 {
			return id, false
		}
	}
}
