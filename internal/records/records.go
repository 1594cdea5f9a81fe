// Package records holds the pure personal-record comparison logic.
// Nothing here touches storage; callers pass in history and get a
// verdict back.
package records

import (
	"sort"

	"github.com/pedrohrf/ironlog/internal/models"
)

// Maxima is the best previously recorded weight and volume for one
// exercise definition.
type Maxima struct {
	Weight float64
	Volume float64
}

// Verdict is the outcome of checking one set against history. The two
// flags are independent: a set may be either, both, or neither.
type Verdict struct {
	WeightRecord bool
	VolumeRecord bool
}

// Any reports whether the set broke at least one record.
func (v Verdict) Any() bool {
	return v.WeightRecord || v.VolumeRecord
}

// IsWeightRecord reports whether currentWeight beats the previous best.
// A first-ever performance (previousMax == 0) never counts as a
// record since there is no baseline to beat.
func IsWeightRecord(currentWeight, previousMax float64) bool {
	return currentWeight > previousMax && previousMax > 0
}

// IsVolumeRecord applies the same rule to set volume (weight × reps).
func IsVolumeRecord(currentVolume, previousMax float64) bool {
	return currentVolume > previousMax && previousMax > 0
}

// CheckSet evaluates one set's weight and volume against the maxima.
func CheckSet(weight float64, reps int, prev Maxima) Verdict {
	volume := weight * float64(reps)
	return Verdict{
		WeightRecord: IsWeightRecord(weight, prev.Weight),
		VolumeRecord: IsVolumeRecord(volume, prev.Volume),
	}
}

// HistoryMaxima scans every logged exercise sharing the given
// definition ID and returns the maximum recorded weight and volume.
func HistoryMaxima(logged []models.LoggedExercise, definitionID string) Maxima {
	var m Maxima
	for _, le := range logged {
		if le.DefinitionID != definitionID {
			continue
		}
		if le.Weight > m.Weight {
			m.Weight = le.Weight
		}
		if le.Volume > m.Volume {
			m.Volume = le.Volume
		}
	}
	return m
}

// OneRepMax estimates the one-rep max from a weight/reps pair using the
// Brzycki formula. Zero reps means no estimate; one rep is the lift
// itself.
func OneRepMax(weight float64, reps int) float64 {
	switch {
	case reps == 0:
		return 0
	case reps == 1:
		return weight
	default:
		return weight * 36 / float64(37-reps)
	}
}

// Best is one exercise's standing records, for display.
type Best struct {
	DefinitionID string
	Name         string
	MaxWeight    float64
	MaxVolume    float64
	Occurrences  int
}

// Summary builds the standing-records table across all logged
// exercises, sorted by exercise name.
func Summary(logged []models.LoggedExercise) []Best {
	byDef := map[string]*Best{}
	for _, le := range logged {
		b, ok := byDef[le.DefinitionID]
		if !ok {
			b = &Best{DefinitionID: le.DefinitionID, Name: le.Name}
			byDef[le.DefinitionID] = b
		}
		if le.Weight > b.MaxWeight {
			b.MaxWeight = le.Weight
		}
		if le.Volume > b.MaxVolume {
			b.MaxVolume = le.Volume
		}
		b.Occurrences++
	}

	out := make([]Best, 0, len(byDef))
	for _, b := range byDef {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
