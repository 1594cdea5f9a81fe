package records

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pedrohrf/ironlog/internal/models"
)

func TestIsWeightRecord(t *testing.T) {
	assert.True(t, IsWeightRecord(100, 90))
	assert.False(t, IsWeightRecord(90, 100))
	assert.False(t, IsWeightRecord(100, 100))

	// No baseline means no record.
	assert.False(t, IsWeightRecord(100, 0))
}

func TestIsVolumeRecord(t *testing.T) {
	assert.True(t, IsVolumeRecord(850, 800))
	assert.False(t, IsVolumeRecord(800, 850))
	assert.False(t, IsVolumeRecord(500, 0))
}

func TestCheckSetIndependentFlags(t *testing.T) {
	prev := Maxima{Weight: 100, Volume: 800}

	// Heavier but lower volume: weight record only.
	v := CheckSet(105, 5, prev)
	assert.True(t, v.WeightRecord)
	assert.False(t, v.VolumeRecord)
	assert.True(t, v.Any())

	// Lighter but higher volume: volume record only.
	v = CheckSet(90, 10, prev)
	assert.False(t, v.WeightRecord)
	assert.True(t, v.VolumeRecord)
	assert.True(t, v.Any())

	// Both.
	v = CheckSet(105, 10, prev)
	assert.True(t, v.WeightRecord)
	assert.True(t, v.VolumeRecord)

	// Neither.
	v = CheckSet(80, 5, prev)
	assert.False(t, v.Any())
}

func TestHistoryMaxima(t *testing.T) {
	logged := []models.LoggedExercise{
		{DefinitionID: "bench", Weight: 80, Volume: 2400},
		{DefinitionID: "bench", Weight: 85, Volume: 2100},
		{DefinitionID: "squat", Weight: 120, Volume: 3600},
	}

	m := HistoryMaxima(logged, "bench")
	assert.Equal(t, 85.0, m.Weight)
	assert.Equal(t, 2400.0, m.Volume)

	// No history at all.
	m = HistoryMaxima(logged, "deadlift")
	assert.Zero(t, m.Weight)
	assert.Zero(t, m.Volume)
}

func TestOneRepMax(t *testing.T) {
	assert.Zero(t, OneRepMax(100, 0))
	assert.Equal(t, 100.0, OneRepMax(100, 1))
	assert.InDelta(t, 112.5, OneRepMax(100, 5), 0.01)
	assert.InDelta(t, 133.33, OneRepMax(100, 10), 0.01)
}

func TestSummary(t *testing.T) {
	logged := []models.LoggedExercise{
		{DefinitionID: "squat", Name: "Agachamento", Weight: 120, Volume: 3600},
		{DefinitionID: "bench", Name: "Supino reto", Weight: 80, Volume: 2400},
		{DefinitionID: "bench", Name: "Supino reto", Weight: 85, Volume: 2100},
	}

	out := Summary(logged)
	assert.Len(t, out, 2)

	// Sorted by name.
	assert.Equal(t, "Agachamento", out[0].Name)
	assert.Equal(t, "Supino reto", out[1].Name)

	assert.Equal(t, 85.0, out[1].MaxWeight)
	assert.Equal(t, 2400.0, out[1].MaxVolume)
	assert.Equal(t, 2, out[1].Occurrences)
}
