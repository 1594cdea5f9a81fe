// Package analytics computes read-only derived views over logged
// exercises for the charts layer. The core store performs no
// aggregation itself; everything here is a projection.
package analytics

import (
	"sort"
	"time"

	"github.com/pedrohrf/ironlog/internal/models"
	"github.com/pedrohrf/ironlog/internal/records"
)

// TrendPoint is one sample in a per-definition time series.
type TrendPoint struct {
	Date  time.Time
	Value float64
}

// OneRepMaxTrend estimates the best one-rep max per performance of the
// given definition, in chronological order. The estimate uses the
// per-set breakdown so a heavy single beats a high-rep average.
func OneRepMaxTrend(logged []models.LoggedExercise, definitionID string) []TrendPoint {
	var points []TrendPoint
	for _, le := range logged {
		if le.DefinitionID != definitionID {
			continue
		}
		var best float64
		for _, set := range le.CompletedSets {
			if est := records.OneRepMax(set.Weight, set.Reps); est > best {
				best = est
			}
		}
		if best == 0 {
			best = records.OneRepMax(le.Weight, le.Reps)
		}
		points = append(points, TrendPoint{Date: le.LoggedAt, Value: best})
	}
	sortPoints(points)
	return points
}

// VolumeTrend returns total volume per performance of the definition.
func VolumeTrend(logged []models.LoggedExercise, definitionID string) []TrendPoint {
	var points []TrendPoint
	for _, le := range logged {
		if le.DefinitionID == definitionID {
			points = append(points, TrendPoint{Date: le.LoggedAt, Value: le.Volume})
		}
	}
	sortPoints(points)
	return points
}

// RPETrend returns the average reported RPE per performance, skipping
// sets without one.
func RPETrend(logged []models.LoggedExercise, definitionID string) []TrendPoint {
	var points []TrendPoint
	for _, le := range logged {
		if le.DefinitionID != definitionID {
			continue
		}
		var sum float64
		var n int
		for _, set := range le.CompletedSets {
			if set.RPE > 0 {
				sum += set.RPE
				n++
			}
		}
		if n > 0 {
			points = append(points, TrendPoint{Date: le.LoggedAt, Value: sum / float64(n)})
		}
	}
	sortPoints(points)
	return points
}

// SessionVolume is the total volume lifted in one session.
type SessionVolume struct {
	Date   string
	DayID  string
	Volume float64
}

// VolumePerSession aggregates each session's total volume, in date
// order.
func VolumePerSession(sessions []models.WorkoutSession) []SessionVolume {
	out := make([]SessionVolume, 0, len(sessions))
	for _, sess := range sessions {
		var total float64
		for _, le := range sess.Exercises {
			total += le.Volume
		}
		out = append(out, SessionVolume{Date: sess.Date, DayID: sess.DayID, Volume: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// RecordCount returns how many logged performances carried a personal
// record flag.
func RecordCount(logged []models.LoggedExercise) int {
	n := 0
	for _, le := range logged {
		if le.IsPersonalRecord {
			n++
		}
	}
	return n
}

func sortPoints(points []TrendPoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
}
