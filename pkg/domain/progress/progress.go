// Package progress aggregates logged workout days into dashboard stats.
package progress

import (
	"sort"
	"time"

	"github.com/fitai/fitai-server/pkg/types"
)

const (
	// XPPerExercise is awarded for every completed exercise.
	XPPerExercise = 10
	// MinutesPerWorkout is the assumed length of one logged workout.
	MinutesPerWorkout = 45

	DateLayout = "2006-01-02"
)

// Day is one history item.
type Day struct {
	Date      string `json:"date"`
	Exercises int    `json:"exercises"`
	XP        int    `json:"xp"`
}

// Stats is the progress dashboard payload.
type Stats struct {
	TotalWorkouts int   `json:"total_workouts"`
	Streak        int   `json:"streak"`
	TotalMinutes  int   `json:"total_minutes"`
	XP            int   `json:"xp"`
	History       []Day `json:"history"`
}

// Aggregate folds entries into Stats. History keeps one item per entry in
// date order; nil entries are skipped.
func Aggregate(entries []*types.ProgressEntry) Stats {
	sorted := make([]*types.ProgressEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	stats := Stats{History: make([]Day, 0, len(sorted))}
	for _, e := range sorted {
		n := len(e.CompletedExercises)
		day := Day{
			Date:      e.Date.UTC().Format(DateLayout),
			Exercises: n,
			XP:        n * XPPerExercise,
		}
		stats.History = append(stats.History, day)
		stats.XP += day.XP
	}

	stats.TotalWorkouts = len(sorted)
	stats.TotalMinutes = stats.TotalWorkouts * MinutesPerWorkout
	stats.Streak = streak(sorted)
	return stats
}

// streak counts consecutive calendar days (UTC) ending at the latest entry.
// entries must be sorted by date.
func streak(entries []*types.ProgressEntry) int {
	if len(entries) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		days[truncateDay(e.Date)] = true
	}

	count := 0
	for d := truncateDay(entries[len(entries)-1].Date); days[d]; d = d.AddDate(0, 0, -1) {
		count++
	}
	return count
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
