package progress

import (
	"testing"
	"time"

	"github.com/fitai/fitai-server/pkg/types"
)

func day(s string, exercises ...string) *types.ProgressEntry {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &types.ProgressEntry{Date: t.Add(18 * time.Hour), CompletedExercises: exercises}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalWorkouts != 0 || stats.Streak != 0 || stats.XP != 0 || stats.TotalMinutes != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
	if stats.History == nil {
		t.Error("History should be an empty slice, not nil, so it encodes as []")
	}
}

func TestAggregate(t *testing.T) {
	entries := []*types.ProgressEntry{
		day("2024-03-03", "squat", "lunge"),
		day("2024-03-01", "push-up"),
		nil,
		day("2024-03-04", "deadlift", "row", "plank"),
		day("2024-03-02"),
	}

	stats := Aggregate(entries)

	if stats.TotalWorkouts != 4 {
		t.Errorf("Expected 4 workouts, got %d", stats.TotalWorkouts)
	}
	if stats.TotalMinutes != 4*MinutesPerWorkout {
		t.Errorf("Expected %d minutes, got %d", 4*MinutesPerWorkout, stats.TotalMinutes)
	}
	if stats.XP != 60 {
		t.Errorf("Expected 60 xp, got %d", stats.XP)
	}
	if stats.Streak != 4 {
		t.Errorf("Expected streak 4, got %d", stats.Streak)
	}

	wantDates := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}
	wantXP := []int{10, 0, 20, 30}
	if len(stats.History) != len(wantDates) {
		t.Fatalf("Expected %d history items, got %d", len(wantDates), len(stats.History))
	}
	for i, h := range stats.History {
		if h.Date != wantDates[i] {
			t.Errorf("History[%d].Date = %s, want %s", i, h.Date, wantDates[i])
		}
		if h.XP != wantXP[i] || h.Exercises*XPPerExercise != h.XP {
			t.Errorf("History[%d] = %+v, want xp %d", i, h, wantXP[i])
		}
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []*types.ProgressEntry
		want    int
	}{
		{"single day", []*types.ProgressEntry{day("2024-01-10", "a")}, 1},
		{"gap breaks streak", []*types.ProgressEntry{day("2024-01-07"), day("2024-01-09"), day("2024-01-10")}, 2},
		{"same day twice counts once", []*types.ProgressEntry{day("2024-01-09"), day("2024-01-10"), day("2024-01-10")}, 2},
		{"across month boundary", []*types.ProgressEntry{day("2024-02-28"), day("2024-02-29"), day("2024-03-01")}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(tt.entries).Streak; got != tt.want {
				t.Errorf("Expected streak %d, got %d", tt.want, got)
			}
		})
	}
}
