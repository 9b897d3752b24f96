package events

import (
	"context"
	"testing"

	"partnerhub/database/repository/memory"
	"partnerhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Overlaps(t *testing.T) {
	existing := Interval{Start: 9 * 60, End: 11 * 60}
	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{"starts inside", Interval{10 * 60, 12 * 60}, true},
		{"ends inside", Interval{8 * 60, 10 * 60}, true},
		{"contains", Interval{8 * 60, 12 * 60}, true},
		{"contained", Interval{9*60 + 30, 10 * 60}, true},
		{"identical", Interval{9 * 60, 11 * 60}, true},
		{"adjacent after", Interval{11 * 60, 12 * 60}, false},
		{"adjacent before", Interval{8 * 60, 9 * 60}, false},
		{"disjoint", Interval{13 * 60, 14 * 60}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.Overlaps(existing))
		})
	}
}

func TestFindConflicts_SkipsCancelledAndExcluded(t *testing.T) {
	existing := []models.Event{
		{ID: "a", StartTime: "09:00", EndTime: "11:00", Status: models.EventPlanned},
		{ID: "b", StartTime: "09:00", EndTime: "11:00", Status: models.EventCancelled},
		{ID: "c", StartTime: "bad", EndTime: "11:00", Status: models.EventPlanned},
	}
	got := FindConflicts(Interval{Start: 600, End: 660}, existing, "")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	assert.Empty(t, FindConflicts(Interval{Start: 600, End: 660}, existing, "a"))
}

func TestChecker_Check(t *testing.T) {
	// GIVEN: trainer T has [09:00, 11:00) on 2025-06-01
	store := memory.NewEventStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &models.Event{
		ID: "ev-1", TrainerID: "T", Subject: "Lean", Date: "2025-06-01",
		StartTime: "09:00", EndTime: "11:00", Status: models.EventPlanned,
	}))
	checker := &Checker{Repo: store}

	tests := []struct {
		name      string
		trainer   string
		date      string
		start     string
		end       string
		excludeID string
		conflicts int
	}{
		{"overlapping", "T", "2025-06-01", "10:00", "12:00", "", 1},
		{"adjacent", "T", "2025-06-01", "11:00", "12:00", "", 0},
		{"other date", "T", "2025-06-02", "09:00", "11:00", "", 0},
		{"other trainer", "U", "2025-06-01", "09:00", "11:00", "", 0},
		{"editing itself", "T", "2025-06-01", "09:00", "11:00", "ev-1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.Check(ctx, tt.trainer, tt.date, tt.start, tt.end, tt.excludeID)
			require.NoError(t, err)
			assert.Len(t, got, tt.conflicts)
		})
	}

	_, err := checker.Check(ctx, "T", "2025-06-01", "9h", "11:00", "")
	assert.Error(t, err)
}
