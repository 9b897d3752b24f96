package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	eventRepo "partnerhub/database/repository/event"
	"partnerhub/database/repository/memory"
	"partnerhub/models"
	"partnerhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *DefaultEventService {
	svc := NewDefaultEventService(memory.NewEventStore(), zap.NewNop())
	seq := 0
	svc.NewID = func() string {
		seq++
		return fmt.Sprintf("ev-%d", seq)
	}
	svc.Now = func() time.Time { return time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC) }
	return svc
}

func input(trainer, date, start, end string) models.EventInput {
	return models.EventInput{TrainerID: trainer, Subject: "Atelier " + start, Date: date, StartTime: start, EndTime: end}
}

func strPtr(s string) *string { return &s }

func TestCreate_DerivesDurationAndDefaults(t *testing.T) {
	svc := newTestService()

	ev, err := svc.Create(context.Background(), input("T", "2025-06-01", "09:00", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, 90, ev.DurationMinutes)
	assert.Equal(t, models.EventPlanned, ev.Status)
}

func TestCreate_RejectsOverlap(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, input("T", "2025-06-01", "09:00", "11:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, input("T", "2025-06-01", "10:00", "12:00"))
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, models.ConflictView{ID: "ev-1", Subject: "Atelier 09:00", Date: "2025-06-01", StartTime: "09:00", EndTime: "11:00"}, conflict.Conflicts[0])

	// Adjacent and cancelled events may be created.
	_, err = svc.Create(ctx, input("T", "2025-06-01", "11:00", "12:00"))
	require.NoError(t, err)
	cancelled := input("T", "2025-06-01", "09:30", "10:00")
	cancelled.Status = models.EventCancelled
	_, err = svc.Create(ctx, cancelled)
	require.NoError(t, err)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   models.EventInput
	}{
		{"end before start", input("T", "2025-06-01", "11:00", "10:00")},
		{"zero length", input("T", "2025-06-01", "10:00", "10:00")},
		{"bad time", input("T", "2025-06-01", "10h", "11:00")},
		{"bad date", input("T", "June 1", "10:00", "11:00")},
		{"missing trainer", input(" ", "2025-06-01", "10:00", "11:00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.Equal(t, utils.KindInvalidArgument, utils.KindOf(err))
		})
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	first, err := svc.Create(ctx, input("T", "2025-06-01", "09:00", "11:00"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, input("T", "2025-06-01", "13:00", "14:00"))
	require.NoError(t, err)

	t.Run("rescheduling in place recomputes duration", func(t *testing.T) {
		ev, err := svc.Update(ctx, first.ID, models.EventUpdate{EndTime: strPtr("10:00")})
		require.NoError(t, err)
		assert.Equal(t, 60, ev.DurationMinutes)
		assert.Equal(t, "09:00", ev.StartTime)
	})

	t.Run("moving onto another event conflicts", func(t *testing.T) {
		_, err := svc.Update(ctx, second.ID, models.EventUpdate{StartTime: strPtr("09:30"), EndTime: strPtr("10:30")})
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))

		stored, err := svc.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "13:00", stored.StartTime)
	})

	t.Run("cancelling skips the check", func(t *testing.T) {
		ev, err := svc.Update(ctx, second.ID, models.EventUpdate{
			StartTime: strPtr("09:30"), EndTime: strPtr("10:30"), Status: strPtr(models.EventCancelled),
		})
		require.NoError(t, err)
		assert.Equal(t, models.EventCancelled, ev.Status)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.Update(ctx, "nope", models.EventUpdate{})
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})
}

func TestListAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	for _, d := range []string{"2025-06-03", "2025-06-01", "2025-06-02"} {
		_, err := svc.Create(ctx, input("T", d, "09:00", "10:00"))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, input("U", "2025-06-01", "09:00", "10:00"))
	require.NoError(t, err)

	events, err := svc.List(ctx, eventRepo.Filter{TrainerID: "T", From: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2025-06-02", events[0].Date)
	assert.Equal(t, "2025-06-03", events[1].Date)

	_, err = svc.List(ctx, eventRepo.Filter{From: "yesterday"})
	assert.Equal(t, utils.KindInvalidArgument, utils.KindOf(err))

	require.NoError(t, svc.Delete(ctx, events[0].ID))
	_, err = svc.Get(ctx, events[0].ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, utils.KindNotFound, utils.KindOf(svc.Delete(ctx, events[0].ID)))
}
