package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"partnerhub/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRunner struct {
	run   *models.MonthlyGiftRun
	err   error
	calls int
}

func (f *fakeRunner) RunMonthlyGifts(context.Context) (*models.MonthlyGiftRun, error) {
	f.calls++
	return f.run, f.err
}

func TestNewMonthlyGiftTask(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	task, err := NewMonthlyGiftTask("admin", at)
	require.NoError(t, err)
	assert.Equal(t, TypeMonthlyGifts, task.Type())

	var p MonthlyGiftPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "admin", p.Trigger)
	assert.True(t, at.Equal(p.RequestedAt))
}

func TestHandleMonthlyGiftTask(t *testing.T) {
	task, err := NewMonthlyGiftTask("schedule", time.Now())
	require.NoError(t, err)

	t.Run("clean run", func(t *testing.T) {
		runner := &fakeRunner{run: &models.MonthlyGiftRun{Month: "2025-07", Processed: 2, Gifted: 2}}
		require.NoError(t, HandleMonthlyGiftTask(runner, zap.NewNop())(context.Background(), task))
		assert.Equal(t, 1, runner.calls)
	})

	t.Run("partial failure is retried", func(t *testing.T) {
		runner := &fakeRunner{run: &models.MonthlyGiftRun{
			Month: "2025-07", Processed: 2, Gifted: 1,
			Failures: []models.BatchFailure{{PartnerID: "COM-000002", Error: "boom"}},
		}}
		err := HandleMonthlyGiftTask(runner, zap.NewNop())(context.Background(), task)
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("listing failure", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("mongo down")}
		assert.Error(t, HandleMonthlyGiftTask(runner, zap.NewNop())(context.Background(), task))
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		runner := &fakeRunner{}
		err := HandleMonthlyGiftTask(runner, zap.NewNop())(context.Background(), asynq.NewTask(TypeMonthlyGifts, []byte("{")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, asynq.SkipRetry))
		assert.Zero(t, runner.calls)
	})
}
