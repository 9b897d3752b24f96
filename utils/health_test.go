package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatus_Healthy(t *testing.T) {
	up, down := true, false

	assert.True(t, HealthStatus{}.Healthy())
	assert.True(t, HealthStatus{Mongo: &up, Redis: &up}.Healthy())
	assert.True(t, HealthStatus{Mongo: &up}.Healthy())
	assert.False(t, HealthStatus{Mongo: &up, Redis: &down}.Healthy())
	assert.False(t, HealthStatus{Mongo: &down}.Healthy())
}

func TestCheckHealth_SkipsUnusedBackends(t *testing.T) {
	status := CheckHealth(context.Background(), nil, nil)
	assert.Nil(t, status.Mongo)
	assert.Nil(t, status.Redis)
	assert.False(t, status.CheckedAt.IsZero())
}
