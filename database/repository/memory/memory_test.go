package memory

import (
	"context"
	"testing"

	"partnerhub/database/repository"
	"partnerhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerStore_SaveRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := NewPartnerStore()
	_, created, err := store.Provision(ctx, &models.Partner{PartnerID: "COM-000001", Tier: 1, Active: true})
	require.NoError(t, err)
	require.True(t, created)

	first, err := store.GetByPartnerID(ctx, "COM-000001")
	require.NoError(t, err)
	second, err := store.GetByPartnerID(ctx, "COM-000001")
	require.NoError(t, err)

	first.Points = 5
	require.NoError(t, store.Save(ctx, first, first.Version))
	assert.Equal(t, 1, first.Version)

	second.Points = 10
	assert.ErrorIs(t, store.Save(ctx, second, second.Version), repository.ErrVersionConflict)

	stored, err := store.GetByPartnerID(ctx, "COM-000001")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Points)
}

func TestPartnerStore_ProvisionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewPartnerStore()

	_, created, err := store.Provision(ctx, &models.Partner{PartnerID: "COM-000001", FullName: "A"})
	require.NoError(t, err)
	assert.True(t, created)

	stored, created, err := store.Provision(ctx, &models.Partner{PartnerID: "COM-000001", FullName: "B"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "A", stored.FullName)
}

func TestPartnerStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewPartnerStore()
	store.Put(&models.Partner{PartnerID: "COM-000001", Sales: []models.Sale{{ID: "s1"}}})

	p, err := store.GetByPartnerID(ctx, "COM-000001")
	require.NoError(t, err)
	p.Sales[0].StatsApplied = true

	again, err := store.GetByPartnerID(ctx, "COM-000001")
	require.NoError(t, err)
	assert.False(t, again.Sales[0].StatsApplied)
}

func TestServiceStore_ApplySaleStatsOncePerSale(t *testing.T) {
	ctx := context.Background()
	store := NewServiceStore()
	require.NoError(t, store.Create(ctx, &models.Service{ID: "svc-1", Active: true}))

	applied, err := store.ApplySaleStats(ctx, "svc-1", "sale-1", 100, 10)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = store.ApplySaleStats(ctx, "svc-1", "sale-1", 100, 10)
	require.NoError(t, err)
	assert.False(t, applied)

	svc, err := store.GetByID(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, models.ServiceStats{TotalSales: 1, RevenueGenerated: 100, TotalCommissionPaid: 10}, svc.Stats)

	_, err = store.ApplySaleStats(ctx, "missing", "sale-2", 1, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventStore_FindActiveSkipsCancelled(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()
	require.NoError(t, store.Create(ctx, &models.Event{ID: "e1", TrainerID: "T", Date: "2025-06-01", Status: models.EventPlanned}))
	require.NoError(t, store.Create(ctx, &models.Event{ID: "e2", TrainerID: "T", Date: "2025-06-01", Status: models.EventCancelled}))
	require.NoError(t, store.Create(ctx, &models.Event{ID: "e3", TrainerID: "T", Date: "2025-06-02", Status: models.EventPlanned}))

	events, err := store.FindActiveByTrainerAndDate(ctx, "T", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
}
