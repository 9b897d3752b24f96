package partnerRepo

import (
	"context"

	"partnerhub/models"
)

// PartnerRepository defines data access for partner progression aggregates.
type PartnerRepository interface {
	// GetByPartnerID returns repository.ErrNotFound when absent.
	GetByPartnerID(ctx context.Context, partnerID string) (*models.Partner, error)
	// Provision inserts p unless a partner with the same id exists, and returns the stored
	// aggregate. created is false when the partner already existed.
	Provision(ctx context.Context, p *models.Partner) (stored *models.Partner, created bool, err error)
	// Save replaces the aggregate if its stored version still equals expectedVersion,
	// and bumps p.Version. It returns repository.ErrVersionConflict otherwise.
	Save(ctx context.Context, p *models.Partner, expectedVersion int) error
	// ListActiveByTier returns all active partners at tier.
	ListActiveByTier(ctx context.Context, tier int) ([]models.Partner, error)
	// ListWithPendingStats returns partners holding confirmed sales whose service
	// stats have not been applied yet.
	ListWithPendingStats(ctx context.Context) ([]models.Partner, error)
	MarkSaleStatsApplied(ctx context.Context, partnerID, saleID string) error
	// AddAssignedService is a no-op when the service is already assigned.
	AddAssignedService(ctx context.Context, partnerID string, svc models.AssignedService) error
	RemoveAssignedService(ctx context.Context, partnerID, serviceID string) error
	Deactivate(ctx context.Context, partnerID string) error
}
