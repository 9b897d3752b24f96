package serviceRepo

import (
	"context"

	"partnerhub/models"
)

// ServiceRepository defines data access for the service catalogue.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	// GetByID returns repository.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	// ListForPartner returns the active services whose authorizedPartners contain partnerID.
	ListForPartner(ctx context.Context, partnerID string) ([]models.Service, error)
	// AuthorizePartner adds ap to the access-control list. added is false when the
	// partner was already listed.
	AuthorizePartner(ctx context.Context, serviceID string, ap models.AuthorizedPartner) (added bool, err error)
	RevokePartner(ctx context.Context, serviceID, partnerID string) error
	// ApplySaleStats folds one sale into the service stats exactly once per saleID.
	// applied is false when saleID had already been counted.
	ApplySaleStats(ctx context.Context, serviceID, saleID string, amount, commission float64) (applied bool, err error)
	Deactivate(ctx context.Context, id string) error
}
