package commercial

import (
	"context"
	"errors"

	"partnerhub/database/repository"
	"partnerhub/models"
	"partnerhub/utils"

	"go.uber.org/zap"
)

// ListServices returns the services partnerID is authorized to sell.
func (e *DefaultProgressionEngine) ListServices(ctx context.Context, partnerID string) ([]models.Service, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return nil, err
	}
	if _, err := e.loadActive(ctx, partnerID); err != nil {
		return nil, err
	}
	services, err := e.Services.ListForPartner(ctx, partnerID)
	if err != nil {
		return nil, utils.Internal(err, "failed to list services for %s", partnerID)
	}
	return services, nil
}

func (e *DefaultProgressionEngine) CreateService(ctx context.Context, in models.ServiceInput, adminID string) (*models.Service, error) {
	if in.Title == "" {
		return nil, utils.InvalidArgument("service title is required")
	}
	if in.PublicPrice < 0 || in.PartnerPrice < 0 || in.Commission < 0 {
		return nil, utils.InvalidArgument("service prices and commission must not be negative")
	}
	svc := &models.Service{
		ID:                 e.newID(),
		Title:              in.Title,
		Description:        in.Description,
		Category:           in.Category,
		PublicPrice:        in.PublicPrice,
		PartnerPrice:       in.PartnerPrice,
		Commission:         in.Commission,
		Duration:           in.Duration,
		AuthorizedPartners: []models.AuthorizedPartner{},
		AppliedSales:       []string{},
		Active:             true,
	}
	if err := e.Services.Create(ctx, svc); err != nil {
		return nil, utils.Internal(err, "failed to create service")
	}
	e.logger().Info("service created", zap.String("serviceId", svc.ID), zap.String("by", adminID))
	return svc, nil
}

func (e *DefaultProgressionEngine) ListCatalogue(ctx context.Context, includeInactive bool) ([]models.Service, error) {
	services, err := e.Services.List(ctx, !includeInactive)
	if err != nil {
		return nil, utils.Internal(err, "failed to list services")
	}
	return services, nil
}

// DeactivateService withdraws a service from sale. Its access list and stats are kept.
func (e *DefaultProgressionEngine) DeactivateService(ctx context.Context, serviceID, adminID string) error {
	if err := e.Services.Deactivate(ctx, serviceID); err != nil {
		return e.repoErr(err, "service %s not found", serviceID)
	}
	e.logger().Info("service deactivated", zap.String("serviceId", serviceID), zap.String("by", adminID))
	return nil
}

// AssignService grants partnerID access to serviceID. Repeating the call changes nothing.
func (e *DefaultProgressionEngine) AssignService(ctx context.Context, serviceID, partnerID, adminID string) (bool, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return false, err
	}
	if _, err := e.loadService(ctx, serviceID); err != nil {
		return false, err
	}
	if _, err := e.loadActive(ctx, partnerID); err != nil {
		return false, err
	}

	now := e.now()
	added, err := e.Services.AuthorizePartner(ctx, serviceID, models.AuthorizedPartner{
		PartnerID: partnerID,
		DateAdded: now,
		AddedBy:   adminID,
	})
	if err != nil {
		return false, e.repoErr(err, "service %s not found", serviceID)
	}
	err = e.Partners.AddAssignedService(ctx, partnerID, models.AssignedService{
		ServiceID:  serviceID,
		AssignedBy: adminID,
		DateAdded:  now,
	})
	if err != nil {
		return false, e.repoErr(err, "commercial partner %s not found", partnerID)
	}
	if added {
		e.logger().Info("service assigned",
			zap.String("serviceId", serviceID), zap.String("partnerId", partnerID), zap.String("by", adminID))
	}
	return added, nil
}

func (e *DefaultProgressionEngine) UnassignService(ctx context.Context, serviceID, partnerID string) error {
	if err := e.checkPartnerID(partnerID); err != nil {
		return err
	}
	if err := e.Services.RevokePartner(ctx, serviceID, partnerID); err != nil {
		return e.repoErr(err, "service %s not found", serviceID)
	}
	if err := e.Partners.RemoveAssignedService(ctx, partnerID, serviceID); err != nil {
		return e.repoErr(err, "commercial partner %s not found", partnerID)
	}
	return nil
}

// DeactivatePartner soft-deletes the partner.
func (e *DefaultProgressionEngine) DeactivatePartner(ctx context.Context, partnerID string) error {
	if err := e.checkPartnerID(partnerID); err != nil {
		return err
	}
	if err := e.Partners.Deactivate(ctx, partnerID); err != nil {
		return e.repoErr(err, "commercial partner %s not found", partnerID)
	}
	e.invalidateStats(ctx, partnerID)
	return nil
}

// loadService fetches an active service or a NotFound error.
func (e *DefaultProgressionEngine) loadService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := e.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, e.repoErr(err, "service %s not found", serviceID)
	}
	if !svc.Active {
		return nil, utils.NotFound("service %s is no longer offered", serviceID)
	}
	return svc, nil
}

// repoErr turns repository.ErrNotFound into a NotFound error with the given message.
func (e *DefaultProgressionEngine) repoErr(err error, notFound string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(notFound, args...)
	}
	return utils.Internal(err, "storage request failed")
}
