package commercial

import (
	"context"
	"errors"

	"partnerhub/database/repository"
	"partnerhub/models"
	"partnerhub/utils"

	"go.uber.org/zap"
)

// RecordSale records a sale of an authorized service. A confirmed sale is credited to the
// partner and then, as a separate best-effort step, to the service stats. When the second
// step fails the sale stays flagged and ReconcileServiceStats applies it later.
func (e *DefaultProgressionEngine) RecordSale(ctx context.Context, partnerID string, in models.SaleInput) (*models.SaleResult, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return nil, err
	}
	if in.Amount < 0 {
		return nil, utils.InvalidArgument("sale amount must not be negative")
	}
	if in.Commission < 0 {
		return nil, utils.InvalidArgument("sale commission must not be negative")
	}
	status := in.Status
	if status == "" {
		status = models.SaleConfirmed
	}
	switch status {
	case models.SaleConfirmed, models.SalePending, models.SaleCancelled:
	default:
		return nil, utils.InvalidArgument("unknown sale status %q", status)
	}

	if _, err := e.loadActive(ctx, partnerID); err != nil {
		return nil, err
	}
	svc, err := e.Services.GetByID(ctx, in.ServiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("service %s not found", in.ServiceID)
	}
	if err != nil {
		return nil, utils.Internal(err, "failed to load service %s", in.ServiceID)
	}
	if !svc.Active {
		return nil, utils.NotFound("service %s is no longer offered", in.ServiceID)
	}
	if !svc.IsAuthorized(partnerID) {
		return nil, utils.Forbidden("service %s is not authorized for partner %s", in.ServiceID, partnerID)
	}

	program := in.Program
	if program == "" {
		program = svc.Title
	}
	sale := models.Sale{
		ID:            e.newID(),
		ServiceID:     svc.ID,
		Client:        in.Client,
		ClientEmail:   in.ClientEmail,
		Program:       program,
		Amount:        in.Amount,
		Commission:    in.Commission,
		Status:        status,
		Date:          e.now(),
		PaymentMethod: in.PaymentMethod,
	}
	confirmed := status == models.SaleConfirmed

	p, err := e.mutate(ctx, partnerID, func(p *models.Partner) error {
		p.Sales = append(p.Sales, sale)
		if confirmed {
			applyConfirmedSale(p, sale.Amount, sale.Commission)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &models.SaleResult{
		Sale:        sale,
		NewTier:     p.Tier,
		TotalPoints: p.Points,
	}
	if confirmed {
		result.PointsEarned = PointsPerSale
		if err := e.applyServiceStats(ctx, partnerID, sale); err != nil {
			e.logger().Warn("service stats update deferred to reconciliation",
				zap.String("partnerId", partnerID),
				zap.String("serviceId", sale.ServiceID),
				zap.String("saleId", sale.ID),
				zap.Error(err),
			)
			result.StatsPending = true
		} else {
			result.Sale.StatsApplied = true
		}
	}
	return result, nil
}

// applyServiceStats folds a confirmed sale into its service stats and flags the sale.
// Both writes are idempotent, so it is safe to repeat after any partial failure.
func (e *DefaultProgressionEngine) applyServiceStats(ctx context.Context, partnerID string, sale models.Sale) error {
	if _, err := e.Services.ApplySaleStats(ctx, sale.ServiceID, sale.ID, sale.Amount, sale.Commission); err != nil {
		return err
	}
	return e.Partners.MarkSaleStatsApplied(ctx, partnerID, sale.ID)
}

// ReconcileServiceStats re-applies every confirmed sale whose service stats step did not
// complete. It continues past failures and reports them.
func (e *DefaultProgressionEngine) ReconcileServiceStats(ctx context.Context) (*models.ReconcileRun, error) {
	partners, err := e.Partners.ListWithPendingStats(ctx)
	if err != nil {
		return nil, utils.Internal(err, "failed to list partners with pending stats")
	}

	run := &models.ReconcileRun{}
	for _, p := range partners {
		for _, sale := range p.Sales {
			if sale.Status != models.SaleConfirmed || sale.StatsApplied || sale.ServiceID == "" {
				continue
			}
			if err := ctx.Err(); err != nil {
				return run, err
			}
			if err := e.applyServiceStats(ctx, p.PartnerID, sale); err != nil {
				e.logger().Warn("service stats reconciliation failed",
					zap.String("partnerId", p.PartnerID), zap.String("saleId", sale.ID), zap.Error(err))
				run.Failures = append(run.Failures, models.BatchFailure{PartnerID: p.PartnerID, Error: err.Error()})
				continue
			}
			run.Applied++
		}
	}
	e.logger().Info("service stats reconciliation finished",
		zap.Int("applied", run.Applied), zap.Int("failures", len(run.Failures)))
	return run, nil
}
