package commercial

import (
	"context"

	"partnerhub/models"
	"partnerhub/utils"

	"go.uber.org/zap"
)

// AddMonthlyGift credits the monthly gift to a tier-3 partner. It is a no-op for other
// tiers and when the current month has already been gifted.
func (e *DefaultProgressionEngine) AddMonthlyGift(ctx context.Context, partnerID string) (bool, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return false, err
	}
	gifted := false
	_, err := e.mutate(ctx, partnerID, func(p *models.Partner) error {
		gifted = false
		if p.Tier != models.TierThree {
			return errUnchanged
		}
		now := e.now()
		month := MonthKey(now)
		if p.HasGiftFor(month) {
			return errUnchanged
		}
		p.MonthlyGifts = append(p.MonthlyGifts, models.MonthlyGift{
			Month:     month,
			Value:     MonthlyGiftValue,
			DateAdded: now,
		})
		p.TotalCommission += MonthlyGiftValue
		gifted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return gifted, nil
}

// RunMonthlyGifts applies AddMonthlyGift to every active tier-3 partner. A failing
// partner is recorded and the run moves on.
func (e *DefaultProgressionEngine) RunMonthlyGifts(ctx context.Context) (*models.MonthlyGiftRun, error) {
	partners, err := e.Partners.ListActiveByTier(ctx, models.TierThree)
	if err != nil {
		return nil, utils.Internal(err, "failed to list tier 3 partners")
	}

	run := &models.MonthlyGiftRun{Month: MonthKey(e.now())}
	for _, p := range partners {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		gifted, err := e.AddMonthlyGift(ctx, p.PartnerID)
		run.Processed++
		if err != nil {
			e.logger().Warn("monthly gift failed", zap.String("partnerId", p.PartnerID), zap.Error(err))
			run.Failures = append(run.Failures, models.BatchFailure{PartnerID: p.PartnerID, Error: err.Error()})
			continue
		}
		if gifted {
			run.Gifted++
		}
	}

	e.logger().Info("monthly gift run finished",
		zap.String("month", run.Month),
		zap.Int("processed", run.Processed),
		zap.Int("gifted", run.Gifted),
		zap.Int("failures", len(run.Failures)),
	)
	return run, nil
}
