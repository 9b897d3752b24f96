package commercial

import (
	"context"

	"partnerhub/models"

	"go.uber.org/zap"
)

func (e *DefaultProgressionEngine) GetStatistics(ctx context.Context, partnerID string) (*models.PartnerStatistics, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return nil, err
	}
	cacheable := false
	var gen int64
	if e.Cache != nil {
		if stats, ok := e.Cache.Get(ctx, partnerID); ok {
			return stats, nil
		}
		var err error
		if gen, err = e.Cache.Generation(ctx, partnerID); err == nil {
			cacheable = true
		} else {
			e.logger().Warn("stats cache generation unavailable", zap.String("partnerId", partnerID), zap.Error(err))
		}
	}

	// The generation is read before the load: a save that lands after this point
	// advances it and the snapshot below is not cached.
	p, err := e.loadActive(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	stats := Statistics(p)
	if cacheable {
		e.Cache.Set(ctx, partnerID, gen, stats)
	}
	return &stats, nil
}

func (e *DefaultProgressionEngine) invalidateStats(ctx context.Context, partnerID string) {
	if e.Cache != nil {
		e.Cache.Invalidate(ctx, partnerID)
	}
}
