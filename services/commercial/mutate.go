package commercial

import (
	"context"
	"errors"

	"partnerhub/database/repository"
	"partnerhub/models"
	"partnerhub/utils"

	"go.uber.org/zap"
)

// maxSaveAttempts bounds the optimistic retry loop in mutate.
const maxSaveAttempts = 5

// errUnchanged lets a mutation report that nothing needs to be written.
var errUnchanged = errors.New("partner unchanged")

func (e *DefaultProgressionEngine) checkPartnerID(partnerID string) error {
	if !ValidPartnerID(partnerID) {
		return utils.InvalidArgument("invalid partner id %q (expected COM-######)", partnerID)
	}
	return nil
}

// loadActive fetches an active partner or a NotFound error.
func (e *DefaultProgressionEngine) loadActive(ctx context.Context, partnerID string) (*models.Partner, error) {
	p, err := e.Partners.GetByPartnerID(ctx, partnerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("commercial partner %s not found", partnerID)
	}
	if err != nil {
		return nil, utils.Internal(err, "failed to load partner %s", partnerID)
	}
	if !p.Active {
		return nil, utils.NotFound("commercial partner %s is inactive", partnerID)
	}
	return p, nil
}

// mutate loads the partner, applies fn, evaluates the tier rules and saves the result
// conditionally on the loaded version. A lost race reloads and reapplies fn, so fn must
// derive everything from the partner it is given. If fn returns errUnchanged nothing is
// written and the loaded partner is returned.
func (e *DefaultProgressionEngine) mutate(ctx context.Context, partnerID string, fn func(p *models.Partner) error) (*models.Partner, error) {
	var lastErr error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		p, err := e.loadActive(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		if err := fn(p); err != nil {
			if errors.Is(err, errUnchanged) {
				return p, nil
			}
			return nil, err
		}

		now := e.now()
		if change := evaluateTier(p, now); change != nil {
			e.logger().Info("partner tier changed",
				zap.String("partnerId", partnerID),
				zap.Int("from", change.PreviousTier),
				zap.Int("to", change.NewTier),
				zap.String("reason", change.Reason),
			)
		}

		err = e.Partners.Save(ctx, p, p.Version)
		if err == nil {
			e.invalidateStats(ctx, partnerID)
			return p, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, utils.Internal(err, "failed to save partner %s", partnerID)
		}
		lastErr = err
		e.logger().Debug("partner save lost a concurrent update, retrying",
			zap.String("partnerId", partnerID), zap.Int("attempt", attempt))
	}
	return nil, utils.Internal(lastErr, "partner %s is being updated concurrently, try again", partnerID)
}
