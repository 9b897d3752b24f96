package commercial

import (
	"context"
	"errors"

	"partnerhub/database/repository"
	"partnerhub/utils"

	"go.uber.org/zap"
)

func (e *DefaultProgressionEngine) Login(ctx context.Context, partnerID string) (*LoginResult, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return nil, err
	}

	p, err := e.Partners.GetByPartnerID(ctx, partnerID)
	switch {
	case err == nil:
		if !p.Active {
			return nil, utils.NotFound("commercial partner %s is inactive", partnerID)
		}
		return &LoginResult{Partner: p}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, utils.Internal(err, "failed to load partner %s", partnerID)
	}

	entry, err := e.Directory.GetByPartnerID(ctx, partnerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("partner %s is not registered in the partner directory", partnerID)
	}
	if err != nil {
		return nil, utils.Internal(err, "failed to look up partner %s in the directory", partnerID)
	}
	if !entry.IsActive() {
		return nil, utils.NotFound("partner %s is disabled in the partner directory", partnerID)
	}

	stored, created, err := e.Partners.Provision(ctx, newPartner(*entry, e.now()))
	if err != nil {
		return nil, utils.Internal(err, "failed to provision partner %s", partnerID)
	}
	if !stored.Active {
		return nil, utils.NotFound("commercial partner %s is inactive", partnerID)
	}
	if created {
		e.logger().Info("partner provisioned from directory", zap.String("partnerId", partnerID))
	}
	return &LoginResult{Partner: stored, Provisioned: created}, nil
}
