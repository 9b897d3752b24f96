package commercial

import (
	"context"

	"partnerhub/models"
	"partnerhub/utils"
)

// RecordClient adds a client to a partner's portfolio. Available from tier 2.
func (e *DefaultProgressionEngine) RecordClient(ctx context.Context, partnerID string, in models.ClientInput) (*models.Client, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return nil, err
	}
	if in.Amount < 0 {
		return nil, utils.InvalidArgument("client amount must not be negative")
	}
	status := in.Status
	if status == "" {
		status = models.ClientNew
	}
	switch status {
	case models.ClientNew, models.ClientPaid, models.ClientCancelled, models.ClientPending:
	default:
		return nil, utils.InvalidArgument("unknown client status %q", status)
	}

	client := models.Client{
		ID:        e.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Status:    status,
		Program:   in.Program,
		Amount:    in.Amount,
		DateAdded: e.now(),
	}

	_, err := e.mutate(ctx, partnerID, func(p *models.Partner) error {
		if p.Tier < models.TierTwo {
			return utils.Forbidden("feature available from tier 2 (current tier %d)", p.Tier)
		}
		p.Clients = append(p.Clients, client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// RecordTransfer declares the funds a tier-2 partner moved to the company. A valid
// transfer promotes the partner to tier 3 in the same write.
func (e *DefaultProgressionEngine) RecordTransfer(ctx context.Context, partnerID string, amount float64) (*models.Partner, error) {
	if err := e.checkPartnerID(partnerID); err != nil {
		return nil, err
	}

	return e.mutate(ctx, partnerID, func(p *models.Partner) error {
		if p.Tier != models.TierTwo {
			return utils.InvalidState("transfer available only at tier 2 (current tier %d)", p.Tier)
		}
		if amount < MinimumTransfer {
			return utils.InvalidArgument("transfer amount insufficient (minimum %d)", MinimumTransfer)
		}
		if p.Revenue < MinimumTransfer {
			return utils.InvalidArgument("revenue insufficient (minimum %d)", MinimumTransfer)
		}
		now := e.now()
		p.TransferCompleted = true
		p.TransferAmount = amount
		p.TransferDate = &now
		return nil
	})
}
