package commercial

import (
	"regexp"
	"time"

	"partnerhub/models"
)

const (
	// PointsPerSale is credited for every confirmed sale.
	PointsPerSale = 5
	// TierTwoPoints is the points balance that promotes tier 1 to tier 2.
	TierTwoPoints = 1000
	// MinimumTransfer is the smallest transfer that unlocks tier 3, and the revenue a
	// partner must have accumulated before declaring one.
	MinimumTransfer = 500
	// MonthlyGiftValue is credited to tier-3 partners once per calendar month.
	MonthlyGiftValue = 5

	reasonPointsReached = "1000 points reached"
	reasonTransferDone  = "500 currency units transferred to company"
)

var partnerIDPattern = regexp.MustCompile(`^COM-\d{6}$`)

// ValidPartnerID reports whether id has the COM-###### form.
func ValidPartnerID(id string) bool {
	return partnerIDPattern.MatchString(id)
}

// TierFacts are the aggregate values the tier rules look at.
type TierFacts struct {
	Points            int
	TransferCompleted bool
	TransferAmount    float64
}

func factsOf(p *models.Partner) TierFacts {
	return TierFacts{
		Points:            p.Points,
		TransferCompleted: p.TransferCompleted,
		TransferAmount:    p.TransferAmount,
	}
}

// EvaluateTier applies the promotion rules in order and returns the resulting tier and
// the history entry for the transition, if any. At most one step is taken per call: a
// partner meeting both conditions at tier 1 reaches tier 2 now and tier 3 on a later
// evaluation.
func EvaluateTier(tier int, facts TierFacts, now time.Time) (int, *models.TierChange) {
	switch {
	case tier == models.TierOne && facts.Points >= TierTwoPoints:
		return models.TierTwo, &models.TierChange{
			PreviousTier: models.TierOne,
			NewTier:      models.TierTwo,
			DateChanged:  now,
			Reason:       reasonPointsReached,
		}
	case tier == models.TierTwo && facts.TransferCompleted && facts.TransferAmount >= MinimumTransfer:
		return models.TierThree, &models.TierChange{
			PreviousTier: models.TierTwo,
			NewTier:      models.TierThree,
			DateChanged:  now,
			Reason:       reasonTransferDone,
		}
	}
	return tier, nil
}

// evaluateTier runs EvaluateTier against p and records the transition.
func evaluateTier(p *models.Partner, now time.Time) *models.TierChange {
	newTier, change := EvaluateTier(p.Tier, factsOf(p), now)
	if change != nil {
		p.Tier = newTier
		p.TierHistory = append(p.TierHistory, *change)
	}
	p.LastActivity = now
	return change
}

// applyConfirmedSale credits the accumulators for one confirmed sale.
func applyConfirmedSale(p *models.Partner, amount, commission float64) {
	p.Points += PointsPerSale
	p.PointsHistorical += PointsPerSale
	p.Revenue += amount
	p.TotalCommission += commission
}

// MonthKey formats the calendar month of t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// newPartner builds the tier-1 aggregate for a directory entry.
func newPartner(entry models.DirectoryEntry, now time.Time) *models.Partner {
	return &models.Partner{
		PartnerID:        entry.PartnerID,
		FullName:         entry.FullName(),
		Email:            entry.Email,
		Phone:            entry.Phone,
		Tier:             models.TierOne,
		MonthlyGifts:     []models.MonthlyGift{},
		Clients:          []models.Client{},
		Sales:            []models.Sale{},
		AssignedServices: []models.AssignedService{},
		TierHistory:      []models.TierChange{},
		Active:           true,
		LastActivity:     now,
	}
}

// Statistics projects p into its read-only statistics view.
func Statistics(p *models.Partner) models.PartnerStatistics {
	stats := models.PartnerStatistics{
		Tier:              p.Tier,
		Points:            p.Points,
		Revenue:           p.Revenue,
		TotalCommission:   p.TotalCommission,
		MonthlyGiftsCount: len(p.MonthlyGifts),
		TransferCompleted: p.TransferCompleted,
		TransferAmount:    p.TransferAmount,
	}
	for _, s := range p.Sales {
		if s.Status == models.SaleConfirmed {
			stats.ConfirmedSalesCount++
		}
	}
	for _, c := range p.Clients {
		if c.Status == models.ClientPaid {
			stats.PaidClientsCount++
		}
	}
	return stats
}
