package models

import "time"

// SaleInput is the body of POST /commercial/:partnerId/vente.
type SaleInput struct {
	ServiceID     string  `json:"serviceId" binding:"required"`
	Client        string  `json:"client" binding:"required"`
	ClientEmail   string  `json:"clientEmail" binding:"omitempty,email"`
	Program       string  `json:"programme"`
	Amount        float64 `json:"montant" binding:"gte=0"`
	Commission    float64 `json:"commission" binding:"gte=0"`
	PaymentMethod string  `json:"methodePaiement"`
	Status        string  `json:"status" binding:"omitempty,oneof=confirmed pending cancelled"`
}

// ClientInput is the body of POST /commercial/:partnerId/client.
type ClientInput struct {
	Name    string  `json:"nom" binding:"required"`
	Email   string  `json:"email" binding:"omitempty,email"`
	Phone   string  `json:"telephone"`
	Company string  `json:"entreprise"`
	Status  string  `json:"status" binding:"omitempty,oneof=new paid cancelled pending"`
	Program string  `json:"programme"`
	Amount  float64 `json:"montant" binding:"gte=0"`
}

// TransferInput is the body of POST /commercial/:partnerId/transfert.
type TransferInput struct {
	Amount float64 `json:"montant"`
}

// AssignServiceInput is the body of the admin assign/unassign endpoints.
type AssignServiceInput struct {
	ServiceID string `json:"serviceId" binding:"required"`
	PartnerID string `json:"partnerId" binding:"required,partnerid"`
}

// SaleResult is returned after a sale has been recorded.
type SaleResult struct {
	Sale         Sale `json:"vente"`
	PointsEarned int  `json:"pointsGagnes"`
	NewTier      int  `json:"nouveauNiveau"`
	TotalPoints  int  `json:"totalPoints"`
	// StatsPending is true when the service stats step failed and awaits reconciliation.
	StatsPending bool `json:"statsPending,omitempty"`
}

// PartnerStatistics is the read-only projection returned by /stats.
type PartnerStatistics struct {
	Tier                int     `json:"niveau"`
	Points              int     `json:"points"`
	Revenue             float64 `json:"chiffreAffaires"`
	TotalCommission     float64 `json:"totalCommissions"`
	ConfirmedSalesCount int     `json:"ventesConfirmees"`
	PaidClientsCount    int     `json:"clientsPayes"`
	MonthlyGiftsCount   int     `json:"cadeauxMensuels"`
	TransferCompleted   bool    `json:"transfertEffectue"`
	TransferAmount      float64 `json:"montantTransfert"`
}

// PartnerSummary is returned from login and most mutations.
type PartnerSummary struct {
	PartnerID         string    `json:"partnerId"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Tier              int       `json:"niveau"`
	Points            int       `json:"points"`
	Revenue           float64   `json:"chiffreAffaires"`
	TotalCommission   float64   `json:"totalCommissions"`
	TransferCompleted bool      `json:"transfertEffectue"`
	LastActivity      time.Time `json:"derniereActivite"`
}

func (p *Partner) Summary() PartnerSummary {
	return PartnerSummary{
		PartnerID:         p.PartnerID,
		FullName:          p.FullName,
		Email:             p.Email,
		Tier:              p.Tier,
		Points:            p.Points,
		Revenue:           p.Revenue,
		TotalCommission:   p.TotalCommission,
		TransferCompleted: p.TransferCompleted,
		LastActivity:      p.LastActivity,
	}
}

// BatchFailure records one partner the monthly batch could not update.
type BatchFailure struct {
	PartnerID string `json:"partnerId"`
	Error     string `json:"error"`
}

// MonthlyGiftRun summarizes one run of the monthly gift batch.
type MonthlyGiftRun struct {
	Month     string         `json:"month"`
	Processed int            `json:"processed"`
	Gifted    int            `json:"gifted"`
	Failures  []BatchFailure `json:"failures,omitempty"`
}

// ReconcileRun summarizes a service-stats reconciliation pass.
type ReconcileRun struct {
	Applied  int            `json:"applied"`
	Failures []BatchFailure `json:"failures,omitempty"`
}
