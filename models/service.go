package models

import "time"

// Service is a catalogue offering that partners may sell once authorized.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Category    string  `bson:"category,omitempty" json:"category,omitempty"`
	PublicPrice float64 `bson:"publicPrice" json:"publicPrice"`
	// PartnerPrice is the price a partner sells at.
	PartnerPrice float64 `bson:"partnerPrice" json:"partnerPrice"`
	Commission   float64 `bson:"commission" json:"commission"`
	Duration     string  `bson:"duration,omitempty" json:"duration,omitempty"`

	AuthorizedPartners []AuthorizedPartner `bson:"authorizedPartners" json:"authorizedPartners"`
	Stats              ServiceStats        `bson:"stats" json:"stats"`
	// AppliedSales lists the sale ids already counted in Stats.
	AppliedSales []string `bson:"appliedSales" json:"-"`

	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type AuthorizedPartner struct {
	PartnerID string    `bson:"partnerId" json:"partnerId"`
	DateAdded time.Time `bson:"dateAdded" json:"dateAdded"`
	AddedBy   string    `bson:"addedBy,omitempty" json:"addedBy,omitempty"`
}

type ServiceStats struct {
	TotalSales          int     `bson:"totalSales" json:"totalSales"`
	RevenueGenerated    float64 `bson:"revenueGenerated" json:"revenueGenerated"`
	TotalCommissionPaid float64 `bson:"totalCommissionPaid" json:"totalCommissionPaid"`
}

// IsAuthorized reports whether partnerID is on the access-control list.
func (s *Service) IsAuthorized(partnerID string) bool {
	for _, ap := range s.AuthorizedPartners {
		if ap.PartnerID == partnerID {
			return true
		}
	}
	return false
}

// ServiceInput is the admin payload for creating a catalogue entry.
type ServiceInput struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	PublicPrice  float64 `json:"publicPrice" binding:"gte=0"`
	PartnerPrice float64 `json:"partnerPrice" binding:"gte=0"`
	Commission   float64 `json:"commission" binding:"gte=0"`
	Duration     string  `json:"duration"`
}
