package models

import "time"

// Partner tiers.
const (
	TierOne   = 1
	TierTwo   = 2
	TierThree = 3
)

// Sale statuses.
const (
	SaleConfirmed = "confirmed"
	SalePending   = "pending"
	SaleCancelled = "cancelled"
)

// Client statuses.
const (
	ClientNew       = "new"
	ClientPaid      = "paid"
	ClientCancelled = "cancelled"
	ClientPending   = "pending"
)

// Partner is the progression aggregate of a commercial partner, stored in
// the partners_progression collection.
type Partner struct {
	PartnerID string `bson:"partnerId" json:"partnerId"` // COM-######
	FullName  string `bson:"fullName" json:"fullName"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`

	Tier             int     `bson:"tier" json:"tier"`
	Points           int     `bson:"points" json:"points"`
	PointsHistorical int     `bson:"pointsHistorical" json:"pointsHistorical"`
	Revenue          float64 `bson:"revenue" json:"revenue"`
	TotalCommission  float64 `bson:"totalCommission" json:"totalCommission"`

	TransferCompleted bool       `bson:"transferCompleted" json:"transferCompleted"`
	TransferAmount    float64    `bson:"transferAmount" json:"transferAmount"`
	TransferDate      *time.Time `bson:"transferDate,omitempty" json:"transferDate,omitempty"`

	MonthlyGifts     []MonthlyGift     `bson:"monthlyGifts" json:"monthlyGifts"`
	Clients          []Client          `bson:"clients" json:"clients"`
	Sales            []Sale            `bson:"sales" json:"sales"`
	AssignedServices []AssignedService `bson:"assignedServices" json:"assignedServices"`
	TierHistory      []TierChange      `bson:"tierHistory" json:"tierHistory"`

	Active       bool      `bson:"active" json:"active"`
	LastActivity time.Time `bson:"lastActivity" json:"lastActivity"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// Version is incremented on every write and guards concurrent updates.
	Version int `bson:"version" json:"-"`
}

// MonthlyGift is the tier-3 monthly reward; at most one per Month.
type MonthlyGift struct {
	Month     string    `bson:"month" json:"month"` // YYYY-MM
	Value     float64   `bson:"value" json:"value"`
	DateAdded time.Time `bson:"dateAdded" json:"dateAdded"`
}

type Client struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company   string    `bson:"company,omitempty" json:"company,omitempty"`
	Status    string    `bson:"status" json:"status"`
	Program   string    `bson:"program,omitempty" json:"program,omitempty"`
	Amount    float64   `bson:"amount" json:"amount"`
	DateAdded time.Time `bson:"dateAdded" json:"dateAdded"`
}

type Sale struct {
	ID            string    `bson:"id" json:"id"`
	ServiceID     string    `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Client        string    `bson:"client" json:"client"`
	ClientEmail   string    `bson:"clientEmail,omitempty" json:"clientEmail,omitempty"`
	Program       string    `bson:"program,omitempty" json:"program,omitempty"`
	Amount        float64   `bson:"amount" json:"amount"`
	Commission    float64   `bson:"commission" json:"commission"`
	Status        string    `bson:"status" json:"status"`
	Date          time.Time `bson:"date" json:"date"`
	PaymentMethod string    `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`

	// StatsApplied is set once the sale has been folded into the service stats.
	StatsApplied bool `bson:"statsApplied" json:"statsApplied"`
}

type AssignedService struct {
	ServiceID  string    `bson:"serviceId" json:"serviceId"`
	AssignedBy string    `bson:"assignedBy,omitempty" json:"assignedBy,omitempty"`
	DateAdded  time.Time `bson:"dateAdded" json:"dateAdded"`
}

// TierChange is an append-only tierHistory entry.
type TierChange struct {
	PreviousTier int       `bson:"previousTier" json:"previousTier"`
	NewTier      int       `bson:"newTier" json:"newTier"`
	DateChanged  time.Time `bson:"dateChanged" json:"dateChanged"`
	Reason       string    `bson:"reason" json:"reason"`
}

// HasService reports whether serviceID is among the partner's assigned services.
func (p *Partner) HasService(serviceID string) bool {
	for _, s := range p.AssignedServices {
		if s.ServiceID == serviceID {
			return true
		}
	}
	return false
}

// HasGiftFor reports whether a monthly gift was already issued for month.
func (p *Partner) HasGiftFor(month string) bool {
	for _, g := range p.MonthlyGifts {
		if g.Month == month {
			return true
		}
	}
	return false
}

// SaleByID returns a pointer into Sales, or nil.
func (p *Partner) SaleByID(id string) *Sale {
	for i := range p.Sales {
		if p.Sales[i].ID == id {
			return &p.Sales[i]
		}
	}
	return nil
}
