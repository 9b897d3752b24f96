package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"partnerhub/database/repository"
	partnerRepo "partnerhub/database/repository/partner"
	"partnerhub/models"
)

var _ partnerRepo.PartnerRepository = (*PartnerStore)(nil)

type PartnerStore struct {
	mu       sync.RWMutex
	partners map[string]*models.Partner

	// BeforeSave, when set, runs before each Save under no lock. Tests use it to
	// interleave a concurrent writer.
	BeforeSave func(partnerID string)
}

func NewPartnerStore() *PartnerStore {
	return &PartnerStore{partners: make(map[string]*models.Partner)}
}

// Put stores p as-is, replacing any existing partner. For seeding.
func (s *PartnerStore) Put(p *models.Partner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners[p.PartnerID] = clonePartner(p)
}

func (s *PartnerStore) GetByPartnerID(_ context.Context, partnerID string) (*models.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.partners[partnerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePartner(p), nil
}

func (s *PartnerStore) Provision(_ context.Context, p *models.Partner) (*models.Partner, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.partners[p.PartnerID]; ok {
		return clonePartner(existing), false, nil
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.partners[p.PartnerID] = clonePartner(p)
	return clonePartner(p), true, nil
}

func (s *PartnerStore) Save(_ context.Context, p *models.Partner, expectedVersion int) error {
	if s.BeforeSave != nil {
		s.BeforeSave(p.PartnerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.partners[p.PartnerID]
	if !ok || stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	p.Version = expectedVersion + 1
	p.UpdatedAt = time.Now()
	s.partners[p.PartnerID] = clonePartner(p)
	return nil
}

func (s *PartnerStore) list(match func(*models.Partner) bool) []models.Partner {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Partner
	for _, p := range s.partners {
		if match(p) {
			out = append(out, *clonePartner(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartnerID < out[j].PartnerID })
	return out
}

func (s *PartnerStore) ListActiveByTier(_ context.Context, tier int) ([]models.Partner, error) {
	return s.list(func(p *models.Partner) bool { return p.Active && p.Tier == tier }), nil
}

func (s *PartnerStore) ListWithPendingStats(_ context.Context) ([]models.Partner, error) {
	return s.list(func(p *models.Partner) bool {
		for _, sale := range p.Sales {
			if sale.Status == models.SaleConfirmed && !sale.StatsApplied && sale.ServiceID != "" {
				return true
			}
		}
		return false
	}), nil
}

// update mutates the stored partner in place and bumps its version.
func (s *PartnerStore) update(partnerID string, fn func(p *models.Partner) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.partners[partnerID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := fn(p); err != nil {
		return err
	}
	p.Version++
	p.UpdatedAt = time.Now()
	return nil
}

func (s *PartnerStore) MarkSaleStatsApplied(_ context.Context, partnerID, saleID string) error {
	return s.update(partnerID, func(p *models.Partner) error {
		sale := p.SaleByID(saleID)
		if sale == nil {
			return repository.ErrNotFound
		}
		sale.StatsApplied = true
		return nil
	})
}

func (s *PartnerStore) AddAssignedService(_ context.Context, partnerID string, svc models.AssignedService) error {
	return s.update(partnerID, func(p *models.Partner) error {
		if !p.HasService(svc.ServiceID) {
			p.AssignedServices = append(p.AssignedServices, svc)
		}
		return nil
	})
}

func (s *PartnerStore) RemoveAssignedService(_ context.Context, partnerID, serviceID string) error {
	return s.update(partnerID, func(p *models.Partner) error {
		kept := p.AssignedServices[:0]
		for _, as := range p.AssignedServices {
			if as.ServiceID != serviceID {
				kept = append(kept, as)
			}
		}
		p.AssignedServices = kept
		return nil
	})
}

func (s *PartnerStore) Deactivate(_ context.Context, partnerID string) error {
	return s.update(partnerID, func(p *models.Partner) error {
		p.Active = false
		return nil
	})
}
