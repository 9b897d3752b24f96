package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"partnerhub/database/repository"
	serviceRepo "partnerhub/database/repository/service"
	"partnerhub/models"
)

var _ serviceRepo.ServiceRepository = (*ServiceStore)(nil)

type ServiceStore struct {
	mu       sync.RWMutex
	services map[string]*models.Service

	// FailApplyStats makes ApplySaleStats fail while true.
	FailApplyStats bool
}

// ErrInjected is returned by operations a test has forced to fail.
var ErrInjected = errors.New("injected failure")

func NewServiceStore() *ServiceStore {
	return &ServiceStore{services: make(map[string]*models.Service)}
}

func (s *ServiceStore) Create(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; ok {
		return errors.New("duplicate service id " + svc.ID)
	}
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	s.services[svc.ID] = cloneService(svc)
	return nil
}

func (s *ServiceStore) GetByID(_ context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneService(svc), nil
}

func (s *ServiceStore) list(match func(*models.Service) bool) []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Service{}
	for _, svc := range s.services {
		if match(svc) {
			out = append(out, *cloneService(svc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (s *ServiceStore) List(_ context.Context, activeOnly bool) ([]models.Service, error) {
	return s.list(func(svc *models.Service) bool { return !activeOnly || svc.Active }), nil
}

func (s *ServiceStore) ListForPartner(_ context.Context, partnerID string) ([]models.Service, error) {
	return s.list(func(svc *models.Service) bool { return svc.Active && svc.IsAuthorized(partnerID) }), nil
}

func (s *ServiceStore) AuthorizePartner(_ context.Context, serviceID string, ap models.AuthorizedPartner) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if svc.IsAuthorized(ap.PartnerID) {
		return false, nil
	}
	svc.AuthorizedPartners = append(svc.AuthorizedPartners, ap)
	svc.UpdatedAt = time.Now()
	return true, nil
}

func (s *ServiceStore) RevokePartner(_ context.Context, serviceID, partnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok {
		return repository.ErrNotFound
	}
	svc.AuthorizedPartners = slices.DeleteFunc(svc.AuthorizedPartners, func(ap models.AuthorizedPartner) bool {
		return ap.PartnerID == partnerID
	})
	svc.UpdatedAt = time.Now()
	return nil
}

func (s *ServiceStore) ApplySaleStats(_ context.Context, serviceID, saleID string, amount, commission float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailApplyStats {
		return false, ErrInjected
	}
	svc, ok := s.services[serviceID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if slices.Contains(svc.AppliedSales, saleID) {
		return false, nil
	}
	svc.Stats.TotalSales++
	svc.Stats.RevenueGenerated += amount
	svc.Stats.TotalCommissionPaid += commission
	svc.AppliedSales = append(svc.AppliedSales, saleID)
	svc.UpdatedAt = time.Now()
	return true, nil
}

func (s *ServiceStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return repository.ErrNotFound
	}
	svc.Active = false
	svc.UpdatedAt = time.Now()
	return nil
}
