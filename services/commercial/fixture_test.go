package commercial

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"partnerhub/database/repository/memory"
	"partnerhub/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	engine    *DefaultProgressionEngine
	partners  *memory.PartnerStore
	services  *memory.ServiceStore
	directory *memory.DirectoryStore

	mu  sync.Mutex
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		partners:  memory.NewPartnerStore(),
		services:  memory.NewServiceStore(),
		directory: memory.NewDirectoryStore(),
		now:       time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	engine, err := NewDefaultProgressionEngine(f.partners, f.services, f.directory, nil, zap.NewNop())
	require.NoError(t, err)

	var seq int
	var seqMu sync.Mutex
	engine.Now = f.clock
	engine.NewID = func() string {
		seqMu.Lock()
		defer seqMu.Unlock()
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	f.engine = engine
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) setNow(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// seedPartner stores an active partner; zero Tier means tier 1.
func (f *fixture) seedPartner(t *testing.T, p models.Partner) {
	t.Helper()
	if p.PartnerID == "" {
		p.PartnerID = "COM-000001"
	}
	if p.Tier == 0 {
		p.Tier = models.TierOne
	}
	p.Active = true
	f.partners.Put(&p)
}

func (f *fixture) seedService(t *testing.T, id string, authorized ...string) {
	t.Helper()
	svc := &models.Service{ID: id, Title: "Programme " + id, Active: true}
	for _, pid := range authorized {
		svc.AuthorizedPartners = append(svc.AuthorizedPartners, models.AuthorizedPartner{PartnerID: pid})
	}
	require.NoError(t, f.services.Create(context.Background(), svc))
}

func (f *fixture) partner(t *testing.T, id string) *models.Partner {
	t.Helper()
	p, err := f.partners.GetByPartnerID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) service(t *testing.T, id string) *models.Service {
	t.Helper()
	svc, err := f.services.GetByID(context.Background(), id)
	require.NoError(t, err)
	return svc
}

func sale(serviceID string, amount, commission float64) models.SaleInput {
	return models.SaleInput{
		ServiceID:     serviceID,
		Client:        "Client SARL",
		ClientEmail:   "client@example.com",
		Amount:        amount,
		Commission:    commission,
		PaymentMethod: "virement",
	}
}
