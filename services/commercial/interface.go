package commercial

import (
	"context"
	"fmt"
	"time"

	directoryRepo "partnerhub/database/repository/directory"
	partnerRepo "partnerhub/database/repository/partner"
	serviceRepo "partnerhub/database/repository/service"
	"partnerhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressionEngine owns partner tiers, accruals and the service catalogue access list.
// Failed preconditions are returned as *utils.AppError.
type ProgressionEngine interface {
	// Login returns the partner, provisioning it from the directory on first access.
	Login(ctx context.Context, partnerID string) (*LoginResult, error)
	ListServices(ctx context.Context, partnerID string) ([]models.Service, error)

	RecordSale(ctx context.Context, partnerID string, in models.SaleInput) (*models.SaleResult, error)
	RecordClient(ctx context.Context, partnerID string, in models.ClientInput) (*models.Client, error)
	RecordTransfer(ctx context.Context, partnerID string, amount float64) (*models.Partner, error)
	GetStatistics(ctx context.Context, partnerID string) (*models.PartnerStatistics, error)

	AddMonthlyGift(ctx context.Context, partnerID string) (gifted bool, err error)
	RunMonthlyGifts(ctx context.Context) (*models.MonthlyGiftRun, error)

	CreateService(ctx context.Context, in models.ServiceInput, adminID string) (*models.Service, error)
	// ListCatalogue returns every service, inactive ones too when includeInactive is set.
	ListCatalogue(ctx context.Context, includeInactive bool) ([]models.Service, error)
	DeactivateService(ctx context.Context, serviceID, adminID string) error
	AssignService(ctx context.Context, serviceID, partnerID, adminID string) (added bool, err error)
	UnassignService(ctx context.Context, serviceID, partnerID string) error
	ReconcileServiceStats(ctx context.Context) (*models.ReconcileRun, error)
	DeactivatePartner(ctx context.Context, partnerID string) error
}

// LoginResult is the partner summary plus whether this login provisioned it.
type LoginResult struct {
	Partner     *models.Partner
	Provisioned bool
}

// DefaultProgressionEngine is the production implementation.
type DefaultProgressionEngine struct {
	Partners  partnerRepo.PartnerRepository
	Services  serviceRepo.ServiceRepository
	Directory directoryRepo.DirectoryRepository
	// Cache may be nil.
	Cache  StatsCache
	Logger *zap.Logger
	Now    func() time.Time
	NewID  func() string
}

var _ ProgressionEngine = (*DefaultProgressionEngine)(nil)

func NewDefaultProgressionEngine(
	partners partnerRepo.PartnerRepository,
	services serviceRepo.ServiceRepository,
	directory directoryRepo.DirectoryRepository,
	cache StatsCache,
	logger *zap.Logger,
) (*DefaultProgressionEngine, error) {
	if partners == nil || services == nil || directory == nil {
		return nil, fmt.Errorf("progression engine initialization error: one or more repositories are nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultProgressionEngine{
		Partners:  partners,
		Services:  services,
		Directory: directory,
		Cache:     cache,
		Logger:    logger,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}, nil
}

func (e *DefaultProgressionEngine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *DefaultProgressionEngine) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

func (e *DefaultProgressionEngine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
