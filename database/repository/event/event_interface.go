package eventRepo

import (
	"context"

	"partnerhub/models"
)

// Filter narrows ListByTrainer. Empty dates are open bounds; From and To are inclusive.
type Filter struct {
	TrainerID string
	From      string
	To        string
}

// EventRepository defines data access for trainer calendar entries.
type EventRepository interface {
	Create(ctx context.Context, ev *models.Event) error
	// Update replaces the stored event; repository.ErrNotFound when absent.
	Update(ctx context.Context, ev *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]models.Event, error)
	// FindActiveByTrainerAndDate returns the trainer's non-cancelled events on date.
	FindActiveByTrainerAndDate(ctx context.Context, trainerID, date string) ([]models.Event, error)
}
