package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"partnerhub/database/repository"
	eventRepo "partnerhub/database/repository/event"
	"partnerhub/models"
	"partnerhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventService manages trainer calendar entries. Create and Update refuse to
// schedule a non-cancelled event over another one of the same trainer.
type EventService interface {
	Create(ctx context.Context, in models.EventInput) (*models.Event, error)
	Update(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, f eventRepo.Filter) ([]models.Event, error)
	Delete(ctx context.Context, id string) error
}

type DefaultEventService struct {
	Repo    eventRepo.EventRepository
	Checker *Checker
	Logger  *zap.Logger
	Now     func() time.Time
	NewID   func() string
}

var _ EventService = (*DefaultEventService)(nil)

func NewDefaultEventService(repo eventRepo.EventRepository, logger *zap.Logger) *DefaultEventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEventService{
		Repo:    repo,
		Checker: &Checker{Repo: repo, Logger: logger},
		Logger:  logger,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

func (s *DefaultEventService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultEventService) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

func (s *DefaultEventService) Create(ctx context.Context, in models.EventInput) (*models.Event, error) {
	now := s.now()
	ev := &models.Event{
		ID:          s.newID(),
		TrainerID:   strings.TrimSpace(in.TrainerID),
		ProgramID:   in.ProgramID,
		Subject:     in.Subject,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ev.Status == "" {
		ev.Status = models.EventPlanned
	}
	if err := s.prepare(ctx, ev, ""); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, ev); err != nil {
		return nil, utils.Internal(err, "failed to create event")
	}
	s.Logger.Info("event created",
		zap.String("eventId", ev.ID), zap.String("trainerId", ev.TrainerID), zap.String("date", ev.Date))
	return ev, nil
}

// Update merges upd into the stored event, recomputes its duration and re-checks
// conflicts against the trainer's other events.
func (s *DefaultEventService) Update(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyUpdate(ev, upd)
	if err := s.prepare(ctx, ev, ev.ID); err != nil {
		return nil, err
	}
	ev.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("event %s not found", id)
		}
		return nil, utils.Internal(err, "failed to update event %s", id)
	}
	return ev, nil
}

func applyUpdate(ev *models.Event, upd models.EventUpdate) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&ev.TrainerID, upd.TrainerID)
	set(&ev.ProgramID, upd.ProgramID)
	set(&ev.Subject, upd.Subject)
	set(&ev.Description, upd.Description)
	set(&ev.Location, upd.Location)
	set(&ev.Date, upd.Date)
	set(&ev.StartTime, upd.StartTime)
	set(&ev.EndTime, upd.EndTime)
	set(&ev.Status, upd.Status)
	ev.TrainerID = strings.TrimSpace(ev.TrainerID)
}

// prepare validates ev, derives its duration and, unless it is cancelled, checks
// it against the trainer's schedule.
func (s *DefaultEventService) prepare(ctx context.Context, ev *models.Event, excludeID string) error {
	if ev.TrainerID == "" {
		return utils.InvalidArgument("formateurId is required")
	}
	if !ValidDate(ev.Date) {
		return utils.InvalidArgument("invalid date %q (expected YYYY-MM-DD)", ev.Date)
	}
	if !validStatus(ev.Status) {
		return utils.InvalidArgument("unknown event status %q", ev.Status)
	}
	duration, err := Duration(ev.StartTime, ev.EndTime)
	if err != nil {
		return utils.InvalidArgument("%s", err.Error())
	}
	ev.DurationMinutes = duration

	if ev.Status == models.EventCancelled {
		return nil
	}
	conflicts, err := s.Checker.Check(ctx, ev.TrainerID, ev.Date, ev.StartTime, ev.EndTime, excludeID)
	if err != nil {
		return utils.Internal(err, "failed to check trainer schedule")
	}
	if len(conflicts) > 0 {
		return &utils.AppError{
			Kind:    utils.KindConflict,
			Message: fmt.Sprintf("schedule conflict: trainer %s already has %d event(s) in this slot", ev.TrainerID, len(conflicts)),
			Err:     newConflictError(conflicts),
		}
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case models.EventPlanned, models.EventInProgress, models.EventDone, models.EventCancelled, models.EventPostponed:
		return true
	}
	return false
}

func (s *DefaultEventService) Get(ctx context.Context, id string) (*models.Event, error) {
	ev, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NotFound("event %s not found", id)
	}
	if err != nil {
		return nil, utils.Internal(err, "failed to load event %s", id)
	}
	return ev, nil
}

func (s *DefaultEventService) List(ctx context.Context, f eventRepo.Filter) ([]models.Event, error) {
	if f.From != "" && !ValidDate(f.From) {
		return nil, utils.InvalidArgument("invalid from date %q", f.From)
	}
	if f.To != "" && !ValidDate(f.To) {
		return nil, utils.InvalidArgument("invalid to date %q", f.To)
	}
	events, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, utils.Internal(err, "failed to list events")
	}
	return events, nil
}

func (s *DefaultEventService) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound("event %s not found", id)
	}
	if err != nil {
		return utils.Internal(err, "failed to delete event %s", id)
	}
	return nil
}
