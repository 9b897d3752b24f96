package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"partnerhub/database/repository"
	eventRepo "partnerhub/database/repository/event"
	"partnerhub/models"
)

var _ eventRepo.EventRepository = (*EventStore)(nil)

type EventStore struct {
	mu     sync.RWMutex
	events map[string]models.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]models.Event)}
}

func (s *EventStore) Create(_ context.Context, ev *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[ev.ID]; ok {
		return errors.New("duplicate event id " + ev.ID)
	}
	s.events[ev.ID] = *ev
	return nil
}

func (s *EventStore) Update(_ context.Context, ev *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[ev.ID]; !ok {
		return repository.ErrNotFound
	}
	s.events[ev.ID] = *ev
	return nil
}

func (s *EventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ev, nil
}

func (s *EventStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *EventStore) list(match func(models.Event) bool) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Event{}
	for _, ev := range s.events {
		if match(ev) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (s *EventStore) List(_ context.Context, f eventRepo.Filter) ([]models.Event, error) {
	return s.list(func(ev models.Event) bool {
		if f.TrainerID != "" && ev.TrainerID != f.TrainerID {
			return false
		}
		if f.From != "" && ev.Date < f.From {
			return false
		}
		if f.To != "" && ev.Date > f.To {
			return false
		}
		return true
	}), nil
}

func (s *EventStore) FindActiveByTrainerAndDate(_ context.Context, trainerID, date string) ([]models.Event, error) {
	return s.list(func(ev models.Event) bool {
		return ev.TrainerID == trainerID && ev.Date == date && ev.Status != models.EventCancelled
	}), nil
}
