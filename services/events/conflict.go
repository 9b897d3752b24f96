package events

import (
	"context"
	"fmt"

	eventRepo "partnerhub/database/repository/event"
	"partnerhub/models"

	"go.uber.org/zap"
)

// Interval is a [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func parseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether the candidate interval c intersects existing interval x.
// Touching endpoints do not overlap.
func (c Interval) Overlaps(x Interval) bool {
	startsInside := c.Start >= x.Start && c.Start < x.End
	endsInside := c.End > x.Start && c.End <= x.End
	contains := c.Start <= x.Start && c.End >= x.End
	return startsInside || endsInside || contains
}

// FindConflicts returns the events in existing that overlap candidate, ignoring
// cancelled events and the event whose id is excludeID. Events with unreadable
// times are skipped.
func FindConflicts(candidate Interval, existing []models.Event, excludeID string) []models.Event {
	var conflicts []models.Event
	for _, ev := range existing {
		if ev.Status == models.EventCancelled || (excludeID != "" && ev.ID == excludeID) {
			continue
		}
		iv, err := parseInterval(ev.StartTime, ev.EndTime)
		if err != nil {
			continue
		}
		if candidate.Start < candidate.End && iv.Start < iv.End && candidate.Overlaps(iv) {
			conflicts = append(conflicts, ev)
		}
	}
	return conflicts
}

// Checker looks up a trainer's events for a day and reports overlaps.
type Checker struct {
	Repo   eventRepo.EventRepository
	Logger *zap.Logger
}

// Check returns the trainer's non-cancelled events on date that overlap [start, end).
// excludeID removes the event being edited from the candidates.
func (c *Checker) Check(ctx context.Context, trainerID, date, start, end, excludeID string) ([]models.Event, error) {
	candidate, err := parseInterval(start, end)
	if err != nil {
		return nil, err
	}
	existing, err := c.Repo.FindActiveByTrainerAndDate(ctx, trainerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for trainer %s on %s: %w", trainerID, date, err)
	}
	conflicts := FindConflicts(candidate, existing, excludeID)
	if len(conflicts) > 0 && c.Logger != nil {
		c.Logger.Debug("event conflict detected",
			zap.String("trainerId", trainerID),
			zap.String("date", date),
			zap.Int("conflicts", len(conflicts)))
	}
	return conflicts, nil
}

// ConflictError lists the events a create or update would overlap.
type ConflictError struct {
	Conflicts []models.ConflictView
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps %d existing event(s)", len(e.Conflicts))
}

func newConflictError(events []models.Event) *ConflictError {
	views := make([]models.ConflictView, 0, len(events))
	for _, ev := range events {
		views = append(views, ev.ConflictView())
	}
	return &ConflictError{Conflicts: views}
}
