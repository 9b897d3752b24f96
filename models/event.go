package models

import "time"

// Event statuses.
const (
	EventPlanned    = "planned"
	EventInProgress = "in_progress"
	EventDone       = "done"
	EventCancelled  = "cancelled"
	EventPostponed  = "postponed"
)

// Event is a trainer calendar entry. Times are naive local HH:MM strings.
type Event struct {
	ID              string    `bson:"id" json:"id"`
	TrainerID       string    `bson:"trainerId" json:"formateurId"`
	ProgramID       string    `bson:"programId,omitempty" json:"programmeId,omitempty"`
	Subject         string    `bson:"subject" json:"subject"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Location        string    `bson:"location,omitempty" json:"location,omitempty"`
	Date            string    `bson:"date" json:"date"` // YYYY-MM-DD
	StartTime       string    `bson:"startTime" json:"startTime"`
	EndTime         string    `bson:"endTime" json:"endTime"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EventInput is the create payload.
type EventInput struct {
	TrainerID   string `json:"formateurId" binding:"required"`
	ProgramID   string `json:"programmeId"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date" binding:"required,yyyymmdd"`
	StartTime   string `json:"startTime" binding:"required,hhmm"`
	EndTime     string `json:"endTime" binding:"required,hhmm"`
	Status      string `json:"status" binding:"omitempty,oneof=planned in_progress done cancelled postponed"`
}

// EventUpdate is the partial update payload; nil fields are left unchanged.
type EventUpdate struct {
	TrainerID   *string `json:"formateurId"`
	ProgramID   *string `json:"programmeId"`
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        *string `json:"date" binding:"omitempty,yyyymmdd"`
	StartTime   *string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime     *string `json:"endTime" binding:"omitempty,hhmm"`
	Status      *string `json:"status" binding:"omitempty,oneof=planned in_progress done cancelled postponed"`
}

// ConflictView is what a caller is shown about an overlapping event.
type ConflictView struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (e Event) ConflictView() ConflictView {
	return ConflictView{ID: e.ID, Subject: e.Subject, Date: e.Date, StartTime: e.StartTime, EndTime: e.EndTime}
}
