package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// EventStatus is the lifecycle state of a contest event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventUpcoming, EventActive, EventCompleted, EventCancelled:
		return true
	default:
		return false
	}
}

// ContactInfo is the organizer contact block.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Event groups quizzes under one scheduled contest.
type Event struct {
	bun.BaseModel `bun:"table:events" json:"-"`

	ID          string      `bun:"id,pk" json:"id"`
	Title       string      `bun:"title" json:"title"`
	Description string      `bun:"description" json:"description,omitempty"`
	StartDate   time.Time   `bun:"start_date" json:"startDate"`
	EndDate     time.Time   `bun:"end_date" json:"endDate"`
	Location    string      `bun:"location" json:"location,omitempty"`
	Status      EventStatus `bun:"status" json:"status"`

	// MaxParticipants of 0 means unlimited.
	MaxParticipants     int `bun:"max_participants" json:"maxParticipants"`
	CurrentParticipants int `bun:"current_participants" json:"currentParticipants"`

	RegistrationFee float64     `bun:"registration_fee" json:"registrationFee"`
	Organizer       string      `bun:"organizer" json:"organizer,omitempty"`
	ContactInfo     ContactInfo `bun:"contact_info,type:jsonb" json:"contactInfo"`

	ParticipantIDs []string `bun:"participant_ids,type:jsonb" json:"participantIds,omitempty"`

	CreatedAt time.Time `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at" json:"updatedAt"`
}

// Window returns the scheduled event window.
func (e *Event) Window() (time.Time, time.Time) { return e.StartDate, e.EndDate }

// Live reports whether the event status admits interaction.
func (e *Event) Live() bool { return e.Status == EventActive }

// HasCapacity reports whether another participant can register.
func (e *Event) HasCapacity() bool {
	return e.MaxParticipants == 0 || e.CurrentParticipants < e.MaxParticipants
}

// EventUpdate is the allow-list of mutable event fields.
type EventUpdate struct {
	Title           *string      `json:"title,omitempty"`
	Description     *string      `json:"description,omitempty"`
	StartDate       *time.Time   `json:"startDate,omitempty"`
	EndDate         *time.Time   `json:"endDate,omitempty"`
	Location        *string      `json:"location,omitempty"`
	Status          *EventStatus `json:"status,omitempty"`
	MaxParticipants *int         `json:"maxParticipants,omitempty" validate:"omitempty,min=0"`
	RegistrationFee *float64     `json:"registrationFee,omitempty" validate:"omitempty,min=0"`
	Organizer       *string      `json:"organizer,omitempty"`
	ContactInfo     *ContactInfo `json:"contactInfo,omitempty"`
}

func (u *EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.StartDate != nil {
		e.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		e.EndDate = *u.EndDate
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	if u.MaxParticipants != nil {
		e.MaxParticipants = *u.MaxParticipants
	}
	if u.RegistrationFee != nil {
		e.RegistrationFee = *u.RegistrationFee
	}
	if u.ContactInfo != nil {
		e.ContactInfo = *u.ContactInfo
	}
	if u.Organizer != nil {
		e.Organizer = *u.Organizer
	}
}
