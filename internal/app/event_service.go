package app

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"quiz-contest-service/internal/domain"
)

// EventService contains the contest-event use cases.
type EventService struct {
	events   EventRepository
	users    UserRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewEventService(events EventRepository, users UserRepository) *EventService {
	return &EventService{
		events:   events,
		users:    users,
		validate: newValidator(),
		now:      time.Now,
	}
}

// CreateEventInput carries the admin event form.
type CreateEventInput struct {
	Title           string             `json:"title" validate:"required"`
	Description     string             `json:"description"`
	StartDate       time.Time          `json:"startDate" validate:"required"`
	EndDate         time.Time          `json:"endDate" validate:"required"`
	Location        string             `json:"location"`
	MaxParticipants int                `json:"maxParticipants" validate:"omitempty,min=0"`
	RegistrationFee float64            `json:"registrationFee" validate:"omitempty,min=0"`
	Organizer       string             `json:"organizer"`
	ContactInfo     domain.ContactInfo `json:"contactInfo"`
}

// Create validates and stores an event in the upcoming state.
func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*domain.Event, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, domain.NewValidationError(map[string]string{"endDate": "must be after startDate"})
	}

	event := &domain.Event{
		Title:           in.Title,
		Description:     in.Description,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Location:        in.Location,
		Status:          domain.EventUpcoming,
		MaxParticipants: in.MaxParticipants,
		RegistrationFee: in.RegistrationFee,
		Organizer:       in.Organizer,
		ContactInfo:     in.ContactInfo,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Get fetches one event.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// List returns events, optionally filtered by status.
func (s *EventService) List(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown event status"})
	}
	return s.events.List(ctx, status)
}

// Update applies an allow-listed partial update.
func (s *EventService) Update(ctx context.Context, id string, update *domain.EventUpdate) (*domain.Event, error) {
	if err := validateStruct(s.validate, update); err != nil {
		return nil, err
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown event status"})
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(event)
	if !event.EndDate.After(event.StartDate) {
		return nil, domain.NewValidationError(map[string]string{"endDate": "must be after startDate"})
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// Register adds a user to the event, respecting the participant cap.
// Registering twice is a no-op.
func (s *EventService) Register(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	for _, id := range event.ParticipantIDs {
		if id == userID {
			return event, nil
		}
	}
	if !event.HasCapacity() {
		return nil, domain.ErrEventFull
	}
	event.ParticipantIDs = append(event.ParticipantIDs, userID)
	event.CurrentParticipants = len(event.ParticipantIDs)
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Participants returns the public profiles registered for an event.
func (s *EventService) Participants(ctx context.Context, eventID string) ([]domain.PublicProfile, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.PublicProfile, 0, len(event.ParticipantIDs))
	for _, id := range event.ParticipantIDs {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			continue
		}
		profiles = append(profiles, user.Public())
	}
	return profiles, nil
}
