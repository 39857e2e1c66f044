package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuizNotFound indicates the quiz could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrParticipationNotFound indicates the participation record is absent.
	ErrParticipationNotFound = errors.New("participation not found")
	// ErrEventNotFound indicates the event could not be loaded.
	ErrEventNotFound = errors.New("event not found")
	// ErrMessageNotFound indicates the bulk message record is absent.
	ErrMessageNotFound = errors.New("message not found")
	// ErrContentNotFound covers banners, offers, judge panels, FAQs and
	// time instructions.
	ErrContentNotFound = errors.New("content not found")

	// ErrDuplicateParticipation is returned when a user already holds a
	// participation for the quiz. The authoritative guard is the unique
	// (user, quiz) constraint at the storage layer.
	ErrDuplicateParticipation = errors.New("user has already participated in this quiz")
	// ErrParticipationCompleted is returned when completing a participation
	// that has already left the in-progress state.
	ErrParticipationCompleted = errors.New("participation already completed")
	// ErrQuizNotActive is returned when starting a quiz outside its window
	// or before it is published.
	ErrQuizNotActive = errors.New("quiz is not active")
	// ErrContactTaken is returned on registration with a known contact number.
	ErrContactTaken = errors.New("user with this contact number already exists")
	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid contact number or password")
	// ErrAccountDisabled is returned when a deactivated user logs in.
	ErrAccountDisabled = errors.New("account is deactivated")
	// ErrEventFull is returned when an event has reached its participant cap.
	ErrEventFull = errors.New("event is full")
)

// ValidationError carries per-field messages for malformed requests.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrParticipationNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrMessageNotFound) ||
		errors.Is(err, ErrContentNotFound)
}

// IsConflict reports whether err is an already-exists style violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateParticipation) ||
		errors.Is(err, ErrParticipationCompleted) ||
		errors.Is(err, ErrContactTaken) ||
		errors.Is(err, ErrEventFull)
}
