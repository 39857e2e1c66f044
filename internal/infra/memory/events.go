package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

// EventRepository is a map-backed store for events.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

var _ app.EventRepository = (*EventRepository)(nil)

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]domain.Event)}
}

func (r *EventRepository) Create(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now()
	event.CreatedAt, event.UpdatedAt = now, now
	r.events[event.ID] = *event
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (r *EventRepository) Update(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	event.UpdatedAt = time.Now()
	r.events[event.ID] = *event
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *EventRepository) List(_ context.Context, status domain.EventStatus) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}
