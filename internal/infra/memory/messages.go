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

// MessageRepository is a map-backed store for bulk-message records.
type MessageRepository struct {
	mu       sync.RWMutex
	messages map[string]domain.Message
}

var _ app.MessageRepository = (*MessageRepository)(nil)

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{messages: make(map[string]domain.Message)}
}

func (r *MessageRepository) Create(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.messages[m.ID] = *m
	return nil
}

func (r *MessageRepository) GetByID(_ context.Context, id string) (*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	return &m, nil
}

func (r *MessageRepository) Update(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[m.ID]; !ok {
		return domain.ErrMessageNotFound
	}
	m.UpdatedAt = time.Now()
	r.messages[m.ID] = *m
	return nil
}

func (r *MessageRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(r.messages, id)
	return nil
}

func (r *MessageRepository) List(_ context.Context, sentBy string, status domain.MessageStatus) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		if sentBy != "" && m.SentBy != sentBy {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
