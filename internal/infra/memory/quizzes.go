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

// QuizRepository is a map-backed store for quizzes.
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

var _ app.QuizRepository = (*QuizRepository)(nil)

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{quizzes: make(map[string]domain.Quiz)}
}

func (r *QuizRepository) Create(_ context.Context, quiz *domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	now := time.Now()
	quiz.CreatedAt, quiz.UpdatedAt = now, now
	r.quizzes[quiz.ID] = *quiz
	return nil
}

func (r *QuizRepository) GetByID(_ context.Context, id string) (*domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quizzes[id]
	if !ok {
		return nil, domain.ErrQuizNotFound
	}
	return &q, nil
}

func (r *QuizRepository) Update(_ context.Context, quiz *domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[quiz.ID]; !ok {
		return domain.ErrQuizNotFound
	}
	quiz.UpdatedAt = time.Now()
	r.quizzes[quiz.ID] = *quiz
	return nil
}

func (r *QuizRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[id]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	return nil
}

func (r *QuizRepository) List(_ context.Context, filter app.QuizFilter) ([]domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		if filter.EventID != "" && q.EventID != filter.EventID {
			continue
		}
		if filter.CreatedBy != "" && q.CreatedBy != filter.CreatedBy {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}
