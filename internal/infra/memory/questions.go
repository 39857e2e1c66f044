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

// QuestionRepository is a map-backed store for questions.
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[string]domain.Question
}

var _ app.QuestionRepository = (*QuestionRepository)(nil)

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[string]domain.Question)}
}

func (r *QuestionRepository) Create(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(question)
	return nil
}

func (r *QuestionRepository) CreateBatch(_ context.Context, questions []*domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range questions {
		r.insert(q)
	}
	return nil
}

func (r *QuestionRepository) insert(q *domain.Question) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	now := time.Now()
	q.CreatedAt, q.UpdatedAt = now, now
	r.questions[q.ID] = *q
}

func (r *QuestionRepository) GetByID(_ context.Context, id string) (*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return &q, nil
}

func (r *QuestionRepository) Update(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[question.ID]; !ok {
		return domain.ErrQuestionNotFound
	}
	question.UpdatedAt = time.Now()
	r.questions[question.ID] = *question
	return nil
}

func (r *QuestionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *QuestionRepository) DeleteBatch(_ context.Context, ids []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for _, id := range ids {
		if _, ok := r.questions[id]; ok {
			delete(r.questions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *QuestionRepository) ListByQuiz(_ context.Context, quizID string) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Question
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *QuestionRepository) ListByType(_ context.Context, t domain.QuestionType) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Question
	for _, q := range r.questions {
		if q.Type == t {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *QuestionRepository) CountByQuiz(_ context.Context, quizID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, q := range r.questions {
		if q.QuizID == quizID {
			n++
		}
	}
	return n, nil
}

func (r *QuestionRepository) IncrementStats(_ context.Context, id string, correct bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	q.TotalAttempts++
	if correct {
		q.CorrectAttempts++
	}
	r.questions[id] = q
	return nil
}
