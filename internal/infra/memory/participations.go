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

// ParticipationRepository is a map-backed store. Create enforces the one
// attempt per (user, quiz) rule exactly like the SQL unique constraint, so
// racing starts fail the same way in tests.
type ParticipationRepository struct {
	mu      sync.RWMutex
	records map[string]domain.Participation
}

var _ app.ParticipationRepository = (*ParticipationRepository)(nil)

func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{records: make(map[string]domain.Participation)}
}

func (r *ParticipationRepository) Create(_ context.Context, p *domain.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.UserID == p.UserID && existing.QuizID == p.QuizID {
			return domain.ErrDuplicateParticipation
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.records[p.ID] = *p
	return nil
}

func (r *ParticipationRepository) GetByID(_ context.Context, id string) (*domain.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.records[id]
	if !ok {
		return nil, domain.ErrParticipationNotFound
	}
	return &p, nil
}

func (r *ParticipationRepository) GetByUserQuiz(_ context.Context, userID, quizID string) (*domain.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.records {
		if p.UserID == userID && p.QuizID == quizID {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrParticipationNotFound
}

func (r *ParticipationRepository) Update(_ context.Context, p *domain.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[p.ID]; !ok {
		return domain.ErrParticipationNotFound
	}
	p.UpdatedAt = time.Now()
	r.records[p.ID] = *p
	return nil
}

func (r *ParticipationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return domain.ErrParticipationNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *ParticipationRepository) List(_ context.Context, filter app.ParticipationFilter) ([]domain.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Participation
	for _, p := range r.records {
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		if filter.QuizID != "" && p.QuizID != filter.QuizID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ParticipationRepository) ListByQuiz(_ context.Context, quizID string, status domain.ParticipationStatus) ([]domain.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Participation
	for _, p := range r.records {
		if p.QuizID != quizID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ObtainedMarks != out[j].ObtainedMarks {
			return out[i].ObtainedMarks > out[j].ObtainedMarks
		}
		return out[i].TimeSpent < out[j].TimeSpent
	})
	return out, nil
}
