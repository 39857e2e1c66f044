package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

// ParticipationRepository stores attempt records in Postgres. The unique
// (user_id, quiz_id) index is the authoritative guard against racing starts;
// a violation surfaces as the duplicate-participation conflict.
type ParticipationRepository struct {
	db *bun.DB
}

var _ app.ParticipationRepository = (*ParticipationRepository)(nil)

func NewParticipationRepository(db *bun.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) Create(ctx context.Context, p *domain.Participation) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if _, err := r.db.NewInsert().Model(p).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateParticipation
		}
		return err
	}
	return nil
}

func (r *ParticipationRepository) GetByID(ctx context.Context, id string) (*domain.Participation, error) {
	p := new(domain.Participation)
	err := r.db.NewSelect().Model(p).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrParticipationNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ParticipationRepository) GetByUserQuiz(ctx context.Context, userID, quizID string) (*domain.Participation, error) {
	p := new(domain.Participation)
	err := r.db.NewSelect().Model(p).
		Where("user_id = ?", userID).
		Where("quiz_id = ?", quizID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrParticipationNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ParticipationRepository) Update(ctx context.Context, p *domain.Participation) error {
	p.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(p).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrParticipationNotFound)
}

func (r *ParticipationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.Participation)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrParticipationNotFound)
}

func (r *ParticipationRepository) List(ctx context.Context, filter app.ParticipationFilter) ([]domain.Participation, error) {
	var rows []domain.Participation
	q := r.db.NewSelect().Model(&rows)
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.QuizID != "" {
		q = q.Where("quiz_id = ?", filter.QuizID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ParticipationRepository) ListByQuiz(ctx context.Context, quizID string, status domain.ParticipationStatus) ([]domain.Participation, error) {
	var rows []domain.Participation
	q := r.db.NewSelect().Model(&rows).Where("quiz_id = ?", quizID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.OrderExpr("obtained_marks DESC, time_spent ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
