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

// QuizRepository stores quizzes in Postgres.
type QuizRepository struct {
	db *bun.DB
}

var _ app.QuizRepository = (*QuizRepository)(nil)

func NewQuizRepository(db *bun.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	now := time.Now()
	quiz.CreatedAt, quiz.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(quiz).Exec(ctx)
	return err
}

func (r *QuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz := new(domain.Quiz)
	err := r.db.NewSelect().Model(quiz).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz *domain.Quiz) error {
	quiz.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(quiz).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrQuizNotFound)
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.Quiz)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrQuizNotFound)
}

func (r *QuizRepository) List(ctx context.Context, filter app.QuizFilter) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	q := r.db.NewSelect().Model(&quizzes)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EventID != "" {
		q = q.Where("event_id = ?", filter.EventID)
	}
	if filter.CreatedBy != "" {
		q = q.Where("created_by = ?", filter.CreatedBy)
	}
	if err := q.Order("start_time ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return quizzes, nil
}
