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

// QuestionRepository stores questions in Postgres.
type QuestionRepository struct {
	db *bun.DB
}

var _ app.QuestionRepository = (*QuestionRepository)(nil)

func NewQuestionRepository(db *bun.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	stamp(question)
	_, err := r.db.NewInsert().Model(question).Exec(ctx)
	return err
}

func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	for _, q := range questions {
		stamp(q)
	}
	_, err := r.db.NewInsert().Model(&questions).Exec(ctx)
	return err
}

func stamp(q *domain.Question) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	now := time.Now()
	q.CreatedAt, q.UpdatedAt = now, now
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	question := new(domain.Question)
	err := r.db.NewSelect().Model(question).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (r *QuestionRepository) Update(ctx context.Context, question *domain.Question) error {
	question.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(question).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.Question)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) DeleteBatch(ctx context.Context, ids []string) (int, error) {
	res, err := r.db.NewDelete().Model((*domain.Question)(nil)).Where("id IN (?)", bun.In(ids)).Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.NewSelect().Model(&questions).
		Where("quiz_id = ?", quizID).
		Order("question_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) ListByType(ctx context.Context, t domain.QuestionType) ([]domain.Question, error) {
	var questions []domain.Question
	err := r.db.NewSelect().Model(&questions).
		Where("type = ?", t).
		Order("question_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) CountByQuiz(ctx context.Context, quizID string) (int, error) {
	return r.db.NewSelect().Model((*domain.Question)(nil)).Where("quiz_id = ?", quizID).Count(ctx)
}

// IncrementStats bumps the attempt counters with a blind update; the caller
// does not need the row back.
func (r *QuestionRepository) IncrementStats(ctx context.Context, id string, correct bool) error {
	q := r.db.NewUpdate().Model((*domain.Question)(nil)).
		Set("total_attempts = total_attempts + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id)
	if correct {
		q = q.Set("correct_attempts = correct_attempts + 1")
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrQuestionNotFound)
}
