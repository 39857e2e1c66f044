package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-contest-service/internal/domain"
)

// AnswerKeyLoader reads the evaluation columns of a question straight from
// Postgres over a pgx pool, bypassing bun. It backs the answer-key caches.
type AnswerKeyLoader struct {
	pool *pgxpool.Pool
}

func NewAnswerKeyLoader(pool *pgxpool.Pool) *AnswerKeyLoader {
	return &AnswerKeyLoader{pool: pool}
}

func (l *AnswerKeyLoader) LoadKey(ctx context.Context, questionID string) (domain.AnswerKey, error) {
	var (
		q       domain.Question
		rawOpts []byte
	)
	err := l.pool.QueryRow(ctx,
		`SELECT id, type, options, correct_answer, marks, negative_marks FROM questions WHERE id=$1`,
		questionID,
	).Scan(&q.ID, &q.Type, &rawOpts, &q.CorrectAnswer, &q.Marks, &q.NegativeMarks)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AnswerKey{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.AnswerKey{}, fmt.Errorf("load answer key: %w", err)
	}
	if len(rawOpts) > 0 {
		if err := json.Unmarshal(rawOpts, &q.Options); err != nil {
			return domain.AnswerKey{}, fmt.Errorf("unmarshal options: %w", err)
		}
	}
	return q.Key(), nil
}
