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

// MessageRepository stores bulk-message records in Postgres.
type MessageRepository struct {
	db *bun.DB
}

var _ app.MessageRepository = (*MessageRepository)(nil)

func NewMessageRepository(db *bun.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(m).Exec(ctx)
	return err
}

func (r *MessageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	m := new(domain.Message)
	err := r.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MessageRepository) Update(ctx context.Context, m *domain.Message) error {
	m.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrMessageNotFound)
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.Message)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrMessageNotFound)
}

func (r *MessageRepository) List(ctx context.Context, sentBy string, status domain.MessageStatus) ([]domain.Message, error) {
	var messages []domain.Message
	q := r.db.NewSelect().Model(&messages)
	if sentBy != "" {
		q = q.Where("sent_by = ?", sentBy)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	return messages, nil
}
