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

// EventRepository stores events in Postgres.
type EventRepository struct {
	db *bun.DB
}

var _ app.EventRepository = (*EventRepository)(nil)

func NewEventRepository(db *bun.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now()
	event.CreatedAt, event.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(event).Exec(ctx)
	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event := new(domain.Event)
	err := r.db.NewSelect().Model(event).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	event.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(event).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrEventNotFound)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.Event)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrEventNotFound)
}

func (r *EventRepository) List(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	var events []domain.Event
	q := r.db.NewSelect().Model(&events)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("start_date ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return events, nil
}
