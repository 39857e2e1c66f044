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

// ContentRepository stores the ancillary content types in Postgres, one table
// per type.
type ContentRepository struct {
	db *bun.DB
}

var _ app.ContentRepository = (*ContentRepository)(nil)

func NewContentRepository(db *bun.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) CreateBanner(ctx context.Context, b *domain.Banner) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(b).Exec(ctx)
	return err
}

func (r *ContentRepository) GetBanner(ctx context.Context, id string) (*domain.Banner, error) {
	b := new(domain.Banner)
	err := r.db.NewSelect().Model(b).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *ContentRepository) UpdateBanner(ctx context.Context, b *domain.Banner) error {
	b.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(b).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) DeleteBanner(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.Banner)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) ListBanners(ctx context.Context, status domain.ContentStatus) ([]domain.Banner, error) {
	var banners []domain.Banner
	q := r.db.NewSelect().Model(&banners)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *ContentRepository) CreateOffer(ctx context.Context, o *domain.Offer) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(o).Exec(ctx)
	return err
}

func (r *ContentRepository) GetOffer(ctx context.Context, id string) (*domain.Offer, error) {
	o := new(domain.Offer)
	err := r.db.NewSelect().Model(o).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *ContentRepository) UpdateOffer(ctx context.Context, o *domain.Offer) error {
	o.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(o).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) DeleteOffer(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.Offer)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) ListOffers(ctx context.Context, status domain.ContentStatus) ([]domain.Offer, error) {
	var offers []domain.Offer
	q := r.db.NewSelect().Model(&offers)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *ContentRepository) CreateJudgePanel(ctx context.Context, j *domain.JudgePanel) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	now := time.Now()
	j.CreatedAt, j.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(j).Exec(ctx)
	return err
}

func (r *ContentRepository) GetJudgePanel(ctx context.Context, id string) (*domain.JudgePanel, error) {
	j := new(domain.JudgePanel)
	err := r.db.NewSelect().Model(j).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *ContentRepository) UpdateJudgePanel(ctx context.Context, j *domain.JudgePanel) error {
	j.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(j).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) DeleteJudgePanel(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.JudgePanel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) ListJudgePanels(ctx context.Context) ([]domain.JudgePanel, error) {
	var panels []domain.JudgePanel
	if err := r.db.NewSelect().Model(&panels).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return panels, nil
}

func (r *ContentRepository) CreateFAQ(ctx context.Context, f *domain.FAQ) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	now := time.Now()
	f.CreatedAt, f.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(f).Exec(ctx)
	return err
}

func (r *ContentRepository) GetFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	f := new(domain.FAQ)
	err := r.db.NewSelect().Model(f).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *ContentRepository) UpdateFAQ(ctx context.Context, f *domain.FAQ) error {
	f.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(f).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) DeleteFAQ(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.FAQ)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) ListFAQs(ctx context.Context, status domain.ContentStatus) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	q := r.db.NewSelect().Model(&faqs)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *ContentRepository) CreateTimeInstruction(ctx context.Context, t *domain.TimeInstruction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	_, err := r.db.NewInsert().Model(t).Exec(ctx)
	return err
}

func (r *ContentRepository) GetTimeInstruction(ctx context.Context, id string) (*domain.TimeInstruction, error) {
	t := new(domain.TimeInstruction)
	err := r.db.NewSelect().Model(t).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ContentRepository) UpdateTimeInstruction(ctx context.Context, t *domain.TimeInstruction) error {
	t.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().Model(t).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) DeleteTimeInstruction(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*domain.TimeInstruction)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrContentNotFound)
}

func (r *ContentRepository) ListTimeInstructions(ctx context.Context) ([]domain.TimeInstruction, error) {
	var items []domain.TimeInstruction
	if err := r.db.NewSelect().Model(&items).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return items, nil
}
