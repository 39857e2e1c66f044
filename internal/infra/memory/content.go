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

// ContentRepository is a map-backed store for the ancillary content types.
type ContentRepository struct {
	mu               sync.RWMutex
	banners          map[string]domain.Banner
	offers           map[string]domain.Offer
	panels           map[string]domain.JudgePanel
	faqs             map[string]domain.FAQ
	timeInstructions map[string]domain.TimeInstruction
}

var _ app.ContentRepository = (*ContentRepository)(nil)

func NewContentRepository() *ContentRepository {
	return &ContentRepository{
		banners:          make(map[string]domain.Banner),
		offers:           make(map[string]domain.Offer),
		panels:           make(map[string]domain.JudgePanel),
		faqs:             make(map[string]domain.FAQ),
		timeInstructions: make(map[string]domain.TimeInstruction),
	}
}

func (r *ContentRepository) CreateBanner(_ context.Context, b *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	r.banners[b.ID] = *b
	return nil
}

func (r *ContentRepository) GetBanner(_ context.Context, id string) (*domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.banners[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return &b, nil
}

func (r *ContentRepository) UpdateBanner(_ context.Context, b *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.banners[b.ID]; !ok {
		return domain.ErrContentNotFound
	}
	b.UpdatedAt = time.Now()
	r.banners[b.ID] = *b
	return nil
}

func (r *ContentRepository) DeleteBanner(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.banners[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.banners, id)
	return nil
}

func (r *ContentRepository) ListBanners(_ context.Context, status domain.ContentStatus) ([]domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Banner, 0, len(r.banners))
	for _, b := range r.banners {
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ContentRepository) CreateOffer(_ context.Context, o *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	r.offers[o.ID] = *o
	return nil
}

func (r *ContentRepository) GetOffer(_ context.Context, id string) (*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return &o, nil
}

func (r *ContentRepository) UpdateOffer(_ context.Context, o *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[o.ID]; !ok {
		return domain.ErrContentNotFound
	}
	o.UpdatedAt = time.Now()
	r.offers[o.ID] = *o
	return nil
}

func (r *ContentRepository) DeleteOffer(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.offers, id)
	return nil
}

func (r *ContentRepository) ListOffers(_ context.Context, status domain.ContentStatus) ([]domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ContentRepository) CreateJudgePanel(_ context.Context, j *domain.JudgePanel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	now := time.Now()
	j.CreatedAt, j.UpdatedAt = now, now
	r.panels[j.ID] = *j
	return nil
}

func (r *ContentRepository) GetJudgePanel(_ context.Context, id string) (*domain.JudgePanel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.panels[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return &j, nil
}

func (r *ContentRepository) UpdateJudgePanel(_ context.Context, j *domain.JudgePanel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.panels[j.ID]; !ok {
		return domain.ErrContentNotFound
	}
	j.UpdatedAt = time.Now()
	r.panels[j.ID] = *j
	return nil
}

func (r *ContentRepository) DeleteJudgePanel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.panels[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.panels, id)
	return nil
}

func (r *ContentRepository) ListJudgePanels(_ context.Context) ([]domain.JudgePanel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.JudgePanel, 0, len(r.panels))
	for _, j := range r.panels {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ContentRepository) CreateFAQ(_ context.Context, f *domain.FAQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	now := time.Now()
	f.CreatedAt, f.UpdatedAt = now, now
	r.faqs[f.ID] = *f
	return nil
}

func (r *ContentRepository) GetFAQ(_ context.Context, id string) (*domain.FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.faqs[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return &f, nil
}

func (r *ContentRepository) UpdateFAQ(_ context.Context, f *domain.FAQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faqs[f.ID]; !ok {
		return domain.ErrContentNotFound
	}
	f.UpdatedAt = time.Now()
	r.faqs[f.ID] = *f
	return nil
}

func (r *ContentRepository) DeleteFAQ(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faqs[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.faqs, id)
	return nil
}

func (r *ContentRepository) ListFAQs(_ context.Context, status domain.ContentStatus) ([]domain.FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.FAQ, 0, len(r.faqs))
	for _, f := range r.faqs {
		if status != "" && f.Status != status {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ContentRepository) CreateTimeInstruction(_ context.Context, t *domain.TimeInstruction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	r.timeInstructions[t.ID] = *t
	return nil
}

func (r *ContentRepository) GetTimeInstruction(_ context.Context, id string) (*domain.TimeInstruction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.timeInstructions[id]
	if !ok {
		return nil, domain.ErrContentNotFound
	}
	return &t, nil
}

func (r *ContentRepository) UpdateTimeInstruction(_ context.Context, t *domain.TimeInstruction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.timeInstructions[t.ID]; !ok {
		return domain.ErrContentNotFound
	}
	t.UpdatedAt = time.Now()
	r.timeInstructions[t.ID] = *t
	return nil
}

func (r *ContentRepository) DeleteTimeInstruction(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.timeInstructions[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.timeInstructions, id)
	return nil
}

func (r *ContentRepository) ListTimeInstructions(_ context.Context) ([]domain.TimeInstruction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.TimeInstruction, 0, len(r.timeInstructions))
	for _, t := range r.timeInstructions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
