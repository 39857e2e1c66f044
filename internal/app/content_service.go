package app

import (
	"context"

	"github.com/go-playground/validator/v10"

	"quiz-contest-service/internal/domain"
)

// ContentService covers the ancillary admin content: banners, offers, judge
// panels, FAQs and time instructions. All of it is plain CRUD behind the
// admin role; the only business rules are the non-empty member/item lists.
type ContentService struct {
	content  ContentRepository
	validate *validator.Validate
}

func NewContentService(content ContentRepository) *ContentService {
	return &ContentService{content: content, validate: newValidator()}
}

// BannerInput is the banner create/update form.
type BannerInput struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description" validate:"required"`
	Image       string               `json:"image" validate:"required"`
	ButtonText  string               `json:"buttonText" validate:"required"`
	Status      domain.ContentStatus `json:"status"`
}

func (s *ContentService) CreateBanner(ctx context.Context, in BannerInput) (*domain.Banner, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.ContentApproved
	}
	if !status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown content status"})
	}
	b := &domain.Banner{Title: in.Title, Description: in.Description, Image: in.Image, ButtonText: in.ButtonText, Status: status}
	if err := s.content.CreateBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *ContentService) GetBanner(ctx context.Context, id string) (*domain.Banner, error) {
	return s.content.GetBanner(ctx, id)
}

func (s *ContentService) ListBanners(ctx context.Context, status domain.ContentStatus) ([]domain.Banner, error) {
	return s.content.ListBanners(ctx, status)
}

func (s *ContentService) UpdateBanner(ctx context.Context, id string, in BannerInput) (*domain.Banner, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	b, err := s.content.GetBanner(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Title, b.Description, b.Image, b.ButtonText = in.Title, in.Description, in.Image, in.ButtonText
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, domain.NewValidationError(map[string]string{"status": "unknown content status"})
		}
		b.Status = in.Status
	}
	if err := s.content.UpdateBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *ContentService) DeleteBanner(ctx context.Context, id string) error {
	return s.content.DeleteBanner(ctx, id)
}

// OfferInput is the offer create/update form.
type OfferInput struct {
	Image     string               `json:"img" validate:"required"`
	Amount    float64              `json:"amount" validate:"min=0"`
	DailyGift float64              `json:"dailyGift" validate:"min=0"`
	DayLength int                  `json:"dayLength" validate:"required,min=1"`
	Status    domain.ContentStatus `json:"status"`
}

func (s *ContentService) CreateOffer(ctx context.Context, in OfferInput) (*domain.Offer, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.ContentPending
	}
	if !status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown content status"})
	}
	o := &domain.Offer{Image: in.Image, Amount: in.Amount, DailyGift: in.DailyGift, DayLength: in.DayLength, Status: status}
	if err := s.content.CreateOffer(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ContentService) GetOffer(ctx context.Context, id string) (*domain.Offer, error) {
	return s.content.GetOffer(ctx, id)
}

func (s *ContentService) ListOffers(ctx context.Context, status domain.ContentStatus) ([]domain.Offer, error) {
	return s.content.ListOffers(ctx, status)
}

func (s *ContentService) UpdateOffer(ctx context.Context, id string, in OfferInput) (*domain.Offer, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	o, err := s.content.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Image, o.Amount, o.DailyGift, o.DayLength = in.Image, in.Amount, in.DailyGift, in.DayLength
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, domain.NewValidationError(map[string]string{"status": "unknown content status"})
		}
		o.Status = in.Status
	}
	if err := s.content.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ContentService) DeleteOffer(ctx context.Context, id string) error {
	return s.content.DeleteOffer(ctx, id)
}

// JudgePanelInput is the judge-panel create/update form.
type JudgePanelInput struct {
	Panel       string               `json:"panel" validate:"required"`
	Description string               `json:"description" validate:"required"`
	Members     []domain.JudgeMember `json:"members" validate:"required,min=1,dive"`
}

func (s *ContentService) CreateJudgePanel(ctx context.Context, in JudgePanelInput) (*domain.JudgePanel, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	j := &domain.JudgePanel{Panel: in.Panel, Description: in.Description, Members: in.Members}
	if err := s.content.CreateJudgePanel(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *ContentService) GetJudgePanel(ctx context.Context, id string) (*domain.JudgePanel, error) {
	return s.content.GetJudgePanel(ctx, id)
}

func (s *ContentService) ListJudgePanels(ctx context.Context) ([]domain.JudgePanel, error) {
	return s.content.ListJudgePanels(ctx)
}

func (s *ContentService) UpdateJudgePanel(ctx context.Context, id string, in JudgePanelInput) (*domain.JudgePanel, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	j, err := s.content.GetJudgePanel(ctx, id)
	if err != nil {
		return nil, err
	}
	j.Panel, j.Description, j.Members = in.Panel, in.Description, in.Members
	if err := s.content.UpdateJudgePanel(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *ContentService) DeleteJudgePanel(ctx context.Context, id string) error {
	return s.content.DeleteJudgePanel(ctx, id)
}

// FAQInput is the FAQ create/update form.
type FAQInput struct {
	Items  []domain.FAQItem     `json:"faq" validate:"required,min=1,dive"`
	Status domain.ContentStatus `json:"status"`
}

func (s *ContentService) CreateFAQ(ctx context.Context, in FAQInput) (*domain.FAQ, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.ContentPending
	}
	if !status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown content status"})
	}
	f := &domain.FAQ{Items: in.Items, Status: status}
	if err := s.content.CreateFAQ(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ContentService) GetFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	return s.content.GetFAQ(ctx, id)
}

func (s *ContentService) ListFAQs(ctx context.Context, status domain.ContentStatus) ([]domain.FAQ, error) {
	return s.content.ListFAQs(ctx, status)
}

func (s *ContentService) UpdateFAQ(ctx context.Context, id string, in FAQInput) (*domain.FAQ, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	f, err := s.content.GetFAQ(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Items = in.Items
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, domain.NewValidationError(map[string]string{"status": "unknown content status"})
		}
		f.Status = in.Status
	}
	if err := s.content.UpdateFAQ(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *ContentService) DeleteFAQ(ctx context.Context, id string) error {
	return s.content.DeleteFAQ(ctx, id)
}

// TimeInstructionInput is the timeline/instructions form.
type TimeInstructionInput struct {
	Timeline     domain.InstructionSection `json:"timeline"`
	Instructions domain.InstructionSection `json:"instructions"`
}

func (s *ContentService) CreateTimeInstruction(ctx context.Context, in TimeInstructionInput) (*domain.TimeInstruction, error) {
	if err := checkSection("timeline", in.Timeline); err != nil {
		return nil, err
	}
	if err := checkSection("instructions", in.Instructions); err != nil {
		return nil, err
	}
	t := &domain.TimeInstruction{Timeline: in.Timeline, Instructions: in.Instructions}
	if err := s.content.CreateTimeInstruction(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ContentService) GetTimeInstruction(ctx context.Context, id string) (*domain.TimeInstruction, error) {
	return s.content.GetTimeInstruction(ctx, id)
}

func (s *ContentService) ListTimeInstructions(ctx context.Context) ([]domain.TimeInstruction, error) {
	return s.content.ListTimeInstructions(ctx)
}

func (s *ContentService) UpdateTimeInstruction(ctx context.Context, id string, in TimeInstructionInput) (*domain.TimeInstruction, error) {
	if err := checkSection("timeline", in.Timeline); err != nil {
		return nil, err
	}
	if err := checkSection("instructions", in.Instructions); err != nil {
		return nil, err
	}
	t, err := s.content.GetTimeInstruction(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Timeline, t.Instructions = in.Timeline, in.Instructions
	if err := s.content.UpdateTimeInstruction(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ContentService) DeleteTimeInstruction(ctx context.Context, id string) error {
	return s.content.DeleteTimeInstruction(ctx, id)
}

func checkSection(name string, sec domain.InstructionSection) error {
	if sec.Title == "" {
		return domain.NewValidationError(map[string]string{name + ".title": "required"})
	}
	if len(sec.Points) == 0 {
		return domain.NewValidationError(map[string]string{name + ".points": "at least one point is required"})
	}
	return nil
}
