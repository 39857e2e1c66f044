package app_test

import (
	"context"
	"errors"
	"testing"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

func newContentService() *app.ContentService {
	return app.NewContentService(memory.NewContentRepository())
}

func TestBannerLifecycle(t *testing.T) {
	ctx := context.Background()
	service := newContentService()

	banner, err := service.CreateBanner(ctx, app.BannerInput{
		Title:       "Grand Final",
		Description: "Join the final round",
		Image:       "https://cdn.example.com/banner.png",
		ButtonText:  "Register",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if banner.Status != domain.ContentApproved {
		t.Fatalf("banners default to approved, got %s", banner.Status)
	}

	updated, err := service.UpdateBanner(ctx, banner.ID, app.BannerInput{
		Title:       "Grand Final 2026",
		Description: banner.Description,
		Image:       banner.Image,
		ButtonText:  banner.ButtonText,
		Status:      domain.ContentPending,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Grand Final 2026" || updated.Status != domain.ContentPending {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := service.DeleteBanner(ctx, banner.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := service.GetBanner(ctx, banner.ID); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected content-not-found, got %v", err)
	}
}

func TestJudgePanelRequiresMembers(t *testing.T) {
	ctx := context.Background()
	service := newContentService()

	_, err := service.CreateJudgePanel(ctx, app.JudgePanelInput{
		Panel:       "Science Panel",
		Description: "Judges for the science round",
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	panel, err := service.CreateJudgePanel(ctx, app.JudgePanelInput{
		Panel:       "Science Panel",
		Description: "Judges for the science round",
		Members:     []domain.JudgeMember{{Name: "Dr. Rahman", Designation: "Professor"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(panel.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(panel.Members))
	}
}

func TestFAQRequiresItems(t *testing.T) {
	ctx := context.Background()
	service := newContentService()

	if _, err := service.CreateFAQ(ctx, app.FAQInput{}); err == nil {
		t.Fatal("an FAQ needs at least one item")
	}

	faq, err := service.CreateFAQ(ctx, app.FAQInput{
		Items: []domain.FAQItem{{Question: "How do I join?", Answer: "Register and wait for the round."}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if faq.Status != domain.ContentPending {
		t.Fatalf("FAQs default to pending, got %s", faq.Status)
	}
}

func TestTimeInstructionSections(t *testing.T) {
	ctx := context.Background()
	service := newContentService()

	_, err := service.CreateTimeInstruction(ctx, app.TimeInstructionInput{
		Timeline: domain.InstructionSection{Title: "Timeline"},
	})
	if err == nil {
		t.Fatal("sections need at least one point")
	}

	ti, err := service.CreateTimeInstruction(ctx, app.TimeInstructionInput{
		Timeline:     domain.InstructionSection{Title: "Timeline", Points: []string{"Registration opens March 1"}},
		Instructions: domain.InstructionSection{Title: "Instructions", Points: []string{"Bring your own device"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := service.ListTimeInstructions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != ti.ID {
		t.Fatalf("unexpected listing: %+v", list)
	}
}

func TestOfferStatusValidation(t *testing.T) {
	ctx := context.Background()
	service := newContentService()

	_, err := service.CreateOffer(ctx, app.OfferInput{
		Image:     "https://cdn.example.com/offer.png",
		Amount:    100,
		DayLength: 7,
		Status:    domain.ContentStatus("bogus"),
	})
	if err == nil {
		t.Fatal("unknown status must be rejected")
	}

	offer, err := service.CreateOffer(ctx, app.OfferInput{
		Image:     "https://cdn.example.com/offer.png",
		Amount:    100,
		DailyGift: 5,
		DayLength: 7,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if offer.Status != domain.ContentPending {
		t.Fatalf("offers default to pending, got %s", offer.Status)
	}
}
