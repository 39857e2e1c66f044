package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

func newEventService(t *testing.T) (*app.EventService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	return app.NewEventService(memory.NewEventRepository(), users), users
}

func eventInput() app.CreateEventInput {
	now := time.Now()
	return app.CreateEventInput{
		Title:     "National Quiz Contest",
		StartDate: now.Add(24 * time.Hour),
		EndDate:   now.Add(48 * time.Hour),
	}
}

func seedUser(t *testing.T, users *memory.UserRepository, contact string) *domain.User {
	t.Helper()
	u := &domain.User{
		FullNameEnglish: "Test User",
		Contact:         contact,
		Role:            domain.RoleUser,
		IsActive:        true,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestEventCreate(t *testing.T) {
	ctx := context.Background()
	service, _ := newEventService(t)

	event, err := service.Create(ctx, eventInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.Status != domain.EventUpcoming {
		t.Fatalf("new events start upcoming, got %s", event.Status)
	}

	in := eventInput()
	in.EndDate = in.StartDate.Add(-time.Hour)
	if _, err := service.Create(ctx, in); err == nil {
		t.Fatal("expected rejection of inverted window")
	}
}

func TestEventRegister(t *testing.T) {
	ctx := context.Background()
	service, users := newEventService(t)

	event, err := service.Create(ctx, eventInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	u1 := seedUser(t, users, "01700000001")
	u2 := seedUser(t, users, "01700000002")

	event, err = service.Register(ctx, event.ID, u1.ID)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if event.CurrentParticipants != 1 {
		t.Fatalf("expected 1 participant, got %d", event.CurrentParticipants)
	}

	// registering twice is a no-op
	event, err = service.Register(ctx, event.ID, u1.ID)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if event.CurrentParticipants != 1 {
		t.Fatalf("duplicate registration counted: %d", event.CurrentParticipants)
	}

	if _, err := service.Register(ctx, event.ID, u2.ID); err != nil {
		t.Fatalf("register second: %v", err)
	}

	profiles, err := service.Participants(ctx, event.ID)
	if err != nil {
		t.Fatalf("participants: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
}

func TestEventRegisterCapacity(t *testing.T) {
	ctx := context.Background()
	service, users := newEventService(t)

	in := eventInput()
	in.MaxParticipants = 1
	event, err := service.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	u1 := seedUser(t, users, "01700000001")
	u2 := seedUser(t, users, "01700000002")

	if _, err := service.Register(ctx, event.ID, u1.ID); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register(ctx, event.ID, u2.ID); !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("expected event-full, got %v", err)
	}
}

func TestEventUpdateAllowList(t *testing.T) {
	ctx := context.Background()
	service, _ := newEventService(t)

	event, err := service.Create(ctx, eventInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	active := domain.EventActive
	location := "Dhaka"
	updated, err := service.Update(ctx, event.ID, &domain.EventUpdate{Status: &active, Location: &location})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.EventActive || updated.Location != "Dhaka" {
		t.Fatalf("update not applied: %+v", updated)
	}
}
