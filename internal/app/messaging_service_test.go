package app_test

import (
	"context"
	"errors"
	"testing"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/memory"
)

type recordingPublisher struct {
	queues []string
	bodies [][]byte
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, queue string, body []byte) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.queues = append(p.queues, queue)
	p.bodies = append(p.bodies, body)
	return nil
}

func newMessagingService(t *testing.T, pub app.MessagePublisher) (*app.MessagingService, []*domain.User) {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepository()

	recipients := make([]*domain.User, 0, 2)
	for _, contact := range []string{"01700000001", "01700000002"} {
		u := &domain.User{FullNameEnglish: "Test User", Contact: contact, Role: domain.RoleUser, IsActive: true}
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		recipients = append(recipients, u)
	}
	return app.NewMessagingService(memory.NewMessageRepository(), users, pub), recipients
}

func TestSendBulkPublishesPerRecipient(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	service, recipients := newMessagingService(t, pub)

	msg, err := service.SendBulk(ctx, "admin-1", app.SendBulkInput{
		UserIDs: []string{recipients[0].ID, recipients[1].ID},
		Body:    "The final round starts tomorrow at 10am.",
		Type:    domain.MessageSMS,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Status != domain.MessageSent || msg.RecipientCount != 2 {
		t.Fatalf("unexpected record: %+v", msg)
	}
	if len(pub.queues) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(pub.queues))
	}
	for _, q := range pub.queues {
		if q != "messages.sms" {
			t.Fatalf("unexpected queue %q", q)
		}
	}
	if len(msg.Deliveries) != 2 || msg.Deliveries[0].Status != "sent" {
		t.Fatalf("unexpected deliveries: %+v", msg.Deliveries)
	}
	if msg.Cost != 1.0 {
		t.Fatalf("expected cost 1.0 for two sms, got %v", msg.Cost)
	}
}

func TestSendBulkRejectsUnknownRecipient(t *testing.T) {
	ctx := context.Background()
	service, recipients := newMessagingService(t, &recordingPublisher{})

	_, err := service.SendBulk(ctx, "admin-1", app.SendBulkInput{
		UserIDs: []string{recipients[0].ID, "missing"},
		Body:    "hello",
		Type:    domain.MessageEmail,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendBulkMarksFailures(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{fail: true}
	service, recipients := newMessagingService(t, pub)

	msg, err := service.SendBulk(ctx, "admin-1", app.SendBulkInput{
		UserIDs: []string{recipients[0].ID},
		Body:    "hello",
		Type:    domain.MessageWhatsapp,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Status != domain.MessageFailed {
		t.Fatalf("expected failed status, got %s", msg.Status)
	}
	if msg.Deliveries[0].Status != "failed" || msg.Deliveries[0].FailureReason == "" {
		t.Fatalf("unexpected delivery: %+v", msg.Deliveries[0])
	}
}

func TestSendBulkWithoutBroker(t *testing.T) {
	ctx := context.Background()
	service, recipients := newMessagingService(t, nil)

	msg, err := service.SendBulk(ctx, "admin-1", app.SendBulkInput{
		UserIDs: []string{recipients[0].ID},
		Body:    "hello",
		Type:    domain.MessageSMS,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Status != domain.MessageSent {
		t.Fatalf("expected sent without a broker, got %s", msg.Status)
	}
}

func TestMessagingStatsAndStatusUpdate(t *testing.T) {
	ctx := context.Background()
	service, recipients := newMessagingService(t, &recordingPublisher{})

	msg, err := service.SendBulk(ctx, "admin-1", app.SendBulkInput{
		UserIDs: []string{recipients[0].ID},
		Body:    "hello",
		Type:    domain.MessageSMS,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := service.SendBulk(ctx, "admin-1", app.SendBulkInput{
		UserIDs: []string{recipients[1].ID},
		Body:    "hello",
		Type:    domain.MessageEmail,
	}); err != nil {
		t.Fatalf("send: %v", err)
	}

	if _, err := service.UpdateStatus(ctx, msg.ID, app.StatusUpdateInput{Status: domain.MessageDelivered}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	stats, err := service.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalMessages != 2 || stats.SMSCount != 1 || stats.EmailCount != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.DeliveryRate != 50 {
		t.Fatalf("expected 50%% delivery rate, got %v", stats.DeliveryRate)
	}

	history, err := service.History(ctx, "admin-1", "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
}
