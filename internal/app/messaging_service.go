package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"quiz-contest-service/internal/domain"
)

// Per-recipient send cost by channel.
var messageCost = map[domain.MessageType]float64{
	domain.MessageSMS:      0.50,
	domain.MessageWhatsapp: 0.30,
	domain.MessageEmail:    0.05,
}

// MessagingService fans a bulk message out to the broker, one payload per
// recipient, and keeps the send record with per-recipient outcomes. The
// publisher is optional; without a broker the record is stored as sent,
// which matches running the service standalone.
type MessagingService struct {
	messages  MessageRepository
	users     UserRepository
	publisher MessagePublisher
	validate  *validator.Validate
	now       func() time.Time
}

func NewMessagingService(messages MessageRepository, users UserRepository, publisher MessagePublisher) *MessagingService {
	return &MessagingService{
		messages:  messages,
		users:     users,
		publisher: publisher,
		validate:  newValidator(),
		now:       time.Now,
	}
}

// SendBulkInput is the bulk-send form.
type SendBulkInput struct {
	UserIDs []string           `json:"userIds" validate:"required,min=1,dive,required"`
	Body    string             `json:"message" validate:"required"`
	Type    domain.MessageType `json:"messageType" validate:"required"`
}

// outboundMessage is the broker payload, one per recipient.
type outboundMessage struct {
	MessageID string             `json:"messageId"`
	UserID    string             `json:"userId"`
	Contact   string             `json:"contact"`
	Body      string             `json:"message"`
	Type      domain.MessageType `json:"messageType"`
}

// SendBulk validates every recipient, records the send and publishes one
// payload per recipient. Recipients whose publish fails are marked failed in
// the delivery list; the message as a whole is failed only when nothing went
// out.
func (s *MessagingService) SendBulk(ctx context.Context, sentBy string, in SendBulkInput) (*domain.Message, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, domain.NewValidationError(map[string]string{"messageType": "must be sms, whatsapp or email"})
	}

	recipients := make([]*domain.User, 0, len(in.UserIDs))
	for _, id := range in.UserIDs {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError(map[string]string{"userIds": fmt.Sprintf("unknown user %s", id)})
			}
			return nil, err
		}
		recipients = append(recipients, u)
	}

	msg := &domain.Message{
		Body:           in.Body,
		Type:           in.Type,
		UserIDs:        in.UserIDs,
		RecipientCount: len(in.UserIDs),
		SentBy:         sentBy,
		Status:         domain.MessagePending,
		Deliveries:     make([]domain.Delivery, 0, len(in.UserIDs)),
		Cost:           messageCost[in.Type] * float64(len(in.UserIDs)),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	queue := "messages." + string(in.Type)
	sent := 0
	for _, u := range recipients {
		d := domain.Delivery{UserID: u.ID, Status: "sent"}
		if s.publisher != nil {
			body, err := json.Marshal(outboundMessage{
				MessageID: msg.ID,
				UserID:    u.ID,
				Contact:   u.Contact,
				Body:      in.Body,
				Type:      in.Type,
			})
			if err == nil {
				err = s.publisher.Publish(ctx, queue, body)
			}
			if err != nil {
				log.Printf("messaging: publish to %s for user %s failed: %v", queue, u.ID, err)
				d.Status = "failed"
				d.FailureReason = err.Error()
			}
		}
		if d.Status == "sent" {
			sent++
		}
		msg.Deliveries = append(msg.Deliveries, d)
	}

	if sent == 0 {
		msg.Status = domain.MessageFailed
	} else {
		msg.Status = domain.MessageSent
	}
	if err := s.messages.Update(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// History lists send records, optionally narrowed by sender and status.
func (s *MessagingService) History(ctx context.Context, sentBy string, status domain.MessageStatus) ([]domain.Message, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown message status"})
	}
	return s.messages.List(ctx, sentBy, status)
}

func (s *MessagingService) Get(ctx context.Context, id string) (*domain.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// MessagingStats is the admin dashboard rollup.
type MessagingStats struct {
	TotalMessages  int     `json:"totalMessagesSent"`
	SMSCount       int     `json:"smsCount"`
	WhatsappCount  int     `json:"whatsappCount"`
	EmailCount     int     `json:"emailCount"`
	ThisMonthTotal int     `json:"thisMonthTotal"`
	DeliveryRate   float64 `json:"deliveryRate"`
	TotalCost      float64 `json:"totalCost"`
}

// Stats reduces the full history into per-channel and current-month counts.
func (s *MessagingService) Stats(ctx context.Context) (*MessagingStats, error) {
	all, err := s.messages.List(ctx, "", "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &MessagingStats{TotalMessages: len(all)}
	delivered := 0
	for _, m := range all {
		switch m.Type {
		case domain.MessageSMS:
			stats.SMSCount++
		case domain.MessageWhatsapp:
			stats.WhatsappCount++
		case domain.MessageEmail:
			stats.EmailCount++
		}
		if !m.CreatedAt.Before(monthStart) {
			stats.ThisMonthTotal++
		}
		if m.Status == domain.MessageDelivered {
			delivered++
		}
		stats.TotalCost += m.Cost
	}
	if len(all) > 0 {
		stats.DeliveryRate = float64(delivered) / float64(len(all)) * 100
	}
	return stats, nil
}

// StatusUpdateInput carries delivery confirmations back from the broker side.
type StatusUpdateInput struct {
	Status     domain.MessageStatus `json:"status" validate:"required"`
	Deliveries []domain.Delivery    `json:"deliveryStatus"`
}

// UpdateStatus replaces the record's status and, when given, its delivery
// list. Only those two fields are writable after the send.
func (s *MessagingService) UpdateStatus(ctx context.Context, id string, in StatusUpdateInput) (*domain.Message, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown message status"})
	}
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	msg.Status = in.Status
	if in.Deliveries != nil {
		msg.Deliveries = in.Deliveries
	}
	if err := s.messages.Update(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessagingService) Delete(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}
