package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// MessageType selects the delivery channel.
type MessageType string

const (
	MessageSMS      MessageType = "sms"
	MessageWhatsapp MessageType = "whatsapp"
	MessageEmail    MessageType = "email"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageSMS, MessageWhatsapp, MessageEmail:
		return true
	default:
		return false
	}
}

// MessageStatus tracks the bulk send as a whole.
type MessageStatus string

const (
	MessagePending   MessageStatus = "pending"
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageFailed    MessageStatus = "failed"
)

func (s MessageStatus) Valid() bool {
	switch s {
	case MessagePending, MessageSent, MessageDelivered, MessageFailed:
		return true
	default:
		return false
	}
}

// Delivery is the per-recipient outcome.
type Delivery struct {
	UserID        string     `json:"userId"`
	Status        string     `json:"status"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
}

// Message is one bulk send to a set of users. The actual dispatch goes
// through the broker; this record tracks it.
type Message struct {
	bun.BaseModel `bun:"table:messages" json:"-"`

	ID             string        `bun:"id,pk" json:"id"`
	Body           string        `bun:"body" json:"message"`
	Type           MessageType   `bun:"type" json:"messageType"`
	UserIDs        []string      `bun:"user_ids,type:jsonb" json:"userIds"`
	RecipientCount int           `bun:"recipient_count" json:"recipientCount"`
	SentBy         string        `bun:"sent_by" json:"sentBy"`
	Status         MessageStatus `bun:"status" json:"status"`
	Deliveries     []Delivery    `bun:"deliveries,type:jsonb" json:"deliveryStatus"`
	Cost           float64       `bun:"cost" json:"cost"`
	CreatedAt      time.Time     `bun:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bun:"updated_at" json:"updatedAt"`
}

// DeliveryRate is the delivered share in percent.
func (m *Message) DeliveryRate() int {
	if len(m.Deliveries) == 0 {
		return 0
	}
	delivered := 0
	for _, d := range m.Deliveries {
		if d.Status == "delivered" {
			delivered++
		}
	}
	return int(float64(delivered)/float64(len(m.Deliveries))*100 + 0.5)
}
