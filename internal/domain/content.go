package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// ContentStatus moderates ancillary admin content.
type ContentStatus string

const (
	ContentApproved ContentStatus = "approved"
	ContentPending  ContentStatus = "pending"
	ContentDeleted  ContentStatus = "delete"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentApproved, ContentPending, ContentDeleted:
		return true
	default:
		return false
	}
}

// Banner is a homepage promotional card.
type Banner struct {
	bun.BaseModel `bun:"table:banners" json:"-"`

	ID          string        `bun:"id,pk" json:"id"`
	Title       string        `bun:"title" json:"title"`
	Description string        `bun:"description" json:"description"`
	Image       string        `bun:"image" json:"image"`
	ButtonText  string        `bun:"button_text" json:"buttonText"`
	Status      ContentStatus `bun:"status" json:"status"`
	CreatedAt   time.Time     `bun:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bun:"updated_at" json:"updatedAt"`
}

// Offer is a promotional gift package.
type Offer struct {
	bun.BaseModel `bun:"table:offers" json:"-"`

	ID        string        `bun:"id,pk" json:"id"`
	Image     string        `bun:"image" json:"img"`
	Amount    float64       `bun:"amount" json:"amount"`
	DailyGift float64       `bun:"daily_gift" json:"dailyGift"`
	DayLength int           `bun:"day_length" json:"dayLength"`
	Status    ContentStatus `bun:"status" json:"status"`
	CreatedAt time.Time     `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bun:"updated_at" json:"updatedAt"`
}

// JudgeMember is one member of a judge panel.
type JudgeMember struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Image       string `json:"image"`
}

// JudgePanel is a named panel with at least one member.
type JudgePanel struct {
	bun.BaseModel `bun:"table:judge_panels" json:"-"`

	ID          string        `bun:"id,pk" json:"id"`
	Panel       string        `bun:"panel" json:"panel"`
	Description string        `bun:"description" json:"description"`
	Members     []JudgeMember `bun:"members,type:jsonb" json:"members"`
	CreatedAt   time.Time     `bun:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bun:"updated_at" json:"updatedAt"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQ is a grouped set of items with at least one entry.
type FAQ struct {
	bun.BaseModel `bun:"table:faqs" json:"-"`

	ID        string        `bun:"id,pk" json:"id"`
	Items     []FAQItem     `bun:"items,type:jsonb" json:"faq"`
	Status    ContentStatus `bun:"status" json:"status"`
	CreatedAt time.Time     `bun:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bun:"updated_at" json:"updatedAt"`
}

// InstructionSection is a titled list of points with display colors.
type InstructionSection struct {
	Title     string   `json:"title"`
	Points    []string `json:"points"`
	BgColor   string   `json:"bgColor,omitempty"`
	TextColor string   `json:"textColor,omitempty"`
}

// TimeInstruction pairs a contest timeline with its instructions.
type TimeInstruction struct {
	bun.BaseModel `bun:"table:time_instructions" json:"-"`

	ID           string             `bun:"id,pk" json:"id"`
	Timeline     InstructionSection `bun:"timeline,type:jsonb" json:"timeline"`
	Instructions InstructionSection `bun:"instructions,type:jsonb" json:"instructions"`
	CreatedAt    time.Time          `bun:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bun:"updated_at" json:"updatedAt"`
}
