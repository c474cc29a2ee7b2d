package store

import (
	"context"
	"time"
)

// maxTurns bounds the per-conversation turn log.
const maxTurns = 50

// Registration records a user's confirmed opt-in to recurring updates.
type Registration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Intent    string    `json:"intent"`
	Frequency string    `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

// TurnRecord is one handled turn of a conversation.
type TurnRecord struct {
	Intent   string    `json:"intent"`
	Outcome  string    `json:"outcome"`
	Messages []string  `json:"messages,omitempty"`
	At       time.Time `json:"at"`
}

type Store interface {
	// SaveRegistration stores r under its user, replacing an earlier one.
	SaveRegistration(ctx context.Context, r Registration) error
	ListRegistrations(ctx context.Context) ([]Registration, error)
	// AppendTurn adds t to the conversation log, keeping the newest maxTurns.
	AppendTurn(ctx context.Context, conversationID string, t TurnRecord) error
	GetTurns(ctx context.Context, conversationID string) ([]TurnRecord, error)
	Close() error
}

func trimTurns(turns []TurnRecord) []TurnRecord {
	if len(turns) > maxTurns {
		return turns[len(turns)-maxTurns:]
	}
	return turns
}
