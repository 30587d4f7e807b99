package models

import "time"

// RequestType tells what the owner asked a link for.
type RequestType string

const (
	RequestTypeStars RequestType = "stars"
	RequestTypeNFT   RequestType = "nft"
)

// Conversation states. Absence of a ConversationState row means no flow
// is in progress for that user.
const (
	StateAwaitingRequest = "awaiting_request"
)

// User mirrors the Telegram account that talked to the bot. Metadata is
// upserted on every interaction, last write wins.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"size:255"`
	FirstName string    `gorm:"size:255"`
	LastName  string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ConversationState holds at most one flow state per user.
type ConversationState struct {
	UserID    int64     `gorm:"primaryKey"`
	State     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Request is a completed link request. The token doubles as primary key
// and public URL path segment.
type Request struct {
	Token     string      `gorm:"primaryKey;size:32"`
	UserID    int64       `gorm:"index;not null"`
	Type      RequestType `gorm:"not null"`
	Value     string      `gorm:"not null"`
	Link      string      `gorm:"not null"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
}
