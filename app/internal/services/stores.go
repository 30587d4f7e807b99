package services

import (
	"errors"

	"gift-link/app/internal/models"
)

// ErrRequestNotFound is returned by RequestStore.GetByToken for tokens
// that were never issued.
var ErrRequestNotFound = errors.New("request not found")

// UserStore upserts Telegram user metadata by identity.
type UserStore interface {
	Upsert(user *models.User) error
}

// StateStore holds at most one conversation state per user. Get returns
// an empty string when no flow is in progress.
type StateStore interface {
	Get(userID int64) (string, error)
	Set(userID int64, state string) error
	Clear(userID int64) error
}

// RequestStore persists link requests keyed by token. Save has upsert
// semantics, though the flow never re-issues a token.
type RequestStore interface {
	Save(req *models.Request) error
	GetByToken(token string) (*models.Request, error)
}
