package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gift-link/app/internal/models"
)

// StateStore is the Postgres-backed conversation state store. At most
// one state row exists per user; absence means no flow in progress.
type StateStore struct {
	db *gorm.DB
}

func NewStateStore(db *gorm.DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) Get(userID int64) (string, error) {
	var state models.ConversationState
	err := s.db.First(&state, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return state.State, nil
}

func (s *StateStore) Set(userID int64, state string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(&models.ConversationState{UserID: userID, State: state}).Error
}

func (s *StateStore) Clear(userID int64) error {
	return s.db.Delete(&models.ConversationState{}, "user_id = ?", userID).Error
}
