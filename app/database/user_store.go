package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gift-link/app/internal/models"
)

// UserStore is the Postgres-backed user metadata store.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Upsert inserts the user or refreshes its metadata, last write wins.
func (s *UserStore) Upsert(user *models.User) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "updated_at"}),
	}).Create(user).Error
}
