package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gift-link/app/internal/models"
	"gift-link/app/internal/services"
)

// RequestStore is the Postgres-backed link request store, keyed by token.
type RequestStore struct {
	db *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

// Save inserts or updates the request identified by its token.
func (s *RequestStore) Save(req *models.Request) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "type", "value", "link"}),
	}).Create(req).Error
}

func (s *RequestStore) GetByToken(token string) (*models.Request, error) {
	var req models.Request
	err := s.db.First(&req, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
