package repository

import (
	"mpgspay/internal/models"

	"gorm.io/gorm"
)

type StateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) *StateRepository {
	return &StateRepository{db: db}
}

func (r *StateRepository) Create(s *models.OrderState) error {
	return r.db.Create(s).Error
}

// Exists reports whether a state row with the given id is still present.
func (r *StateRepository) Exists(id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.OrderState{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
