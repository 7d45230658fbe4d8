package models

import (
	"time"

	"gorm.io/gorm"
)

// Setting stores one configuration value. Lang is empty for global keys and
// an ISO language code for language-scoped keys (method titles).
type Setting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Key       string         `gorm:"size:100;not null;uniqueIndex:idx_settings_key_lang" json:"key"`
	Lang      string         `gorm:"size:8;not null;default:'';uniqueIndex:idx_settings_key_lang" json:"lang"`
	Value     string         `gorm:"size:255;not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Setting) TableName() string { return "settings" }
