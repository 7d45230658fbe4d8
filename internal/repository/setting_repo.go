package repository

import (
	"mpgspay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the global (language-less) value for a key, or "" when unset.
func (r *SettingRepository) Get(key string) (string, error) {
	return r.GetLang(key, "")
}

func (r *SettingRepository) GetLang(key, lang string) (string, error) {
	var s models.Setting
	err := r.db.Where("`key` = ? AND lang = ?", key, lang).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

// GetLangMap returns every per-language value stored under a key.
func (r *SettingRepository) GetLangMap(key string) (map[string]string, error) {
	var list []models.Setting
	if err := r.db.Where("`key` = ? AND lang <> ''", key).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Lang] = s.Value
	}
	return out, nil
}

func (r *SettingRepository) Set(key, value string) error {
	return r.SetLang(key, "", value)
}

func (r *SettingRepository) SetLang(key, lang, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "lang"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.Setting{Key: key, Lang: lang, Value: value}).Error
}

// SeedDefaults inserts default settings if they don't already exist.
func (r *SettingRepository) SeedDefaults(defaults map[string]string) error {
	for k, v := range defaults {
		var count int64
		r.db.Model(&models.Setting{}).Where("`key` = ? AND lang = ''", k).Count(&count)
		if count == 0 {
			if err := r.db.Create(&models.Setting{Key: k, Value: v}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
