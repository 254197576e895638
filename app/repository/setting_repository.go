package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ticketar/ticketar/app/models"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Create(setting *models.Setting) error {
	return r.db.Create(setting).Error
}

func (r *settingRepository) GetByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("`key` = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) List() ([]models.Setting, error) {
	var settings []models.Setting
	err := r.db.Order("`key` ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) SetValue(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}

func (r *settingRepository) Delete(key string) error {
	result := r.db.Where("`key` = ?", key).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
