package repository

import (
	"gorm.io/gorm"

	"github.com/ticketar/ticketar/app/models"
)

// rateRepository implements the RateRepository interface
type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository creates a new rate repository instance
func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) Create(rate *models.Rate) error {
	return r.db.Create(rate).Error
}

func (r *rateRepository) GetByID(id uint) (*models.Rate, error) {
	var rate models.Rate
	if err := r.db.First(&rate, id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) ListActive() ([]models.Rate, error) {
	var rates []models.Rate
	err := r.db.Where("activo = ?", true).Order("created_at DESC").Find(&rates).Error
	return rates, err
}

func (r *rateRepository) List() ([]models.Rate, error) {
	var rates []models.Rate
	err := r.db.Order("created_at DESC").Find(&rates).Error
	return rates, err
}

func (r *rateRepository) Update(rate *models.Rate) error {
	return r.db.Save(rate).Error
}

func (r *rateRepository) Deactivate(id uint) error {
	result := r.db.Model(&models.Rate{}).Where("id = ?", id).Update("activo", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
