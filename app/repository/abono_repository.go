package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ticketar/ticketar/app/models"
)

// abonoRepository implements the AbonoRepository interface. Abono creation
// lives in the parking engine because it needs the per-vehicle overlap guard.
type abonoRepository struct {
	db *gorm.DB
}

// NewAbonoRepository creates a new abono repository instance
func NewAbonoRepository(db *gorm.DB) AbonoRepository {
	return &abonoRepository{db: db}
}

func (r *abonoRepository) GetByID(id uint) (*models.Abono, error) {
	var abono models.Abono
	if err := r.db.Preload("Vehicle").Preload("Rate").First(&abono, id).Error; err != nil {
		return nil, err
	}
	return &abono, nil
}

func (r *abonoRepository) List() ([]models.Abono, error) {
	var abonos []models.Abono
	err := r.db.Preload("Vehicle").Preload("Rate").
		Order("created_at DESC").
		Find(&abonos).Error
	return abonos, err
}

func (r *abonoRepository) ListCovering(at time.Time) ([]models.Abono, error) {
	var abonos []models.Abono
	err := r.db.Preload("Vehicle").Preload("Rate").
		Where("activo = ? AND fecha_inicio <= ? AND fecha_fin >= ?", true, at, at).
		Find(&abonos).Error
	return abonos, err
}

func (r *abonoRepository) Update(abono *models.Abono) error {
	return r.db.Save(abono).Error
}

func (r *abonoRepository) Deactivate(id uint) error {
	result := r.db.Model(&models.Abono{}).Where("id = ?", id).Update("activo", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
