package repository

import (
	"gorm.io/gorm"

	"github.com/ticketar/ticketar/app/models"
)

// vehicleRepository implements the VehicleRepository interface
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository instance
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Create(vehicle).Error
}

func (r *vehicleRepository) GetByID(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetByPatente(patente string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.Where("patente = ?", patente).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) PatenteExists(patente string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Vehicle{}).Where("patente = ?", patente).Count(&count).Error
	return count > 0, err
}

func (r *vehicleRepository) List() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.Order("created_at DESC").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepository) Update(vehicle *models.Vehicle) error {
	return r.db.Save(vehicle).Error
}

func (r *vehicleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vehicle{}, id).Error
}

func (r *vehicleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vehicle{}).Count(&count).Error
	return count, err
}
