package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	VEHICLE_TYPE_AUTO      = "AUTO"
	VEHICLE_TYPE_CAMIONETA = "CAMIONETA"
	VEHICLE_TYPE_MOTO      = "MOTO"
	VEHICLE_TYPE_TRAFIC    = "TRAFIC"
)

// Vehicle is a registered vehicle identified by its plate (patente).
type Vehicle struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Patente   string         `gorm:"uniqueIndex;type:varchar(20)" json:"patente" validate:"required,min=3,max=20"`
	Tipo      string         `gorm:"type:varchar(20);default:'AUTO'" json:"tipo" validate:"oneof=AUTO CAMIONETA MOTO TRAFIC"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vehicle) Validate() error {
	return validator.New().Struct(v)
}
