package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAbonoDatesInverted = errors.New("fecha_inicio must not be after fecha_fin")

// Abono is a prepaid coverage period for a vehicle. While an active abono
// covers an exit instant (FechaInicio <= t <= FechaFin, both inclusive) the
// exit is billed 0 against the abono's rate. Abonos are soft-disabled via
// Activo, never deleted.
type Abono struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	VehicleID   uint      `gorm:"not null;index" json:"vehicle_id"`
	Vehicle     Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	RateID      uint      `gorm:"not null" json:"rate_id"`
	Rate        Rate      `gorm:"foreignKey:RateID" json:"rate,omitempty"`
	UserID      *uint     `gorm:"index;default:null" json:"user_id,omitempty"`
	Precio      float64   `gorm:"type:decimal(10,2);not null" json:"precio" validate:"gte=0"`
	FechaInicio time.Time `gorm:"type:timestamp;not null;index" json:"fecha_inicio"`
	FechaFin    time.Time `gorm:"type:timestamp;not null;index" json:"fecha_fin"`
	Activo      bool      `gorm:"default:true;index" json:"activo"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Abono) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		return err
	}
	if a.FechaFin.Before(a.FechaInicio) {
		return ErrAbonoDatesInverted
	}
	return nil
}

// Covers reports whether the abono covers the given instant. Both period
// endpoints are inclusive.
func (a *Abono) Covers(t time.Time) bool {
	return a.Activo && !t.Before(a.FechaInicio) && !t.After(a.FechaFin)
}

// Overlaps reports whether [start, end] intersects the abono's period.
// Touching endpoints count as overlap.
func (a *Abono) Overlaps(start, end time.Time) bool {
	return !a.FechaInicio.After(end) && !a.FechaFin.Before(start)
}

func (a *Abono) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return nil
}
