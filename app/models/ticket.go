package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TICKET_STATUS_ACTIVO     = "ACTIVO"
	TICKET_STATUS_FINALIZADO = "FINALIZADO"
)

// Ticket is one vehicle's stay in the lot. It is created ACTIVO on entry and
// mutated exactly once, on exit, when the exit fields are populated and the
// status becomes FINALIZADO. Plate and vehicle type are denormalized at entry
// time so later vehicle edits do not rewrite history. At most one ticket per
// vehicle may be ACTIVO at any instant.
type Ticket struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           string     `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	VehicleID      uint       `gorm:"not null;index:idx_tickets_vehicle_status,priority:1" json:"vehicle_id"`
	Vehicle        Vehicle    `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Patente        string     `gorm:"type:varchar(20);not null;index" json:"patente"`
	TipoVehiculo   string     `gorm:"type:varchar(20);not null" json:"tipo_vehiculo"`
	FechaIngreso   time.Time  `gorm:"type:timestamp;not null;index" json:"fecha_ingreso"`
	FechaSalida    *time.Time `gorm:"type:timestamp;default:null;index" json:"fecha_salida,omitempty"`
	Monto          float64    `gorm:"type:decimal(10,2);default:0" json:"monto"`
	Horas          float64    `gorm:"type:decimal(10,4);default:0" json:"horas"`
	Minutos        int        `gorm:"default:0" json:"minutos"`
	RateID         *uint      `gorm:"default:null" json:"rate_id,omitempty"`
	Rate           *Rate      `gorm:"foreignKey:RateID" json:"rate,omitempty"`
	OperadorIngreso uint      `gorm:"not null" json:"operador_ingreso"`
	OperadorSalida  *uint     `gorm:"default:null" json:"operador_salida,omitempty"`
	Status         string     `gorm:"type:varchar(20);default:'ACTIVO';index:idx_tickets_vehicle_status,priority:2" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsActive reports whether the session is still open.
func (t *Ticket) IsActive() bool {
	return t.Status == TICKET_STATUS_ACTIVO
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.New().String()
	}
	return nil
}
