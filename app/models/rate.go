package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	RATE_TYPE_POR_HORA     = "POR_HORA"
	RATE_TYPE_POR_FRACCION = "POR_FRACCION"
	RATE_TYPE_POR_ESTADIA  = "POR_ESTADIA"
	RATE_TYPE_MENSUAL      = "MENSUAL"
)

// Rate is a priced tariff rule. HoraInicio/HoraFin restrict the rule to an
// hour-of-day window and DiaSemana to a single weekday (0 = Sunday); a nil
// restriction matches anything. Rates are soft-disabled via Activo, never
// deleted, so finished tickets keep their rate reference.
type Rate struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Nombre      string     `gorm:"type:varchar(150)" json:"nombre" validate:"required,min=3,max=150"`
	Tipo        string     `gorm:"type:varchar(20);default:'POR_HORA'" json:"tipo" validate:"oneof=POR_HORA POR_FRACCION POR_ESTADIA MENSUAL"`
	Precio      float64    `gorm:"type:decimal(10,2);not null" json:"precio" validate:"gte=0"`
	FraccionMin *int       `gorm:"default:null" json:"fraccion_min,omitempty" validate:"omitempty,gte=0"`
	FraccionMax *int       `gorm:"default:null" json:"fraccion_max,omitempty" validate:"omitempty,gte=0"`
	HoraInicio  *int       `gorm:"default:null" json:"hora_inicio,omitempty" validate:"omitempty,gte=0,lte=23"`
	HoraFin     *int       `gorm:"default:null" json:"hora_fin,omitempty" validate:"omitempty,gte=0,lte=23"`
	DiaSemana   *int       `gorm:"default:null" json:"dia_semana,omitempty" validate:"omitempty,gte=0,lte=6"`
	Activo      bool       `gorm:"default:true;index" json:"activo"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Rate) Validate() error {
	return validator.New().Struct(r)
}

// MatchesDay reports whether the rate applies on the given weekday.
func (r *Rate) MatchesDay(weekday time.Weekday) bool {
	return r.DiaSemana == nil || *r.DiaSemana == int(weekday)
}

// MatchesHour reports whether the rate's hour window contains the given hour.
// A window with HoraInicio > HoraFin wraps past midnight (e.g. 20-8 covers
// 20:00 through 08:59).
func (r *Rate) MatchesHour(hour int) bool {
	if r.HoraInicio == nil || r.HoraFin == nil {
		return true
	}
	start, end := *r.HoraInicio, *r.HoraFin
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}
