package models

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Well-known configuration keys.
const (
	SETTING_MAX_PARKING_SPACES = "MAX_PARKING_SPACES"
)

// Setting is a key/value configuration row (lot capacity and friends).
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"uniqueIndex;type:varchar(100)" json:"key" validate:"required,min=1,max=100"`
	Value       string    `gorm:"type:varchar(255)" json:"value" validate:"required,max=255"`
	Descripcion string    `gorm:"type:varchar(255);default:null" json:"descripcion,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Setting) Validate() error {
	return validator.New().Struct(s)
}

// IntValue parses the value as an integer, falling back to def.
func (s *Setting) IntValue(def int) int {
	if n, err := strconv.Atoi(s.Value); err == nil {
		return n
	}
	return def
}
