package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ticketar/ticketar/app/models"
)

// VehicleRepository defines the interface for vehicle registry operations
type VehicleRepository interface {
	Create(vehicle *models.Vehicle) error
	GetByID(id uint) (*models.Vehicle, error)
	GetByPatente(patente string) (*models.Vehicle, error)
	PatenteExists(patente string) (bool, error)
	List() ([]models.Vehicle, error)
	Update(vehicle *models.Vehicle) error
	Delete(id uint) error
	Count() (int64, error)
}

// RateRepository defines the interface for tariff catalog operations
type RateRepository interface {
	Create(rate *models.Rate) error
	GetByID(id uint) (*models.Rate, error)
	ListActive() ([]models.Rate, error)
	List() ([]models.Rate, error)
	Update(rate *models.Rate) error
	// Deactivate soft-disables a rate; rates are never deleted so finished
	// tickets keep their reference.
	Deactivate(id uint) error
}

// AbonoRepository defines the interface for the subscription ledger
type AbonoRepository interface {
	GetByID(id uint) (*models.Abono, error)
	List() ([]models.Abono, error)
	// ListCovering returns active abonos whose period contains the instant.
	ListCovering(at time.Time) ([]models.Abono, error)
	Update(abono *models.Abono) error
	Deactivate(id uint) error
}

// TicketRepository defines the read-side interface for tickets. Writes go
// exclusively through the parking engine.
type TicketRepository interface {
	GetByID(id uint) (*models.Ticket, error)
	GetByUUID(uuid string) (*models.Ticket, error)
	List() ([]models.Ticket, error)
	CountActive() (int64, error)
	CountEnteredSince(since time.Time) (int64, error)
	RevenueSince(since time.Time) (float64, error)
	Recent(limit int) ([]models.Ticket, error)
}

// UserRepository defines the interface for operator accounts
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	TouchLastLogin(id uint) error
}

// SettingRepository defines the interface for key/value configuration rows
type SettingRepository interface {
	Create(setting *models.Setting) error
	GetByKey(key string) (*models.Setting, error)
	List() ([]models.Setting, error)
	SetValue(key, value string) error
	Delete(key string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Vehicle VehicleRepository
	Rate    RateRepository
	Abono   AbonoRepository
	Ticket  TicketRepository
	User    UserRepository
	Setting SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vehicle: NewVehicleRepository(db),
		Rate:    NewRateRepository(db),
		Abono:   NewAbonoRepository(db),
		Ticket:  NewTicketRepository(db),
		User:    NewUserRepository(db),
		Setting: NewSettingRepository(db),
	}
}
