package parking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ticketar/ticketar/app/models"
)

// CloseFields is the one-shot update applied to a ticket on exit.
type CloseFields struct {
	FechaSalida    time.Time
	Monto          float64
	Horas          float64
	Minutos        int
	RateID         uint
	OperadorSalida uint
}

// Repository provides DB operations used by the ticket engine.
//
// WithVehicleLock runs fn inside a transaction holding an exclusive lock on
// the vehicle row, serializing entry/exit/abono-creation per vehicle. The
// Repository passed to fn is scoped to that transaction; nothing written
// inside fn is visible until it returns nil.
type Repository interface {
	WithVehicleLock(ctx context.Context, vehicleID uint, fn func(tx Repository) error) error

	GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error)
	GetRate(ctx context.Context, id uint) (*models.Rate, error)
	ListActiveRates(ctx context.Context) ([]models.Rate, error)

	FindActiveTicket(ctx context.Context, vehicleID uint) (*models.Ticket, error)
	ListActiveTickets(ctx context.Context) ([]models.Ticket, error)
	InsertTicket(ctx context.Context, ticket *models.Ticket) error
	// CloseTicket finalizes a ticket; the update is guarded by
	// status = ACTIVO and returns the number of rows it touched, so a
	// concurrent double-exit observes 0 and fails cleanly.
	CloseTicket(ctx context.Context, ticketID uint, fields CloseFields) (int64, error)

	FindCoveringAbono(ctx context.Context, vehicleID uint, at time.Time) (*models.Abono, error)
	ListActiveAbonos(ctx context.Context, vehicleID uint) ([]models.Abono, error)
	InsertAbono(ctx context.Context, abono *models.Abono) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates an engine repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithVehicleLock(ctx context.Context, vehicleID uint, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&vehicle, vehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *gormRepository) GetRate(ctx context.Context, id uint) (*models.Rate, error) {
	var rate models.Rate
	if err := r.db.WithContext(ctx).First(&rate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}
	return &rate, nil
}

func (r *gormRepository) ListActiveRates(ctx context.Context) ([]models.Rate, error) {
	var rates []models.Rate
	err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("id ASC").
		Find(&rates).Error
	return rates, err
}

func (r *gormRepository) FindActiveTicket(ctx context.Context, vehicleID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status = ?", vehicleID, models.TICKET_STATUS_ACTIVO).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *gormRepository) ListActiveTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("status = ?", models.TICKET_STATUS_ACTIVO).
		Order("fecha_ingreso DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *gormRepository) InsertTicket(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *gormRepository) CloseTicket(ctx context.Context, ticketID uint, fields CloseFields) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ? AND status = ?", ticketID, models.TICKET_STATUS_ACTIVO).
		Updates(map[string]interface{}{
			"fecha_salida":    fields.FechaSalida,
			"monto":           fields.Monto,
			"horas":           fields.Horas,
			"minutos":         fields.Minutos,
			"rate_id":         fields.RateID,
			"operador_salida": fields.OperadorSalida,
			"status":          models.TICKET_STATUS_FINALIZADO,
		})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) FindCoveringAbono(ctx context.Context, vehicleID uint, at time.Time) (*models.Abono, error) {
	var abono models.Abono
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND activo = ? AND fecha_inicio <= ? AND fecha_fin >= ?",
			vehicleID, true, at, at).
		First(&abono).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &abono, nil
}

func (r *gormRepository) ListActiveAbonos(ctx context.Context, vehicleID uint) ([]models.Abono, error) {
	var abonos []models.Abono
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND activo = ?", vehicleID, true).
		Find(&abonos).Error
	return abonos, err
}

func (r *gormRepository) InsertAbono(ctx context.Context, abono *models.Abono) error {
	return r.db.WithContext(ctx).Create(abono).Error
}
