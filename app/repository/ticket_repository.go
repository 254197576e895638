package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ticketar/ticketar/app/models"
)

// ticketRepository implements the read-side TicketRepository interface
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository instance
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Preload("Vehicle").Preload("Rate").First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByUUID(uuid string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Preload("Vehicle").Preload("Rate").Where("uuid = ?", uuid).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List() ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Preload("Vehicle").Preload("Rate").
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).
		Where("status = ?", models.TICKET_STATUS_ACTIVO).
		Count(&count).Error
	return count, err
}

func (r *ticketRepository) CountEnteredSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).
		Where("fecha_ingreso >= ?", since).
		Count(&count).Error
	return count, err
}

// RevenueSince sums the amounts of tickets finished at or after the instant.
func (r *ticketRepository) RevenueSince(since time.Time) (float64, error) {
	var total *float64
	err := r.db.Model(&models.Ticket{}).
		Where("status = ? AND fecha_salida >= ?", models.TICKET_STATUS_FINALIZADO, since).
		Select("SUM(monto)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *ticketRepository) Recent(limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Preload("Vehicle").Preload("Rate").
		Order("created_at DESC").
		Limit(limit).
		Find(&tickets).Error
	return tickets, err
}
