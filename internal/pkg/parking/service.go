package parking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/internal/pkg/realtime"
)

// Service is the ticket session engine. It exclusively owns the
// ACTIVO -> FINALIZADO transition; no other component mutates ticket status.
// The engine holds no state across requests: every open/close recomputes
// against current storage through the injected repository.
type Service struct {
	repo Repository
	hook realtime.Publisher
	now  func() time.Time
}

// NewService creates an engine from an injected repository and notification hook.
func NewService(repo Repository, hook realtime.Publisher) *Service {
	if hook == nil {
		hook = realtime.NopPublisher{}
	}
	return &Service{repo: repo, hook: hook, now: time.Now}
}

// NewServiceFromDB creates an engine from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, hook realtime.Publisher) *Service {
	return NewService(NewRepository(db), hook)
}

// OpenSession registers a vehicle entry. It fails with ErrVehicleNotFound for
// unknown vehicles and ErrTicketAlreadyActive when the vehicle is already
// inside. The existence check and the insert run under the vehicle lock, so
// two concurrent entries for the same vehicle cannot both succeed.
func (s *Service) OpenSession(ctx context.Context, vehicleID, operatorID uint) (*models.Ticket, error) {
	var ticket *models.Ticket

	err := s.repo.WithVehicleLock(ctx, vehicleID, func(tx Repository) error {
		vehicle, err := tx.GetVehicle(ctx, vehicleID)
		if err != nil {
			return err
		}

		active, err := tx.FindActiveTicket(ctx, vehicleID)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrTicketAlreadyActive
		}

		ticket = &models.Ticket{
			VehicleID:       vehicle.ID,
			Patente:         vehicle.Patente,
			TipoVehiculo:    vehicle.Tipo,
			FechaIngreso:    s.now(),
			OperadorIngreso: operatorID,
			Status:          models.TICKET_STATUS_ACTIVO,
		}
		return tx.InsertTicket(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	s.hook.Publish(realtime.EventParkingUpdate, nil)
	s.hook.Publish(realtime.EventTicketCreated, ticket)

	return ticket, nil
}

// CloseSession registers a vehicle exit and computes the charge. Elapsed time
// is whole minutes (floored) and fractional hours (minutes/60, not rounded).
// An active abono covering the exit instant suppresses billing entirely;
// otherwise the rate is resolved at the ENTRY timestamp and billed. Any
// failure leaves the ticket ACTIVO, so the same request can be retried.
func (s *Service) CloseSession(ctx context.Context, vehicleID, operatorID uint) (*models.Ticket, error) {
	var ticket *models.Ticket

	err := s.repo.WithVehicleLock(ctx, vehicleID, func(tx Repository) error {
		active, err := tx.FindActiveTicket(ctx, vehicleID)
		if err != nil {
			return err
		}
		if active == nil {
			return ErrNoActiveTicket
		}

		fechaSalida := s.now()
		minutos := int(fechaSalida.Sub(active.FechaIngreso) / time.Minute)
		if minutos < 0 {
			minutos = 0
		}
		horas := float64(minutos) / 60

		var monto float64
		var rateID uint

		abono, err := tx.FindCoveringAbono(ctx, vehicleID, fechaSalida)
		if err != nil {
			return err
		}
		if abono != nil {
			// Prepaid coverage: nothing to charge.
			monto = 0
			rateID = abono.RateID
		} else {
			rates, err := tx.ListActiveRates(ctx)
			if err != nil {
				return err
			}
			rate := ResolveRate(rates, active.FechaIngreso)
			if rate == nil {
				return ErrNoApplicableRate
			}
			rateID = rate.ID
			monto = Amount(rate.Tipo, rate.Precio, horas)
		}

		fields := CloseFields{
			FechaSalida:    fechaSalida,
			Monto:          monto,
			Horas:          horas,
			Minutos:        minutos,
			RateID:         rateID,
			OperadorSalida: operatorID,
		}
		rows, err := tx.CloseTicket(ctx, active.ID, fields)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race against a concurrent exit.
			return ErrNoActiveTicket
		}

		active.FechaSalida = &fields.FechaSalida
		active.Monto = monto
		active.Horas = horas
		active.Minutos = minutos
		active.RateID = &rateID
		active.OperadorSalida = &fields.OperadorSalida
		active.Status = models.TICKET_STATUS_FINALIZADO
		ticket = active
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hook.Publish(realtime.EventParkingUpdate, nil)
	s.hook.Publish(realtime.EventTicketExited, ticket)

	return ticket, nil
}

// ActiveSessions lists open tickets, newest entry first.
func (s *Service) ActiveSessions(ctx context.Context) ([]models.Ticket, error) {
	return s.repo.ListActiveTickets(ctx)
}

// CreateAbonoInput is the operator request to sell a coverage period.
type CreateAbonoInput struct {
	VehicleID   uint
	RateID      uint
	UserID      *uint
	Precio      float64
	FechaInicio time.Time
	FechaFin    time.Time
}

// CreateAbono sells a prepaid period. It rejects unknown vehicles/rates,
// inverted periods, and any period intersecting an existing active abono of
// the vehicle (inclusive bounds, touching endpoints count). The overlap check
// and the insert run under the vehicle lock.
func (s *Service) CreateAbono(ctx context.Context, in CreateAbonoInput) (*models.Abono, error) {
	if in.FechaFin.Before(in.FechaInicio) {
		return nil, ErrInvalidPeriod
	}

	var abono *models.Abono

	err := s.repo.WithVehicleLock(ctx, in.VehicleID, func(tx Repository) error {
		if _, err := tx.GetVehicle(ctx, in.VehicleID); err != nil {
			return err
		}
		if _, err := tx.GetRate(ctx, in.RateID); err != nil {
			return err
		}

		existing, err := tx.ListActiveAbonos(ctx, in.VehicleID)
		if err != nil {
			return err
		}
		for i := range existing {
			if existing[i].Overlaps(in.FechaInicio, in.FechaFin) {
				return ErrAbonoOverlap
			}
		}

		abono = &models.Abono{
			VehicleID:   in.VehicleID,
			RateID:      in.RateID,
			UserID:      in.UserID,
			Precio:      in.Precio,
			FechaInicio: in.FechaInicio,
			FechaFin:    in.FechaFin,
			Activo:      true,
		}
		return tx.InsertAbono(ctx, abono)
	})
	if err != nil {
		return nil, err
	}
	return abono, nil
}
