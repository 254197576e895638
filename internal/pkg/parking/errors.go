package parking

import "errors"

// Precondition failures returned by the engine. They are terminal for the
// request: nothing is retried internally and a failed exit leaves the ticket
// ACTIVO, so the caller can simply resubmit.
var (
	// Not found.
	ErrVehicleNotFound = errors.New("vehículo no encontrado")
	ErrRateNotFound    = errors.New("tarifa no encontrada")
	ErrNoActiveTicket  = errors.New("no se encontró un ticket activo para este vehículo")

	// Conflicts.
	ErrTicketAlreadyActive = errors.New("el vehículo ya tiene un ticket activo")
	ErrAbonoOverlap        = errors.New("ya existe un abono activo para este vehículo en el período seleccionado")

	// Bad request.
	ErrNoApplicableRate = errors.New("no se encontró una tarifa aplicable")
	ErrInvalidPeriod    = errors.New("el período del abono es inválido")
)

// IsNotFound reports whether err is an absence failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVehicleNotFound) ||
		errors.Is(err, ErrRateNotFound) ||
		errors.Is(err, ErrNoActiveTicket)
}

// IsConflict reports whether err is a state collision.
func IsConflict(err error) bool {
	return errors.Is(err, ErrTicketAlreadyActive) || errors.Is(err, ErrAbonoOverlap)
}

// IsBadRequest reports whether err is a rejected input.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrNoApplicableRate) || errors.Is(err, ErrInvalidPeriod)
}
