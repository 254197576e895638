package parking

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketar/ticketar/app/models"
)

// fakeRepo is an in-memory Repository. WithVehicleLock serializes callers
// with a mutex, mirroring the per-vehicle row lock of the GORM repository.
type fakeRepo struct {
	mu       sync.Mutex
	vehicles map[uint]models.Vehicle
	rates    map[uint]models.Rate
	tickets  []*models.Ticket
	abonos   []*models.Abono
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vehicles: map[uint]models.Vehicle{},
		rates:    map[uint]models.Rate{},
		nextID:   1,
	}
}

func (f *fakeRepo) WithVehicleLock(ctx context.Context, vehicleID uint, fn func(Repository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vehicles[vehicleID]; !ok {
		return ErrVehicleNotFound
	}
	return fn(f)
}

func (f *fakeRepo) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	return &v, nil
}

func (f *fakeRepo) GetRate(ctx context.Context, id uint) (*models.Rate, error) {
	r, ok := f.rates[id]
	if !ok {
		return nil, ErrRateNotFound
	}
	return &r, nil
}

func (f *fakeRepo) ListActiveRates(ctx context.Context) ([]models.Rate, error) {
	var rates []models.Rate
	for _, r := range f.rates {
		if r.Activo {
			rates = append(rates, r)
		}
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].ID < rates[j].ID })
	return rates, nil
}

func (f *fakeRepo) FindActiveTicket(ctx context.Context, vehicleID uint) (*models.Ticket, error) {
	for _, t := range f.tickets {
		if t.VehicleID == vehicleID && t.Status == models.TICKET_STATUS_ACTIVO {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListActiveTickets(ctx context.Context) ([]models.Ticket, error) {
	var active []models.Ticket
	for _, t := range f.tickets {
		if t.Status == models.TICKET_STATUS_ACTIVO {
			active = append(active, *t)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].FechaIngreso.After(active[j].FechaIngreso)
	})
	return active, nil
}

func (f *fakeRepo) InsertTicket(ctx context.Context, ticket *models.Ticket) error {
	ticket.ID = f.nextID
	f.nextID++
	copied := *ticket
	f.tickets = append(f.tickets, &copied)
	return nil
}

func (f *fakeRepo) CloseTicket(ctx context.Context, ticketID uint, fields CloseFields) (int64, error) {
	for _, t := range f.tickets {
		if t.ID == ticketID && t.Status == models.TICKET_STATUS_ACTIVO {
			salida := fields.FechaSalida
			rateID := fields.RateID
			operador := fields.OperadorSalida
			t.FechaSalida = &salida
			t.Monto = fields.Monto
			t.Horas = fields.Horas
			t.Minutos = fields.Minutos
			t.RateID = &rateID
			t.OperadorSalida = &operador
			t.Status = models.TICKET_STATUS_FINALIZADO
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRepo) FindCoveringAbono(ctx context.Context, vehicleID uint, atTime time.Time) (*models.Abono, error) {
	for _, a := range f.abonos {
		if a.VehicleID == vehicleID && a.Covers(atTime) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListActiveAbonos(ctx context.Context, vehicleID uint) ([]models.Abono, error) {
	var active []models.Abono
	for _, a := range f.abonos {
		if a.VehicleID == vehicleID && a.Activo {
			active = append(active, *a)
		}
	}
	return active, nil
}

func (f *fakeRepo) InsertAbono(ctx context.Context, abono *models.Abono) error {
	abono.ID = f.nextID
	f.nextID++
	copied := *abono
	f.abonos = append(f.abonos, &copied)
	return nil
}

// recordingHook captures published event names.
type recordingHook struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHook) Publish(event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func (h *recordingHook) names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func newEngine(t *testing.T) (*Service, *fakeRepo, *recordingHook) {
	t.Helper()
	repo := newFakeRepo()
	hook := &recordingHook{}
	return NewService(repo, hook), repo, hook
}

func seedVehicle(repo *fakeRepo, id uint) {
	repo.vehicles[id] = models.Vehicle{ID: id, Patente: "ABC123", Tipo: models.VEHICLE_TYPE_AUTO}
}

func seedHourlyRate(repo *fakeRepo, id uint, precio float64) {
	repo.rates[id] = models.Rate{ID: id, Nombre: "Por Hora", Tipo: models.RATE_TYPE_POR_HORA, Precio: precio, Activo: true}
}

func TestOpenSessionUnknownVehicle(t *testing.T) {
	engine, _, _ := newEngine(t)

	_, err := engine.OpenSession(context.Background(), 99, 1)
	require.ErrorIs(t, err, ErrVehicleNotFound)
	assert.True(t, IsNotFound(err))
}

func TestOpenSessionCreatesActiveTicket(t *testing.T) {
	engine, repo, hook := newEngine(t)
	seedVehicle(repo, 1)

	ticket, err := engine.OpenSession(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, models.TICKET_STATUS_ACTIVO, ticket.Status)
	assert.Equal(t, "ABC123", ticket.Patente)
	assert.Equal(t, models.VEHICLE_TYPE_AUTO, ticket.TipoVehiculo)
	assert.Equal(t, uint(42), ticket.OperadorIngreso)
	assert.False(t, ticket.FechaIngreso.IsZero())
	assert.Nil(t, ticket.FechaSalida)

	assert.Equal(t, []string{"parking-update", "ticket-created"}, hook.names())
}

func TestOpenSessionRejectsSecondActiveTicket(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)

	_, err := engine.OpenSession(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = engine.OpenSession(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrTicketAlreadyActive)
	assert.True(t, IsConflict(err))
}

func TestConcurrentEntriesLeaveOneActiveTicket(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.OpenSession(context.Background(), 1, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrTicketAlreadyActive)
		}
	}
	assert.Equal(t, 1, succeeded)

	active, err := engine.ActiveSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCloseSessionNoActiveTicket(t *testing.T) {
	engine, repo, hook := newEngine(t)
	seedVehicle(repo, 1)

	_, err := engine.CloseSession(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrNoActiveTicket)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, hook.names(), "failed close must not emit events")
	assert.Empty(t, repo.tickets, "failed close must not mutate state")
}

func TestCloseSessionHourlyBilling(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		wantMonto float64
		wantMin   int
	}{
		{"61 minutes bills two hours", 61 * time.Minute, 1000, 61},
		{"exactly 60 minutes bills one hour", 60 * time.Minute, 500, 60},
		{"partial minute floors", 60*time.Minute + 59*time.Second, 500, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, repo, hook := newEngine(t)
			seedVehicle(repo, 1)
			seedHourlyRate(repo, 1, 500)

			entry := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
			engine.now = func() time.Time { return entry }
			_, err := engine.OpenSession(context.Background(), 1, 1)
			require.NoError(t, err)

			engine.now = func() time.Time { return entry.Add(tt.elapsed) }
			ticket, err := engine.CloseSession(context.Background(), 1, 2)
			require.NoError(t, err)

			assert.Equal(t, models.TICKET_STATUS_FINALIZADO, ticket.Status)
			assert.Equal(t, tt.wantMonto, ticket.Monto)
			assert.Equal(t, tt.wantMin, ticket.Minutos)
			assert.InDelta(t, float64(tt.wantMin)/60, ticket.Horas, 1e-9)
			require.NotNil(t, ticket.RateID)
			assert.Equal(t, uint(1), *ticket.RateID)
			require.NotNil(t, ticket.OperadorSalida)
			assert.Equal(t, uint(2), *ticket.OperadorSalida)

			assert.Equal(t, []string{"parking-update", "ticket-created", "parking-update", "ticket-exited"}, hook.names())
		})
	}
}

func TestCloseSessionMonthlyRateBillsZero(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)
	repo.rates[5] = models.Rate{ID: 5, Tipo: models.RATE_TYPE_MENSUAL, Precio: 15000, Activo: true}

	entry := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return entry }
	_, err := engine.OpenSession(context.Background(), 1, 1)
	require.NoError(t, err)

	engine.now = func() time.Time { return entry.Add(72 * time.Hour) }
	ticket, err := engine.CloseSession(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Zero(t, ticket.Monto)
}

func TestCloseSessionAbonoSuppressesBilling(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)
	seedHourlyRate(repo, 1, 500)
	repo.rates[9] = models.Rate{ID: 9, Tipo: models.RATE_TYPE_MENSUAL, Precio: 15000, Activo: true}

	entry := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	repo.abonos = append(repo.abonos, &models.Abono{
		ID:          100,
		VehicleID:   1,
		RateID:      9,
		Activo:      true,
		FechaInicio: entry.AddDate(0, 0, -1),
		FechaFin:    entry.AddDate(0, 1, 0),
	})

	engine.now = func() time.Time { return entry }
	_, err := engine.OpenSession(context.Background(), 1, 1)
	require.NoError(t, err)

	engine.now = func() time.Time { return entry.Add(5 * time.Hour) }
	ticket, err := engine.CloseSession(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Zero(t, ticket.Monto, "covered exit is never billed, hourly rate notwithstanding")
	require.NotNil(t, ticket.RateID)
	assert.Equal(t, uint(9), *ticket.RateID, "ticket references the abono's rate")
}

func TestCloseSessionResolvesRateAtEntryTime(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)
	// Day-window rate only; the exit happens outside the window.
	repo.rates[1] = models.Rate{
		ID: 1, Tipo: models.RATE_TYPE_POR_HORA, Precio: 500, Activo: true,
		HoraInicio: intPtr(8), HoraFin: intPtr(20),
	}

	entry := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return entry }
	_, err := engine.OpenSession(context.Background(), 1, 1)
	require.NoError(t, err)

	engine.now = func() time.Time { return entry.Add(13 * time.Hour) } // 23:00
	ticket, err := engine.CloseSession(context.Background(), 1, 1)
	require.NoError(t, err, "rate selection uses the entry timestamp, not exit")
	require.NotNil(t, ticket.RateID)
	assert.Equal(t, uint(1), *ticket.RateID)
}

func TestCloseSessionNoApplicableRateLeavesTicketActive(t *testing.T) {
	engine, repo, hook := newEngine(t)
	seedVehicle(repo, 1)

	_, err := engine.OpenSession(context.Background(), 1, 1)
	require.NoError(t, err)
	openEvents := len(hook.names())

	_, err = engine.CloseSession(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrNoApplicableRate)
	assert.True(t, IsBadRequest(err))

	active, err := engine.ActiveSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1, "failed exit leaves the ticket ACTIVO")
	assert.Equal(t, models.TICKET_STATUS_ACTIVO, active[0].Status)
	assert.Len(t, hook.names(), openEvents, "failed exit emits nothing")
}

func TestActiveSessionsNewestFirst(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)
	repo.vehicles[2] = models.Vehicle{ID: 2, Patente: "XYZ789", Tipo: models.VEHICLE_TYPE_MOTO}

	base := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return base }
	_, err := engine.OpenSession(context.Background(), 1, 1)
	require.NoError(t, err)

	engine.now = func() time.Time { return base.Add(time.Hour) }
	_, err = engine.OpenSession(context.Background(), 2, 1)
	require.NoError(t, err)

	active, err := engine.ActiveSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, uint(2), active[0].VehicleID)
	assert.Equal(t, uint(1), active[1].VehicleID)
}

func TestCreateAbonoRejectsOverlap(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)
	seedHourlyRate(repo, 1, 500)

	jan1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	_, err := engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID: 1, RateID: 1, Precio: 15000, FechaInicio: jan1, FechaFin: jan31,
	})
	require.NoError(t, err)

	// Overlapping proposal is rejected.
	_, err = engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID:   1,
		RateID:      1,
		Precio:      15000,
		FechaInicio: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		FechaFin:    time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrAbonoOverlap)
	assert.True(t, IsConflict(err))

	// Disjoint follow-up period is accepted.
	_, err = engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID:   1,
		RateID:      1,
		Precio:      15000,
		FechaInicio: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		FechaFin:    time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestCreateAbonoTouchingEndpointCountsAsOverlap(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)
	seedHourlyRate(repo, 1, 500)

	jan1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	_, err := engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID: 1, RateID: 1, Precio: 15000, FechaInicio: jan1, FechaFin: jan31,
	})
	require.NoError(t, err)

	_, err = engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID:   1,
		RateID:      1,
		Precio:      15000,
		FechaInicio: jan31,
		FechaFin:    time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrAbonoOverlap)
}

func TestCreateAbonoValidatesReferences(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	_, err := engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID: 99, RateID: 1, FechaInicio: start, FechaFin: end,
	})
	require.ErrorIs(t, err, ErrVehicleNotFound)

	_, err = engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID: 1, RateID: 99, FechaInicio: start, FechaFin: end,
	})
	require.ErrorIs(t, err, ErrRateNotFound)

	_, err = engine.CreateAbono(context.Background(), CreateAbonoInput{
		VehicleID: 1, RateID: 1, FechaInicio: end, FechaFin: start,
	})
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestOpenThenCloseRoundTripAfterFailedExit(t *testing.T) {
	engine, repo, _ := newEngine(t)
	seedVehicle(repo, 1)

	_, err := engine.OpenSession(context.Background(), 1, 1)
	require.NoError(t, err)

	// No rate, no abono: the exit fails and the ticket stays open.
	_, err = engine.CloseSession(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrNoApplicableRate)

	// After a rate shows up the same request succeeds.
	seedHourlyRate(repo, 1, 500)
	ticket, err := engine.CloseSession(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TICKET_STATUS_FINALIZADO, ticket.Status)
}
