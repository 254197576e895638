package parking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketar/ticketar/app/models"
)

func intPtr(n int) *int { return &n }

// Tuesday 2024-01-02, at the given hour.
func at(hour int) time.Time {
	return time.Date(2024, time.January, 2, hour, 30, 0, 0, time.UTC)
}

func TestResolveRateLowestPriceWins(t *testing.T) {
	rates := []models.Rate{
		{ID: 1, Tipo: models.RATE_TYPE_POR_HORA, Precio: 500, Activo: true},
		{ID: 2, Tipo: models.RATE_TYPE_POR_HORA, Precio: 300, Activo: true},
	}

	winner := ResolveRate(rates, at(12))
	require.NotNil(t, winner)
	assert.Equal(t, uint(2), winner.ID)
}

func TestResolveRatePriceTieBreaksByID(t *testing.T) {
	rates := []models.Rate{
		{ID: 7, Precio: 500, Activo: true},
		{ID: 3, Precio: 500, Activo: true},
	}

	winner := ResolveRate(rates, at(12))
	require.NotNil(t, winner)
	assert.Equal(t, uint(3), winner.ID)
}

func TestResolveRateHourWindows(t *testing.T) {
	day := models.Rate{ID: 1, Precio: 500, Activo: true, HoraInicio: intPtr(8), HoraFin: intPtr(20)}
	night := models.Rate{ID: 2, Precio: 300, Activo: true, HoraInicio: intPtr(20), HoraFin: intPtr(8)}
	rates := []models.Rate{day, night}

	// 23:30 only matches the wrap-around night window.
	winner := ResolveRate(rates, at(23))
	require.NotNil(t, winner)
	assert.Equal(t, night.ID, winner.ID)

	// 10:30 matches only the day window.
	winner = ResolveRate(rates, at(10))
	require.NotNil(t, winner)
	assert.Equal(t, day.ID, winner.ID)

	// 20:30 matches both; the cheaper night rate wins.
	winner = ResolveRate(rates, at(20))
	require.NotNil(t, winner)
	assert.Equal(t, night.ID, winner.ID)
}

func TestResolveRateWeekdayRestriction(t *testing.T) {
	sundayRate := models.Rate{ID: 1, Precio: 100, Activo: true, DiaSemana: intPtr(0)}
	anyDayRate := models.Rate{ID: 2, Precio: 400, Activo: true}
	rates := []models.Rate{sundayRate, anyDayRate}

	// at() is a Tuesday, so only the unrestricted rate applies even though
	// the Sunday rate is cheaper.
	winner := ResolveRate(rates, at(12))
	require.NotNil(t, winner)
	assert.Equal(t, anyDayRate.ID, winner.ID)

	sunday := time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC)
	winner = ResolveRate(rates, sunday)
	require.NotNil(t, winner)
	assert.Equal(t, sundayRate.ID, winner.ID)
}

func TestResolveRateSkipsInactive(t *testing.T) {
	rates := []models.Rate{
		{ID: 1, Precio: 100, Activo: false},
	}
	assert.Nil(t, ResolveRate(rates, at(12)))
}

func TestResolveRateNoCandidates(t *testing.T) {
	assert.Nil(t, ResolveRate(nil, at(12)))

	offHours := []models.Rate{
		{ID: 1, Precio: 500, Activo: true, HoraInicio: intPtr(8), HoraFin: intPtr(10)},
	}
	assert.Nil(t, ResolveRate(offHours, at(12)))
}
