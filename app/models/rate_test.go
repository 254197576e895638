package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestRateMatchesHourLinearWindow(t *testing.T) {
	day := Rate{HoraInicio: intPtr(8), HoraFin: intPtr(20)}

	assert.True(t, day.MatchesHour(8))
	assert.True(t, day.MatchesHour(14))
	assert.True(t, day.MatchesHour(20))
	assert.False(t, day.MatchesHour(7))
	assert.False(t, day.MatchesHour(21))
}

func TestRateMatchesHourWrapAroundWindow(t *testing.T) {
	night := Rate{HoraInicio: intPtr(20), HoraFin: intPtr(8)}

	assert.True(t, night.MatchesHour(20))
	assert.True(t, night.MatchesHour(23))
	assert.True(t, night.MatchesHour(0))
	assert.True(t, night.MatchesHour(8))
	assert.False(t, night.MatchesHour(9))
	assert.False(t, night.MatchesHour(19))
}

func TestRateMatchesHourNilWindowMatchesAnything(t *testing.T) {
	anytime := Rate{}
	for h := 0; h < 24; h++ {
		assert.True(t, anytime.MatchesHour(h), "hour %d", h)
	}
}

func TestRateMatchesDay(t *testing.T) {
	sundayOnly := Rate{DiaSemana: intPtr(0)}
	assert.True(t, sundayOnly.MatchesDay(time.Sunday))
	assert.False(t, sundayOnly.MatchesDay(time.Monday))

	anyDay := Rate{}
	assert.True(t, anyDay.MatchesDay(time.Wednesday))
}

func TestRateValidate(t *testing.T) {
	valid := Rate{Nombre: "Tarifa por Hora", Tipo: RATE_TYPE_POR_HORA, Precio: 500}
	require.NoError(t, valid.Validate())

	badType := Rate{Nombre: "Tarifa Rara", Tipo: "POR_DIA", Precio: 100}
	assert.Error(t, badType.Validate())

	badHour := Rate{Nombre: "Tarifa Nocturna", Tipo: RATE_TYPE_POR_HORA, Precio: 300, HoraInicio: intPtr(24)}
	assert.Error(t, badHour.Validate())

	negativePrice := Rate{Nombre: "Tarifa Negativa", Tipo: RATE_TYPE_POR_HORA, Precio: -1}
	assert.Error(t, negativePrice.Validate())
}
