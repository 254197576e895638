package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAbonoCovers(t *testing.T) {
	abono := Abono{
		Activo:      true,
		FechaInicio: date(2024, time.January, 1),
		FechaFin:    date(2024, time.January, 31),
	}

	assert.True(t, abono.Covers(date(2024, time.January, 1)), "start endpoint is inclusive")
	assert.True(t, abono.Covers(date(2024, time.January, 15)))
	assert.True(t, abono.Covers(date(2024, time.January, 31)), "end endpoint is inclusive")
	assert.False(t, abono.Covers(date(2023, time.December, 31)))
	assert.False(t, abono.Covers(date(2024, time.February, 1)))
}

func TestAbonoCoversInactive(t *testing.T) {
	abono := Abono{
		Activo:      false,
		FechaInicio: date(2024, time.January, 1),
		FechaFin:    date(2024, time.January, 31),
	}

	assert.False(t, abono.Covers(date(2024, time.January, 15)))
}

func TestAbonoOverlaps(t *testing.T) {
	january := Abono{
		FechaInicio: date(2024, time.January, 1),
		FechaFin:    date(2024, time.January, 31),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"contained", date(2024, time.January, 10), date(2024, time.January, 20), true},
		{"straddles end", date(2024, time.January, 15), date(2024, time.February, 15), true},
		{"straddles start", date(2023, time.December, 15), date(2024, time.January, 5), true},
		{"touching end", date(2024, time.January, 31), date(2024, time.February, 28), true},
		{"touching start", date(2023, time.December, 1), date(2024, time.January, 1), true},
		{"after", date(2024, time.February, 1), date(2024, time.February, 28), false},
		{"before", date(2023, time.November, 1), date(2023, time.December, 31), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, january.Overlaps(tt.start, tt.end))
		})
	}
}

func TestAbonoValidateRejectsInvertedDates(t *testing.T) {
	abono := Abono{
		Precio:      15000,
		FechaInicio: date(2024, time.February, 1),
		FechaFin:    date(2024, time.January, 1),
	}

	err := abono.Validate()
	require.ErrorIs(t, err, ErrAbonoDatesInverted)
}
