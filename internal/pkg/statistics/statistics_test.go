package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOccupancyPercentage(t *testing.T) {
	assert.Equal(t, 0, occupancyPercentage(0, 100))
	assert.Equal(t, 50, occupancyPercentage(50, 100))
	assert.Equal(t, 100, occupancyPercentage(100, 100))
	assert.Equal(t, 33, occupancyPercentage(1, 3))
	assert.Equal(t, 67, occupancyPercentage(2, 3))
	assert.Equal(t, 0, occupancyPercentage(5, 0), "zero capacity never divides")
}

func TestPeriodStarts(t *testing.T) {
	// Wednesday 2024-03-06 15:04:05 UTC
	now := time.Date(2024, time.March, 6, 15, 4, 5, 0, time.UTC)

	day, week, month := periodStarts(now)

	assert.Equal(t, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), week, "weeks start on Sunday")
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), month)
}

func TestPeriodStartsOnSunday(t *testing.T) {
	sunday := time.Date(2024, time.March, 3, 9, 0, 0, 0, time.UTC)

	day, week, _ := periodStarts(sunday)
	assert.Equal(t, day, week)
}
