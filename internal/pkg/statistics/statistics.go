package statistics

import (
	"encoding/json"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/app/repository"
	"github.com/ticketar/ticketar/internal/pkg/cache"
	"github.com/ticketar/ticketar/internal/pkg/env"
)

const (
	CacheKeyDashboard = "statistics:dashboard"
	CacheKeyOccupancy = "statistics:occupancy:current"
	CacheExpiration   = 1 * time.Minute
)

const defaultMaxSpaces = 100

// Occupancy is the current lot usage relative to capacity.
type Occupancy struct {
	Current    int64 `json:"current"`
	Total      int   `json:"total"`
	Percentage int   `json:"percentage"`
}

// DashboardStats aggregates the numbers shown on the operator dashboard.
type DashboardStats struct {
	Occupancy Occupancy `json:"occupancy"`
	Today     struct {
		Tickets int64   `json:"tickets"`
		Revenue float64 `json:"revenue"`
	} `json:"today"`
	Week struct {
		Revenue float64 `json:"revenue"`
	} `json:"week"`
	Month struct {
		Revenue float64 `json:"revenue"`
	} `json:"month"`
}

// GetDashboardStats returns dashboard aggregates, served from the Redis cache
// when fresh enough.
func GetDashboardStats() (*DashboardStats, error) {
	if cached, err := cache.Get(CacheKeyDashboard); err == nil && cached != "" {
		var stats DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := computeDashboardStats(time.Now())
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := cache.Set(CacheKeyDashboard, payload, CacheExpiration); err != nil {
			log.Printf("Failed to cache dashboard stats: %v", err)
		}
	}

	return stats, nil
}

func computeDashboardStats(now time.Time) (*DashboardStats, error) {
	repos := repository.GetGlobalRepositories()

	startOfDay, startOfWeek, startOfMonth := periodStarts(now)

	activeTickets, err := repos.Ticket.CountActive()
	if err != nil {
		return nil, err
	}
	todayTickets, err := repos.Ticket.CountEnteredSince(startOfDay)
	if err != nil {
		return nil, err
	}
	todayRevenue, err := repos.Ticket.RevenueSince(startOfDay)
	if err != nil {
		return nil, err
	}
	weekRevenue, err := repos.Ticket.RevenueSince(startOfWeek)
	if err != nil {
		return nil, err
	}
	monthRevenue, err := repos.Ticket.RevenueSince(startOfMonth)
	if err != nil {
		return nil, err
	}

	total := MaxParkingSpaces()

	stats := &DashboardStats{
		Occupancy: Occupancy{
			Current:    activeTickets,
			Total:      total,
			Percentage: occupancyPercentage(activeTickets, total),
		},
	}
	stats.Today.Tickets = todayTickets
	stats.Today.Revenue = todayRevenue
	stats.Week.Revenue = weekRevenue
	stats.Month.Revenue = monthRevenue

	return stats, nil
}

// MaxParkingSpaces resolves lot capacity: config row first, env var next,
// then the built-in default.
func MaxParkingSpaces() int {
	if setting, err := repository.GetGlobalRepositories().Setting.GetByKey(models.SETTING_MAX_PARKING_SPACES); err == nil {
		return setting.IntValue(defaultMaxSpaces)
	}
	if n, err := strconv.Atoi(env.GetEnv("MAX_PARKING_SPACES", "")); err == nil {
		return n
	}
	return defaultMaxSpaces
}

// RefreshOccupancy recounts active sessions into the Redis occupancy key.
// Fired after every entry and exit.
func RefreshOccupancy() {
	active, err := repository.GetGlobalRepositories().Ticket.CountActive()
	if err != nil {
		log.Printf("Failed to recount occupancy: %v", err)
		return
	}
	if err := cache.Set(CacheKeyOccupancy, active, 0); err != nil {
		log.Printf("Failed to store occupancy counter: %v", err)
	}
	// Aggregates derived from the active count are stale now.
	if err := cache.Delete(CacheKeyDashboard); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
	}
}

func occupancyPercentage(current int64, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(total) * 100))
}

// periodStarts returns the start of the day, week (Sunday) and month
// containing now, in now's location.
func periodStarts(now time.Time) (day, week, month time.Time) {
	day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week = day.AddDate(0, 0, -int(now.Weekday()))
	month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return day, week, month
}
