package parking

import (
	"time"

	"github.com/ticketar/ticketar/app/models"
)

// ResolveRate selects the rate applicable at the given instant from the
// active rates. A rate is a candidate when its weekday restriction is nil or
// matches, and its hour window is nil or contains the instant's hour (windows
// with start > end wrap past midnight). Among candidates the cheapest wins;
// price ties break toward the lowest ID so resolution stays deterministic.
// Returns nil when nothing matches.
//
// Filtering happens in-process over the fetched rows rather than in SQL: the
// wrap-around window predicate does not compose into a portable WHERE clause.
func ResolveRate(rates []models.Rate, at time.Time) *models.Rate {
	var best *models.Rate
	for i := range rates {
		rate := &rates[i]
		if !rate.Activo {
			continue
		}
		if !rate.MatchesDay(at.Weekday()) || !rate.MatchesHour(at.Hour()) {
			continue
		}
		if best == nil || rate.Precio < best.Precio ||
			(rate.Precio == best.Precio && rate.ID < best.ID) {
			best = rate
		}
	}
	return best
}
