package parking

import (
	"math"

	"github.com/ticketar/ticketar/app/models"
)

// Amount computes the charge for a finished session. Hourly rates bill every
// started hour in full (ceil); monthly rates are prepaid and bill 0 per use.
// Unrecognized rate types fall back to the hourly formula. The price itself
// is never rounded.
func Amount(rateType string, precio float64, horas float64) float64 {
	switch rateType {
	case models.RATE_TYPE_MENSUAL:
		return 0

	case models.RATE_TYPE_POR_HORA:
		return math.Ceil(horas) * precio

	default:
		return math.Ceil(horas) * precio
	}
}
