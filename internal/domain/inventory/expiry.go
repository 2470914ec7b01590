package inventory

import "time"

// ExpiryTier semáforo de vencimiento de un lote.
type ExpiryTier string

const (
	ExpiryExpired ExpiryTier = "EXPIRED"
	ExpiryWarning ExpiryTier = "WARNING"
	ExpiryOK      ExpiryTier = "OK"
)

// DefaultWarningWindowDays días antes del vencimiento en que se advierte.
const DefaultWarningWindowDays = 90

// DaysUntil cuenta días de calendario entre today y expiry, ignorando la hora.
// Negativo si ya venció.
func DaysUntil(expiry, today time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}

// Classify devuelve el nivel del lote y los días restantes.
// d < 0 vencido; 0 <= d < ventana advertencia; el resto OK.
func Classify(expiry, today time.Time, warningWindowDays int) (ExpiryTier, int) {
	if warningWindowDays <= 0 {
		warningWindowDays = DefaultWarningWindowDays
	}
	days := DaysUntil(expiry, today)
	switch {
	case days < 0:
		return ExpiryExpired, days
	case days < warningWindowDays:
		return ExpiryWarning, days
	default:
		return ExpiryOK, days
	}
}
