package utils

import (
	"fmt"
	"regexp"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParseDate valida una fecha en formato YYYY-MM-DD.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// MonthRange resuelve un período "YYYY-MM" al rango inclusivo de fechas
// del mes. Si el período es el mes en curso, el límite superior se
// recorta a hoy (now), porque los días futuros todavía no tienen ventas.
func MonthRange(monthStr string, now time.Time) (time.Time, time.Time, error) {
	if !monthPattern.MatchString(monthStr) {
		return time.Time{}, time.Time{}, fmt.Errorf("período inválido: %q", monthStr)
	}

	from, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("período inválido: %q", monthStr)
	}

	// Último día del mes: primer día del mes siguiente menos un día
	to := from.AddDate(0, 1, -1)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if from.Year() == now.Year() && from.Month() == now.Month() && today.Before(to) {
		to = today
	}

	return from, to, nil
}
