package core

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatCurrency renders an amount for the compact stat cards. Large values
// collapse into K/M suffixes so they fit; exactly zero is the literal "$0".
//
//	FormatCurrency(0)         -> "$0"
//	FormatCurrency(999)       -> "$999"
//	FormatCurrency(1500)      -> "$1.5K"
//	FormatCurrency(25000)     -> "$25K"
//	FormatCurrency(2_500_000) -> "$2.5M"
func FormatCurrency(amount float64) string {
	if amount == 0 {
		return "$0"
	}
	if amount >= 1_000_000 {
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	}
	if amount >= 10_000 {
		return fmt.Sprintf("$%.0fK", amount/1_000)
	}
	if amount >= 1_000 {
		return fmt.Sprintf("$%.1fK", amount/1_000)
	}
	return "$" + groupThousands(int64(math.Round(amount)), ",")
}

// FormatKilometers renders an odometer reading with dot-grouped thousands,
// e.g. "50.000 km".
func FormatKilometers(km int) string {
	return groupThousands(int64(km), ".") + " km"
}

// FormatDate renders a date as DD/MM/YYYY independently of locale settings.
func FormatDate(t time.Time) string {
	local := t.Local()
	return fmt.Sprintf("%02d/%02d/%04d", local.Day(), int(local.Month()), local.Year())
}

// MonthLabel turns a "YYYY-MM" grouping key into a display label like
// "enero 2025". Unparseable keys are returned as-is.
func MonthLabel(monthKey string) string {
	var year, month int
	if _, err := fmt.Sscanf(monthKey, "%d-%d", &year, &month); err != nil || month < 1 || month > 12 {
		return monthKey
	}
	names := [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	return fmt.Sprintf("%s %d", names[month-1], year)
}

func groupThousands(n int64, sep string) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + sep + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
