// Package core holds the domain model and the derivation functions every
// screen re-computes from the flat record store: day counts, urgency
// classification, monthly grouping and monetary aggregation.
package core

import (
	"fmt"
	"time"
)

// Urgency classifies how close a reminder's due date is. It is derived and
// display-only; the reminder record stays authoritative.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencySoon     Urgency = "soon"
	UrgencyNormal   Urgency = "normal"
)

// Display colors bound to each urgency level.
var urgencyColors = map[Urgency]string{
	UrgencyOverdue:  "#E53E3E",
	UrgencyCritical: "#F56500",
	UrgencyUrgent:   "#F6E05E",
	UrgencySoon:     "#3182CE",
	UrgencyNormal:   "#38A169",
}

// Color returns the fixed display color for the urgency level.
func (u Urgency) Color() string {
	if c, ok := urgencyColors[u]; ok {
		return c
	}
	return urgencyColors[UrgencyNormal]
}

// DaysUntil returns the whole-calendar-day difference between due and now.
// Both are truncated to local midnight before subtracting so the count is
// stable regardless of time of day. Negative means overdue by that many days.
func DaysUntil(due, now time.Time) int {
	due = truncateToMidnight(due)
	now = truncateToMidnight(now)
	diff := due.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++ // ceil, matters when a DST shift leaves a partial day
	}
	return days
}

func truncateToMidnight(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// UrgencyFor maps a day count to an urgency level. Thresholds are evaluated
// in ascending order and the first match wins: due in exactly one day is
// critical, not urgent.
func UrgencyFor(daysUntil int) Urgency {
	switch {
	case daysUntil < 0:
		return UrgencyOverdue
	case daysUntil <= 1:
		return UrgencyCritical
	case daysUntil <= 3:
		return UrgencyUrgent
	case daysUntil <= 7:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

// IsOverdue reports whether the due date has already passed at day
// granularity.
func IsOverdue(due, now time.Time) bool {
	return DaysUntil(due, now) < 0
}

// IsUpcoming reports whether the due date falls within the next `days` days,
// today included.
func IsUpcoming(due, now time.Time, days int) bool {
	d := DaysUntil(due, now)
	return d >= 0 && d <= days
}

// StatusText renders the user-facing due-date phrase for a reminder.
func StatusText(due, now time.Time) string {
	days := DaysUntil(due, now)
	switch {
	case days < 0:
		return fmt.Sprintf("Vencido hace %d días", -days)
	case days == 0:
		return "Vence hoy"
	case days == 1:
		return "Vence mañana"
	default:
		return fmt.Sprintf("Vence en %d días", days)
	}
}

// MonthKey builds the "YYYY-MM" grouping key from a record date, using the
// local year and 1-based zero-padded month.
func MonthKey(t time.Time) string {
	local := t.Local()
	return fmt.Sprintf("%04d-%02d", local.Year(), int(local.Month()))
}

// GroupByMonth partitions records into month buckets keyed "YYYY-MM". Input
// order is preserved within each bucket; the map itself carries no ordering,
// callers sort the keys as needed.
func GroupByMonth[T any](items []T, dateOf func(T) time.Time) map[string][]T {
	groups := make(map[string][]T)
	for _, item := range items {
		key := MonthKey(dateOf(item))
		groups[key] = append(groups[key], item)
	}
	return groups
}

// SumAmounts adds up the values extracted from each record.
func SumAmounts[T any](items []T, amountOf func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += amountOf(item)
	}
	return total
}

// AverageAmount returns the mean of the extracted values, 0 for an empty set.
func AverageAmount[T any](items []T, amountOf func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return SumAmounts(items, amountOf) / float64(len(items))
}

// VehicleAge returns the vehicle's age in years, clamped at zero for
// next-year models.
func VehicleAge(modelYear int, now time.Time) int {
	age := now.Year() - modelYear
	if age < 0 {
		return 0
	}
	return age
}
