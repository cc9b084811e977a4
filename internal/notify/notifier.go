// Package notify bridges reminders into the notification side channel.
// Scheduling is best-effort and never a source of truth: the reminder record
// stays authoritative, the returned notification id exists only so the alert
// can later be canceled.
package notify

import (
	"context"
	"time"

	"autocare/internal/core"
)

// Alert type discriminators routed back by a tapped notification.
const (
	TypeMaintenanceReminder = "maintenance_reminder"
	TypeKilometerReminder   = "kilometer_reminder"
)

// Average distance assumed per month when estimating a date for an
// odometer-based reminder.
const kilometersPerMonth = 1000

// Payload is the scheduling request handed to the notification service.
type Payload struct {
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	TriggerAt time.Time      `json:"triggerAt"`
	Data      map[string]any `json:"data"`
}

// Notifier is the OS/notification-gateway contract. Schedule returns an
// empty id (and no error) when the due date is not strictly in the future or
// the underlying service is unavailable. Cancel and CancelAll are idempotent
// no-ops when the service is unavailable.
type Notifier interface {
	Schedule(ctx context.Context, reminder core.Reminder) (string, error)
	ScheduleByKilometers(ctx context.Context, reminder core.Reminder, currentKm int) (string, error)
	Cancel(ctx context.Context, notificationID string) error
	CancelAll(ctx context.Context) error
}

// PayloadFor builds the alert for a date-based reminder.
func PayloadFor(reminder core.Reminder) Payload {
	return Payload{
		Title:     "🚗 AutoCare - Recordatorio",
		Body:      reminder.Title + ": " + reminder.Description,
		TriggerAt: reminder.DueDate,
		Data: map[string]any{
			"reminderId": reminder.ID,
			"vehicleId":  reminder.VehicleID,
			"type":       TypeMaintenanceReminder,
		},
	}
}

// KilometerTrigger estimates when an odometer target will be reached,
// assuming a steady 1000 km per month. Returns false when the target has
// already been passed.
func KilometerTrigger(now time.Time, currentKm, dueKm int) (time.Time, bool) {
	remaining := dueKm - currentKm
	if remaining <= 0 {
		return time.Time{}, false
	}
	months := (remaining + kilometersPerMonth/2) / kilometersPerMonth
	if months < 1 {
		months = 1
	}
	return now.AddDate(0, months, 0), true
}

// KilometerPayloadFor builds the alert for an odometer-based reminder.
func KilometerPayloadFor(reminder core.Reminder, triggerAt time.Time) Payload {
	return Payload{
		Title:     "🚗 AutoCare - Recordatorio por Kilometraje",
		Body:      reminder.Title + ": revisa el kilometraje actual (" + core.FormatKilometers(reminder.DueKilometers) + " objetivo)",
		TriggerAt: triggerAt,
		Data: map[string]any{
			"reminderId":       reminder.ID,
			"vehicleId":        reminder.VehicleID,
			"type":             TypeKilometerReminder,
			"targetKilometers": reminder.DueKilometers,
		},
	}
}

// NullNotifier is selected when no notification gateway is configured. Every
// operation is a safe no-op.
type NullNotifier struct{}

func (NullNotifier) Schedule(context.Context, core.Reminder) (string, error) {
	return "", nil
}

func (NullNotifier) ScheduleByKilometers(context.Context, core.Reminder, int) (string, error) {
	return "", nil
}

func (NullNotifier) Cancel(context.Context, string) error { return nil }

func (NullNotifier) CancelAll(context.Context) error { return nil }
