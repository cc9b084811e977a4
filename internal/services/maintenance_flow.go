// Package services orchestrates the record flows that span more than one
// collection: the maintenance save flow (auto reminder + odometer bump) and
// the dashboard aggregations.
package services

import (
	"context"
	"fmt"
	"time"

	"autocare/internal/core"
	"autocare/internal/log"
	"autocare/internal/notify"
	"autocare/internal/records"
)

// MaintenanceFlow runs the full save path for a maintenance entry:
//
//  1. validate and persist the maintenance record
//  2. when next-due fields are set, upsert the derived reminder and schedule
//     a notification for it (best-effort)
//  3. bump the vehicle odometer when the recorded reading is strictly higher
type MaintenanceFlow struct {
	repo     *records.Repository
	notifier notify.Notifier
	logger   *log.Logger
}

func NewMaintenanceFlow(repo *records.Repository, notifier notify.Notifier, logger *log.Logger) *MaintenanceFlow {
	if notifier == nil {
		notifier = notify.NullNotifier{}
	}
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentRecords})
	}
	return &MaintenanceFlow{repo: repo, notifier: notifier, logger: logger}
}

// Save persists the maintenance and returns the auto-created reminder, if
// any. The caller's vehicle must exist; a dangling reference is rejected
// before anything is written.
func (f *MaintenanceFlow) Save(ctx context.Context, maintenance core.Maintenance) (*core.Reminder, error) {
	if err := maintenance.Validate(); err != nil {
		return nil, err
	}

	vehicle, err := f.repo.VehicleByID(ctx, maintenance.VehicleID)
	if err != nil {
		return nil, err
	}

	if err := f.repo.SaveMaintenance(ctx, maintenance); err != nil {
		return nil, err
	}

	var reminder *core.Reminder
	if maintenance.NextDueDate != nil {
		reminder, err = f.upsertReminder(ctx, maintenance, vehicle)
		if err != nil {
			return nil, err
		}
	}

	// The odometer only moves forward. A backdated entry with a higher
	// reading still wins; there is no temporal consistency check between
	// maintenance dates and odometer order (existing product behavior).
	if maintenance.Kilometers > vehicle.CurrentKilometers {
		vehicle.CurrentKilometers = maintenance.Kilometers
		vehicle.UpdatedAt = time.Now()
		if err := f.repo.SaveVehicle(ctx, vehicle); err != nil {
			return nil, fmt.Errorf("update vehicle odometer: %w", err)
		}
		f.logger.InfoContext(ctx, "Vehicle odometer updated",
			log.FieldVehicleID, vehicle.ID,
			log.FieldKilometers, vehicle.CurrentKilometers)
	}

	return reminder, nil
}

func (f *MaintenanceFlow) upsertReminder(ctx context.Context, maintenance core.Maintenance, vehicle core.Vehicle) (*core.Reminder, error) {
	now := time.Now()
	reminder := core.Reminder{
		ID:                  core.ReminderIDFor(maintenance.ID),
		VehicleID:           maintenance.VehicleID,
		MaintenanceType:     maintenance.Type,
		Title:               fmt.Sprintf("%s - %s %s", maintenance.Type.DisplayName(), vehicle.Brand, vehicle.Model),
		Description:         fmt.Sprintf("Próximo %s programado para %s", maintenance.Type.DisplayName(), vehicle.LicensePlate),
		DueDate:             *maintenance.NextDueDate,
		DueKilometers:       maintenance.NextDueKilometers,
		IsCompleted:         false,
		SourceMaintenanceID: maintenance.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// Scheduling is a side channel: a failure is logged, never surfaced.
	notificationID, err := f.notifier.Schedule(ctx, reminder)
	if err != nil {
		f.logger.WarnContext(ctx, "Notification scheduling failed",
			log.FieldReminderID, reminder.ID,
			log.FieldError, err)
	}
	reminder.NotificationID = notificationID

	if err := f.repo.SaveReminder(ctx, reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// Delete removes a maintenance entry and its auto-created reminder, if one
// exists, canceling the reminder's scheduled notification.
func (f *MaintenanceFlow) Delete(ctx context.Context, maintenanceID string) error {
	reminders, err := f.repo.Reminders(ctx)
	if err != nil {
		return err
	}
	for _, reminder := range reminders {
		if reminder.SourceMaintenanceID != maintenanceID && reminder.ID != core.ReminderIDFor(maintenanceID) {
			continue
		}
		if reminder.NotificationID != "" {
			if err := f.notifier.Cancel(ctx, reminder.NotificationID); err != nil {
				f.logger.WarnContext(ctx, "Notification cancel failed",
					log.FieldNotificationID, reminder.NotificationID,
					log.FieldError, err)
			}
		}
		if err := f.repo.DeleteReminder(ctx, reminder.ID); err != nil {
			return err
		}
	}
	return f.repo.DeleteMaintenance(ctx, maintenanceID)
}

// CompleteReminder marks a reminder done and cancels its pending alert.
func (f *MaintenanceFlow) CompleteReminder(ctx context.Context, reminderID string) error {
	reminders, err := f.repo.Reminders(ctx)
	if err != nil {
		return err
	}
	for _, reminder := range reminders {
		if reminder.ID != reminderID {
			continue
		}
		if reminder.NotificationID != "" {
			if err := f.notifier.Cancel(ctx, reminder.NotificationID); err != nil {
				f.logger.WarnContext(ctx, "Notification cancel failed",
					log.FieldNotificationID, reminder.NotificationID,
					log.FieldError, err)
			}
			reminder.NotificationID = ""
		}
		reminder.IsCompleted = true
		return f.repo.SaveReminder(ctx, reminder)
	}
	return fmt.Errorf("reminder %s not found", reminderID)
}
