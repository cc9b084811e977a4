// Package worker runs the background reminder scan: reminders that are due
// soon but have no scheduled alert get one. The scan is idempotent, a
// reminder already holding a notification id is skipped.
package worker

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"autocare/internal/core"
	"autocare/internal/log"
	"autocare/internal/notify"
	"autocare/internal/records"
)

type Scanner struct {
	repo     *records.Repository
	notifier notify.Notifier
	logger   *log.Logger
	interval time.Duration
}

func NewScanner(repo *records.Repository, notifier notify.Notifier, interval time.Duration, logger *log.Logger) *Scanner {
	if notifier == nil {
		notifier = notify.NullNotifier{}
	}
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentWorker})
	}
	return &Scanner{
		repo:     repo,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentWorker),
		interval: interval,
	}
}

// Run scans once at startup, then on every tick until the context ends.
func (s *Scanner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if count, err := s.ScanOnce(ctx, time.Now()); err != nil {
			s.logger.ErrorContext(ctx, "Initial reminder scan failed", log.FieldError, err)
		} else {
			s.logger.InfoContext(ctx, "Initial reminder scan complete", "scheduled", count)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticker.C:
				count, err := s.ScanOnce(ctx, now)
				if err != nil {
					s.logger.ErrorContext(ctx, "Reminder scan failed", log.FieldError, err)
					continue
				}
				s.logger.InfoContext(ctx, "Reminder scan complete",
					"scheduled", count,
					"next_check", now.Add(s.interval).Format("15:04:05"))
			}
		}
	})
	return g.Wait()
}

// ScanOnce schedules alerts for incomplete reminders due within the
// configured window that have none yet, and returns how many it scheduled.
func (s *Scanner) ScanOnce(ctx context.Context, now time.Time) (int, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return 0, err
	}
	if !settings.Notifications {
		return 0, nil
	}

	reminders, err := s.repo.Reminders(ctx)
	if err != nil {
		return 0, err
	}

	scheduled := 0
	for _, reminder := range reminders {
		if reminder.IsCompleted || reminder.NotificationID != "" {
			continue
		}
		if !core.IsUpcoming(reminder.DueDate, now, settings.ReminderDays) {
			continue
		}

		notificationID, err := s.schedule(ctx, reminder)
		if err != nil {
			s.logger.WarnContext(ctx, "Scheduling failed",
				log.FieldReminderID, reminder.ID,
				log.FieldError, err)
			continue
		}
		if notificationID == "" {
			continue
		}

		reminder.NotificationID = notificationID
		if err := s.repo.SaveReminder(ctx, reminder); err != nil {
			return scheduled, err
		}
		scheduled++
	}
	return scheduled, nil
}

// schedule prefers the date-based alert and falls back to the odometer
// estimate when the reminder only carries a kilometer target.
func (s *Scanner) schedule(ctx context.Context, reminder core.Reminder) (string, error) {
	notificationID, err := s.notifier.Schedule(ctx, reminder)
	if err != nil || notificationID != "" {
		return notificationID, err
	}
	if reminder.DueKilometers <= 0 {
		return "", nil
	}
	vehicle, err := s.repo.VehicleByID(ctx, reminder.VehicleID)
	if err != nil {
		// Dangling vehicle reference, the reminder is displayed but never
		// scheduled by odometer.
		return "", nil
	}
	return s.notifier.ScheduleByKilometers(ctx, reminder, vehicle.CurrentKilometers)
}
