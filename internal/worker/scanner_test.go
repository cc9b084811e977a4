package worker

import (
	"context"
	"testing"
	"time"

	"autocare/internal/core"
	"autocare/internal/records"
	"autocare/internal/store"
)

type fakeNotifier struct {
	scheduled int
	failDate  bool
}

func (f *fakeNotifier) Schedule(_ context.Context, r core.Reminder) (string, error) {
	if f.failDate {
		return "", nil
	}
	f.scheduled++
	return core.GenerateID(), nil
}

func (f *fakeNotifier) ScheduleByKilometers(_ context.Context, _ core.Reminder, _ int) (string, error) {
	f.scheduled++
	return core.GenerateID(), nil
}

func (f *fakeNotifier) Cancel(context.Context, string) error { return nil }

func (f *fakeNotifier) CancelAll(context.Context) error { return nil }

func seedReminder(t *testing.T, repo *records.Repository, r core.Reminder) {
	t.Helper()
	if err := repo.SaveReminder(context.Background(), r); err != nil {
		t.Fatalf("SaveReminder: %v", err)
	}
}

func TestScanner_ScanOnce(t *testing.T) {
	ctx := context.Background()
	repo := records.New(store.NewMemoryStore(), nil)
	notifier := &fakeNotifier{}
	scanner := NewScanner(repo, notifier, time.Hour, nil)

	now := time.Now()
	seedReminder(t, repo, core.Reminder{
		ID: "due-soon", VehicleID: "v1", MaintenanceType: core.MaintenanceOilChange,
		Title: "a", DueDate: now.AddDate(0, 0, 3),
	})
	seedReminder(t, repo, core.Reminder{
		ID: "far-out", VehicleID: "v1", MaintenanceType: core.MaintenanceBrakes,
		Title: "b", DueDate: now.AddDate(0, 0, 30),
	})
	seedReminder(t, repo, core.Reminder{
		ID: "completed", VehicleID: "v1", MaintenanceType: core.MaintenanceTires,
		Title: "c", DueDate: now.AddDate(0, 0, 2), IsCompleted: true,
	})
	seedReminder(t, repo, core.Reminder{
		ID: "already-scheduled", VehicleID: "v1", MaintenanceType: core.MaintenanceBattery,
		Title: "d", DueDate: now.AddDate(0, 0, 2), NotificationID: "existing",
	})

	count, err := scanner.ScanOnce(ctx, now)
	if err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if count != 1 {
		t.Fatalf("scheduled = %d, want 1", count)
	}

	reminders, err := repo.Reminders(ctx)
	if err != nil {
		t.Fatalf("Reminders: %v", err)
	}
	for _, r := range reminders {
		switch r.ID {
		case "due-soon":
			if r.NotificationID == "" {
				t.Error("due-soon reminder not scheduled")
			}
		case "far-out":
			if r.NotificationID != "" {
				t.Error("far-out reminder scheduled too early")
			}
		case "already-scheduled":
			if r.NotificationID != "existing" {
				t.Error("existing notification id overwritten")
			}
		}
	}

	// Second scan is a no-op.
	count, err = scanner.ScanOnce(ctx, now)
	if err != nil {
		t.Fatalf("second ScanOnce: %v", err)
	}
	if count != 0 {
		t.Errorf("second scan scheduled %d, want 0", count)
	}
}

func TestScanner_NotificationsDisabled(t *testing.T) {
	ctx := context.Background()
	repo := records.New(store.NewMemoryStore(), nil)
	notifier := &fakeNotifier{}
	scanner := NewScanner(repo, notifier, time.Hour, nil)

	settings := core.DefaultSettings()
	settings.Notifications = false
	if err := repo.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	seedReminder(t, repo, core.Reminder{
		ID: "r1", VehicleID: "v1", MaintenanceType: core.MaintenanceOilChange,
		Title: "a", DueDate: time.Now().AddDate(0, 0, 1),
	})

	count, err := scanner.ScanOnce(ctx, time.Now())
	if err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if count != 0 || notifier.scheduled != 0 {
		t.Errorf("scan ran with notifications disabled: count=%d scheduled=%d", count, notifier.scheduled)
	}
}

func TestScanner_KilometerFallback(t *testing.T) {
	ctx := context.Background()
	repo := records.New(store.NewMemoryStore(), nil)
	notifier := &fakeNotifier{failDate: true}
	scanner := NewScanner(repo, notifier, time.Hour, nil)

	if err := repo.SaveVehicle(ctx, core.Vehicle{
		ID: "v1", Brand: "Toyota", Model: "Corolla", Year: 2020,
		CurrentKilometers: 50000, LicensePlate: "ABC-123",
	}); err != nil {
		t.Fatalf("SaveVehicle: %v", err)
	}

	// Past due date (date schedule declines) but an odometer target ahead.
	seedReminder(t, repo, core.Reminder{
		ID: "km", VehicleID: "v1", MaintenanceType: core.MaintenanceOilChange,
		Title: "a", DueDate: time.Now(), DueKilometers: 55000,
	})

	count, err := scanner.ScanOnce(ctx, time.Now())
	if err != nil {
		t.Fatalf("ScanOnce: %v", err)
	}
	if count != 1 {
		t.Errorf("scheduled = %d, want 1 via kilometer fallback", count)
	}
}

func TestScanner_RunStopsOnContextCancel(t *testing.T) {
	repo := records.New(store.NewMemoryStore(), nil)
	scanner := NewScanner(repo, &fakeNotifier{}, 50*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	err := scanner.Run(ctx)
	if err == nil || ctx.Err() == nil {
		t.Errorf("Run returned %v before context end", err)
	}
}
