package notify

import (
	"context"
	"testing"
	"time"

	"autocare/internal/core"
)

func TestKilometerTrigger(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		currentKm  int
		dueKm      int
		wantOK     bool
		wantMonths int
	}{
		{"target already passed", 60000, 55000, false, 0},
		{"target equals current", 50000, 50000, false, 0},
		{"close target rounds to one month", 50000, 50300, true, 1},
		{"five thousand km is five months", 50000, 55000, true, 5},
		{"rounds to nearest month", 50000, 51600, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KilometerTrigger(now, tt.currentKm, tt.dueKm)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			want := now.AddDate(0, tt.wantMonths, 0)
			if !got.Equal(want) {
				t.Errorf("trigger = %v, want %v", got, want)
			}
		})
	}
}

func TestPayloadFor(t *testing.T) {
	due := time.Now().AddDate(0, 0, 10)
	reminder := core.Reminder{
		ID:              "r1",
		VehicleID:       "v1",
		MaintenanceType: core.MaintenanceOilChange,
		Title:           "Cambio de aceite",
		Description:     "Programado",
		DueDate:         due,
	}

	p := PayloadFor(reminder)
	if !p.TriggerAt.Equal(due) {
		t.Errorf("trigger = %v, want %v", p.TriggerAt, due)
	}
	if p.Data["reminderId"] != "r1" || p.Data["vehicleId"] != "v1" {
		t.Errorf("data bag incomplete: %v", p.Data)
	}
	if p.Data["type"] != TypeMaintenanceReminder {
		t.Errorf("type discriminator = %v", p.Data["type"])
	}
}

func TestNullNotifier(t *testing.T) {
	ctx := context.Background()
	var n Notifier = NullNotifier{}

	id, err := n.Schedule(ctx, core.Reminder{DueDate: time.Now().AddDate(0, 0, 1)})
	if err != nil || id != "" {
		t.Errorf("Schedule = (%q, %v), want empty and nil", id, err)
	}
	if err := n.Cancel(ctx, "anything"); err != nil {
		t.Errorf("Cancel: %v", err)
	}
	if err := n.CancelAll(ctx); err != nil {
		t.Errorf("CancelAll: %v", err)
	}
}
