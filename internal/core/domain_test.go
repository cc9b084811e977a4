package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validVehicle() Vehicle {
	now := time.Now()
	return Vehicle{
		ID:                GenerateID(),
		Brand:             "Toyota",
		Model:             "Corolla",
		Year:              2020,
		CurrentKilometers: 50000,
		LicensePlate:      "ABC-123",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestVehicleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Vehicle)
		wantErr error
	}{
		{"valid", func(v *Vehicle) {}, nil},
		{"missing id", func(v *Vehicle) { v.ID = "" }, ErrEmptyID},
		{"blank brand", func(v *Vehicle) { v.Brand = "  " }, ErrEmptyBrand},
		{"blank model", func(v *Vehicle) { v.Model = "" }, ErrEmptyModel},
		{"year too old", func(v *Vehicle) { v.Year = 1979 }, ErrInvalidYear},
		{"year too far ahead", func(v *Vehicle) { v.Year = time.Now().Year() + 2 }, ErrInvalidYear},
		{"negative odometer", func(v *Vehicle) { v.CurrentKilometers = -1 }, ErrInvalidKilometers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVehicle()
			tt.mutate(&v)
			err := v.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaintenanceValidate(t *testing.T) {
	base := Maintenance{
		ID:         GenerateID(),
		VehicleID:  "v1",
		Type:       MaintenanceOilChange,
		Date:       time.Now(),
		Cost:       850,
		Kilometers: 50000,
	}

	tests := []struct {
		name    string
		mutate  func(*Maintenance)
		wantErr error
	}{
		{"valid", func(m *Maintenance) {}, nil},
		{"unknown type", func(m *Maintenance) { m.Type = "valve_polish" }, ErrInvalidType},
		{"zero date", func(m *Maintenance) { m.Date = time.Time{} }, ErrZeroDate},
		{"negative cost", func(m *Maintenance) { m.Cost = -1 }, ErrInvalidCost},
		{"zero cost is fine", func(m *Maintenance) { m.Cost = 0 }, nil},
		{"next due km behind reading", func(m *Maintenance) { m.NextDueKilometers = 40000 }, ErrInvalidKilometers},
		{"next due km ahead", func(m *Maintenance) { m.NextDueKilometers = 55000 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			err := m.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	base := Expense{
		ID:          GenerateID(),
		VehicleID:   "v1",
		Type:        ExpenseFuel,
		Description: "Tanque lleno",
		Amount:      1200,
		Date:        time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{"valid", func(e *Expense) {}, nil},
		{"zero amount", func(e *Expense) { e.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = -5 }, ErrInvalidAmount},
		{"blank description", func(e *Expense) { e.Description = " " }, ErrEmptyDescription},
		{"missing vehicle", func(e *Expense) { e.VehicleID = "" }, ErrEmptyVehicleID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base
			tt.mutate(&e)
			err := e.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReminderValidate(t *testing.T) {
	r := Reminder{
		ID:              GenerateID(),
		VehicleID:       "v1",
		MaintenanceType: MaintenanceBrakes,
		Title:           "Revisión de frenos",
		DueDate:         time.Now().AddDate(0, 0, 10),
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid reminder rejected: %v", err)
	}
	r.Title = ""
	if !errors.Is(r.Validate(), ErrEmptyTitle) {
		t.Error("expected ErrEmptyTitle")
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestReminderIDFor(t *testing.T) {
	if got := ReminderIDFor("abc123"); got != "abc123_reminder" {
		t.Errorf("ReminderIDFor() = %q", got)
	}
	if !strings.HasSuffix(ReminderIDFor(GenerateID()), "_reminder") {
		t.Error("derived id must keep the _reminder suffix")
	}
}

func TestTypeDisplayNames(t *testing.T) {
	if got := MaintenanceOilChange.DisplayName(); got != "Cambio de aceite" {
		t.Errorf("oil change name = %q", got)
	}
	if got := MaintenanceType("bogus").DisplayName(); got != "Otro" {
		t.Errorf("unknown maintenance type name = %q", got)
	}
	if got := ExpenseFuel.DisplayName(); got != "Combustible" {
		t.Errorf("fuel name = %q", got)
	}
	if got := ExpenseType("bogus").DisplayName(); got != "Otro" {
		t.Errorf("unknown expense type name = %q", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.ReminderDays != 7 || s.DistanceUnit != "km" {
		t.Errorf("unexpected defaults: %+v", s)
	}
}
