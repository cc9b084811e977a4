// Package records implements the collection repository: typed access to the
// five fixed store keys. Every write is a full read-modify-write of the
// collection blob; elements are located by linear scan on id.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"autocare/internal/core"
	"autocare/internal/log"
	"autocare/internal/store"
)

// ErrVehicleNotFound marks a dangling vehicle reference. Callers treat it as
// a degraded display case, never as fatal.
var ErrVehicleNotFound = errors.New("vehicle not found")

type Repository struct {
	store  store.Store
	logger *log.Logger
}

func New(s store.Store, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentRecords})
	}
	return &Repository{store: s, logger: logger.WithComponent(log.ComponentRecords)}
}

func loadCollection[T any](ctx context.Context, s store.Store, key string) ([]T, error) {
	blob, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func saveCollection[T any](ctx context.Context, s store.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// upsert replaces the element whose id matches (refreshing its UpdatedAt via
// touch) or appends the record. Collection length grows by at most one.
func upsert[T any](items []T, record T, idOf func(T) string, touch func(*T)) []T {
	for i := range items {
		if idOf(items[i]) == idOf(record) {
			touch(&record)
			items[i] = record
			return items
		}
	}
	return append(items, record)
}

// Vehicles

func (r *Repository) Vehicles(ctx context.Context) ([]core.Vehicle, error) {
	return loadCollection[core.Vehicle](ctx, r.store, store.KeyVehicles)
}

func (r *Repository) VehicleByID(ctx context.Context, id string) (core.Vehicle, error) {
	vehicles, err := r.Vehicles(ctx)
	if err != nil {
		return core.Vehicle{}, err
	}
	for _, v := range vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return core.Vehicle{}, ErrVehicleNotFound
}

func (r *Repository) SaveVehicle(ctx context.Context, vehicle core.Vehicle) error {
	vehicles, err := r.Vehicles(ctx)
	if err != nil {
		return err
	}
	vehicles = upsert(vehicles, vehicle,
		func(v core.Vehicle) string { return v.ID },
		func(v *core.Vehicle) { v.UpdatedAt = time.Now() })
	if err := saveCollection(ctx, r.store, store.KeyVehicles, vehicles); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Vehicle saved",
		log.FieldVehicleID, vehicle.ID,
		log.FieldKilometers, vehicle.CurrentKilometers)
	return nil
}

// DeleteVehicle removes the vehicle and cascades to every maintenance,
// expense and reminder that references it.
func (r *Repository) DeleteVehicle(ctx context.Context, vehicleID string) error {
	vehicles, err := r.Vehicles(ctx)
	if err != nil {
		return err
	}
	kept := vehicles[:0]
	for _, v := range vehicles {
		if v.ID != vehicleID {
			kept = append(kept, v)
		}
	}
	if err := saveCollection(ctx, r.store, store.KeyVehicles, kept); err != nil {
		return err
	}

	if err := r.DeleteMaintenancesByVehicle(ctx, vehicleID); err != nil {
		return err
	}
	if err := r.DeleteExpensesByVehicle(ctx, vehicleID); err != nil {
		return err
	}
	if err := r.DeleteRemindersByVehicle(ctx, vehicleID); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Vehicle deleted with cascade", log.FieldVehicleID, vehicleID)
	return nil
}

// Maintenances

func (r *Repository) Maintenances(ctx context.Context) ([]core.Maintenance, error) {
	return loadCollection[core.Maintenance](ctx, r.store, store.KeyMaintenances)
}

func (r *Repository) MaintenancesByVehicle(ctx context.Context, vehicleID string) ([]core.Maintenance, error) {
	all, err := r.Maintenances(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Maintenance
	for _, m := range all {
		if m.VehicleID == vehicleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *Repository) SaveMaintenance(ctx context.Context, maintenance core.Maintenance) error {
	all, err := r.Maintenances(ctx)
	if err != nil {
		return err
	}
	all = upsert(all, maintenance,
		func(m core.Maintenance) string { return m.ID },
		func(m *core.Maintenance) { m.UpdatedAt = time.Now() })
	if err := saveCollection(ctx, r.store, store.KeyMaintenances, all); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Maintenance saved",
		log.FieldMaintenanceID, maintenance.ID,
		log.FieldVehicleID, maintenance.VehicleID)
	return nil
}

func (r *Repository) DeleteMaintenance(ctx context.Context, maintenanceID string) error {
	all, err := r.Maintenances(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, m := range all {
		if m.ID != maintenanceID {
			kept = append(kept, m)
		}
	}
	return saveCollection(ctx, r.store, store.KeyMaintenances, kept)
}

func (r *Repository) DeleteMaintenancesByVehicle(ctx context.Context, vehicleID string) error {
	all, err := r.Maintenances(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, m := range all {
		if m.VehicleID != vehicleID {
			kept = append(kept, m)
		}
	}
	return saveCollection(ctx, r.store, store.KeyMaintenances, kept)
}

// Expenses

func (r *Repository) Expenses(ctx context.Context) ([]core.Expense, error) {
	return loadCollection[core.Expense](ctx, r.store, store.KeyExpenses)
}

func (r *Repository) ExpensesByVehicle(ctx context.Context, vehicleID string) ([]core.Expense, error) {
	all, err := r.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Expense
	for _, e := range all {
		if e.VehicleID == vehicleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Repository) SaveExpense(ctx context.Context, expense core.Expense) error {
	if expense.Category == "" {
		expense.Category = expense.Type.DisplayName()
	}
	all, err := r.Expenses(ctx)
	if err != nil {
		return err
	}
	all = upsert(all, expense,
		func(e core.Expense) string { return e.ID },
		func(e *core.Expense) { e.UpdatedAt = time.Now() })
	if err := saveCollection(ctx, r.store, store.KeyExpenses, all); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Expense saved",
		log.FieldExpenseID, expense.ID,
		log.FieldVehicleID, expense.VehicleID,
		log.FieldAmount, expense.Amount)
	return nil
}

func (r *Repository) DeleteExpense(ctx context.Context, expenseID string) error {
	all, err := r.Expenses(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	return saveCollection(ctx, r.store, store.KeyExpenses, kept)
}

func (r *Repository) DeleteExpensesByVehicle(ctx context.Context, vehicleID string) error {
	all, err := r.Expenses(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.VehicleID != vehicleID {
			kept = append(kept, e)
		}
	}
	return saveCollection(ctx, r.store, store.KeyExpenses, kept)
}

// Reminders

func (r *Repository) Reminders(ctx context.Context) ([]core.Reminder, error) {
	return loadCollection[core.Reminder](ctx, r.store, store.KeyReminders)
}

func (r *Repository) RemindersByVehicle(ctx context.Context, vehicleID string) ([]core.Reminder, error) {
	all, err := r.Reminders(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Reminder
	for _, rem := range all {
		if rem.VehicleID == vehicleID {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *Repository) SaveReminder(ctx context.Context, reminder core.Reminder) error {
	all, err := r.Reminders(ctx)
	if err != nil {
		return err
	}
	all = upsert(all, reminder,
		func(rem core.Reminder) string { return rem.ID },
		func(rem *core.Reminder) { rem.UpdatedAt = time.Now() })
	if err := saveCollection(ctx, r.store, store.KeyReminders, all); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Reminder saved",
		log.FieldReminderID, reminder.ID,
		log.FieldVehicleID, reminder.VehicleID,
		log.FieldDueDate, reminder.DueDate)
	return nil
}

func (r *Repository) DeleteReminder(ctx context.Context, reminderID string) error {
	all, err := r.Reminders(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, rem := range all {
		if rem.ID != reminderID {
			kept = append(kept, rem)
		}
	}
	return saveCollection(ctx, r.store, store.KeyReminders, kept)
}

func (r *Repository) DeleteRemindersByVehicle(ctx context.Context, vehicleID string) error {
	all, err := r.Reminders(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, rem := range all {
		if rem.VehicleID != vehicleID {
			kept = append(kept, rem)
		}
	}
	return saveCollection(ctx, r.store, store.KeyReminders, kept)
}

// Settings

// Settings returns the stored settings, writing and returning the defaults
// when nothing has been persisted yet.
func (r *Repository) Settings(ctx context.Context) (core.AppSettings, error) {
	blob, err := r.store.Get(ctx, store.KeySettings)
	if errors.Is(err, store.ErrNotFound) {
		defaults := core.DefaultSettings()
		if err := r.SaveSettings(ctx, defaults); err != nil {
			return defaults, err
		}
		return defaults, nil
	}
	if err != nil {
		return core.AppSettings{}, fmt.Errorf("load settings: %w", err)
	}
	var settings core.AppSettings
	if err := json.Unmarshal(blob, &settings); err != nil {
		return core.AppSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings core.AppSettings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.store.Set(ctx, store.KeySettings, blob); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ClearAll wipes the record collections. Settings survive a reset.
func (r *Repository) ClearAll(ctx context.Context) error {
	if err := r.store.Remove(ctx, store.CollectionKeys()...); err != nil {
		return fmt.Errorf("clear collections: %w", err)
	}
	r.logger.InfoContext(ctx, "All record collections cleared")
	return nil
}
