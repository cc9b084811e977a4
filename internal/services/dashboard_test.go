package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocare/internal/core"
	"autocare/internal/records"
	"autocare/internal/store"
)

func newDashboardFixture(t *testing.T) (*Dashboard, *records.Repository) {
	t.Helper()
	repo := records.New(store.NewMemoryStore(), nil)
	return NewDashboard(repo, nil), repo
}

func TestDashboard_Stats(t *testing.T) {
	ctx := context.Background()
	dash, repo := newDashboardFixture(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedVehicle(t, repo, 50000)
	require.NoError(t, repo.SaveVehicle(ctx, core.Vehicle{
		ID: "v2", Brand: "Honda", Model: "Civic", Year: 2019,
		CurrentKilometers: 80000, LicensePlate: "XYZ-987",
	}))

	// One urgent (2 days out), one overdue, one comfortably ahead, one
	// completed that must not count.
	reminders := []core.Reminder{
		{ID: "r1", VehicleID: "v1", MaintenanceType: core.MaintenanceOilChange, Title: "a", DueDate: now.AddDate(0, 0, 2)},
		{ID: "r2", VehicleID: "v1", MaintenanceType: core.MaintenanceBrakes, Title: "b", DueDate: now.AddDate(0, 0, -5)},
		{ID: "r3", VehicleID: "v2", MaintenanceType: core.MaintenanceTires, Title: "c", DueDate: now.AddDate(0, 0, 30)},
		{ID: "r4", VehicleID: "v2", MaintenanceType: core.MaintenanceBattery, Title: "d", DueDate: now, IsCompleted: true},
	}
	for _, r := range reminders {
		require.NoError(t, repo.SaveReminder(ctx, r))
	}

	expenses := []core.Expense{
		{ID: "e1", VehicleID: "v1", Type: core.ExpenseFuel, Description: "gas", Amount: 800, Date: now.AddDate(0, 0, -1)},
		{ID: "e2", VehicleID: "v2", Type: core.ExpenseParking, Description: "lot", Amount: 200, Date: now},
		{ID: "e3", VehicleID: "v1", Type: core.ExpenseFuel, Description: "gas", Amount: 999, Date: now.AddDate(0, -1, 0)},
	}
	for _, e := range expenses {
		require.NoError(t, repo.SaveExpense(ctx, e))
	}

	stats, err := dash.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalVehicles)
	assert.Equal(t, 2, stats.UrgentReminders, "urgent counts incomplete reminders due within three days, overdue included")
	assert.Equal(t, 1000.0, stats.MonthlyExpenses, "only current-month expenses count")
	assert.Equal(t, "$1.0K", stats.MonthlyExpensesLabel)
}

func TestDashboard_StatsCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	dash, repo := newDashboardFixture(t)
	now := time.Now()

	seedVehicle(t, repo, 1000)
	stats, err := dash.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalVehicles)

	require.NoError(t, repo.SaveVehicle(ctx, core.Vehicle{
		ID: "v2", Brand: "Mazda", Model: "3", Year: 2021, LicensePlate: "M-3",
	}))

	// Cached result until invalidated.
	stats, err = dash.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalVehicles)

	dash.Invalidate()
	stats, err = dash.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalVehicles)
}

func TestDashboard_UpcomingReminders(t *testing.T) {
	ctx := context.Background()
	dash, repo := newDashboardFixture(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	reminders := []core.Reminder{
		{ID: "soon", VehicleID: "v1", MaintenanceType: core.MaintenanceOilChange, Title: "soon", DueDate: now.AddDate(0, 0, 5)},
		{ID: "overdue", VehicleID: "v1", MaintenanceType: core.MaintenanceBrakes, Title: "late", DueDate: now.AddDate(0, 0, -2)},
		{ID: "far", VehicleID: "v1", MaintenanceType: core.MaintenanceTires, Title: "far", DueDate: now.AddDate(0, 0, 20)},
		{ID: "done", VehicleID: "v1", MaintenanceType: core.MaintenanceBattery, Title: "done", DueDate: now, IsCompleted: true},
	}
	for _, r := range reminders {
		require.NoError(t, repo.SaveReminder(ctx, r))
	}

	upcoming, err := dash.UpcomingReminders(ctx, now, 7)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)

	assert.Equal(t, "overdue", upcoming[0].ID, "sorted soonest first")
	assert.Equal(t, core.UrgencyOverdue, upcoming[0].Urgency)
	assert.Equal(t, "#E53E3E", upcoming[0].Color)
	assert.Equal(t, "soon", upcoming[1].ID)
	assert.Equal(t, 5, upcoming[1].DaysUntil)
}

func TestDashboard_Calendar(t *testing.T) {
	ctx := context.Background()
	dash, repo := newDashboardFixture(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	reminders := []core.Reminder{
		{ID: "jun", VehicleID: "v1", MaintenanceType: core.MaintenanceOilChange, Title: "jun", DueDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "aug", VehicleID: "v1", MaintenanceType: core.MaintenanceBrakes, Title: "aug", DueDate: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "jun2", VehicleID: "v1", MaintenanceType: core.MaintenanceTires, Title: "jun2", DueDate: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "done", VehicleID: "v1", MaintenanceType: core.MaintenanceBattery, Title: "done", DueDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), IsCompleted: true},
	}
	for _, r := range reminders {
		require.NoError(t, repo.SaveReminder(ctx, r))
	}

	byMonth, months, err := dash.Calendar(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06", "2025-08"}, months)
	assert.Len(t, byMonth["2025-06"], 2)
	assert.Len(t, byMonth["2025-08"], 1)
}

func TestDashboard_ExpenseTrend(t *testing.T) {
	ctx := context.Background()
	dash, repo := newDashboardFixture(t)

	expenses := []core.Expense{
		{ID: "e1", VehicleID: "v1", Type: core.ExpenseFuel, Description: "gas", Amount: 500, Date: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "e2", VehicleID: "v1", Type: core.ExpenseFuel, Description: "gas", Amount: 700, Date: time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC)},
		{ID: "e3", VehicleID: "v2", Type: core.ExpenseTolls, Description: "toll", Amount: 120, Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, e := range expenses {
		require.NoError(t, repo.SaveExpense(ctx, e))
	}

	trend, err := dash.ExpenseTrend(ctx, "")
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, "2025-04", trend[0].Month)
	assert.Equal(t, 1200.0, trend[0].Total)
	assert.Equal(t, 2, trend[0].Count)
	assert.Equal(t, "2025-05", trend[1].Month)

	perVehicle, err := dash.ExpenseTrend(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, perVehicle, 1)
	assert.Equal(t, 1200.0, perVehicle[0].Total)
}

func TestDashboard_History(t *testing.T) {
	ctx := context.Background()
	dash, repo := newDashboardFixture(t)
	seedVehicle(t, repo, 50000)

	maintenances := []core.Maintenance{
		{ID: "m1", VehicleID: "v1", Type: core.MaintenanceOilChange, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Cost: 850, Kilometers: 48000},
		{ID: "m2", VehicleID: "v1", Type: core.MaintenanceBrakes, Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Cost: 1500, Kilometers: 50000},
	}
	for _, m := range maintenances {
		require.NoError(t, repo.SaveMaintenance(ctx, m))
	}
	require.NoError(t, repo.SaveExpense(ctx, core.Expense{
		ID: "e1", VehicleID: "v1", Type: core.ExpenseFuel, Description: "gas",
		Amount: 650, Date: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}))
	// Other vehicle's record must not leak into the history.
	require.NoError(t, repo.SaveExpense(ctx, core.Expense{
		ID: "e2", VehicleID: "v2", Type: core.ExpenseFuel, Description: "gas",
		Amount: 9999, Date: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}))

	history, err := dash.History(ctx, "v1")
	require.NoError(t, err)

	assert.Equal(t, "v1", history.Vehicle.ID)
	require.Len(t, history.Maintenances, 2)
	assert.Equal(t, "m2", history.Maintenances[0].ID, "newest first")
	assert.Equal(t, 2350.0, history.MaintenanceTotal)
	assert.Equal(t, 650.0, history.ExpenseTotal)
	assert.Equal(t, 3000.0, history.CombinedTotal)
	assert.Equal(t, 650.0, history.AverageExpense)

	require.Len(t, history.MonthlySpend, 2)
	assert.Equal(t, "2025-05", history.MonthlySpend[0].Month, "descending months")
	assert.Equal(t, 2150.0, history.MonthlySpend[0].Total)

	_, err = dash.History(ctx, "ghost")
	assert.ErrorIs(t, err, records.ErrVehicleNotFound)
}
