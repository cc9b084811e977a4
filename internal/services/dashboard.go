package services

import (
	"context"
	"sort"
	"time"

	"autocare/internal/cache"
	"autocare/internal/core"
	"autocare/internal/log"
	"autocare/internal/records"
)

// Stats are the dashboard's three stat cards.
type Stats struct {
	TotalVehicles        int     `json:"totalVehicles"`
	UrgentReminders      int     `json:"urgentReminders"`
	MonthlyExpenses      float64 `json:"monthlyExpenses"`
	MonthlyExpensesLabel string  `json:"monthlyExpensesLabel"`
}

// ReminderStatus decorates a reminder with its derived display state.
type ReminderStatus struct {
	core.Reminder
	DaysUntil  int          `json:"daysUntil"`
	Urgency    core.Urgency `json:"urgency"`
	Color      string       `json:"color"`
	StatusText string       `json:"statusText"`
}

// MonthTotal is one point of a monthly trend series.
type MonthTotal struct {
	Month string  `json:"month"` // "YYYY-MM"
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// VehicleHistory aggregates everything recorded against one vehicle.
type VehicleHistory struct {
	Vehicle          core.Vehicle       `json:"vehicle"`
	Maintenances     []core.Maintenance `json:"maintenances"`
	Expenses         []core.Expense     `json:"expenses"`
	MaintenanceTotal float64            `json:"maintenanceTotal"`
	ExpenseTotal     float64            `json:"expenseTotal"`
	CombinedTotal    float64            `json:"combinedTotal"`
	AverageExpense   float64            `json:"averageExpense"`
	MonthlySpend     []MonthTotal       `json:"monthlySpend"` // descending months
}

// Dashboard derives screen-level aggregates from the flat collections. Every
// result is recomputed from a full collection read and memoized until the
// next write.
type Dashboard struct {
	repo       *records.Repository
	statsCache *cache.LRU[Stats]
	trendCache *cache.LRU[[]MonthTotal]
	logger     *log.Logger
}

func NewDashboard(repo *records.Repository, logger *log.Logger) *Dashboard {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentDash})
	}
	return &Dashboard{
		repo:       repo,
		statsCache: cache.NewLRU[Stats](4, 30*time.Second),
		trendCache: cache.NewLRU[[]MonthTotal](8, 30*time.Second),
		logger:     logger.WithComponent(log.ComponentDash),
	}
}

// Invalidate drops memoized aggregates. Call after any record write.
func (d *Dashboard) Invalidate() {
	d.statsCache.Purge()
	d.trendCache.Purge()
}

// Stats computes the dashboard stat cards for "now".
func (d *Dashboard) Stats(ctx context.Context, now time.Time) (Stats, error) {
	if cached, ok := d.statsCache.Get("stats"); ok {
		return cached, nil
	}

	vehicles, err := d.repo.Vehicles(ctx)
	if err != nil {
		return Stats{}, err
	}
	reminders, err := d.repo.Reminders(ctx)
	if err != nil {
		return Stats{}, err
	}
	expenses, err := d.repo.Expenses(ctx)
	if err != nil {
		return Stats{}, err
	}

	urgent := 0
	for _, r := range reminders {
		if r.IsCompleted {
			continue
		}
		if days := core.DaysUntil(r.DueDate, now); days <= 3 {
			urgent++
		}
	}

	monthKey := core.MonthKey(now)
	var monthlyTotal float64
	for _, e := range expenses {
		if core.MonthKey(e.Date) == monthKey {
			monthlyTotal += e.Amount
		}
	}

	stats := Stats{
		TotalVehicles:        len(vehicles),
		UrgentReminders:      urgent,
		MonthlyExpenses:      monthlyTotal,
		MonthlyExpensesLabel: core.FormatCurrency(monthlyTotal),
	}
	d.statsCache.Set("stats", stats)
	return stats, nil
}

// UpcomingReminders returns incomplete reminders due within the window,
// sorted soonest first, each decorated with its derived status.
func (d *Dashboard) UpcomingReminders(ctx context.Context, now time.Time, windowDays int) ([]ReminderStatus, error) {
	reminders, err := d.repo.Reminders(ctx)
	if err != nil {
		return nil, err
	}

	var out []ReminderStatus
	for _, r := range reminders {
		if r.IsCompleted {
			continue
		}
		days := core.DaysUntil(r.DueDate, now)
		if days > windowDays {
			continue
		}
		out = append(out, decorate(r, days, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntil < out[j].DaysUntil
	})
	return out, nil
}

// Calendar groups every incomplete reminder into "YYYY-MM" buckets with
// ascending month keys, decorated for display.
func (d *Dashboard) Calendar(ctx context.Context, now time.Time) (map[string][]ReminderStatus, []string, error) {
	reminders, err := d.repo.Reminders(ctx)
	if err != nil {
		return nil, nil, err
	}

	var open []core.Reminder
	for _, r := range reminders {
		if !r.IsCompleted {
			open = append(open, r)
		}
	}

	grouped := core.GroupByMonth(open, func(r core.Reminder) time.Time { return r.DueDate })

	months := make([]string, 0, len(grouped))
	byMonth := make(map[string][]ReminderStatus, len(grouped))
	for month, bucket := range grouped {
		months = append(months, month)
		statuses := make([]ReminderStatus, 0, len(bucket))
		for _, r := range bucket {
			statuses = append(statuses, decorate(r, core.DaysUntil(r.DueDate, now), now))
		}
		byMonth[month] = statuses
	}
	sort.Strings(months)
	return byMonth, months, nil
}

// ExpenseTrend returns per-month expense totals in ascending month order,
// suitable for a trend chart.
func (d *Dashboard) ExpenseTrend(ctx context.Context, vehicleID string) ([]MonthTotal, error) {
	cacheKey := "trend:" + vehicleID
	if cached, ok := d.trendCache.Get(cacheKey); ok {
		return cached, nil
	}

	var (
		expenses []core.Expense
		err      error
	)
	if vehicleID == "" {
		expenses, err = d.repo.Expenses(ctx)
	} else {
		expenses, err = d.repo.ExpensesByVehicle(ctx, vehicleID)
	}
	if err != nil {
		return nil, err
	}

	trend := monthTotals(expenses, func(e core.Expense) (time.Time, float64) { return e.Date, e.Amount }, true)
	d.trendCache.Set(cacheKey, trend)
	return trend, nil
}

// History assembles the per-vehicle history screen: all records for the
// vehicle plus cost aggregates and a descending monthly spend series.
func (d *Dashboard) History(ctx context.Context, vehicleID string) (VehicleHistory, error) {
	vehicle, err := d.repo.VehicleByID(ctx, vehicleID)
	if err != nil {
		return VehicleHistory{}, err
	}
	maintenances, err := d.repo.MaintenancesByVehicle(ctx, vehicleID)
	if err != nil {
		return VehicleHistory{}, err
	}
	expenses, err := d.repo.ExpensesByVehicle(ctx, vehicleID)
	if err != nil {
		return VehicleHistory{}, err
	}

	// Newest first for history lists.
	sort.SliceStable(maintenances, func(i, j int) bool {
		return maintenances[i].Date.After(maintenances[j].Date)
	})
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})

	maintenanceTotal := core.SumAmounts(maintenances, func(m core.Maintenance) float64 { return m.Cost })
	expenseTotal := core.SumAmounts(expenses, func(e core.Expense) float64 { return e.Amount })

	type spend struct {
		date   time.Time
		amount float64
	}
	var combined []spend
	for _, m := range maintenances {
		combined = append(combined, spend{m.Date, m.Cost})
	}
	for _, e := range expenses {
		combined = append(combined, spend{e.Date, e.Amount})
	}

	return VehicleHistory{
		Vehicle:          vehicle,
		Maintenances:     maintenances,
		Expenses:         expenses,
		MaintenanceTotal: maintenanceTotal,
		ExpenseTotal:     expenseTotal,
		CombinedTotal:    maintenanceTotal + expenseTotal,
		AverageExpense:   core.AverageAmount(expenses, func(e core.Expense) float64 { return e.Amount }),
		MonthlySpend:     monthTotals(combined, func(s spend) (time.Time, float64) { return s.date, s.amount }, false),
	}, nil
}

func decorate(r core.Reminder, days int, now time.Time) ReminderStatus {
	urgency := core.UrgencyFor(days)
	return ReminderStatus{
		Reminder:   r,
		DaysUntil:  days,
		Urgency:    urgency,
		Color:      urgency.Color(),
		StatusText: core.StatusText(r.DueDate, now),
	}
}

func monthTotals[T any](items []T, of func(T) (time.Time, float64), ascending bool) []MonthTotal {
	grouped := core.GroupByMonth(items, func(item T) time.Time {
		date, _ := of(item)
		return date
	})

	months := make([]string, 0, len(grouped))
	for month := range grouped {
		months = append(months, month)
	}
	if ascending {
		sort.Strings(months)
	} else {
		sort.Sort(sort.Reverse(sort.StringSlice(months)))
	}

	out := make([]MonthTotal, 0, len(months))
	for _, month := range months {
		bucket := grouped[month]
		total := core.SumAmounts(bucket, func(item T) float64 {
			_, amount := of(item)
			return amount
		})
		out = append(out, MonthTotal{
			Month: month,
			Label: core.MonthLabel(month),
			Total: total,
			Count: len(bucket),
		})
	}
	return out
}
