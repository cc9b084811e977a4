package core

import (
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{
			name: "today at midnight is zero",
			due:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "today late evening is still zero",
			due:  time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "tomorrow early morning is one",
			due:  time.Date(2025, 3, 11, 0, 30, 0, 0, time.Local),
			want: 1,
		},
		{
			name: "five days ahead",
			due:  time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local),
			want: 5,
		},
		{
			name: "yesterday is minus one",
			due:  time.Date(2025, 3, 9, 18, 0, 0, 0, time.Local),
			want: -1,
		},
		{
			name: "a week overdue",
			due:  time.Date(2025, 3, 3, 12, 0, 0, 0, time.Local),
			want: -7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntil(tt.due, now)
			if got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysUntil_DayGranularitySymmetry(t *testing.T) {
	now := time.Date(2025, 6, 1, 11, 45, 0, 0, time.Local)
	for n := 1; n <= 30; n++ {
		ahead := now.AddDate(0, 0, n)
		behind := now.AddDate(0, 0, -n)
		if got := DaysUntil(ahead, now); got != n {
			t.Fatalf("DaysUntil(+%dd) = %d, want %d", n, got, n)
		}
		if got := DaysUntil(behind, now); got != -n {
			t.Fatalf("DaysUntil(-%dd) = %d, want %d", n, got, -n)
		}
	}
}

func TestUrgencyFor(t *testing.T) {
	tests := []struct {
		days int
		want Urgency
	}{
		{-30, UrgencyOverdue},
		{-1, UrgencyOverdue},
		{0, UrgencyCritical},
		{1, UrgencyCritical},
		{2, UrgencyUrgent},
		{3, UrgencyUrgent},
		{4, UrgencySoon},
		{7, UrgencySoon},
		{8, UrgencyNormal},
		{365, UrgencyNormal},
	}

	for _, tt := range tests {
		if got := UrgencyFor(tt.days); got != tt.want {
			t.Errorf("UrgencyFor(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestUrgencyColors(t *testing.T) {
	levels := []Urgency{UrgencyOverdue, UrgencyCritical, UrgencyUrgent, UrgencySoon, UrgencyNormal}
	seen := map[string]Urgency{}
	for _, u := range levels {
		c := u.Color()
		if c == "" {
			t.Fatalf("urgency %s has no color", u)
		}
		if prev, dup := seen[c]; dup {
			t.Fatalf("urgency %s and %s share color %s", u, prev, c)
		}
		seen[c] = u
	}
}

func TestGroupByMonth_Partition(t *testing.T) {
	expenses := []Expense{
		{ID: "a", Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local)},
		{ID: "b", Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local)},
		{ID: "c", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)},
		{ID: "d", Date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local)},
		{ID: "e", Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local)},
	}

	groups := GroupByMonth(expenses, func(e Expense) time.Time { return e.Date })

	total := 0
	for _, bucket := range groups {
		total += len(bucket)
	}
	if total != len(expenses) {
		t.Fatalf("partition lost records: %d grouped, %d input", total, len(expenses))
	}

	jan := groups["2025-01"]
	if len(jan) != 3 {
		t.Fatalf("expected 3 records in 2025-01, got %d", len(jan))
	}
	// Input order preserved within a bucket.
	if jan[0].ID != "a" || jan[1].ID != "b" || jan[2].ID != "e" {
		t.Errorf("bucket order changed: %s %s %s", jan[0].ID, jan[1].ID, jan[2].ID)
	}

	if len(groups["2024-12"]) != 1 || len(groups["2025-02"]) != 1 {
		t.Error("expected single-record buckets for 2024-12 and 2025-02")
	}
}

func TestSumAndAverage(t *testing.T) {
	expenses := []Expense{
		{Amount: 100},
		{Amount: 250.5},
		{Amount: 49.5},
	}

	amount := func(e Expense) float64 { return e.Amount }

	if got := SumAmounts(expenses, amount); got != 400 {
		t.Errorf("SumAmounts() = %v, want 400", got)
	}
	if got := AverageAmount(expenses, amount); got != 400.0/3 {
		t.Errorf("AverageAmount() = %v, want %v", got, 400.0/3)
	}
	if got := AverageAmount(nil, amount); got != 0 {
		t.Errorf("AverageAmount(empty) = %v, want 0", got)
	}
}

func TestStatusText(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"overdue", now.AddDate(0, 0, -3), "Vencido hace 3 días"},
		{"today", now, "Vence hoy"},
		{"tomorrow", now.AddDate(0, 0, 1), "Vence mañana"},
		{"later", now.AddDate(0, 0, 12), "Vence en 12 días"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusText(tt.due, now); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVehicleAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	if got := VehicleAge(2020, now); got != 5 {
		t.Errorf("VehicleAge(2020) = %d, want 5", got)
	}
	if got := VehicleAge(2026, now); got != 0 {
		t.Errorf("VehicleAge(next year) = %d, want 0", got)
	}
}
