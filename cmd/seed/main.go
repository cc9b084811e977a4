// Command seed loads demo vehicles and reminders into the configured store,
// for trying the dashboard and calendar against realistic data.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"autocare/internal/config"
	"autocare/internal/core"
	"autocare/internal/log"
	"autocare/internal/records"
	"autocare/internal/store"
)

func main() {
	_ = godotenv.Load()

	wipe := flag.Bool("clear", false, "wipe record collections instead of seeding")
	flag.Parse()

	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentApp})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	kv, err := store.Open(store.Config{
		Backend:      store.Backend(cfg.StoreBackend),
		DataDir:      cfg.DataDir,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err)
		os.Exit(1)
	}
	defer kv.Close()

	repo := records.New(kv, logger)
	ctx := context.Background()

	if *wipe {
		if err := repo.ClearAll(ctx); err != nil {
			logger.Error("Clear failed", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Record collections cleared")
		return
	}

	if err := seed(ctx, repo); err != nil {
		logger.Error("Seed failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Demo data loaded")
}

func seed(ctx context.Context, repo *records.Repository) error {
	now := time.Now()

	vehicles := []core.Vehicle{
		{
			ID:                core.GenerateID(),
			Brand:             "Toyota",
			Model:             "Corolla",
			Year:              2020,
			CurrentKilometers: 52000,
			LicensePlate:      "ABC-123",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                core.GenerateID(),
			Brand:             "Nissan",
			Model:             "Versa",
			Year:              2018,
			CurrentKilometers: 87000,
			LicensePlate:      "XYZ-987",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
	for _, v := range vehicles {
		if err := repo.SaveVehicle(ctx, v); err != nil {
			return err
		}
	}

	first, second := vehicles[0], vehicles[1]
	reminders := []core.Reminder{
		{
			ID:              core.GenerateID(),
			VehicleID:       first.ID,
			MaintenanceType: core.MaintenanceOilChange,
			Title:           "Cambio de aceite - " + first.Brand + " " + first.Model,
			Description:     "Próximo cambio de aceite programado para " + first.LicensePlate,
			DueDate:         now.AddDate(0, 0, 7),
			DueKilometers:   first.CurrentKilometers + 5000,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              core.GenerateID(),
			VehicleID:       first.ID,
			MaintenanceType: core.MaintenanceBrakes,
			Title:           "Revisión de frenos - " + first.Brand + " " + first.Model,
			Description:     "Revisar pastillas y discos de freno",
			DueDate:         now.AddDate(0, 0, 15),
			DueKilometers:   first.CurrentKilometers + 10000,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              core.GenerateID(),
			VehicleID:       second.ID,
			MaintenanceType: core.MaintenanceTires,
			Title:           "Rotación de llantas - " + second.Brand + " " + second.Model,
			Description:     "Rotar y balancear llantas",
			DueDate:         now.AddDate(0, 0, 3),
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
	for _, r := range reminders {
		if err := repo.SaveReminder(ctx, r); err != nil {
			return err
		}
	}

	maintenances := []core.Maintenance{
		{
			ID:         core.GenerateID(),
			VehicleID:  first.ID,
			Type:       core.MaintenanceOilChange,
			Date:       now.AddDate(0, -5, 0),
			Cost:       850,
			Kilometers: 47000,
			Notes:      "Aceite sintético 5W-30",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         core.GenerateID(),
			VehicleID:  second.ID,
			Type:       core.MaintenanceBattery,
			Date:       now.AddDate(0, -2, 0),
			Cost:       2400,
			Kilometers: 85500,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	for _, m := range maintenances {
		if err := repo.SaveMaintenance(ctx, m); err != nil {
			return err
		}
	}

	expenses := []core.Expense{
		{
			ID:          core.GenerateID(),
			VehicleID:   first.ID,
			Type:        core.ExpenseFuel,
			Description: "Tanque lleno",
			Amount:      950,
			Date:        now.AddDate(0, 0, -2),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          core.GenerateID(),
			VehicleID:   first.ID,
			Type:        core.ExpenseInsurance,
			Description: "Mensualidad del seguro",
			Amount:      1200,
			Date:        now.AddDate(0, 0, -10),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          core.GenerateID(),
			VehicleID:   second.ID,
			Type:        core.ExpenseTolls,
			Description: "Casetas viaje a Querétaro",
			Amount:      380,
			Date:        now.AddDate(0, -1, 0),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	for _, e := range expenses {
		if err := repo.SaveExpense(ctx, e); err != nil {
			return err
		}
	}

	return nil
}
