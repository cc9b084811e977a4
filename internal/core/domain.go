package core

import (
	"errors"
	"strings"
	"time"
)

const (
	MaintenanceOilChange         MaintenanceType = "oil_change"
	MaintenanceBrakes            MaintenanceType = "brakes"
	MaintenanceTires             MaintenanceType = "tires"
	MaintenanceBattery           MaintenanceType = "battery"
	MaintenanceAirFilter         MaintenanceType = "air_filter"
	MaintenanceSparkPlugs        MaintenanceType = "spark_plugs"
	MaintenanceTransmission      MaintenanceType = "transmission"
	MaintenanceCoolant           MaintenanceType = "coolant"
	MaintenanceBrakeFluid        MaintenanceType = "brake_fluid"
	MaintenancePowerSteering     MaintenanceType = "power_steering"
	MaintenanceTimingBelt        MaintenanceType = "timing_belt"
	MaintenanceGeneralInspection MaintenanceType = "general_inspection"
	MaintenanceOther             MaintenanceType = "other"
)

const (
	ExpenseFuel         ExpenseType = "fuel"
	ExpenseMaintenance  ExpenseType = "maintenance"
	ExpenseRepairs      ExpenseType = "repairs"
	ExpenseInsurance    ExpenseType = "insurance"
	ExpenseRegistration ExpenseType = "registration"
	ExpenseParking      ExpenseType = "parking"
	ExpenseTolls        ExpenseType = "tolls"
	ExpenseCleaning     ExpenseType = "cleaning"
	ExpenseOther        ExpenseType = "other"
)

type (
	MaintenanceType string

	ExpenseType string

	Vehicle struct {
		ID                string    `json:"id"`
		Brand             string    `json:"brand"`
		Model             string    `json:"model"`
		Year              int       `json:"year"`
		CurrentKilometers int       `json:"currentKilometers"`
		LicensePlate      string    `json:"licensePlate"`
		Photo             string    `json:"photo,omitempty"`
		CreatedAt         time.Time `json:"createdAt"`
		UpdatedAt         time.Time `json:"updatedAt"`
	}

	Maintenance struct {
		ID                string          `json:"id"`
		VehicleID         string          `json:"vehicleId"`
		Type              MaintenanceType `json:"type"`
		Date              time.Time       `json:"date"`
		Cost              float64         `json:"cost"`
		Kilometers        int             `json:"kilometers"`
		Notes             string          `json:"notes,omitempty"`
		Photo             string          `json:"photo,omitempty"`
		NextDueDate       *time.Time      `json:"nextDueDate,omitempty"`
		NextDueKilometers int             `json:"nextDueKilometers,omitempty"`
		CreatedAt         time.Time       `json:"createdAt"`
		UpdatedAt         time.Time       `json:"updatedAt"`
	}

	Expense struct {
		ID          string      `json:"id"`
		VehicleID   string      `json:"vehicleId"`
		Type        ExpenseType `json:"type"`
		Description string      `json:"description"`
		Amount      float64     `json:"amount"`
		Date        time.Time   `json:"date"`
		Category    string      `json:"category"`
		Photo       string      `json:"photo,omitempty"`
		CreatedAt   time.Time   `json:"createdAt"`
		UpdatedAt   time.Time   `json:"updatedAt"`
	}

	Reminder struct {
		ID                  string          `json:"id"`
		VehicleID           string          `json:"vehicleId"`
		MaintenanceType     MaintenanceType `json:"maintenanceType"`
		Title               string          `json:"title"`
		Description         string          `json:"description"`
		DueDate             time.Time       `json:"dueDate"`
		DueKilometers       int             `json:"dueKilometers,omitempty"`
		IsCompleted         bool            `json:"isCompleted"`
		NotificationID      string          `json:"notificationId,omitempty"`
		SourceMaintenanceID string          `json:"sourceMaintenanceId,omitempty"`
		CreatedAt           time.Time       `json:"createdAt"`
		UpdatedAt           time.Time       `json:"updatedAt"`
	}

	AppSettings struct {
		Language      string `json:"language"`
		Notifications bool   `json:"notifications"`
		ReminderDays  int    `json:"reminderDays"`
		Currency      string `json:"currency"`
		DistanceUnit  string `json:"distanceUnit"`
	}
)

var (
	ErrEmptyID           = errors.New("empty id")
	ErrEmptyVehicleID    = errors.New("empty vehicle id")
	ErrEmptyBrand        = errors.New("empty brand")
	ErrEmptyModel        = errors.New("empty model")
	ErrInvalidYear       = errors.New("invalid year")
	ErrInvalidKilometers = errors.New("invalid kilometers")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidCost       = errors.New("invalid cost")
	ErrInvalidType       = errors.New("invalid type")
	ErrEmptyTitle        = errors.New("empty title")
	ErrEmptyDescription  = errors.New("empty description")
	ErrZeroDate          = errors.New("date cannot be zero")
)

// DefaultSettings mirrors the values written on first launch.
func DefaultSettings() AppSettings {
	return AppSettings{
		Language:      "es",
		Notifications: true,
		ReminderDays:  7,
		Currency:      "MXN",
		DistanceUnit:  "km",
	}
}

func (t MaintenanceType) IsValid() bool {
	switch t {
	case MaintenanceOilChange, MaintenanceBrakes, MaintenanceTires,
		MaintenanceBattery, MaintenanceAirFilter, MaintenanceSparkPlugs,
		MaintenanceTransmission, MaintenanceCoolant, MaintenanceBrakeFluid,
		MaintenancePowerSteering, MaintenanceTimingBelt,
		MaintenanceGeneralInspection, MaintenanceOther:
		return true
	default:
		return false
	}
}

// DisplayName returns the user-facing label for the maintenance type.
func (t MaintenanceType) DisplayName() string {
	names := map[MaintenanceType]string{
		MaintenanceOilChange:         "Cambio de aceite",
		MaintenanceBrakes:            "Frenos",
		MaintenanceTires:             "Llantas",
		MaintenanceBattery:           "Batería",
		MaintenanceAirFilter:         "Filtro de aire",
		MaintenanceSparkPlugs:        "Bujías",
		MaintenanceTransmission:      "Transmisión",
		MaintenanceCoolant:           "Refrigerante",
		MaintenanceBrakeFluid:        "Líquido de frenos",
		MaintenancePowerSteering:     "Dirección hidráulica",
		MaintenanceTimingBelt:        "Banda de tiempo",
		MaintenanceGeneralInspection: "Inspección general",
	}
	if name, ok := names[t]; ok {
		return name
	}
	return "Otro"
}

func (t ExpenseType) IsValid() bool {
	switch t {
	case ExpenseFuel, ExpenseMaintenance, ExpenseRepairs, ExpenseInsurance,
		ExpenseRegistration, ExpenseParking, ExpenseTolls, ExpenseCleaning,
		ExpenseOther:
		return true
	default:
		return false
	}
}

// DisplayName returns the user-facing label for the expense type. It is also
// the default value for Expense.Category.
func (t ExpenseType) DisplayName() string {
	names := map[ExpenseType]string{
		ExpenseFuel:         "Combustible",
		ExpenseMaintenance:  "Mantenimiento",
		ExpenseRepairs:      "Reparaciones",
		ExpenseInsurance:    "Seguro",
		ExpenseRegistration: "Registro",
		ExpenseParking:      "Estacionamiento",
		ExpenseTolls:        "Casetas",
		ExpenseCleaning:     "Limpieza",
	}
	if name, ok := names[t]; ok {
		return name
	}
	return "Otro"
}

func (v Vehicle) Validate() error {
	if v.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(v.Brand) == "" {
		return ErrEmptyBrand
	}
	if strings.TrimSpace(v.Model) == "" {
		return ErrEmptyModel
	}
	if v.Year < 1980 || v.Year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	if v.CurrentKilometers < 0 {
		return ErrInvalidKilometers
	}
	return nil
}

func (m Maintenance) Validate() error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if m.VehicleID == "" {
		return ErrEmptyVehicleID
	}
	if !m.Type.IsValid() {
		return ErrInvalidType
	}
	if m.Date.IsZero() {
		return ErrZeroDate
	}
	if m.Cost < 0 {
		return ErrInvalidCost
	}
	if m.Kilometers < 0 {
		return ErrInvalidKilometers
	}
	// Next due kilometers, when set, must lie ahead of the recorded reading.
	if m.NextDueKilometers > 0 && m.NextDueKilometers <= m.Kilometers {
		return ErrInvalidKilometers
	}
	return nil
}

func (e Expense) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.VehicleID == "" {
		return ErrEmptyVehicleID
	}
	if !e.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (r Reminder) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if r.VehicleID == "" {
		return ErrEmptyVehicleID
	}
	if !r.MaintenanceType.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.DueDate.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (s AppSettings) Validate() error {
	if s.Language != "es" && s.Language != "en" {
		return errors.New("invalid language")
	}
	if s.ReminderDays < 1 || s.ReminderDays > 90 {
		return errors.New("invalid reminder days")
	}
	if s.DistanceUnit != "km" && s.DistanceUnit != "miles" {
		return errors.New("invalid distance unit")
	}
	return nil
}
