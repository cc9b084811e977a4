package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldVehicleID      = "vehicle_id"
	FieldMaintenanceID  = "maintenance_id"
	FieldExpenseID      = "expense_id"
	FieldReminderID     = "reminder_id"
	FieldNotificationID = "notification_id"
	FieldCollection     = "collection"
	FieldKilometers     = "kilometers"
	FieldAmount         = "amount"
	FieldDueDate        = "due_date"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStore    = "store"
	ComponentRecords  = "records"
	ComponentNotify   = "notify"
	ComponentWorker   = "worker"
	ComponentAds      = "ads"
	ComponentMedia    = "media"
	ComponentDash     = "dashboard"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpSchedule = "schedule"
	OpCancel   = "cancel"
	OpScan     = "scan"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
