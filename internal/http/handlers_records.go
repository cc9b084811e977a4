package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"autocare/internal/core"
	"autocare/internal/log"
)

// Maintenances

func (s *Server) handleListMaintenances(w http.ResponseWriter, r *http.Request) {
	var (
		items []core.Maintenance
		err   error
	)
	if vehicleID := r.URL.Query().Get("vehicleId"); vehicleID != "" {
		items, err = s.repo.MaintenancesByVehicle(r.Context(), vehicleID)
	} else {
		items, err = s.repo.Maintenances(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(items))
}

type maintenanceResponse struct {
	Maintenance core.Maintenance `json:"maintenance"`
	Reminder    *core.Reminder   `json:"reminder,omitempty"`
}

func (s *Server) handleCreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var maintenance core.Maintenance
	if !decodeBody(w, r, &maintenance) {
		return
	}
	if maintenance.ID == "" {
		maintenance.ID = core.GenerateID()
	}
	now := time.Now()
	maintenance.CreatedAt = now
	maintenance.UpdatedAt = now

	reminder, err := s.flow.Save(r.Context(), maintenance)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Save maintenance failed",
			log.FieldMaintenanceID, maintenance.ID, log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusCreated, maintenanceResponse{Maintenance: maintenance, Reminder: reminder})
}

func (s *Server) handleUpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	var maintenance core.Maintenance
	if !decodeBody(w, r, &maintenance) {
		return
	}
	maintenance.ID = chi.URLParam(r, "id")

	reminder, err := s.flow.Save(r.Context(), maintenance)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusOK, maintenanceResponse{Maintenance: maintenance, Reminder: reminder})
}

func (s *Server) handleDeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := s.flow.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// Expenses

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var (
		items []core.Expense
		err   error
	)
	if vehicleID := r.URL.Query().Get("vehicleId"); vehicleID != "" {
		items, err = s.repo.ExpensesByVehicle(r.Context(), vehicleID)
	} else {
		items, err = s.repo.Expenses(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(items))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense core.Expense
	if !decodeBody(w, r, &expense) {
		return
	}
	if expense.ID == "" {
		expense.ID = core.GenerateID()
	}
	now := time.Now()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	if err := expense.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if _, err := s.repo.VehicleByID(r.Context(), expense.VehicleID); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.repo.SaveExpense(r.Context(), expense); err != nil {
		s.logger.ErrorContext(r.Context(), "Save expense failed",
			log.FieldExpenseID, expense.ID, log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var expense core.Expense
	if !decodeBody(w, r, &expense) {
		return
	}
	expense.ID = chi.URLParam(r, "id")

	if err := expense.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.repo.SaveExpense(r.Context(), expense); err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExpenseTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := s.dash.ExpenseTrend(r.Context(), r.URL.Query().Get("vehicleId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(trend))
}

// Reminders

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	var (
		items []core.Reminder
		err   error
	)
	if vehicleID := r.URL.Query().Get("vehicleId"); vehicleID != "" {
		items, err = s.repo.RemindersByVehicle(r.Context(), vehicleID)
	} else {
		items, err = s.repo.Reminders(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(items))
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var reminder core.Reminder
	if !decodeBody(w, r, &reminder) {
		return
	}
	if reminder.ID == "" {
		reminder.ID = core.GenerateID()
	}
	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	if err := reminder.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if _, err := s.repo.VehicleByID(r.Context(), reminder.VehicleID); err != nil {
		writeDomainError(w, err)
		return
	}

	// Manual reminders get their alert scheduled on creation too.
	notificationID, err := s.notifier.Schedule(r.Context(), reminder)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Notification scheduling failed",
			log.FieldReminderID, reminder.ID, log.FieldError, err)
	}
	reminder.NotificationID = notificationID

	if err := s.repo.SaveReminder(r.Context(), reminder); err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusCreated, reminder)
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	var reminder core.Reminder
	if !decodeBody(w, r, &reminder) {
		return
	}
	reminder.ID = chi.URLParam(r, "id")

	if err := reminder.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.repo.SaveReminder(r.Context(), reminder); err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusOK, reminder)
}

func (s *Server) handleCompleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.flow.CompleteReminder(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	s.dash.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteReminder(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
