package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"autocare/internal/core"
	"autocare/internal/log"
	"autocare/internal/records"
)

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.repo.Vehicles(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List vehicles failed", log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(vehicles))
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.repo.VehicleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle core.Vehicle
	if !decodeBody(w, r, &vehicle) {
		return
	}
	if vehicle.ID == "" {
		vehicle.ID = core.GenerateID()
	}
	now := time.Now()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	if err := vehicle.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.repo.SaveVehicle(r.Context(), vehicle); err != nil {
		s.logger.ErrorContext(r.Context(), "Save vehicle failed",
			log.FieldVehicleID, vehicle.ID, log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusCreated, vehicle)
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle core.Vehicle
	if !decodeBody(w, r, &vehicle) {
		return
	}
	vehicle.ID = chi.URLParam(r, "id")

	existing, err := s.repo.VehicleByID(r.Context(), vehicle.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	vehicle.CreatedAt = existing.CreatedAt

	if err := vehicle.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.repo.SaveVehicle(r.Context(), vehicle); err != nil {
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.repo.VehicleByID(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.repo.DeleteVehicle(r.Context(), id); err != nil {
		s.logger.ErrorContext(r.Context(), "Delete vehicle failed",
			log.FieldVehicleID, id, log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	s.dash.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVehicleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.dash.History(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, records.ErrVehicleNotFound) {
		writeError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Vehicle history failed", log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	history.Maintenances = emptyList(history.Maintenances)
	history.Expenses = emptyList(history.Expenses)
	history.MonthlySpend = emptyList(history.MonthlySpend)
	writeJSON(w, http.StatusOK, history)
}
