// Package http exposes the record store and derivation layer as a JSON API.
// Handlers stay thin: decode, validate, call the repository or a service,
// encode. Derived values are computed per request and never persisted.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"autocare/internal/ads"
	"autocare/internal/log"
	"autocare/internal/media"
	"autocare/internal/notify"
	"autocare/internal/records"
	"autocare/internal/services"
)

type Server struct {
	http.Server

	repo     *records.Repository
	flow     *services.MaintenanceFlow
	dash     *services.Dashboard
	notifier notify.Notifier
	adsProv  ads.Provider
	media    media.Store
	logger   *log.Logger

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// Deps carries the collaborators the server routes to. Nil optional fields
// (ads, media, notifier) degrade to null implementations.
type Deps struct {
	Repo     *records.Repository
	Flow     *services.MaintenanceFlow
	Dash     *services.Dashboard
	Notifier notify.Notifier
	Ads      ads.Provider
	Media    media.Store
	Logger   *log.Logger
}

func NewServer(addr string, deps Deps) *Server {
	if deps.Notifier == nil {
		deps.Notifier = notify.NullNotifier{}
	}
	if deps.Ads == nil {
		deps.Ads = ads.NullProvider{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(log.Config{Component: log.ComponentHTTP})
	}

	s := &Server{
		repo:        deps.Repo,
		flow:        deps.Flow,
		dash:        deps.Dash,
		notifier:    deps.Notifier,
		adsProv:     deps.Ads,
		media:       deps.Media,
		logger:      deps.Logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(securityHeaders)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.With(s.writeLimit).Group(func(r chi.Router) {
			r.Post("/vehicles", s.handleCreateVehicle)
			r.Put("/vehicles/{id}", s.handleUpdateVehicle)
			r.Delete("/vehicles/{id}", s.handleDeleteVehicle)

			r.Post("/maintenances", s.handleCreateMaintenance)
			r.Put("/maintenances/{id}", s.handleUpdateMaintenance)
			r.Delete("/maintenances/{id}", s.handleDeleteMaintenance)

			r.Post("/expenses", s.handleCreateExpense)
			r.Put("/expenses/{id}", s.handleUpdateExpense)
			r.Delete("/expenses/{id}", s.handleDeleteExpense)

			r.Post("/reminders", s.handleCreateReminder)
			r.Put("/reminders/{id}", s.handleUpdateReminder)
			r.Post("/reminders/{id}/complete", s.handleCompleteReminder)
			r.Delete("/reminders/{id}", s.handleDeleteReminder)

			r.Put("/settings", s.handleUpdateSettings)
			r.Post("/photos", s.handleUploadPhoto)
			r.Post("/reset", s.handleReset)
		})

		r.Get("/vehicles", s.handleListVehicles)
		r.Get("/vehicles/{id}", s.handleGetVehicle)
		r.Get("/vehicles/{id}/history", s.handleVehicleHistory)

		r.Get("/maintenances", s.handleListMaintenances)
		r.Get("/expenses", s.handleListExpenses)
		r.Get("/expenses/trend", s.handleExpenseTrend)
		r.Get("/reminders", s.handleListReminders)

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/settings", s.handleGetSettings)
		r.Get("/ads/config", s.handleAdsConfig)
		r.Post("/ads/action", s.handleAdAction)
		r.Get("/photos/{key}", s.handleGetPhoto)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Shutdown stops the rate limiter cleanup goroutine and drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// A settings read exercises the full store path.
	if _, err := s.repo.Settings(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Readiness check failed", log.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
