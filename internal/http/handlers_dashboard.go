package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"autocare/internal/core"
	"autocare/internal/log"
	"autocare/internal/media"
	"autocare/internal/services"
)

type dashboardResponse struct {
	Stats     services.Stats            `json:"stats"`
	Upcoming  []services.ReminderStatus `json:"upcoming"`
	Generated time.Time                 `json:"generatedAt"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	settings, err := s.repo.Settings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	stats, err := s.dash.Stats(r.Context(), now)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard stats failed", log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	upcoming, err := s.dash.UpcomingReminders(r.Context(), now, settings.ReminderDays)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Stats:     stats,
		Upcoming:  emptyList(upcoming),
		Generated: now,
	})
}

type calendarResponse struct {
	Months  []string                             `json:"months"`
	ByMonth map[string][]services.ReminderStatus `json:"byMonth"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	byMonth, months, err := s.dash.Calendar(r.Context(), time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if byMonth == nil {
		byMonth = map[string][]services.ReminderStatus{}
	}
	writeJSON(w, http.StatusOK, calendarResponse{
		Months:  emptyList(months),
		ByMonth: byMonth,
	})
}

// Settings

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.repo.Settings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings core.AppSettings
	if !decodeBody(w, r, &settings) {
		return
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.repo.SaveSettings(r.Context(), settings); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleReset wipes the record collections. Settings survive.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.ClearAll(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.notifier.CancelAll(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "Cancel all notifications failed", log.FieldError, err)
	}
	s.dash.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// Ads

type adsConfigResponse struct {
	Available    bool   `json:"available"`
	BannerUnitID string `json:"bannerUnitId,omitempty"`
}

func (s *Server) handleAdsConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, adsConfigResponse{
		Available:    s.adsProv.Available(),
		BannerUnitID: s.adsProv.BannerUnitID(),
	})
}

type adActionResponse struct {
	ShowInterstitial bool `json:"showInterstitial"`
}

func (s *Server) handleAdAction(w http.ResponseWriter, r *http.Request) {
	show, err := s.adsProv.RecordAction(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ad action failed", log.FieldError, err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adActionResponse{ShowInterstitial: show})
}

// Photos

type photoResponse struct {
	Key string `json:"key"`
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		writeError(w, http.StatusNotImplemented, "media storage not configured")
		return
	}
	contentType := r.Header.Get("Content-Type")
	key, err := s.media.Put(r.Context(), r.Body, r.ContentLength, contentType)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Photo upload failed", log.FieldError, err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, photoResponse{Key: key})
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		writeError(w, http.StatusNotImplemented, "media storage not configured")
		return
	}
	key := "photos/" + chi.URLParam(r, "key")
	rc, err := s.media.Get(r.Context(), key)
	if errors.Is(err, media.ErrObjectNotFound) {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer rc.Close()
	_, _ = io.Copy(w, rc)
}
