package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/vestra-app/vestrago/internal/middleware"
	"github.com/vestra-app/vestrago/internal/models"
)

// MaintenancePayload is the window scheduling shape
type MaintenancePayload struct {
	Message  string     `json:"message"`
	StartsAt time.Time  `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

// listMaintenance returns all windows, newest first
func (r *Router) listMaintenance(w http.ResponseWriter, req *http.Request) {
	var windows []models.MaintenanceWindow
	if err := r.db.Order("starts_at DESC").Find(&windows).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch maintenance windows")
		return
	}
	respondJSON(w, http.StatusOK, windows)
}

// currentMaintenance reports the active window, if any
func (r *Router) currentMaintenance(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"maintenance": r.scheduler.Current(),
	})
}

// scheduleMaintenance creates a window. A start time in the past activates
// on the scheduler's immediate refresh.
func (r *Router) scheduleMaintenance(w http.ResponseWriter, req *http.Request) {
	var payload MaintenancePayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.StartsAt.IsZero() {
		respondError(w, http.StatusBadRequest, "startsAt is required")
		return
	}
	if payload.EndsAt != nil && !payload.EndsAt.After(payload.StartsAt) {
		respondError(w, http.StatusBadRequest, "endsAt must be after startsAt")
		return
	}

	window := models.MaintenanceWindow{
		Message:   payload.Message,
		StartsAt:  payload.StartsAt.UTC(),
		Status:    models.MaintenanceScheduled,
		CreatedBy: middleware.ActorID(req),
	}
	if payload.EndsAt != nil {
		utc := payload.EndsAt.UTC()
		window.EndsAt = &utc
	}

	if err := r.db.Create(&window).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to schedule maintenance")
		return
	}

	r.scheduler.Refresh()
	r.audit.Record(req, models.AuditCreate, "maintenance_window", strconv.FormatUint(uint64(window.ID), 10), auditChangeAfter(window))
	respondJSON(w, http.StatusCreated, window)
}

// cancelMaintenance cancels a scheduled or active window
func (r *Router) cancelMaintenance(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var window models.MaintenanceWindow
	if err := r.db.First(&window, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Maintenance window not found")
		return
	}
	if window.Status != models.MaintenanceScheduled && window.Status != models.MaintenanceActive {
		respondError(w, http.StatusConflict, "Window is already finished")
		return
	}

	wasActive := window.Status == models.MaintenanceActive
	window.Status = models.MaintenanceCancelled
	if err := r.db.Save(&window).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to cancel window")
		return
	}

	r.scheduler.Refresh()
	if wasActive {
		r.hub.Broadcast("maintenance.ended", window)
	}
	r.audit.Record(req, models.AuditCancel, "maintenance_window", strconv.FormatUint(uint64(window.ID), 10), nil)
	respondJSON(w, http.StatusOK, window)
}
