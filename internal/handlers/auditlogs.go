package handlers

import (
	"net/http"
	"time"

	"github.com/vestra-app/vestrago/internal/models"
)

// listAuditLogs returns a filtered page of the audit trail, newest first
func (r *Router) listAuditLogs(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	page, limit, offset := pagination(req)

	tx := r.db.Model(&models.AuditLog{})
	if actor := q.Get("actor"); actor != "" {
		tx = tx.Where("actor_id = ?", actor)
	}
	if entity := q.Get("entity"); entity != "" {
		tx = tx.Where("entity = ?", entity)
	}
	if action := q.Get("action"); action != "" {
		tx = tx.Where("action = ?", action)
	}
	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			tx = tx.Where("created_at >= ?", t)
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			tx = tx.Where("created_at <= ?", t)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch audit logs")
		return
	}

	var logs []models.AuditLog
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch audit logs")
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: logs, Total: total, Page: page, Limit: limit})
}
