// Package audit appends admin actions to the audit trail. Recording never
// fails the request that triggered it; a broken trail entry is logged and
// dropped.
package audit

import (
	"encoding/json"
	"log"
	"net"
	"net/http"

	"github.com/vestra-app/vestrago/internal/database"
	"github.com/vestra-app/vestrago/internal/middleware"
	"github.com/vestra-app/vestrago/internal/models"
	"gorm.io/datatypes"
)

// Recorder writes audit rows on behalf of HTTP handlers
type Recorder struct {
	db *database.DB
}

// NewRecorder creates a Recorder backed by the given database
func NewRecorder(db *database.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one audit entry. The actor comes from the request's JWT
// claims; detail is any JSON-encodable snapshot (use Change for
// before/after pairs).
func (rec *Recorder) Record(r *http.Request, action, entity, entityID string, detail interface{}) {
	rec.RecordActor(r, middleware.ActorID(r), middleware.ActorName(r), action, entity, entityID, detail)
}

// RecordActor is Record with an explicit actor, for endpoints that run
// before AuthMiddleware has placed claims in the context (login).
func (rec *Recorder) RecordActor(r *http.Request, actorID, actorName, action, entity, entityID string, detail interface{}) {
	entry := models.AuditLog{
		ActorID:   actorID,
		ActorName: actorName,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		IP:        clientIP(r),
	}

	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			log.Printf("⚠️  Audit: could not encode detail for %s %s/%s: %v", action, entity, entityID, err)
		} else {
			entry.Detail = datatypes.JSON(raw)
		}
	}

	if err := rec.db.Create(&entry).Error; err != nil {
		log.Printf("⚠️  Audit: could not record %s %s/%s: %v", action, entity, entityID, err)
	}
}

// Change pairs the persisted state before and after a mutation
type Change struct {
	Before interface{} `json:"before,omitempty"`
	After  interface{} `json:"after,omitempty"`
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
