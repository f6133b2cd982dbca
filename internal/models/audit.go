package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions
const (
	AuditCreate  = "create"
	AuditUpdate  = "update"
	AuditDelete  = "delete"
	AuditLogin   = "login"
	AuditRelease = "release"
	AuditCancel  = "cancel"
)

// AuditLog is an append-only record of every mutating admin action.
// There are no update or delete endpoints for this table.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ActorID   string         `gorm:"type:varchar(36);index" json:"actorId"`
	ActorName string         `json:"actorName"`
	Action    string         `gorm:"type:varchar(20);not null;index" json:"action"`
	Entity    string         `gorm:"type:varchar(40);not null;index" json:"entity"`
	EntityID  string         `gorm:"index" json:"entityId"`
	Detail    datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"` // before/after snapshot
	IP        string         `json:"ip,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}
