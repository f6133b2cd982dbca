package models

import (
	"time"
)

// MaintenanceStatus enumerates the lifecycle of a maintenance window
type MaintenanceStatus string

const (
	MaintenanceScheduled MaintenanceStatus = "scheduled"
	MaintenanceActive    MaintenanceStatus = "active"
	MaintenanceCompleted MaintenanceStatus = "completed"
	MaintenanceCancelled MaintenanceStatus = "cancelled"
)

// MaintenanceWindow is a scheduled period during which the API answers 503
// to everyone without the maintenance:manage permission
type MaintenanceWindow struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Message   string            `gorm:"type:text" json:"message"`
	StartsAt  time.Time         `gorm:"not null;index" json:"startsAt"`
	EndsAt    *time.Time        `json:"endsAt,omitempty"` // nil = open-ended, runs until cancelled
	Status    MaintenanceStatus `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`
	CreatedBy string            `gorm:"type:varchar(36)" json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (MaintenanceWindow) TableName() string {
	return "maintenance_windows"
}
