package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StaffUser represents a staff account that can sign in to the admin console
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type StaffUser struct {
	ID                  string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Username            string     `gorm:"unique;not null" json:"username"`
	Password            string     `gorm:"not null" json:"-"`
	Email               string     `gorm:"unique;not null" json:"email"`
	Name                string     `json:"name,omitempty"`
	RoleID              uint       `gorm:"index" json:"roleId"`
	IsActive            bool       `gorm:"default:true" json:"isActive"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName specifies the table name for StaffUser model
func (StaffUser) TableName() string {
	return "staff_users"
}

// Permission strings checked by the role gate middleware.
const (
	PermItemsRead         = "items:read"
	PermItemsWrite        = "items:write"
	PermStudentsRead      = "students:read"
	PermStudentsWrite     = "students:write"
	PermTransactionsRead  = "transactions:read"
	PermTransactionsWrite = "transactions:write"
	PermUsersManage       = "users:manage"
	PermRolesManage       = "roles:manage"
	PermMaintenanceManage = "maintenance:manage"
	PermAuditRead         = "audit:read"
	PermReportsRead       = "reports:read"
)

// Role groups a named set of permission strings
type Role struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"unique;not null" json:"name"`
	Description string         `json:"description,omitempty"`
	Permissions datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"permissions"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Role model
func (Role) TableName() string {
	return "roles"
}

// PermissionList decodes the jsonb permissions column
func (r *Role) PermissionList() []string {
	var perms []string
	if err := json.Unmarshal(r.Permissions, &perms); err != nil {
		return nil
	}
	return perms
}

// HasPermission reports whether the role grants perm. The admin role
// implicitly grants everything.
func (r *Role) HasPermission(perm string) bool {
	if r == nil {
		return false
	}
	if r.Name == "admin" {
		return true
	}
	for _, p := range r.PermissionList() {
		if p == perm {
			return true
		}
	}
	return false
}
