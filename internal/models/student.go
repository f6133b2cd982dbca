package models

import (
	"time"

	"gorm.io/gorm"
)

// Student statuses
const (
	StudentActive    = "active"
	StudentInactive  = "inactive"
	StudentGraduated = "graduated"
)

// Student represents an enrolled student who can be issued uniforms
type Student struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	StudentNumber  string `gorm:"uniqueIndex;not null" json:"studentNumber"`
	FirstName      string `gorm:"not null" json:"firstName"`
	LastName       string `gorm:"not null" json:"lastName"`
	Email          string `gorm:"index" json:"email,omitempty"`
	EducationLevel string `gorm:"index" json:"educationLevel"`
	GradeLevel     string `json:"gradeLevel,omitempty"`
	Section        string `json:"section,omitempty"`
	Status         string `gorm:"type:varchar(20);default:'active';index" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Student model
func (Student) TableName() string {
	return "students"
}
