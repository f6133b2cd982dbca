package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction statuses
const (
	TransactionPending   = "pending"
	TransactionPaid      = "paid"
	TransactionReleased  = "released"
	TransactionCancelled = "cancelled"
)

// TransactionLine is one purchased row inside a transaction's jsonb lines
// payload. Label is the variant label at purchase time ("" for accessories).
type TransactionLine struct {
	ItemID    uint    `json:"itemId"`
	Label     string  `json:"label,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Transaction records a student purchase. Releasing a transaction is the
// only path that decrements variant stock.
type Transaction struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Reference   string         `gorm:"uniqueIndex;not null" json:"reference"`
	StudentID   uint           `gorm:"index;not null" json:"studentId"`
	Lines       datatypes.JSON `gorm:"type:jsonb;not null" json:"lines"`
	Total       float64        `json:"total"`
	Status      string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ProcessedBy string         `gorm:"type:varchar(36)" json:"processedBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}
