package models

import (
	"time"

	"gorm.io/gorm"
)

// Item type values recognized by the variant logic. Anything else is a
// plain single-price item with no rows.
const (
	ItemTypeUniforms    = "Uniforms"
	ItemTypeAccessories = "Accessories"
)

// Item represents one catalog entry in the uniform shop.
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type Item struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"uniqueIndex;not null" json:"name"`
	EducationLevel  string `gorm:"index" json:"educationLevel"`
	Category        string `gorm:"index" json:"category"`
	ItemType        string `gorm:"index;default:'Uniforms'" json:"itemType"`
	Image           string `json:"image,omitempty"`
	Description     string `gorm:"type:text" json:"description,omitempty"`
	DescriptionText string `gorm:"type:text" json:"descriptionText,omitempty"`
	Material        string `json:"material,omitempty"`

	// Aggregates derived from the selected variant rows at write time.
	// Kept on the item so list screens and legacy clients never need to
	// touch the rows. Size has no column default: accessories store "" and
	// the "N/A" fallback is written explicitly by the variant aggregation.
	Size  string  `json:"size,omitempty"`
	Price float64 `json:"price"`
	Stock int     `gorm:"default:0" json:"stock"`

	// Note carries the legacy JSON side-channel (_type tagged payload),
	// regenerated from the variant rows on every write. DisplayNote is the
	// human-readable note; the two never share a slot.
	Note        string `gorm:"type:text" json:"note,omitempty"`
	DisplayNote string `gorm:"type:text" json:"displayNote,omitempty"`

	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	VariantRows []VariantRow `gorm:"foreignKey:ItemID" json:"variantRows,omitempty"`
}

// TableName specifies the table name for Item model
func (Item) TableName() string {
	return "items"
}

// Variant row kinds. Size rows carry a label; accessory rows do not.
const (
	VariantKindSize      = "size"
	VariantKindAccessory = "accessory"
)

// VariantRow is one editor row of an item: a size/option (or accessory
// stock entry) with its own stock and price. Rows kept in the editor but
// not included in the saved item stay persisted with Selected=false.
type VariantRow struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ItemID   uint    `gorm:"index;not null" json:"itemId"`
	Kind     string  `gorm:"type:varchar(16);not null;default:'size'" json:"kind"`
	Position int     `gorm:"not null" json:"position"`
	Label    string  `json:"label"`
	Stock    int     `gorm:"default:0" json:"stock"`
	Price    float64 `json:"price"`

	// BeginningInventory is the stock recorded when the row was first
	// saved. Transactions move Stock; this stays fixed as the baseline
	// for stock-adjustment reporting.
	BeginningInventory int `gorm:"default:0" json:"beginningInventory"`

	Selected  bool      `gorm:"default:true" json:"selected"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for VariantRow model
func (VariantRow) TableName() string {
	return "variant_rows"
}
