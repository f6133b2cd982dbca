package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// Accessories persist Size as "". A column default would make GORM swap the
// default in for the empty string on Create, so the Size field must not
// carry one; the "N/A" fallback belongs to the variant aggregation alone.
func TestItemSizeHasNoColumnDefault(t *testing.T) {
	s, err := schema.Parse(&Item{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("Failed to parse Item schema: %v", err)
	}

	field := s.LookUpField("Size")
	if field == nil {
		t.Fatal("Item has no Size field")
	}
	if field.HasDefaultValue || field.DefaultValue != "" {
		t.Errorf("Size must have no column default, got %q", field.DefaultValue)
	}
}
