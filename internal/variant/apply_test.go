package variant

import (
	"strings"
	"testing"

	"github.com/vestra-app/vestrago/internal/models"
)

func TestApplyToItemUniform(t *testing.T) {
	l := &Ledger{
		Kind: KindSize,
		Rows: []Row{
			{Label: "Small (S)", Stock: "5", Price: "100", Selected: true},
			{Label: "Medium (M)", Stock: "3", Price: "120", Selected: true},
		},
	}

	item := &models.Item{ID: 7, Name: "PE Shirt", ItemType: models.ItemTypeUniforms}
	if err := ApplyToItem(item, l, ""); err != nil {
		t.Fatalf("Failed to apply ledger: %v", err)
	}

	if item.Size != "Small (S), Medium (M)" {
		t.Errorf("Expected joined size, got %q", item.Size)
	}
	if item.Stock != 8 {
		t.Errorf("Expected aggregate stock 8, got %d", item.Stock)
	}
	if item.Price != 100 {
		t.Errorf("Expected price of first selected row, got %v", item.Price)
	}
	if !strings.Contains(item.Note, `"_type":"sizeVariations"`) {
		t.Errorf("Note should carry the tagged payload, got %s", item.Note)
	}
	if len(item.VariantRows) != 2 {
		t.Fatalf("Expected 2 persisted rows, got %d", len(item.VariantRows))
	}
	if item.VariantRows[1].BeginningInventory != 3 {
		t.Errorf("New row baseline should equal its stock, got %d", item.VariantRows[1].BeginningInventory)
	}
	for i, r := range item.VariantRows {
		if r.ItemID != 7 || r.Position != i || r.Kind != models.VariantKindSize {
			t.Errorf("Row %d not wired to the item: %+v", i, r)
		}
	}
}

func TestApplyToItemEmptySelection(t *testing.T) {
	l := &Ledger{
		Kind: KindSize,
		Rows: []Row{{Label: "Small (S)", Stock: "5", Price: "100"}},
	}

	item := &models.Item{Name: "Blazer", ItemType: models.ItemTypeUniforms}
	if err := ApplyToItem(item, l, ""); err != nil {
		t.Fatalf("Failed to apply ledger: %v", err)
	}

	if item.Size != "N/A" {
		t.Errorf("Empty selection should set size to N/A, got %q", item.Size)
	}
	if item.Stock != 0 {
		t.Errorf("Empty selection should set stock to 0, got %d", item.Stock)
	}
}

func TestApplyToItemAccessoryOmitsSize(t *testing.T) {
	l := &Ledger{
		Kind: KindAccessory,
		Rows: []Row{{Stock: "10", Price: "50", Selected: true}},
	}

	item := &models.Item{Name: "School ID Lace", ItemType: models.ItemTypeAccessories, Size: "N/A"}
	if err := ApplyToItem(item, l, ""); err != nil {
		t.Fatalf("Failed to apply ledger: %v", err)
	}

	if item.Size != "" {
		t.Errorf("Accessories carry no size, got %q", item.Size)
	}
	if !strings.Contains(item.Note, `"_type":"accessoryEntries"`) {
		t.Errorf("Note should carry the accessory payload, got %s", item.Note)
	}
	if item.Stock != 10 || item.Price != 50 {
		t.Errorf("Aggregates wrong: stock %d price %v", item.Stock, item.Price)
	}
}

func TestApplyToItemPreservesBeginningInventory(t *testing.T) {
	item := &models.Item{
		ID:       3,
		Name:     "Polo",
		ItemType: models.ItemTypeUniforms,
		VariantRows: []models.VariantRow{
			{ItemID: 3, Kind: models.VariantKindSize, Position: 0, Label: "Small (S)", Stock: 2, BeginningInventory: 5, Selected: true},
		},
	}

	// Restock to 9; the creation-time baseline must not move
	l := &Ledger{
		Kind: KindSize,
		Rows: []Row{{Label: "Small (S)", Stock: "9", Price: "100", Selected: true}},
	}
	if err := ApplyToItem(item, l, ""); err != nil {
		t.Fatalf("Failed to apply ledger: %v", err)
	}

	if item.VariantRows[0].Stock != 9 {
		t.Errorf("Stock should update to 9, got %d", item.VariantRows[0].Stock)
	}
	if item.VariantRows[0].BeginningInventory != 5 {
		t.Errorf("Baseline should stay 5, got %d", item.VariantRows[0].BeginningInventory)
	}
}

func TestLedgerFromItemPrefersPersistedRows(t *testing.T) {
	item := &models.Item{
		ItemType: models.ItemTypeUniforms,
		Note:     `{"_type":"sizeVariations","sizeVariations":[{"size":"Stale","stock":1,"price":1,"beginning_inventory":1}]}`,
		VariantRows: []models.VariantRow{
			{Kind: models.VariantKindSize, Position: 1, Label: "Medium (M)", Stock: 3, Price: 120, Selected: true},
			{Kind: models.VariantKindSize, Position: 0, Label: "Small (S)", Stock: 5, Price: 100, Selected: true},
		},
	}

	l := LedgerFromItem(item)
	if len(l.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(l.Rows))
	}
	// Rows come back in position order regardless of storage order
	if l.Rows[0].Label != "Small (S)" || l.Rows[1].Label != "Medium (M)" {
		t.Errorf("Rows out of order: %q, %q", l.Rows[0].Label, l.Rows[1].Label)
	}
}

func TestLedgerFromItemLegacyNote(t *testing.T) {
	item := &models.Item{
		ItemType: models.ItemTypeUniforms,
		Size:     "Large (L)",
		Price:    140,
		Note:     "plain display note",
	}

	l := LedgerFromItem(item)
	if l.Rows[0].Label != "Large (L)" {
		t.Errorf("Legacy size token should become a row, got %q", l.Rows[0].Label)
	}
}
