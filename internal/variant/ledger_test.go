package variant

import (
	"testing"
)

func TestLedgerRowOperations(t *testing.T) {
	l := NewSizeLedger()

	if len(l.Rows) != 2 {
		t.Fatalf("Fresh size ledger should have 2 rows, got %d", len(l.Rows))
	}
	if sel := l.SelectedIndices(); len(sel) != 1 || sel[0] != 0 {
		t.Errorf("Fresh ledger should have row 0 selected, got %v", sel)
	}

	// Add keeps one record per row, so there is nothing to de-sync
	l.AddRow()
	if len(l.Rows) != 3 {
		t.Errorf("Expected 3 rows after add, got %d", len(l.Rows))
	}

	// Removing a middle row shifts the ones above it down
	l.Rows[0].Label = "Small (S)"
	l.Rows[1].Label = "Medium (M)"
	l.Rows[2].Label = "Large (L)"
	l.Rows[2].Selected = true // selected = {0, 2}

	if !l.RemoveRow(0) {
		t.Fatal("Removing row 0 of a 3-row ledger should succeed")
	}
	sel := l.SelectedIndices()
	if len(sel) != 1 || sel[0] != 1 {
		t.Errorf("After removing row 0 with selection {0,2}, expected {1}, got %v", sel)
	}
	if l.Rows[1].Label != "Large (L)" {
		t.Errorf("Row that was at index 2 should now be at index 1, got label %q", l.Rows[1].Label)
	}
}

func TestLedgerRefusesLastRowRemoval(t *testing.T) {
	l := NewAccessoryLedger()
	if l.RemoveRow(0) {
		t.Error("Removing the only row should be refused")
	}
	if len(l.Rows) != 1 {
		t.Errorf("Ledger should still have 1 row, got %d", len(l.Rows))
	}
}

func TestLedgerSelectionNeverEmptyAfterRemoval(t *testing.T) {
	l := NewSizeLedger()
	l.AddRow()
	// Only row 0 is selected; removing it must re-seed the selection
	if !l.RemoveRow(0) {
		t.Fatal("Removal should succeed")
	}
	sel := l.SelectedIndices()
	if len(sel) != 1 || sel[0] != 0 {
		t.Errorf("Selection should reset to {0} when emptied, got %v", sel)
	}
}

func TestLedgerInvariantsUnderOperationSequence(t *testing.T) {
	l := NewSizeLedger()

	ops := []func(){
		func() { l.AddRow() },
		func() { l.SetStock(1, "4") },
		func() { l.SetPrice(2, "150") },
		func() { l.Toggle(2) },
		func() { l.RemoveRow(1) },
		func() { l.Toggle(0) },
		func() { l.RemoveRow(0) },
		func() { l.RemoveRow(0) },
		func() { l.AddRow() },
		func() { l.Toggle(1) },
	}

	for i, op := range ops {
		op()
		if len(l.Rows) < 1 {
			t.Fatalf("op %d: ledger must never be empty", i)
		}
		if len(l.SelectedIndices()) == 0 {
			t.Errorf("op %d: selection must never be empty after an operation", i)
		}
	}
}

func TestSetPriceReportsFirstSelectedRow(t *testing.T) {
	l := NewSizeLedger()
	l.Toggle(1) // selected = {0, 1}

	if !l.SetPrice(0, "100") {
		t.Error("Row 0 is the first selected row; caller must sync the form price")
	}
	if l.SetPrice(1, "120") {
		t.Error("Row 1 is selected but not first; form price must not change")
	}

	l.Toggle(0) // selected = {1}
	if !l.SetPrice(1, "130") {
		t.Error("Row 1 became the first selected row")
	}
}

func TestAggregates(t *testing.T) {
	l := NewSizeLedger()
	l.Rows[0] = Row{Label: "Small (S)", Stock: "5", Price: "100", Selected: true}
	l.Rows[1] = Row{Label: "Medium (M)", Stock: "3", Price: "120", Selected: true}

	if got := l.TotalStock(); got != 8 {
		t.Errorf("Expected total stock 8, got %d", got)
	}
	if got := l.UnitPrice(""); got != 100 {
		t.Errorf("Expected unit price 100, got %v", got)
	}
	if got := l.SizeString(); got != "Small (S), Medium (M)" {
		t.Errorf("Expected joined size string, got %q", got)
	}

	// Unparsable stock text counts as zero, never errors
	l.Rows[1].Stock = "three"
	if got := l.TotalStock(); got != 5 {
		t.Errorf("Unparsable stock should coerce to 0, got total %d", got)
	}
}

func TestSizeStringDefaults(t *testing.T) {
	l := NewSizeLedger()
	l.Toggle(1) // both rows selected, both labels blank
	if got := l.SizeString(); got != "Small (S), Medium (M)" {
		t.Errorf("Blank labels on rows 0/1 should use default labels, got %q", got)
	}

	l.Toggle(0)
	l.Toggle(1) // nothing selected
	if got := l.SizeString(); got != "N/A" {
		t.Errorf("Empty selection should derive \"N/A\", got %q", got)
	}
	if got := l.TotalStock(); got != 0 {
		t.Errorf("Empty selection should derive stock 0, got %d", got)
	}
}

func TestUnitPriceFallback(t *testing.T) {
	l := NewSizeLedger()
	if got := l.UnitPrice("250"); got != 250 {
		t.Errorf("Blank row price should fall back to form price, got %v", got)
	}
	if got := l.UnitPrice("not a number"); got != 0 {
		t.Errorf("Unparsable fallback should coerce to 0, got %v", got)
	}
}
