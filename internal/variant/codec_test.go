package variant

import (
	"testing"
)

func TestEncodeNoteSizeVariations(t *testing.T) {
	l := &Ledger{
		Kind: KindSize,
		Rows: []Row{
			{Label: "Small (S)", Stock: "5", Price: "100", Selected: true},
			{Label: "Medium (M)", Stock: "3", Price: "120", Selected: true},
		},
	}

	note, err := EncodeNote(l, "")
	if err != nil {
		t.Fatalf("Failed to encode note: %v", err)
	}

	want := `{"_type":"sizeVariations","sizeVariations":[` +
		`{"size":"Small (S)","stock":5,"price":100,"beginning_inventory":5},` +
		`{"size":"Medium (M)","stock":3,"price":120,"beginning_inventory":3}]}`
	if note != want {
		t.Errorf("Note payload mismatch:\n got: %s\nwant: %s", note, want)
	}
}

func TestEncodeNoteBeginningInventoryIsPerRow(t *testing.T) {
	l := &Ledger{
		Kind: KindSize,
		Rows: []Row{
			{Label: "Small (S)", Stock: "5", Price: "100", Selected: true},
			{Label: "Medium (M)", Stock: "3", Price: "120", Selected: true},
		},
	}

	note, err := EncodeNote(l, "")
	if err != nil {
		t.Fatalf("Failed to encode note: %v", err)
	}
	decoded := DecodeNote(note, "", 0, 0, "Uniforms")
	// Round the trip through the payload: per-row stock, not the sum (8)
	if decoded.Rows[0].Stock != "5" || decoded.Rows[1].Stock != "3" {
		t.Errorf("beginning_inventory/stock must stay per-row, got %q and %q",
			decoded.Rows[0].Stock, decoded.Rows[1].Stock)
	}
}

func TestEncodeNoteAccessories(t *testing.T) {
	l := &Ledger{
		Kind: KindAccessory,
		Rows: []Row{{Stock: "10", Price: "50", Selected: true}},
	}

	note, err := EncodeNote(l, "")
	if err != nil {
		t.Fatalf("Failed to encode note: %v", err)
	}
	want := `{"_type":"accessoryEntries","accessoryEntries":[{"stock":10,"price":50}]}`
	if note != want {
		t.Errorf("Note payload mismatch:\n got: %s\nwant: %s", note, want)
	}
}

func TestEncodeNotePriceFallback(t *testing.T) {
	l := &Ledger{
		Kind: KindSize,
		Rows: []Row{{Label: "Small (S)", Stock: "2", Price: "", Selected: true}},
	}

	note, err := EncodeNote(l, "85")
	if err != nil {
		t.Fatalf("Failed to encode note: %v", err)
	}
	decoded := DecodeNote(note, "", 0, 0, "Uniforms")
	if decoded.Rows[0].Price != "85" {
		t.Errorf("Blank row price should serialize as the form price, got %q", decoded.Rows[0].Price)
	}
}

func TestRoundTrip(t *testing.T) {
	original := &Ledger{
		Kind: KindSize,
		Rows: []Row{
			{Label: "Small (S)", Stock: "5", Price: "100", Selected: true},
			{Label: "Large (L)", Stock: "7", Price: "140", Selected: true},
			{Label: "XL", Stock: "1", Price: "160"}, // not selected, editor-only
		},
	}

	note1, err := EncodeNote(original, "")
	if err != nil {
		t.Fatalf("First encode failed: %v", err)
	}

	decoded := DecodeNote(note1, "", 0, 0, "Uniforms")
	note2, err := EncodeNote(decoded, "")
	if err != nil {
		t.Fatalf("Second encode failed: %v", err)
	}

	if note1 != note2 {
		t.Errorf("Round trip must reproduce the payload:\nfirst:  %s\nsecond: %s", note1, note2)
	}
}

func TestDecodeNotePlainTextFallback(t *testing.T) {
	// A human note is not an error; state derives from the plain fields
	l := DecodeNote("wash cold, line dry", "Small (S), Large (L)", 95, 12, "Uniforms")

	if l.Kind != KindSize {
		t.Fatalf("Expected size ledger, got %s", l.Kind)
	}
	sel := l.SelectedIndices()
	if len(sel) != 2 {
		t.Fatalf("Each size token should become a selected row, got %v", sel)
	}
	if l.Rows[0].Label != "Small (S)" || l.Rows[1].Label != "Large (L)" {
		t.Errorf("Tokens should survive verbatim, got %q and %q", l.Rows[0].Label, l.Rows[1].Label)
	}
	if l.Rows[0].Price != "95" {
		t.Errorf("Row 0 price should seed from the item price, got %q", l.Rows[0].Price)
	}
}

func TestDecodeNoteEmptySizeFallback(t *testing.T) {
	l := DecodeNote("", "N/A", 0, 0, "Uniforms")
	if len(l.Rows) != 2 {
		t.Errorf("N/A size should produce the default two rows, got %d", len(l.Rows))
	}
	if sel := l.SelectedIndices(); len(sel) != 1 || sel[0] != 0 {
		t.Errorf("Default ledger should select row 0, got %v", sel)
	}
}

func TestDecodeNoteAccessoryFallback(t *testing.T) {
	l := DecodeNote("", "", 50, 10, "Accessories")
	if l.Kind != KindAccessory {
		t.Fatalf("Expected accessory ledger, got %s", l.Kind)
	}
	if l.Rows[0].Stock != "10" || l.Rows[0].Price != "50" {
		t.Errorf("Accessory fallback should seed stock/price, got %q/%q", l.Rows[0].Stock, l.Rows[0].Price)
	}
}

func TestDecodeNoteSingleEntryPadsToTwoRows(t *testing.T) {
	note := `{"_type":"sizeVariations","sizeVariations":[{"size":"Small (S)","stock":5,"price":100,"beginning_inventory":5}]}`
	l := DecodeNote(note, "Small (S)", 100, 5, "Uniforms")

	if len(l.Rows) < 2 {
		t.Errorf("Editor always shows at least two rows, got %d", len(l.Rows))
	}
	if l.Rows[1].Selected {
		t.Error("Padding rows must not be selected")
	}
}

func TestDecodeNoteMissingEntryPrice(t *testing.T) {
	note := `{"_type":"sizeVariations","sizeVariations":[{"size":"Small (S)","stock":5}]}`
	l := DecodeNote(note, "Small (S)", 110, 5, "Uniforms")

	if l.Rows[0].Price != "110" {
		t.Errorf("Missing entry price should fall back to the item price, got %q", l.Rows[0].Price)
	}
}
