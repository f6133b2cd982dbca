// Package variant holds the item editor's variant state: ordered rows of
// label/stock/price with a selection flag, the aggregate size/price/stock
// derivation, and the legacy note JSON codec.
package variant

import (
	"strconv"
	"strings"
)

// Kind discriminates size ledgers (uniforms, labeled rows) from accessory
// ledgers (unlabeled stock/price rows).
type Kind string

const (
	KindSize      Kind = "size"
	KindAccessory Kind = "accessory"
)

// DefaultSizeLabels back-fill blank labels on the first two rows so a fresh
// editor still produces readable size strings.
var DefaultSizeLabels = []string{"Small (S)", "Medium (M)"}

// Row is one editor row. Stock and Price stay numeric-as-text because the
// editor sends them as free text; coercion to numbers happens only at
// aggregation and serialization time (unparsable input counts as 0).
type Row struct {
	Label    string `json:"label"`
	Stock    string `json:"stock"`
	Price    string `json:"price"`
	Selected bool   `json:"selected"`
}

// Ledger is the ordered collection of rows for one item being edited.
// A single record per row replaces the old scheme of four co-indexed
// arrays, so the length invariants hold by construction.
type Ledger struct {
	Kind Kind  `json:"kind"`
	Rows []Row `json:"rows"`
}

// NewSizeLedger returns the fresh uniform editor state: two blank rows with
// the first one selected.
func NewSizeLedger() *Ledger {
	return &Ledger{
		Kind: KindSize,
		Rows: []Row{{Selected: true}, {}},
	}
}

// NewAccessoryLedger returns the fresh accessory editor state: one blank
// row, selected.
func NewAccessoryLedger() *Ledger {
	return &Ledger{
		Kind: KindAccessory,
		Rows: []Row{{Selected: true}},
	}
}

// NewLedgerFor picks the fresh ledger shape for an item type.
func NewLedgerFor(itemType string) *Ledger {
	if itemType == "Accessories" {
		return NewAccessoryLedger()
	}
	return NewSizeLedger()
}

// AddRow appends a blank, unselected row.
func (l *Ledger) AddRow() {
	l.Rows = append(l.Rows, Row{})
}

// RemoveRow deletes row k. Removing the last remaining row is refused as a
// no-op. If the removal empties the selection, row 0 is re-selected so the
// ledger never ends an operation with nothing selected.
func (l *Ledger) RemoveRow(k int) bool {
	if len(l.Rows) <= 1 || k < 0 || k >= len(l.Rows) {
		return false
	}
	l.Rows = append(l.Rows[:k], l.Rows[k+1:]...)
	if len(l.SelectedIndices()) == 0 {
		l.Rows[0].Selected = true
	}
	return true
}

// SetStock replaces the stock text of row k.
func (l *Ledger) SetStock(k int, stock string) {
	if k < 0 || k >= len(l.Rows) {
		return
	}
	l.Rows[k].Stock = stock
}

// SetPrice replaces the price text of row k. It reports whether k is the
// first selected row, in which case the caller must mirror the new price
// into the form-level price field.
func (l *Ledger) SetPrice(k int, price string) bool {
	if k < 0 || k >= len(l.Rows) {
		return false
	}
	l.Rows[k].Price = price
	sel := l.SelectedIndices()
	return len(sel) > 0 && sel[0] == k
}

// Toggle flips the selection of row k.
func (l *Ledger) Toggle(k int) {
	if k < 0 || k >= len(l.Rows) {
		return
	}
	l.Rows[k].Selected = !l.Rows[k].Selected
}

// SelectedIndices returns the selected row indices in order.
func (l *Ledger) SelectedIndices() []int {
	var sel []int
	for i, r := range l.Rows {
		if r.Selected {
			sel = append(sel, i)
		}
	}
	return sel
}

// labelAt returns the trimmed label of row i, back-filled from the default
// labels when blank.
func (l *Ledger) labelAt(i int) string {
	label := strings.TrimSpace(l.Rows[i].Label)
	if label == "" && i < len(DefaultSizeLabels) {
		label = DefaultSizeLabels[i]
	}
	return label
}

// SizeString derives the aggregate size field: the comma-joined labels of
// the selected rows, or "N/A" when nothing is selected. Accessory ledgers
// have no size string.
func (l *Ledger) SizeString() string {
	if l.Kind == KindAccessory {
		return ""
	}
	sel := l.SelectedIndices()
	if len(sel) == 0 {
		return "N/A"
	}
	labels := make([]string, 0, len(sel))
	for _, i := range sel {
		labels = append(labels, l.labelAt(i))
	}
	return strings.Join(labels, ", ")
}

// TotalStock sums the coerced stocks of the selected rows.
func (l *Ledger) TotalStock() int {
	total := 0
	for _, i := range l.SelectedIndices() {
		total += coerceInt(l.Rows[i].Stock)
	}
	return total
}

// UnitPrice is the price of the first selected row; rows with blank or
// unparsable prices fall back to the form-level price, then to 0.
func (l *Ledger) UnitPrice(fallback string) float64 {
	sel := l.SelectedIndices()
	if len(sel) > 0 {
		if p := coerceFloat(l.Rows[sel[0]].Price); p != 0 {
			return p
		}
	}
	return coerceFloat(fallback)
}

// coerceFloat mirrors the editor's Number(x) || 0 behavior.
func coerceFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func coerceInt(s string) int {
	return int(coerceFloat(s))
}
