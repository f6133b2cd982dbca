package variant

import (
	"strings"

	"github.com/vestra-app/vestrago/internal/models"
)

// ApplyToItem writes a ledger onto an item: the regenerated note payload,
// the derived size/price/stock aggregates, and a replacement variant row
// set. BeginningInventory is carried over from an existing row at the same
// position so transactions moving stock never reset the baseline.
func ApplyToItem(item *models.Item, l *Ledger, formPrice string) error {
	note, err := EncodeNote(l, formPrice)
	if err != nil {
		return err
	}
	item.Note = note
	item.Stock = l.TotalStock()
	item.Price = l.UnitPrice(formPrice)
	if l.Kind == KindAccessory {
		item.Size = ""
	} else {
		item.Size = l.SizeString()
	}

	prior := make(map[int]models.VariantRow, len(item.VariantRows))
	for _, r := range item.VariantRows {
		prior[r.Position] = r
	}

	rows := make([]models.VariantRow, 0, len(l.Rows))
	for i, r := range l.Rows {
		stock := coerceInt(r.Stock)
		row := models.VariantRow{
			ItemID:             item.ID,
			Kind:               string(l.Kind),
			Position:           i,
			Stock:              stock,
			Price:              coerceFloat(r.Price),
			BeginningInventory: stock,
			Selected:           r.Selected,
		}
		if l.Kind == KindSize {
			row.Label = strings.TrimSpace(r.Label)
		}
		if old, ok := prior[i]; ok && old.Kind == row.Kind {
			row.BeginningInventory = old.BeginningInventory
		}
		rows = append(rows, row)
	}
	item.VariantRows = rows
	return nil
}

// LedgerFromItem rebuilds the editor state for an item opened for edit.
// Persisted variant rows win; the note payload (or the plain aggregate
// fields) only serve items saved before rows were first-class.
func LedgerFromItem(item *models.Item) *Ledger {
	if len(item.VariantRows) > 0 {
		return ledgerFromRows(item.VariantRows)
	}
	return DecodeNote(item.Note, item.Size, item.Price, item.Stock, item.ItemType)
}

func ledgerFromRows(rows []models.VariantRow) *Ledger {
	l := &Ledger{Kind: KindSize}
	if len(rows) > 0 && rows[0].Kind == string(KindAccessory) {
		l.Kind = KindAccessory
	}

	ordered := make([]models.VariantRow, len(rows))
	copy(ordered, rows)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Position < ordered[j-1].Position; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	for _, r := range ordered {
		l.Rows = append(l.Rows, Row{
			Label:    r.Label,
			Stock:    formatNumber(float64(r.Stock)),
			Price:    formatNumber(r.Price),
			Selected: r.Selected,
		})
	}
	if len(l.SelectedIndices()) == 0 {
		l.Rows[0].Selected = true
	}
	return l
}
