package variant

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Note payload discriminators. The note column carries either one of these
// tagged JSON payloads or a plain human note; anything that fails to parse
// as tagged JSON is treated as a plain note.
const (
	NoteTypeSizeVariations   = "sizeVariations"
	NoteTypeAccessoryEntries = "accessoryEntries"
)

// SizeEntry is one persisted size variation in the note payload.
// beginning_inventory is the per-row stock at save time, never the
// aggregate sum.
type SizeEntry struct {
	Size               string  `json:"size"`
	Stock              int     `json:"stock"`
	Price              float64 `json:"price"`
	BeginningInventory int     `json:"beginning_inventory"`
}

// AccessoryEntry is one persisted accessory row in the note payload.
type AccessoryEntry struct {
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

// Per-kind wire shapes so the active array key is always present, even for
// an empty selection.
type sizeNotePayload struct {
	Type           string      `json:"_type"`
	SizeVariations []SizeEntry `json:"sizeVariations"`
}

type accessoryNotePayload struct {
	Type             string           `json:"_type"`
	AccessoryEntries []AccessoryEntry `json:"accessoryEntries"`
}

// EncodeNote serializes the selected rows of a ledger into the tagged note
// JSON. Unselected rows are editor-only state and never hit the wire.
func EncodeNote(l *Ledger, fallbackPrice string) (string, error) {
	fallback := coerceFloat(fallbackPrice)

	var payload interface{}
	switch l.Kind {
	case KindAccessory:
		entries := make([]AccessoryEntry, 0, len(l.Rows))
		for _, i := range l.SelectedIndices() {
			price := coerceFloat(l.Rows[i].Price)
			if price == 0 {
				price = fallback
			}
			entries = append(entries, AccessoryEntry{
				Stock: coerceInt(l.Rows[i].Stock),
				Price: price,
			})
		}
		payload = accessoryNotePayload{Type: NoteTypeAccessoryEntries, AccessoryEntries: entries}
	default:
		entries := make([]SizeEntry, 0, len(l.Rows))
		for _, i := range l.SelectedIndices() {
			price := coerceFloat(l.Rows[i].Price)
			if price == 0 {
				price = fallback
			}
			stock := coerceInt(l.Rows[i].Stock)
			entries = append(entries, SizeEntry{
				Size:               strings.TrimSpace(l.Rows[i].Label),
				Stock:              stock,
				Price:              price,
				BeginningInventory: stock,
			})
		}
		payload = sizeNotePayload{Type: NoteTypeSizeVariations, SizeVariations: entries}
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decode-side shape: price may be absent in payloads written by older
// clients, in which case the item-level price fills in.
type sizeEntryIn struct {
	Size  string   `json:"size"`
	Stock float64  `json:"stock"`
	Price *float64 `json:"price"`
}

type accessoryEntryIn struct {
	Stock float64  `json:"stock"`
	Price *float64 `json:"price"`
}

type notePayloadIn struct {
	Type             string             `json:"_type"`
	SizeVariations   []sizeEntryIn      `json:"sizeVariations"`
	AccessoryEntries []accessoryEntryIn `json:"accessoryEntries"`
}

// DecodeNote rebuilds a ledger from a persisted item. It attempts the
// tagged JSON payload first and falls back to deriving rows from the plain
// size/price/stock fields when the note is absent, malformed, or a plain
// human note. Parse failure is not an error: legacy rows simply predate the
// structured payload.
func DecodeNote(note, size string, price float64, stock int, itemType string) *Ledger {
	var payload notePayloadIn
	if err := json.Unmarshal([]byte(note), &payload); err == nil {
		switch payload.Type {
		case NoteTypeSizeVariations:
			return ledgerFromSizeEntries(payload.SizeVariations, price)
		case NoteTypeAccessoryEntries:
			return ledgerFromAccessoryEntries(payload.AccessoryEntries, price)
		}
	}
	return fallbackLedger(size, price, stock, itemType)
}

func ledgerFromSizeEntries(entries []sizeEntryIn, itemPrice float64) *Ledger {
	l := &Ledger{Kind: KindSize}
	for _, e := range entries {
		p := itemPrice
		if e.Price != nil {
			p = *e.Price
		}
		l.Rows = append(l.Rows, Row{
			Label:    e.Size,
			Stock:    formatNumber(e.Stock),
			Price:    formatNumber(p),
			Selected: true,
		})
	}
	// The editor always shows at least the default two rows.
	for len(l.Rows) < 2 {
		l.Rows = append(l.Rows, Row{})
	}
	if len(l.SelectedIndices()) == 0 {
		l.Rows[0].Selected = true
	}
	return l
}

func ledgerFromAccessoryEntries(entries []accessoryEntryIn, itemPrice float64) *Ledger {
	l := &Ledger{Kind: KindAccessory}
	for _, e := range entries {
		p := itemPrice
		if e.Price != nil {
			p = *e.Price
		}
		l.Rows = append(l.Rows, Row{
			Stock:    formatNumber(e.Stock),
			Price:    formatNumber(p),
			Selected: true,
		})
	}
	if len(l.Rows) == 0 {
		return NewAccessoryLedger()
	}
	return l
}

// fallbackLedger derives editor state for items saved before the structured
// payload existed. Every comma-separated size token becomes its own
// selected row verbatim; there is no matching against a hard-coded label
// list, so free-text sizes like "Large (L)" survive intact.
func fallbackLedger(size string, price float64, stock int, itemType string) *Ledger {
	if itemType == "Accessories" {
		l := NewAccessoryLedger()
		l.Rows[0].Stock = strconv.Itoa(stock)
		l.Rows[0].Price = formatNumber(price)
		return l
	}

	l := &Ledger{Kind: KindSize}
	size = strings.TrimSpace(size)
	if size != "" && size != "N/A" {
		for _, token := range strings.Split(size, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			l.Rows = append(l.Rows, Row{Label: token, Selected: true})
		}
	}
	for len(l.Rows) < 2 {
		l.Rows = append(l.Rows, Row{})
	}
	if len(l.SelectedIndices()) == 0 {
		l.Rows[0].Selected = true
	}
	l.Rows[0].Price = formatNumber(price)
	return l
}

// formatNumber renders a float the way the editor would type it: integers
// without a trailing ".0".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
