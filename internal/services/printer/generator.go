// Package printer renders the admin console's printable artifacts: the
// inventory report PDF and per-item QR labels.
package printer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/vestra-app/vestrago/internal/models"
)

// GenerateInventoryPDF renders the current catalog as an A4 report, one
// line per selected variant row so per-size stock levels are visible.
func GenerateInventoryPDF(items []models.Item) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Inventory Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, time.Now().UTC().Format("2006-01-02 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(60, 7, "Item", "1", 0, "L", true, 0, "")
		pdf.CellFormat(28, 7, "Type", "1", 0, "L", true, 0, "")
		pdf.CellFormat(34, 7, "Size / Option", "1", 0, "L", true, 0, "")
		pdf.CellFormat(18, 7, "Stock", "1", 0, "R", true, 0, "")
		pdf.CellFormat(18, 7, "Begin", "1", 0, "R", true, 0, "")
		pdf.CellFormat(28, 7, "Price", "1", 1, "R", true, 0, "")
	}
	header()

	pdf.SetFont("Arial", "", 9)
	for _, item := range items {
		rows := selectedRows(item)
		if len(rows) == 0 {
			// Plain item with no variant rows
			pdf.CellFormat(60, 6, truncate(item.Name, 38), "1", 0, "L", false, 0, "")
			pdf.CellFormat(28, 6, item.ItemType, "1", 0, "L", false, 0, "")
			pdf.CellFormat(34, 6, item.Size, "1", 0, "L", false, 0, "")
			pdf.CellFormat(18, 6, fmt.Sprintf("%d", item.Stock), "1", 0, "R", false, 0, "")
			pdf.CellFormat(18, 6, "-", "1", 0, "R", false, 0, "")
			pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", item.Price), "1", 1, "R", false, 0, "")
			continue
		}
		for i, row := range rows {
			name := ""
			if i == 0 {
				name = truncate(item.Name, 38)
			}
			label := row.Label
			if row.Kind == models.VariantKindAccessory {
				label = "-"
			}
			pdf.CellFormat(60, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(28, 6, item.ItemType, "1", 0, "L", false, 0, "")
			pdf.CellFormat(34, 6, label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(18, 6, fmt.Sprintf("%d", row.Stock), "1", 0, "R", false, 0, "")
			pdf.CellFormat(18, 6, fmt.Sprintf("%d", row.BeginningInventory), "1", 0, "R", false, 0, "")
			pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", row.Price), "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render inventory PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateItemLabelPNG encodes a scannable item reference as a QR PNG.
// The payload is the item's API URL so a scan lands on the record.
func GenerateItemLabelPNG(baseURL string, itemID uint) ([]byte, error) {
	content := fmt.Sprintf("%s/api/items/%d", baseURL, itemID)
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR label: %w", err)
	}
	return png, nil
}

func selectedRows(item models.Item) []models.VariantRow {
	var rows []models.VariantRow
	for _, r := range item.VariantRows {
		if r.Selected {
			rows = append(rows, r)
		}
	}
	return rows
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
