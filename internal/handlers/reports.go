package handlers

import (
	"net/http"
	"time"

	"github.com/vestra-app/vestrago/internal/models"
	"github.com/vestra-app/vestrago/internal/services/printer"
)

// inventoryReport streams the catalog as a PDF
func (r *Router) inventoryReport(w http.ResponseWriter, req *http.Request) {
	var items []models.Item
	if err := r.db.Preload("VariantRows").Where("is_active = ?", true).Order("name").Find(&items).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}

	pdf, err := printer.GenerateInventoryPDF(items)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		"attachment; filename=inventory-"+time.Now().UTC().Format("2006-01-02")+".pdf")
	w.Write(pdf)
}
