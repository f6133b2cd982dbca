package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/vestra-app/vestrago/internal/audit"
	"github.com/vestra-app/vestrago/internal/models"
	"github.com/vestra-app/vestrago/internal/services/printer"
	"github.com/vestra-app/vestrago/internal/variant"
	"gorm.io/gorm"
)

// ItemPayload is the item editor's submit shape. New consoles send the row
// arrays; legacy clients send the flat size/price/stock fields with an
// optional tagged note, and the variant codec reconciles either way.
type ItemPayload struct {
	Name            string `json:"name"`
	EducationLevel  string `json:"educationLevel"`
	Category        string `json:"category"`
	ItemType        string `json:"itemType"`
	Image           string `json:"image"`
	Description     string `json:"description"`
	DescriptionText string `json:"descriptionText"`
	Material        string `json:"material"`
	DisplayNote     string `json:"displayNote"`

	Price json.Number `json:"price"`

	// Editor row state
	Variants    []variant.Row `json:"variants"`
	Accessories []variant.Row `json:"accessories"`

	// Legacy flat shape
	Size  string `json:"size"`
	Stock int    `json:"stock"`
	Note  string `json:"note"`
}

// ledger builds the editor state carried by the payload
func (p *ItemPayload) ledger() *variant.Ledger {
	if p.ItemType == models.ItemTypeAccessories && len(p.Accessories) > 0 {
		return &variant.Ledger{Kind: variant.KindAccessory, Rows: p.Accessories}
	}
	if len(p.Variants) > 0 {
		return &variant.Ledger{Kind: variant.KindSize, Rows: p.Variants}
	}
	price, _ := p.Price.Float64()
	return variant.DecodeNote(p.Note, p.Size, price, p.Stock, p.ItemType)
}

func (p *ItemPayload) applyDescriptive(item *models.Item) {
	item.Name = p.Name
	item.EducationLevel = p.EducationLevel
	item.Category = p.Category
	item.ItemType = p.ItemType
	item.Image = p.Image
	item.Description = p.Description
	item.DescriptionText = p.DescriptionText
	item.Material = p.Material
	item.DisplayNote = p.DisplayNote
}

// listItems returns a filtered page of the catalog
func (r *Router) listItems(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	page, limit, offset := pagination(req)

	tx := r.db.Model(&models.Item{})
	if search := q.Get("search"); search != "" {
		tx = tx.Where("name ILIKE ?", "%"+search+"%")
	}
	if category := q.Get("category"); category != "" {
		tx = tx.Where("category = ?", category)
	}
	if level := q.Get("educationLevel"); level != "" {
		tx = tx.Where("education_level = ?", level)
	}
	if itemType := q.Get("itemType"); itemType != "" {
		tx = tx.Where("item_type = ?", itemType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}

	var items []models.Item
	if err := tx.Preload("VariantRows").Order("name").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: items, Total: total, Page: page, Limit: limit})
}

// getItem returns one item with its variant rows
func (r *Router) getItem(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var item models.Item
	if err := r.db.Preload("VariantRows").First(&item, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// createItem saves a new catalog entry from the editor state
func (r *Router) createItem(w http.ResponseWriter, req *http.Request) {
	var payload ItemPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Item name is required")
		return
	}
	if payload.ItemType == "" {
		payload.ItemType = models.ItemTypeUniforms
	}

	var item models.Item
	payload.applyDescriptive(&item)
	item.IsActive = true

	if err := variant.ApplyToItem(&item, payload.ledger(), payload.Price.String()); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid variant state")
		return
	}

	if err := r.db.Create(&item).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create item (name might exist)")
		return
	}

	r.audit.Record(req, models.AuditCreate, "item", strconv.FormatUint(uint64(item.ID), 10), auditChangeAfter(item))
	r.hub.Broadcast("stock.updated", stockEvent(item))
	respondJSON(w, http.StatusCreated, item)
}

// updateItem reconciles the editor state onto an existing item
func (r *Router) updateItem(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var item models.Item
	if err := r.db.Preload("VariantRows").First(&item, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	before := item

	var payload ItemPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Item name is required")
		return
	}
	if payload.ItemType == "" {
		payload.ItemType = item.ItemType
	}

	payload.applyDescriptive(&item)
	if err := variant.ApplyToItem(&item, payload.ledger(), payload.Price.String()); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid variant state")
		return
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Replace the row set wholesale; ApplyToItem already carried the
		// creation baselines over.
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.VariantRow{}).Error; err != nil {
			return err
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	r.audit.Record(req, models.AuditUpdate, "item", strconv.FormatUint(uint64(item.ID), 10), auditChange(before, item))
	r.hub.Broadcast("stock.updated", stockEvent(item))
	respondJSON(w, http.StatusOK, item)
}

// deleteItem soft-deletes a catalog entry
func (r *Router) deleteItem(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var item models.Item
	if err := r.db.First(&item, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err := r.db.Delete(&item).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	r.audit.Record(req, models.AuditDelete, "item", strconv.FormatUint(uint64(item.ID), 10), auditChangeBefore(item))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item deleted successfully",
		"id":      item.ID,
	})
}

// itemLabel serves a scannable QR label for the item
func (r *Router) itemLabel(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var item models.Item
	if err := r.db.First(&item, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}

	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	png, err := printer.GenerateItemLabelPNG(fmt.Sprintf("%s://%s", scheme, req.Host), item.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate label")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=item-%d-label.png", item.ID))
	w.Write(png)
}

// suggestDescription drafts an item description via Gemini
func (r *Router) suggestDescription(w http.ResponseWriter, req *http.Request) {
	if r.suggester == nil {
		respondError(w, http.StatusServiceUnavailable, "Description suggestions are not configured")
		return
	}

	var body struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Material string `json:"material"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Name == "" {
		respondError(w, http.StatusBadRequest, "Item name is required")
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), 20*time.Second)
	defer cancel()
	text, err := r.suggester.SuggestDescription(ctx, body.Name, body.Category, body.Material)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Suggestion failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"description": text})
}

func auditChange(before, after interface{}) audit.Change {
	return audit.Change{Before: before, After: after}
}

func auditChangeAfter(after interface{}) audit.Change {
	return audit.Change{After: after}
}

func auditChangeBefore(before interface{}) audit.Change {
	return audit.Change{Before: before}
}

func stockEvent(item models.Item) map[string]interface{} {
	return map[string]interface{}{
		"itemId": item.ID,
		"name":   item.Name,
		"stock":  item.Stock,
	}
}
