package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/vestra-app/vestrago/internal/middleware"
	"github.com/vestra-app/vestrago/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TransactionPayload is the purchase create shape
type TransactionPayload struct {
	StudentID uint                     `json:"studentId"`
	Lines     []models.TransactionLine `json:"lines"`
}

// listTransactions returns a filtered page of purchases
func (r *Router) listTransactions(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	page, limit, offset := pagination(req)

	tx := r.db.Model(&models.Transaction{})
	if status := q.Get("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}
	if studentID := q.Get("studentId"); studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	var txns []models.Transaction
	if err := tx.Preload("Student").Order("created_at DESC").Limit(limit).Offset(offset).Find(&txns).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: txns, Total: total, Page: page, Limit: limit})
}

// getTransaction returns one purchase with the student attached
func (r *Router) getTransaction(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var txn models.Transaction
	if err := r.db.Preload("Student").First(&txn, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

// createTransaction records a pending purchase. Stock only moves on release.
func (r *Router) createTransaction(w http.ResponseWriter, req *http.Request) {
	var payload TransactionPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.StudentID == 0 || len(payload.Lines) == 0 {
		respondError(w, http.StatusBadRequest, "Student and at least one line are required")
		return
	}

	var student models.Student
	if err := r.db.First(&student, payload.StudentID).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Unknown student")
		return
	}

	total := 0.0
	for i, line := range payload.Lines {
		if line.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Line %d has no quantity", i))
			return
		}
		var item models.Item
		if err := r.db.First(&item, line.ItemID).Error; err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Line %d references an unknown item", i))
			return
		}
		if line.UnitPrice == 0 {
			payload.Lines[i].UnitPrice = item.Price
		}
		total += payload.Lines[i].UnitPrice * float64(line.Quantity)
	}

	lines, err := json.Marshal(payload.Lines)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid lines")
		return
	}

	txn := models.Transaction{
		Reference: newReference(),
		StudentID: student.ID,
		Lines:     datatypes.JSON(lines),
		Total:     total,
		Status:    models.TransactionPending,
	}
	if err := r.db.Create(&txn).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}
	txn.Student = &student

	r.audit.Record(req, models.AuditCreate, "transaction", strconv.FormatUint(uint64(txn.ID), 10), auditChangeAfter(txn))
	respondJSON(w, http.StatusCreated, txn)
}

// releaseTransaction hands the goods over and decrements variant stock
func (r *Router) releaseTransaction(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var txn models.Transaction
	if err := r.db.First(&txn, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if txn.Status != models.TransactionPending && txn.Status != models.TransactionPaid {
		respondError(w, http.StatusConflict, "Transaction is not releasable")
		return
	}

	var lines []models.TransactionLine
	if err := json.Unmarshal(txn.Lines, &lines); err != nil {
		respondError(w, http.StatusInternalServerError, "Corrupt transaction lines")
		return
	}

	var touched []models.Item
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			var item models.Item
			if err := tx.Preload("VariantRows").First(&item, line.ItemID).Error; err != nil {
				return fmt.Errorf("item %d: %w", line.ItemID, err)
			}

			row := matchRow(item.VariantRows, line.Label)
			if row == nil {
				return fmt.Errorf("item %q has no variant %q", item.Name, line.Label)
			}
			if row.Stock < line.Quantity {
				return fmt.Errorf("item %q variant %q has %d in stock, need %d", item.Name, line.Label, row.Stock, line.Quantity)
			}

			row.Stock -= line.Quantity
			if err := tx.Save(row).Error; err != nil {
				return err
			}
			item.Stock -= line.Quantity
			if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).Update("stock", item.Stock).Error; err != nil {
				return err
			}
			touched = append(touched, item)
		}

		txn.Status = models.TransactionReleased
		txn.ProcessedBy = middleware.ActorID(req)
		return tx.Save(&txn).Error
	})
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	for _, item := range touched {
		r.hub.Broadcast("stock.updated", stockEvent(item))
	}
	r.audit.Record(req, models.AuditRelease, "transaction", strconv.FormatUint(uint64(txn.ID), 10), map[string]interface{}{"lines": lines})
	respondJSON(w, http.StatusOK, txn)
}

// cancelTransaction voids a pending purchase
func (r *Router) cancelTransaction(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var txn models.Transaction
	if err := r.db.First(&txn, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if txn.Status == models.TransactionReleased {
		respondError(w, http.StatusConflict, "Released transactions cannot be cancelled")
		return
	}

	txn.Status = models.TransactionCancelled
	txn.ProcessedBy = middleware.ActorID(req)
	if err := r.db.Save(&txn).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to cancel transaction")
		return
	}

	r.audit.Record(req, models.AuditCancel, "transaction", strconv.FormatUint(uint64(txn.ID), 10), nil)
	respondJSON(w, http.StatusOK, txn)
}

// matchRow finds the selected variant row a transaction line refers to.
// Uniform lines carry the size label; accessory lines carry none and match
// the first selected row.
func matchRow(rows []models.VariantRow, label string) *models.VariantRow {
	label = strings.TrimSpace(label)
	for i := range rows {
		if !rows[i].Selected {
			continue
		}
		if label == "" || strings.EqualFold(rows[i].Label, label) {
			return &rows[i]
		}
	}
	return nil
}

// newReference builds a human-scannable unique transaction reference
func newReference() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("TXN-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
