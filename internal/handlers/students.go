package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vestra-app/vestrago/internal/models"
)

// listStudents returns a filtered page of enrolled students
func (r *Router) listStudents(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	page, limit, offset := pagination(req)

	tx := r.db.Model(&models.Student{})
	if search := q.Get("search"); search != "" {
		like := "%" + search + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ? OR student_number ILIKE ?", like, like, like)
	}
	if level := q.Get("educationLevel"); level != "" {
		tx = tx.Where("education_level = ?", level)
	}
	if status := q.Get("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch students")
		return
	}

	var students []models.Student
	if err := tx.Order("last_name, first_name").Limit(limit).Offset(offset).Find(&students).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch students")
		return
	}

	respondJSON(w, http.StatusOK, listResponse{Data: students, Total: total, Page: page, Limit: limit})
}

// getStudent returns a single student
func (r *Router) getStudent(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var student models.Student
	if err := r.db.First(&student, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Student not found")
		return
	}
	respondJSON(w, http.StatusOK, student)
}

// createStudent enrolls a new student record
func (r *Router) createStudent(w http.ResponseWriter, req *http.Request) {
	var student models.Student
	if err := json.NewDecoder(req.Body).Decode(&student); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if student.StudentNumber == "" || student.FirstName == "" || student.LastName == "" {
		respondError(w, http.StatusBadRequest, "Student number and name are required")
		return
	}
	if student.Status == "" {
		student.Status = models.StudentActive
	}

	if err := r.db.Create(&student).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create student (number might exist)")
		return
	}

	r.audit.Record(req, models.AuditCreate, "student", strconv.FormatUint(uint64(student.ID), 10), auditChangeAfter(student))
	respondJSON(w, http.StatusCreated, student)
}

// updateStudent updates an existing student record
func (r *Router) updateStudent(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var student models.Student
	if err := r.db.First(&student, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Student not found")
		return
	}
	before := student

	var body models.Student
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	student.StudentNumber = body.StudentNumber
	student.FirstName = body.FirstName
	student.LastName = body.LastName
	student.Email = body.Email
	student.EducationLevel = body.EducationLevel
	student.GradeLevel = body.GradeLevel
	student.Section = body.Section
	if body.Status != "" {
		student.Status = body.Status
	}

	if err := r.db.Save(&student).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update student")
		return
	}

	r.audit.Record(req, models.AuditUpdate, "student", strconv.FormatUint(uint64(student.ID), 10), auditChange(before, student))
	respondJSON(w, http.StatusOK, student)
}

// deleteStudent soft-deletes a student record
func (r *Router) deleteStudent(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var student models.Student
	if err := r.db.First(&student, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Student not found")
		return
	}
	if err := r.db.Delete(&student).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete student")
		return
	}

	r.audit.Record(req, models.AuditDelete, "student", strconv.FormatUint(uint64(student.ID), 10), auditChangeBefore(student))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Student deleted successfully",
		"id":      student.ID,
	})
}
