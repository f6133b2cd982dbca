package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vestra-app/vestrago/internal/middleware"
	"github.com/vestra-app/vestrago/internal/models"
	"github.com/vestra-app/vestrago/internal/utils"
)

// UserPayload is the staff account create/update shape
type UserPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	RoleID   uint   `json:"roleId"`
	IsActive *bool  `json:"isActive"`
}

// listUsers returns all staff accounts with their roles
func (r *Router) listUsers(w http.ResponseWriter, req *http.Request) {
	var users []models.StaffUser
	if err := r.db.Preload("Role").Order("username").Find(&users).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// getUser returns a single staff account
func (r *Router) getUser(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var user models.StaffUser
	if err := r.db.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// createUser registers a new staff account
func (r *Router) createUser(w http.ResponseWriter, req *http.Request) {
	var payload UserPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	var role models.Role
	if err := r.db.First(&role, payload.RoleID).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.StaffUser{
		Username: payload.Username,
		Email:    payload.Email,
		Name:     payload.Name,
		Password: hashed,
		RoleID:   role.ID,
		IsActive: true,
	}
	if err := r.db.Create(&user).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create user (username or email might exist)")
		return
	}
	user.Role = &role

	r.audit.Record(req, models.AuditCreate, "staff_user", user.ID, auditChangeAfter(user))
	respondJSON(w, http.StatusCreated, user)
}

// updateUser edits profile, role, and active flag
func (r *Router) updateUser(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var user models.StaffUser
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	before := user

	var payload UserPayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if payload.Username != "" {
		user.Username = payload.Username
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	user.Name = payload.Name
	if payload.RoleID != 0 {
		var role models.Role
		if err := r.db.First(&role, payload.RoleID).Error; err != nil {
			respondError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		user.RoleID = role.ID
	}
	if payload.IsActive != nil {
		// Nobody locks themselves out
		if !*payload.IsActive && user.ID == middleware.ActorID(req) {
			respondError(w, http.StatusBadRequest, "Cannot deactivate your own account")
			return
		}
		user.IsActive = *payload.IsActive
	}

	if err := r.db.Save(&user).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	r.audit.Record(req, models.AuditUpdate, "staff_user", user.ID, auditChange(before, user))
	respondJSON(w, http.StatusOK, user)
}

// deleteUser soft-deletes a staff account
func (r *Router) deleteUser(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	if id == middleware.ActorID(req) {
		respondError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	var user models.StaffUser
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := r.db.Delete(&user).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	r.audit.Record(req, models.AuditDelete, "staff_user", user.ID, auditChangeBefore(user))
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted successfully",
		"id":      user.ID,
	})
}

// resetPassword sets a new password on a staff account
func (r *Router) resetPassword(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || len(body.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password of at least 8 characters is required")
		return
	}

	var user models.StaffUser
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := r.db.Model(&user).Updates(map[string]interface{}{
		"password":              hashed,
		"failed_login_attempts": 0,
	}).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	r.audit.Record(req, models.AuditUpdate, "staff_user", user.ID, map[string]string{"action": "password reset"})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}
