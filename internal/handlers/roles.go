package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vestra-app/vestrago/internal/models"
	"gorm.io/datatypes"
)

// RolePayload is the role create/update shape
type RolePayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// listRoles returns all roles
func (r *Router) listRoles(w http.ResponseWriter, req *http.Request) {
	var roles []models.Role
	if err := r.db.Order("name").Find(&roles).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch roles")
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

// createRole adds a new role with its permission set
func (r *Router) createRole(w http.ResponseWriter, req *http.Request) {
	var payload RolePayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Role name is required")
		return
	}

	perms, err := json.Marshal(payload.Permissions)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid permissions")
		return
	}

	role := models.Role{
		Name:        payload.Name,
		Description: payload.Description,
		Permissions: datatypes.JSON(perms),
	}
	if err := r.db.Create(&role).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create role (name might exist)")
		return
	}

	r.audit.Record(req, models.AuditCreate, "role", strconv.FormatUint(uint64(role.ID), 10), auditChangeAfter(role))
	respondJSON(w, http.StatusCreated, role)
}

// updateRole edits a role's description and permissions
func (r *Router) updateRole(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Role not found")
		return
	}
	before := role

	var payload RolePayload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// The admin role's name is load-bearing for the permission gate
	if role.Name == "admin" && payload.Name != "" && payload.Name != "admin" {
		respondError(w, http.StatusBadRequest, "The admin role cannot be renamed")
		return
	}
	if payload.Name != "" {
		role.Name = payload.Name
	}
	role.Description = payload.Description
	if payload.Permissions != nil {
		perms, err := json.Marshal(payload.Permissions)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid permissions")
			return
		}
		role.Permissions = datatypes.JSON(perms)
	}

	if err := r.db.Save(&role).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}

	r.audit.Record(req, models.AuditUpdate, "role", strconv.FormatUint(uint64(role.ID), 10), auditChange(before, role))
	respondJSON(w, http.StatusOK, role)
}

// deleteRole removes an unused role
func (r *Router) deleteRole(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Role not found")
		return
	}
	if role.Name == "admin" {
		respondError(w, http.StatusBadRequest, "The admin role cannot be deleted")
		return
	}

	var inUse int64
	r.db.Model(&models.StaffUser{}).Where("role_id = ?", role.ID).Count(&inUse)
	if inUse > 0 {
		respondError(w, http.StatusConflict, "Role is assigned to users")
		return
	}

	if err := r.db.Delete(&role).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete role")
		return
	}

	r.audit.Record(req, models.AuditDelete, "role", strconv.FormatUint(uint64(role.ID), 10), auditChangeBefore(role))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Role deleted successfully",
		"id":      role.ID,
	})
}
