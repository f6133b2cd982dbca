package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vestra-app/vestrago/internal/ai"
	"github.com/vestra-app/vestrago/internal/audit"
	"github.com/vestra-app/vestrago/internal/config"
	"github.com/vestra-app/vestrago/internal/database"
	"github.com/vestra-app/vestrago/internal/maintenance"
	"github.com/vestra-app/vestrago/internal/middleware"
	"github.com/vestra-app/vestrago/internal/models"
	ws "github.com/vestra-app/vestrago/internal/websocket"
	"github.com/vestra-app/vestrago/web"
)

// Router wraps the mux router and the shared services handlers need
type Router struct {
	*mux.Router
	db        *database.DB
	cfg       *config.Config
	audit     *audit.Recorder
	hub       *ws.Hub
	scheduler *maintenance.Scheduler
	suggester *ai.Suggester
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *ws.Hub, scheduler *maintenance.Scheduler) *Router {
	r := &Router{
		Router:    mux.NewRouter(),
		db:        db,
		cfg:       cfg,
		audit:     audit.NewRecorder(db),
		hub:       hub,
		scheduler: scheduler,
	}

	// Open endpoints, reachable during maintenance
	r.HandleFunc("/health", r.healthCheck).Methods("GET")
	r.HandleFunc("/api/status", r.getStatus).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/refresh", r.refresh).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// Console event stream
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(hub, w, req)
	})

	// Everything under /api requires a token and respects maintenance mode
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	api.Use(middleware.MaintenanceGate(db, scheduler))

	// Item routes
	items := api.PathPrefix("/items").Subrouter()
	items.HandleFunc("", r.require(models.PermItemsRead, r.listItems)).Methods("GET")
	items.HandleFunc("", r.require(models.PermItemsWrite, r.createItem)).Methods("POST")
	items.HandleFunc("/suggest-description", r.require(models.PermItemsWrite, r.suggestDescription)).Methods("POST")
	items.HandleFunc("/{id:[0-9]+}", r.require(models.PermItemsRead, r.getItem)).Methods("GET")
	items.HandleFunc("/{id:[0-9]+}", r.require(models.PermItemsWrite, r.updateItem)).Methods("PUT")
	items.HandleFunc("/{id:[0-9]+}", r.require(models.PermItemsWrite, r.deleteItem)).Methods("DELETE")
	items.HandleFunc("/{id:[0-9]+}/label", r.require(models.PermItemsRead, r.itemLabel)).Methods("GET")

	// Student routes
	students := api.PathPrefix("/students").Subrouter()
	students.HandleFunc("", r.require(models.PermStudentsRead, r.listStudents)).Methods("GET")
	students.HandleFunc("", r.require(models.PermStudentsWrite, r.createStudent)).Methods("POST")
	students.HandleFunc("/{id:[0-9]+}", r.require(models.PermStudentsRead, r.getStudent)).Methods("GET")
	students.HandleFunc("/{id:[0-9]+}", r.require(models.PermStudentsWrite, r.updateStudent)).Methods("PUT")
	students.HandleFunc("/{id:[0-9]+}", r.require(models.PermStudentsWrite, r.deleteStudent)).Methods("DELETE")

	// Staff user routes
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("", r.require(models.PermUsersManage, r.listUsers)).Methods("GET")
	users.HandleFunc("", r.require(models.PermUsersManage, r.createUser)).Methods("POST")
	users.HandleFunc("/{id}", r.require(models.PermUsersManage, r.getUser)).Methods("GET")
	users.HandleFunc("/{id}", r.require(models.PermUsersManage, r.updateUser)).Methods("PUT")
	users.HandleFunc("/{id}", r.require(models.PermUsersManage, r.deleteUser)).Methods("DELETE")
	users.HandleFunc("/{id}/reset-password", r.require(models.PermUsersManage, r.resetPassword)).Methods("POST")

	// Role routes
	roles := api.PathPrefix("/roles").Subrouter()
	roles.HandleFunc("", r.require(models.PermRolesManage, r.listRoles)).Methods("GET")
	roles.HandleFunc("", r.require(models.PermRolesManage, r.createRole)).Methods("POST")
	roles.HandleFunc("/{id:[0-9]+}", r.require(models.PermRolesManage, r.updateRole)).Methods("PUT")
	roles.HandleFunc("/{id:[0-9]+}", r.require(models.PermRolesManage, r.deleteRole)).Methods("DELETE")

	// Transaction routes
	txns := api.PathPrefix("/transactions").Subrouter()
	txns.HandleFunc("", r.require(models.PermTransactionsRead, r.listTransactions)).Methods("GET")
	txns.HandleFunc("", r.require(models.PermTransactionsWrite, r.createTransaction)).Methods("POST")
	txns.HandleFunc("/{id:[0-9]+}", r.require(models.PermTransactionsRead, r.getTransaction)).Methods("GET")
	txns.HandleFunc("/{id:[0-9]+}/release", r.require(models.PermTransactionsWrite, r.releaseTransaction)).Methods("POST")
	txns.HandleFunc("/{id:[0-9]+}/cancel", r.require(models.PermTransactionsWrite, r.cancelTransaction)).Methods("POST")

	// System admin routes
	sysadmin := api.PathPrefix("/system-admin").Subrouter()
	sysadmin.HandleFunc("/maintenance", r.require(models.PermMaintenanceManage, r.listMaintenance)).Methods("GET")
	sysadmin.HandleFunc("/maintenance", r.require(models.PermMaintenanceManage, r.scheduleMaintenance)).Methods("POST")
	sysadmin.HandleFunc("/maintenance/current", r.currentMaintenance).Methods("GET")
	sysadmin.HandleFunc("/maintenance/{id:[0-9]+}/cancel", r.require(models.PermMaintenanceManage, r.cancelMaintenance)).Methods("POST")
	sysadmin.HandleFunc("/audit-logs", r.require(models.PermAuditRead, r.listAuditLogs)).Methods("GET")

	// Reports
	api.HandleFunc("/reports/inventory.pdf", r.require(models.PermReportsRead, r.inventoryReport)).Methods("GET")

	// Static files: embedded admin console (FRONTEND_DIR overrides in dev)
	if staticFS, err := web.GetFileSystem(); err == nil {
		r.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
	} else {
		log.Printf("⚠️  Frontend assets unavailable: %v", err)
	}

	return r
}

// SetSuggester registers the optional Gemini description suggester
func (r *Router) SetSuggester(s *ai.Suggester) {
	r.suggester = s
}

// require wraps a handler in the permission gate for one permission string
func (r *Router) require(perm string, h http.HandlerFunc) http.HandlerFunc {
	gate := middleware.RequirePermission(r.db, perm)(http.HandlerFunc(h))
	return gate.ServeHTTP
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus reports whether the system is open or under maintenance
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	status := "running"
	var window *models.MaintenanceWindow
	if window = r.scheduler.Current(); window != nil {
		status = "maintenance"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      status,
		"maintenance": window,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// pagination reads ?page / ?limit with sane bounds
func pagination(req *http.Request) (page, limit, offset int) {
	page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(req.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

// listResponse is the common paginated list envelope
type listResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}
