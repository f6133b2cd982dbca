package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vestra-app/vestrago/internal/ai"
	"github.com/vestra-app/vestrago/internal/config"
	"github.com/vestra-app/vestrago/internal/database"
	"github.com/vestra-app/vestrago/internal/handlers"
	"github.com/vestra-app/vestrago/internal/maintenance"
	"github.com/vestra-app/vestrago/internal/models"
	"github.com/vestra-app/vestrago/internal/utils"
	"github.com/vestra-app/vestrago/internal/websocket"
	"gorm.io/datatypes"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Role{},
		&models.StaffUser{},
		&models.Item{},
		&models.VariantRow{},
		&models.Student{},
		&models.Transaction{},
		&models.MaintenanceWindow{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Seed default roles and the bootstrap admin
	if err := seedDefaults(db, cfg); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	// 5. Console event hub
	hub := websocket.NewHub()
	go hub.Run()

	// 6. Maintenance scheduler
	scheduler := maintenance.NewScheduler(db, hub)
	scheduler.Start()

	// 7. HTTP router
	router := handlers.NewRouter(db, cfg, hub, scheduler)

	// Optional Gemini description suggester
	var suggester *ai.Suggester
	if cfg.AI.GeminiAPIKey != "" {
		suggester, err = ai.NewSuggester(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		if err != nil {
			log.Printf("⚠️ AI: suggester unavailable: %v", err)
		} else {
			router.SetSuggester(suggester)
			log.Println("✅ AI: description suggester ready")
		}
	}

	// 8. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	scheduler.Stop()
	hub.Stop()
	if suggester != nil {
		suggester.Close()
	}

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}

// seedDefaults creates the built-in roles and the bootstrap admin account
// on an empty database.
func seedDefaults(db *database.DB, cfg *config.Config) error {
	roleSeeds := []struct {
		name        string
		description string
		perms       []string
	}{
		{"admin", "Full access to every console area", nil},
		{"inventory", "Items, transactions and reports", []string{
			models.PermItemsRead, models.PermItemsWrite,
			models.PermStudentsRead,
			models.PermTransactionsRead, models.PermTransactionsWrite,
			models.PermReportsRead,
		}},
		{"viewer", "Read-only access", []string{
			models.PermItemsRead, models.PermStudentsRead,
			models.PermTransactionsRead, models.PermReportsRead,
		}},
	}

	for _, seed := range roleSeeds {
		var existing models.Role
		if err := db.Where("name = ?", seed.name).First(&existing).Error; err == nil {
			continue
		}
		perms, err := json.Marshal(seed.perms)
		if err != nil {
			return err
		}
		if seed.perms == nil {
			perms = []byte("[]")
		}
		role := models.Role{Name: seed.name, Description: seed.description, Permissions: datatypes.JSON(perms)}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
		log.Printf("🌱 Seeded role %q", seed.name)
	}

	var userCount int64
	if err := db.Model(&models.StaffUser{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	var adminRole models.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}
	hashed, err := utils.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := models.StaffUser{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Name:     "Administrator",
		Password: hashed,
		RoleID:   adminRole.ID,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("🌱 Seeded bootstrap admin %q", admin.Username)
	return nil
}
