package main

import (
	"fmt"
	"log"

	"github.com/vestra-app/vestrago/internal/config"
	"github.com/vestra-app/vestrago/internal/database"
	"github.com/vestra-app/vestrago/internal/models"
	"github.com/vestra-app/vestrago/internal/variant"
)

func main() {
	fmt.Println("🌱 Vestra Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Item{},
		&models.VariantRow{},
		&models.Student{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	var itemCount int64
	db.Model(&models.Item{}).Count(&itemCount)
	if itemCount > 0 {
		fmt.Printf("⚠️  Database already has %d items. Clear them first? (y/N): ", itemCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE variant_rows CASCADE")
		db.Exec("TRUNCATE TABLE items CASCADE")
		db.Exec("TRUNCATE TABLE students CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println("📦 Creating demo data...")

	// 1. Uniform with size variants
	poloLedger := &variant.Ledger{
		Kind: variant.KindSize,
		Rows: []variant.Row{
			{Label: "Small (S)", Stock: "25", Price: "450", Selected: true},
			{Label: "Medium (M)", Stock: "30", Price: "450", Selected: true},
			{Label: "Large (L)", Stock: "15", Price: "480", Selected: true},
		},
	}
	polo := models.Item{
		Name:           "Polo Shirt (Boys)",
		EducationLevel: "Junior High",
		Category:       "Tops",
		ItemType:       models.ItemTypeUniforms,
		Material:       "Cotton blend",
		Description:    "Standard white polo shirt with school patch.",
		IsActive:       true,
	}
	if err := variant.ApplyToItem(&polo, poloLedger, ""); err != nil {
		log.Fatalf("❌ Failed to build polo variants: %v", err)
	}
	if err := db.Create(&polo).Error; err != nil {
		log.Fatalf("❌ Failed to create polo: %v", err)
	}
	fmt.Printf("👕 Created %q with %d variants\n", polo.Name, len(polo.VariantRows))

	// 2. Accessory
	laceLedger := &variant.Ledger{
		Kind: variant.KindAccessory,
		Rows: []variant.Row{{Stock: "100", Price: "60", Selected: true}},
	}
	lace := models.Item{
		Name:     "School ID Lace",
		Category: "Accessories",
		ItemType: models.ItemTypeAccessories,
		IsActive: true,
	}
	if err := variant.ApplyToItem(&lace, laceLedger, ""); err != nil {
		log.Fatalf("❌ Failed to build lace entries: %v", err)
	}
	if err := db.Create(&lace).Error; err != nil {
		log.Fatalf("❌ Failed to create lace: %v", err)
	}
	fmt.Printf("🎒 Created %q\n", lace.Name)

	// 3. Students
	students := []models.Student{
		{StudentNumber: "2026-0001", FirstName: "Maria", LastName: "Santos", EducationLevel: "Junior High", GradeLevel: "8", Section: "Sampaguita", Status: models.StudentActive},
		{StudentNumber: "2026-0002", FirstName: "Jose", LastName: "Reyes", EducationLevel: "Senior High", GradeLevel: "11", Section: "Rizal", Status: models.StudentActive},
	}
	for i := range students {
		if err := db.Create(&students[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create student: %v", err)
		}
	}
	fmt.Printf("🧑‍🎓 Created %d students\n", len(students))

	fmt.Println("✅ Demo data ready")
}
