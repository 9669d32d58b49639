package main

import (
	"fmt"
	"log"

	"github.com/fitgear/ymmgo/internal/config"
	"github.com/fitgear/ymmgo/internal/database"
	"github.com/fitgear/ymmgo/internal/models"
	"github.com/fitgear/ymmgo/internal/utils"
	"gorm.io/gorm/clause"
)

const demoScope = "demo-store"

func main() {
	fmt.Println("🌱 YMM Fitment Demo Data Seeder")

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
		&models.VehicleRange{},
		&models.ProductVehicleLink{},
		&models.ScopeSettings{},
		&models.AdminUser{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	var count int64
	db.Model(&models.VehicleRange{}).Where("scope = ?", demoScope).Count(&count)
	if count > 0 {
		fmt.Printf("⚠️  Scope %q already has %d ranges. Clear it first? (y/N): ", demoScope, count)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing demo data...")
		db.Exec("DELETE FROM product_vehicle_links WHERE vehicle_range_id IN (SELECT id FROM vehicle_ranges WHERE scope = ?)", demoScope)
		db.Exec("DELETE FROM vehicle_ranges WHERE scope = ?", demoScope)
		fmt.Println("✅ Data cleared")
	}

	fmt.Println("🚗 Creating demo vehicle ranges...")
	ranges := []models.VehicleRange{
		{Scope: demoScope, Make: "Ford", Model: "F-150", YearStart: 2015, YearEnd: 2020, IsActive: true},
		{Scope: demoScope, Make: "Ford", Model: "F-150", YearStart: 2021, YearEnd: 2024, IsActive: true},
		{Scope: demoScope, Make: "Ford", Model: "Ranger", YearStart: 2019, YearEnd: 2023, IsActive: true},
		{Scope: demoScope, Make: "Chevrolet", Model: "Silverado", YearStart: 2019, YearEnd: 2023, IsActive: true},
		{Scope: demoScope, Make: "Chevrolet", Model: "Colorado", YearStart: 2015, YearEnd: 2022, IsActive: true},
		{Scope: demoScope, Make: "Toyota", Model: "Tacoma", YearStart: 2016, YearEnd: 2023, IsActive: true},
		{Scope: demoScope, Make: "Toyota", Model: "Tundra", YearStart: 2014, YearEnd: 2021, IsActive: true},
		{Scope: demoScope, Make: "Ram", Model: "1500", YearStart: 2019, YearEnd: 2024, IsActive: true},
	}
	for i := range ranges {
		if err := db.Create(&ranges[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create range: %v", err)
		}
	}
	fmt.Printf("✅ Created %d vehicle ranges\n", len(ranges))

	fmt.Println("🔗 Linking demo products...")
	links := []models.ProductVehicleLink{
		{ExternalProductID: "prod-1001", VehicleRangeID: ranges[0].ID},
		{ExternalProductID: "prod-1001", VehicleRangeID: ranges[1].ID},
		{ExternalProductID: "prod-1002", VehicleRangeID: ranges[0].ID},
		{ExternalProductID: "prod-1003", VehicleRangeID: ranges[3].ID},
		{ExternalProductID: "prod-1003", VehicleRangeID: ranges[4].ID},
		{ExternalProductID: "prod-1004", VehicleRangeID: ranges[5].ID},
		{ExternalProductID: "prod-1005", VehicleRangeID: ranges[7].ID},
	}
	for i := range links {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create link: %v", err)
		}
	}
	fmt.Printf("✅ Created %d product links\n", len(links))

	// Demo admin account for the management API
	hash, err := utils.HashPassword("demo1234")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	admin := models.AdminUser{
		Username: "demo",
		Password: hash,
		Email:    "demo@example.com",
		Role:     "admin",
		IsActive: true,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
		log.Printf("⚠️ Admin user not created: %v", err)
	} else {
		fmt.Println("✅ Admin user 'demo' ready (password: demo1234)")
	}

	fmt.Println()
	fmt.Printf("🎉 Done. Try: GET /ymm/%s/years\n", demoScope)
}
