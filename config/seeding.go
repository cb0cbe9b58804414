package config

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"p9e.in/landapp/models"
)

// DefaultCrops is the starting crop catalogue with typical annual uptake.
func DefaultCrops() []models.Crop {
	return []models.Crop{
		{Name: "Coastal Bermudagrass", NitrogenUptake: decimal.NewFromInt(300), PANFactor: decimal.RequireFromString("0.5")},
		{Name: "Tall Fescue", NitrogenUptake: decimal.NewFromInt(200), PANFactor: decimal.RequireFromString("0.5")},
		{Name: "Annual Ryegrass", NitrogenUptake: decimal.NewFromInt(180), PANFactor: decimal.RequireFromString("0.5")},
		{Name: "Pine Forest", NitrogenUptake: decimal.NewFromInt(100), PANFactor: decimal.RequireFromString("0.6")},
		{Name: "Hardwood Forest", NitrogenUptake: decimal.NewFromInt(75), PANFactor: decimal.RequireFromString("0.6")},
	}
}

// SeedCrops inserts the default crops that are not in the catalogue yet.
func SeedCrops(db *gorm.DB) {
	log.Println("🔄 Seeding crop catalogue...")

	for _, crop := range DefaultCrops() {
		var existing models.Crop
		err := db.Where("name = ?", crop.Name).First(&existing).Error
		if err != nil {
			if err := db.Create(&crop).Error; err != nil {
				log.Printf("❌ Error creating crop %s: %v", crop.Name, err)
			} else {
				log.Printf("✅ Created crop: %s (ID: %s)", crop.Name, crop.ID)
			}
		} else {
			log.Printf("ℹ️  Crop already exists: %s (ID: %s)", existing.Name, existing.ID)
		}
	}

	log.Println("✅ Crop seeding completed")
}
