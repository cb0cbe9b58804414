package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"p9e.in/landapp/pkg/reporting"
)

var DB *gorm.DB

// Settings is the process configuration read from the environment.
type Settings struct {
	DSN                string
	Port               string
	JWTSecret          string
	GallonsPerAcreInch decimal.Decimal
	RunSeed            bool
}

// Load reads .env (when present) and then the process environment.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	s := Settings{
		DSN:                os.Getenv("DB_DSN"),
		Port:               os.Getenv("PORT"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GallonsPerAcreInch: decimal.NewFromInt(reporting.GallonsPerAcreInch),
	}
	if s.Port == "" {
		s.Port = "8080"
	}

	if raw := os.Getenv("GALLONS_PER_ACRE_INCH"); raw != "" {
		factor, err := decimal.NewFromString(raw)
		if err != nil || !factor.IsPositive() {
			log.Printf("⚠️  Ignoring GALLONS_PER_ACRE_INCH=%q, using %d", raw, reporting.GallonsPerAcreInch)
		} else {
			s.GallonsPerAcreInch = factor
		}
	}

	if raw := os.Getenv("RUN_SEED"); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("⚠️  Ignoring RUN_SEED=%q: %v", raw, err)
		}
		s.RunSeed = seed
	}
	return s
}

// Connect opens the database, stores the handle in DB and migrates the schema.
func Connect(s Settings) {
	var err error
	DB, err = gorm.Open(postgres.Open(s.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrations(DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if s.RunSeed {
		SeedCrops(DB)
	}
}
