package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/landapp/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "01032024_create_catalogue_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Company{}, &models.Facility{}, &models.Crop{}, &models.Sprayfield{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("sprayfields", "crops", "facilities", "companies")
			},
		},
		{
			ID: "01032024_create_log_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.IrrigationLog{}, &models.OperatorLog{}, &models.WastewaterSample{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("wastewater_samples", "operator_logs", "irrigation_logs")
			},
		},
		{
			ID: "15032024_create_report_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.DetailedMonthlyReport{}, &models.MonthlyFieldReport{}, &models.SummaryMonthlyReport{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("monthly_field_reports", "detailed_monthly_reports", "summary_monthly_reports")
			},
		},
		{
			ID: "02042024_add_report_month_check",
			Migrate: func(tx *gorm.DB) error {
				for _, table := range []string{"detailed_monthly_reports", "summary_monthly_reports"} {
					// Ignore error if constraint already exists
					tx.Exec("ALTER TABLE " + table + " ADD CONSTRAINT chk_" + table + "_month CHECK (month BETWEEN 1 AND 12)")
				}
				return nil
			},
		},
	})
	return m.Migrate()
}
