package database

import (
	"log"

	"fleet-backend/internal/config"
	"fleet-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Models lists every table AutoMigrate manages.
func Models() []any {
	return []any{
		&models.User{},
		&models.AuditLog{},
		&models.Document{},

		&models.Employee{},
		&models.OutsideEmployee{},
		&models.Company{},
		&models.Truck{},
		&models.Trailer{},
		&models.OutsideOwner{},
		&models.OutsideTruck{},
		&models.OutsideTrailer{},
		&models.Client{},
		&models.Supplier{},

		&models.Maintenance{},
		&models.Trip{},
		&models.Fine{},
		&models.Part{},

		&models.Income{},
		&models.Expense{},
		&models.Salary{},
		&models.InvestorShare{},
		&models.TIRSold{},
		&models.ProfitMaster{},

		&models.Visa{},
		&models.Insurance{},
		&models.TIRDocument{},
	}
}

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := DB.AutoMigrate(Models()...); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migrations applied.")
}
