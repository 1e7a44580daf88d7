package postgres

import (
	"log"

	"github.com/LavaJover/shvark-fulfillment-service/internal/config"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.FulfillmentConfig) *gorm.DB {
	dsn := cfg.FulfillmentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.WorkerModel{},
		&models.OrderModel{},
		&models.OrderActivityModel{},
		&models.DeliveryAttemptModel{},
		&models.CODSettlementModel{},
		&models.SettlementBatchModel{},
		&models.FraudAssessmentModel{},
		&models.FraudAttemptModel{},
	)

	return db
}
