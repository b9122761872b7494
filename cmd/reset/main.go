package main

import (
	"flag"

	"github.com/bec-billdesk/internal/config"
	"github.com/bec-billdesk/internal/logger"
	"github.com/bec-billdesk/internal/models"
	"github.com/bec-billdesk/internal/repository"
)

// Deletes all payment history and clears every student ledger.
// Destructive, so it refuses to run without --confirm.
func main() {
	var confirm bool
	flag.BoolVar(&confirm, "confirm", false, "actually perform the reset")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if !confirm {
		stdLog.Fatalf("refusing to reset without --confirm: this deletes all payments and clears all student ledgers")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	result := models.DB.Where("1 = 1").Delete(&models.Payment{})
	if result.Error != nil {
		stdLog.Fatalf("Failed to delete payments: %v", result.Error)
	}
	stdLog.Printf("Deleted %d payment records", result.RowsAffected)

	studentRepo := repository.NewStudentRepository(models.DB)
	if err := studentRepo.ResetAllLedgers(); err != nil {
		stdLog.Fatalf("Failed to reset student ledgers: %v", err)
	}
	stdLog.Println("Cleared all student ledgers, all fees are pending again")
}
