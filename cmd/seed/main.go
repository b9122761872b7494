package main

import (
	"github.com/bec-billdesk/internal/config"
	"github.com/bec-billdesk/internal/logger"
	"github.com/bec-billdesk/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
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

	students := []models.Student{
		{
			USN:        "2BA23IS099",
			Name:       "Ananya Kulkarni",
			Degree:     "B.E.",
			Department: "Information Science",
			Category:   "GM",
		},
		{
			USN:        "2BA21CS001",
			Name:       "Rahul Patil",
			Degree:     "B.E.",
			Department: "Computer Science",
			Category:   "OBC",
		},
		{
			USN:        "2BA21CS042",
			Name:       "Sneha Hiremath",
			Degree:     "B.E.",
			Department: "Computer Science",
			Category:   "GM",
		},
		{
			USN:        "2BA22ME017",
			Name:       "Vijay Badiger",
			Degree:     "B.E.",
			Department: "Mechanical Engineering",
			Category:   "SC",
		},
		{
			USN:        "2BA22EC105",
			Name:       "Pooja Desai",
			Degree:     "B.E.",
			Department: "Electronics and Communication",
			Category:   "GM",
		},
	}

	for _, s := range students {
		var existing models.Student
		if err := models.DB.Where("usn = ?", s.USN).First(&existing).Error; err != nil {
			if err := models.DB.Create(&s).Error; err != nil {
				stdLog.Printf("Failed to create student %s: %v", s.USN, err)
			} else {
				stdLog.Printf("Created student: %s (%s)", s.USN, s.Name)
			}
		} else {
			stdLog.Printf("Student already exists: %s", s.USN)
		}
	}

	stdLog.Println("Seed completed")
}
