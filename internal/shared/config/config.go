package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	Port            string
	Env             string
	ReportAuthor    string
	EnableSchedules bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Port:            os.Getenv("PORT"),
		Env:             os.Getenv("ENV"),
		ReportAuthor:    os.Getenv("REPORT_AUTHOR"),
		EnableSchedules: os.Getenv("DISABLE_SCHEDULES") == "",
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ReportAuthor == "" {
		cfg.ReportAuthor = "sales-trend-analytics"
	}

	return cfg
}
