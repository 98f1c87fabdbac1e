package config

import (
	"os"
	"strconv"
	"time"

	"github.com/Yalishenda/Invoice-Handler/consts"
)

// Config carries every externally supplied setting. It is loaded once at
// startup and passed explicitly into the engine; no package keeps global
// paths or endpoints of its own.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBName     string
	DBPassword string

	Port string

	// Document source
	SenderFilter         string
	MaxDocuments         int
	GmailCredentialsFile string

	// Table extraction service
	ExtractorURL   string
	ExtractorToken string

	// Reservation record store
	RecordsURL        string
	RecordsToken      string
	RecordsDatabaseID string

	// Cron worker
	Workers        int
	WorkerInterval time.Duration
}

func Load() Config {
	return Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBName:     os.Getenv("DB_NAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		Port: envOrDefault("PORT", "8080"),

		SenderFilter:         os.Getenv("INVOICE_SENDER"),
		MaxDocuments:         envIntOrDefault("MAX_DOCUMENTS", consts.DefaultMaxDocuments),
		GmailCredentialsFile: os.Getenv("GMAIL_CREDENTIALS_FILE"),

		ExtractorURL:   os.Getenv("EXTRACTOR_URL"),
		ExtractorToken: os.Getenv("EXTRACTOR_TOKEN"),

		RecordsURL:        os.Getenv("RECORDS_URL"),
		RecordsToken:      os.Getenv("RECORDS_TOKEN"),
		RecordsDatabaseID: os.Getenv("RECORDS_DATABASE_ID"),

		Workers:        envIntOrDefault("WORKERS", consts.DefaultWorkerNumber),
		WorkerInterval: time.Duration(envIntOrDefault("WORKER_INTERVAL_SEC", consts.DefaultIntervalInSec)) * time.Second,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
