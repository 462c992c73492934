package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV    string
	DB_DRIVER string // "sqlite" (default, embedded) or "postgres"
	DB_PATH   string // sqlite database file
	PORT      int
	// PostgreSQL Configuration (DB_DRIVER=postgres)
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Read-only remote mirror, used when the local store cannot be opened
	MIRROR_URL string
	// Cron toggle and schedule for the statistics refresh backstop
	CRON_ENABLED       string
	STATS_REFRESH_CRON string
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	dbDriver := os.Getenv("DB_DRIVER")
	if dbDriver == "" {
		dbDriver = "sqlite"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/catalog.db"
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	statsRefreshCron := os.Getenv("STATS_REFRESH_CRON")
	if statsRefreshCron == "" {
		statsRefreshCron = "0 */5 * * * *" // every 5 minutes
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:    os.Getenv("GO_ENV"),
		DB_DRIVER: dbDriver,
		DB_PATH:   dbPath,
		PORT:      port,
		// PostgreSQL
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		// Mirror
		MIRROR_URL: os.Getenv("MIRROR_URL"),
		// Cron
		CRON_ENABLED:       os.Getenv("CRON_ENABLED"),
		STATS_REFRESH_CRON: statsRefreshCron,
	}

	return envVariables, nil
}
