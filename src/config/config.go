package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DatabasePath string
	LogLevel     string

	// NumericLocale controls how monetary strings in the CSV are parsed
	// (thousands separator, decimal point). BCP-47 tag, e.g. "en-US".
	NumericLocale string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	Cfg = &AppConfig{
		DatabasePath:  getEnv("DATABASE_PATH", "./paybook.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		NumericLocale: getEnv("NUMERIC_LOCALE", "en-US"),
	}

	log.Printf("Configuration loaded: DBPath=%s, LogLevel=%s, NumericLocale=%s",
		Cfg.DatabasePath, Cfg.LogLevel, Cfg.NumericLocale)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}
