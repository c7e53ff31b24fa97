package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config junta toda la configuración de runtime. Todo es opcional: sin env
// vars el servicio levanta en :8080 con storage in-memory y sin verifier.
type Config struct {
	Addr string

	// Storage: si DBDSN viene, Postgres; si no y SQLitePath viene, SQLite;
	// si no, in-memory.
	DBDSN      string
	SQLitePath string

	// Servicio de identidad (opcional; sin esto corre en modo dev).
	IdentityBaseURL string
	IdentityAPIKey  string
	IdentityTimeout time.Duration
}

// Load lee .env si existe y después el ambiente.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:            getenv("ADDR", ":8080"),
		DBDSN:           os.Getenv("DB_DSN"),
		SQLitePath:      os.Getenv("SQLITE_PATH"),
		IdentityBaseURL: os.Getenv("IDENTITY_BASE_URL"),
		IdentityAPIKey:  os.Getenv("IDENTITY_API_KEY"),
		IdentityTimeout: getenvDuration("IDENTITY_TIMEOUT", 5*time.Second),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
