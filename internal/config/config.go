package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultDSN         = "host=localhost user=postgres password=postgres dbname=fleet port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:3000"
)

type Config struct {
	HTTPPort     string
	DatabaseDSN  string
	JWTSecret    string
	CORSOrigins  string
	DocumentPath string // uploaded documents are stored under this directory
	MaxUploadMB  int
}

// ClientConfig is what fleetctl needs to reach the API.
type ClientConfig struct {
	APIURL   string
	APIToken string
}

func Load() *Config {
	loadDotEnv()

	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:  getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		DocumentPath: getEnv("DOCUMENT_PATH", "./documents"),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 10),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default local value")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value")
	}

	return cfg
}

// LoadClient never fails; a missing URL surfaces on the first request.
func LoadClient() *ClientConfig {
	loadDotEnv()
	return &ClientConfig{
		APIURL:   getEnv("FLEET_API_URL", ""),
		APIToken: getEnv("FLEET_API_TOKEN", ""),
	}
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] .env could not be read: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] %s=%q is not a positive integer, using %d", key, v, def)
		return def
	}
	return n
}
