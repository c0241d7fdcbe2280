package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	JWTSecret       string
	UploadDir       string
	MaxRequestBytes int64
}

// Load reads configuration from the environment, after loading a local
// .env file when one exists.
func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		HTTPAddr:        getEnv("RESUMATCH_HTTP_ADDR", ":8080"),
		DatabaseDSN:     getEnv("RESUMATCH_DB_DSN", "file:resumatch.db?cache=shared&mode=rwc"),
		JWTSecret:       getEnv("RESUMATCH_JWT_SECRET", "dev-secret-change"),
		UploadDir:       getEnv("RESUMATCH_UPLOAD_DIR", "uploads"),
		MaxRequestBytes: getEnvInt64("RESUMATCH_MAX_REQUEST_BYTES", 10<<20),
	}
	if cfg.JWTSecret == "dev-secret-change" {
		log.Println("WARNING: using development JWT secret; set RESUMATCH_JWT_SECRET")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
