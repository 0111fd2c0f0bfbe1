package config

import (
	"os"
	"strconv"
)

// Config holds everything the process reads from the environment.
// main loads .env first (godotenv), so local dev can keep values in a file.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string

	OpenAIKey   string
	OpenAIModel string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	UploadDir         string
	FollowupGraceDays int
}

func Load() Config {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		DatabaseDSN:       getenv("DATABASE_DSN", "host=localhost user=postgres password=password dbname=jobpilot port=5432 sslmode=disable"),
		JWTSecret:         getenv("JWT_SECRET", "dev-secret-change-me"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getenv("OPENAI_MODEL", "gpt-4"),
		SMTPHost:          getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getenvInt("SMTP_PORT", 465),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPassword:      os.Getenv("SMTP_PASS"),
		UploadDir:         getenv("UPLOAD_DIR", "uploads"),
		FollowupGraceDays: getenvInt("FOLLOWUP_GRACE_DAYS", 5),
	}
	cfg.SMTPFrom = getenv("SMTP_FROM", cfg.SMTPUser)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
