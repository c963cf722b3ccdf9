package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Lawyer   LawyerConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	BrowserKeySecret   string
	BrowserKeyTTL      time.Duration
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	Backend        string // "llm" or "webhook"
	LLMProvider    string // "openai", "openrouter" or "ollama"
	LLMModel       string
	TitleModel     string
	BaseURL        string
	APIKey         string
	OllamaBaseURL  string
	Timeout        time.Duration
	WebhookURL     string
	WebhookTimeout time.Duration
}

type LawyerConfig struct {
	PageSize int
	CacheTTL time.Duration
	SeedFile string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			BrowserKeySecret:   getEnv("BROWSER_KEY_SECRET", "change-me"),
			BrowserKeyTTL:      getEnvAsDuration("BROWSER_KEY_TTL", 365*24*time.Hour),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "LawPro"),
		},
		Ai: AIConfig{
			Backend:        getEnv("AI_BACKEND", "llm"),
			LLMProvider:    getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:       getEnv("LLM_MODEL", "openai/gpt-4.1"),
			TitleModel:     getEnv("TITLE_MODEL", ""),
			BaseURL:        getEnv("LLM_BASE_URL", ""),
			APIKey:         getEnv("LLM_API_KEY", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:        getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
			WebhookURL:     getEnv("WEBHOOK_URL", ""),
			WebhookTimeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 60*time.Second),
		},
		Lawyer: LawyerConfig{
			PageSize: getEnvAsInt("LAWYER_PAGE_SIZE", 10),
			CacheTTL: getEnvAsDuration("LAWYER_CACHE_TTL", 15*time.Minute),
			SeedFile: getEnv("LAWYER_SEED_FILE", "data/lawyers.yaml"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
