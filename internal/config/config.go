package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port       string
	LogLevel   string
	CORSOrigin string

	NarrativeBackend string
	GroqAPIKey       string
	GroqURL          string
	GroqModel        string

	CBRURL          string
	KeyRateSchedule string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables, reading .env first when present
func NewConfig() (*Config, error) {
	// Missing .env is fine, deployments inject variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		CORSOrigin:       getEnv("CORS_ORIGIN", "*"),
		NarrativeBackend: getEnv("NARRATIVE_BACKEND", "template"),
		GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
		GroqURL:          getEnv("GROQ_URL", "https://api.groq.com/openai/v1"),
		GroqModel:        getEnv("GROQ_MODEL", "mixtral-8x7b-32768"),
		CBRURL:           getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		KeyRateSchedule:  getEnv("KEY_RATE_SCHEDULE", "@daily"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", ""),
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if cfg.NarrativeBackend == "groq" && cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required when NARRATIVE_BACKEND=groq")
	}
	if cfg.SMTPHost != "" && cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SENDER_EMAIL is required when SMTP_HOST is set")
	}

	return cfg, nil
}

// MailEnabled reports whether SMTP delivery is configured
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
