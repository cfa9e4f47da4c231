package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// LLM providers
	OpenAIAPIKey   string
	OpenAIModel    string
	GeminiAPIKey   string
	GeminiModel    string
	DeepseekAPIKey string
	DeepseekModel  string

	// Which model answers as the tutor and which one moderates.
	// Either may point at any configured provider (selection by model name).
	TutorModel     string
	ModeratorModel string
	Temperature    float64

	// Moderation loop bound. 0 disables moderation entirely.
	ModerationMaxAttempts int

	// Telegram front-end
	TelegramBotToken string
	WebhookURL       string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("bad int in env %s=%q, using %d", k, v, def)
	}
	return def
}

func getEnvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("bad float in env %s=%q, using %g", k, v, def)
	}
	return def
}

func Load() *Config {
	openaiModel := getEnv("OPENAI_MODEL", "gpt-4o-mini")
	return &Config{
		Port: getEnv("PORT", "8000"),

		OpenAIAPIKey:   mustEnv("OPENAI_API_KEY"),
		OpenAIModel:    openaiModel,
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		DeepseekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
		DeepseekModel:  getEnv("DEEPSEEK_MODEL", "deepseek-chat"),

		TutorModel:     getEnv("TUTOR_MODEL", openaiModel),
		ModeratorModel: getEnv("MODERATOR_MODEL", openaiModel),
		Temperature:    getEnvFloat("TEMPERATURE", 0.2),

		ModerationMaxAttempts: getEnvInt("MODERATION_MAX_ATTEMPTS", 3),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
	}
}
