package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"ai-tutors/api/internal/config"
	"ai-tutors/api/internal/handle"
	"ai-tutors/api/internal/httpserver"
	"ai-tutors/api/internal/llm"
	"ai-tutors/api/internal/llm/gemini"
	"ai-tutors/api/internal/llm/openai"
	"ai-tutors/api/internal/store"
)

func main() {
	cfg := config.Load()

	// Prefer platform PORT env var; fallback to cfg.Port; then to 8000
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	// --- Postgres ---
	dsn := store.ResolveDSN()
	if dsn == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL or POSTGRES_* env vars")
	}
	db, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		log.Printf("db connected: %s", store.SafeDSNSummary(dsn))
	}

	// --- LLM providers ---
	llms := &llm.Registry{
		OpenAI: openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature),
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature),
		Deepseek: openai.NewCompatible("deepseek", "https://api.deepseek.com/v1",
			cfg.DeepseekAPIKey, cfg.DeepseekModel, cfg.Temperature),
	}

	h := handle.New(
		store.NewTutorRepo(db),
		store.NewAccessCodeRepo(db),
		store.NewTranscriptRepo(db),
		llms,
		cfg.TutorModel, cfg.ModeratorModel, cfg.ModerationMaxAttempts,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", httpserver.Healthz(db))
	mux.HandleFunc("/v1/tutors", h.ListTutors)
	mux.HandleFunc("/v1/tutor/info", h.TutorInfo)
	mux.HandleFunc("/v1/tutor/chat", h.Chat)
	mux.HandleFunc("/v1/tutor/turns", h.Turns)

	addr := ":" + cfg.Port
	log.Printf("tutors-api: tutor=%s moderator=%s max_attempts=%d",
		cfg.TutorModel, cfg.ModeratorModel, cfg.ModerationMaxAttempts)
	log.Fatal(httpserver.Start(addr, mux))
}
