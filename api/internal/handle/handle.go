package handle

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ai-tutors/api/internal/llm"
	"ai-tutors/api/internal/store"
)

type Handle struct {
	Tutors      *store.TutorRepo
	Codes       *store.AccessCodeRepo
	Transcripts *store.TranscriptRepo
	LLMs        *llm.Registry

	TutorModel     string
	ModeratorModel string
	MaxAttempts    int
}

func New(tutors *store.TutorRepo, codes *store.AccessCodeRepo, transcripts *store.TranscriptRepo,
	llms *llm.Registry, tutorModel, moderatorModel string, maxAttempts int) *Handle {
	return &Handle{
		Tutors:         tutors,
		Codes:          codes,
		Transcripts:    transcripts,
		LLMs:           llms,
		TutorModel:     tutorModel,
		ModeratorModel: moderatorModel,
		MaxAttempts:    maxAttempts,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestDeadline honors X-Request-Timeout (seconds) or ?timeoutSec, with a
// default generous enough for a full moderation loop.
func requestDeadline(r *http.Request, def time.Duration) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return def
}
