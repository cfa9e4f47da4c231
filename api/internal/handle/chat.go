package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"ai-tutors/api/internal/llm"
	"ai-tutors/api/internal/store"
	"ai-tutors/api/internal/tutor"
)

// --- CHAT -------------------------------------------------------------------

type chatReq struct {
	AccessCode     string        `json:"access_code"`
	UserPrompt     string        `json:"user_prompt"`
	MessageHistory []llm.Message `json:"message_history,omitempty"`
	// Documents are pre-extracted plain text blocks; they are appended
	// verbatim after the student's prompt.
	Documents []string `json:"documents,omitempty"`
}

type chatResp struct {
	Response       string        `json:"response"`
	MessageHistory []llm.Message `json:"message_history"`
	Moderated      bool          `json:"moderated"`
	Approved       bool          `json:"approved"`
	Attempts       int           `json:"attempts"`
}

// Chat runs one moderated tutor turn. The API is stateless: the conversation
// travels with the request and the updated log is returned.
func (h *Handle) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req chatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		// never reaches a provider with an empty turn
		http.Error(w, "user_prompt is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestDeadline(r, 180*time.Second))
	defer cancel()
	r = r.WithContext(ctx)

	row, err := h.resolveTutor(r, req.AccessCode)
	if err != nil {
		writeCodeError(w, err)
		return
	}

	tutorLLM, err := h.LLMs.ForModel(h.TutorModel)
	if err != nil {
		http.Error(w, "llm config: "+err.Error(), http.StatusInternalServerError)
		return
	}
	moderatorLLM, err := h.LLMs.ForModel(h.ModeratorModel)
	if err != nil {
		http.Error(w, "llm config: "+err.Error(), http.StatusInternalServerError)
		return
	}

	chain := tutor.NewChainWithHistory(tutorLLM, moderatorLLM, row.Profile, req.MessageHistory, h.MaxAttempts)

	input := req.UserPrompt
	for _, doc := range req.Documents {
		input += "\n\n" + doc
	}

	turn, err := chain.GetResponse(ctx, input)
	if err != nil {
		http.Error(w, "tutor error: "+err.Error(), http.StatusBadGateway)
		return
	}

	// Audit write is best-effort; a failed insert must not lose the reply.
	if err := h.Transcripts.Insert(r.Context(), store.TurnRecord{
		AccessCode:    req.AccessCode,
		TutorName:     row.Name,
		StudentPrompt: req.UserPrompt,
		FinalResponse: turn.Text,
		Attempts:      turn.Attempts,
		Approved:      turn.Approved,
		Feedback:      turn.Feedback,
	}); err != nil {
		log.Printf("chat: transcript insert failed: %v", err)
	}

	writeJSON(w, http.StatusOK, chatResp{
		Response:       turn.Text,
		MessageHistory: chain.Conversation().Messages(),
		Moderated:      turn.Moderated,
		Approved:       turn.Approved,
		Attempts:       turn.Attempts,
	})
}
