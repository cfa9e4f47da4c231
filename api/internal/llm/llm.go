package llm

import (
	"context"
	"errors"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider is a chat-capable LLM. Chat takes the whole ordered conversation
// and returns a single completion; Complete is the one-shot form used for
// non-conversational requests (moderator corrections).
type Provider interface {
	Name() string
	GetModel() string
	Chat(ctx context.Context, msgs []Message) (string, error)
	Complete(ctx context.Context, prompt string) (string, error)
}

// Registry holds the configured providers and picks one by model name.
type Registry struct {
	OpenAI   Provider
	Gemini   Provider
	Deepseek Provider
}

// ForModel routes "gemini-*" models to the Gemini client and "deepseek-*"
// models to the DeepSeek endpoint; everything else is treated as
// OpenAI-compatible.
func (r *Registry) ForModel(model string) (Provider, error) {
	m := strings.ToLower(strings.TrimSpace(model))
	switch {
	case strings.Contains(m, "gemini"):
		if r.Gemini == nil {
			return nil, errors.New("gemini provider is not configured")
		}
		return r.Gemini, nil
	case strings.Contains(m, "deepseek"):
		if r.Deepseek == nil {
			return nil, errors.New("deepseek provider is not configured")
		}
		return r.Deepseek, nil
	default:
		if r.OpenAI == nil {
			return nil, errors.New("openai provider is not configured")
		}
		return r.OpenAI, nil
	}
}
