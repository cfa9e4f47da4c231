package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ai-tutors/api/internal/llm"
)

type Client struct {
	APIKey      string
	Model       string
	Temperature float64
}

func New(apiKey, model string, temperature float64) *Client {
	return &Client{
		APIKey:      strings.TrimSpace(apiKey),
		Model:       strings.TrimSpace(model),
		Temperature: temperature,
	}
}

func (c *Client) Name() string     { return "gemini" }
func (c *Client) GetModel() string { return c.Model }

func (c *Client) Chat(ctx context.Context, msgs []llm.Message) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	if len(msgs) == 0 {
		return "", errors.New("gemini: empty message list")
	}
	last := msgs[len(msgs)-1]
	if last.Role != llm.RoleUser {
		return "", fmt.Errorf("gemini: last message must be from user, got %s", last.Role)
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(float32(c.Temperature)),
	}

	// Leading system message becomes the system instruction; the rest is
	// chat history, assistant mapped to the SDK's "model" role.
	rest := msgs[:len(msgs)-1]
	if len(rest) > 0 && rest[0].Role == llm.RoleSystem {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(rest[0].Content)},
		}
		rest = rest[1:]
	}

	cs := m.StartChat()
	cs.History = make([]*genai.Content, 0, len(rest))
	for _, msg := range rest {
		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	// Retries for 5xx/transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		out := textFromResponse(resp)
		if strings.TrimSpace(out) == "" {
			lastErr = errors.New("gemini: empty completion")
			continue
		}
		return strings.TrimSpace(out), nil
	}
	return "", fmt.Errorf("gemini chat: %w", lastErr)
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
}

func textFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

func ptrFloat32(v float32) *float32 { return &v }
