// Package openai is a minimal chat-completions client. It also serves any
// OpenAI-compatible endpoint (DeepSeek) via BaseURL.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"ai-tutors/api/internal/llm"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	name        string
	httpc       *http.Client
}

func New(key, model string, temperature float64) *Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second, // TCP connect
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		// First headers can take a while on long completions; the request
		// context carries the overall deadline.
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}

	return &Client{
		APIKey:      key,
		Model:       model,
		BaseURL:     defaultBaseURL,
		Temperature: temperature,
		name:        "openai",
		httpc: &http.Client{
			Timeout:   0,
			Transport: tr,
		},
	}
}

// NewCompatible points the client at another chat-completions endpoint,
// e.g. https://api.deepseek.com/v1.
func NewCompatible(name, baseURL, key, model string, temperature float64) *Client {
	c := New(key, model, temperature)
	c.name = name
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c
}

// WithHTTPClient overrides the internal HTTP client (e.g., for custom timeouts or tracing).
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.httpc = h
	}
	return c
}

func (c *Client) Name() string     { return c.name }
func (c *Client) GetModel() string { return c.Model }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Chat(ctx context.Context, msgs []llm.Message) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%s: api key is empty", c.name)
	}

	body := chatRequest{
		Model:       c.Model,
		Temperature: c.Temperature,
		Messages:    make([]chatMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		body.Messages = append(body.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s chat: %w", c.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%s chat %d: %s", c.name, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("%s chat: bad JSON: %w", c.name, err)
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("%s chat: empty response", c.name)
	}
	return strings.TrimSpace(raw.Choices[0].Message.Content), nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
}
