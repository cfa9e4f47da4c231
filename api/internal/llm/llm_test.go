package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{ name string }

func (s *stubProvider) Name() string     { return s.name }
func (s *stubProvider) GetModel() string { return "m" }
func (s *stubProvider) Chat(context.Context, []Message) (string, error) {
	return "", nil
}
func (s *stubProvider) Complete(context.Context, string) (string, error) {
	return "", nil
}

func TestRegistryForModel(t *testing.T) {
	r := &Registry{
		OpenAI:   &stubProvider{name: "openai"},
		Gemini:   &stubProvider{name: "gemini"},
		Deepseek: &stubProvider{name: "deepseek"},
	}

	cases := []struct {
		model string
		want  string
	}{
		{"gpt-4o-mini", "openai"},
		{"o3", "openai"},
		{"gemini-2.5-flash", "gemini"},
		{" Gemini-1.5-Pro ", "gemini"},
		{"deepseek-chat", "deepseek"},
	}
	for _, tc := range cases {
		p, err := r.ForModel(tc.model)
		require.NoError(t, err, tc.model)
		assert.Equal(t, tc.want, p.Name(), tc.model)
	}
}

func TestRegistryForModelUnconfigured(t *testing.T) {
	r := &Registry{}
	_, err := r.ForModel("gemini-2.5-flash")
	assert.Error(t, err)
	_, err = r.ForModel("deepseek-chat")
	assert.Error(t, err)
	_, err = r.ForModel("gpt-4o")
	assert.Error(t, err)
}
