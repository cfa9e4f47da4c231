package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-tutors/api/internal/llm"
	"ai-tutors/api/internal/prompt"
	"ai-tutors/api/internal/util"
)

var (
	ErrEmptyConversation = errors.New("conversation is empty")
	ErrNoCandidate       = errors.New("last message is not from the assistant")
)

// Moderator judges the tutor's latest reply against the teacher-authored
// guidelines and rewrites it when asked. It never decides on its own output;
// the loop re-moderates corrections.
type Moderator struct {
	provider   llm.Provider
	guidelines string
}

func NewModerator(provider llm.Provider, guidelines string) *Moderator {
	return &Moderator{provider: provider, guidelines: guidelines}
}

// Moderate judges the conversation's tail message. Returns the full judgment
// text as feedback plus the verdict. Provider errors propagate; they are
// never folded into a verdict.
func (m *Moderator) Moderate(ctx context.Context, conv *Conversation) (string, bool, error) {
	last, ok := conv.Last()
	if !ok {
		return "", false, ErrEmptyConversation
	}
	if last.Role != llm.RoleAssistant {
		return "", false, ErrNoCandidate
	}

	history := RenderHistory(conv.HistoryBeforeLast())

	// The judgment is a single system/user pair, not the shared tutor log.
	judgment, err := m.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompt.ModerateSystem(m.guidelines)},
		{Role: llm.RoleUser, Content: prompt.ModerateQuery(history, last.Content)},
	})
	if err != nil {
		return "", false, err
	}

	feedback := strings.TrimSpace(judgment)
	return feedback, isAppropriate(feedback), nil
}

// isAppropriate is the verdict policy: the last non-empty line of the
// judgment must contain "yes" (case-insensitive). Anything else, including
// malformed output, fails closed toward "not appropriate".
func isAppropriate(judgment string) bool {
	return strings.Contains(strings.ToLower(util.LastNonEmptyLine(judgment)), "yes")
}

// Correct asks for a replacement reply given the rejected attempt(s) and the
// moderator feedback(s). A single prior attempt is a sequence of length 1.
// The call is a one-shot prompt, not appended to the shared log.
func (m *Moderator) Correct(ctx context.Context, history string, responses, feedbacks []string) (string, error) {
	if len(responses) == 0 || len(feedbacks) == 0 {
		return "", errors.New("correct: no rejected attempts given")
	}

	corrected, err := m.provider.Complete(ctx, prompt.Correct(
		m.guidelines,
		history,
		joinResponses(responses),
		joinFeedbacks(feedbacks),
	))
	if err != nil {
		return "", err
	}

	corrected = strings.TrimSpace(corrected)
	return util.StripWrappingQuotes(corrected), nil
}

// joinResponses keeps a lone attempt verbatim; multiple attempts become a
// numbered summary so the correction call sees the whole rejection history.
func joinResponses(responses []string) string {
	if len(responses) == 1 {
		return fmt.Sprintf("%q", responses[0])
	}
	parts := make([]string, 0, len(responses))
	for i, r := range responses {
		parts = append(parts, fmt.Sprintf("**AI Response %d**:\n\n %q", i+1, r))
	}
	return strings.Join(parts, "\n\n")
}

func joinFeedbacks(feedbacks []string) string {
	if len(feedbacks) == 1 {
		return feedbacks[0]
	}
	parts := make([]string, 0, len(feedbacks))
	for i, f := range feedbacks {
		parts = append(parts, fmt.Sprintf("**Moderator Feedback %d**:\n\n %s", i+1, f))
	}
	return strings.Join(parts, "\n\n")
}
