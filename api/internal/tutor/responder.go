package tutor

import (
	"context"

	"ai-tutors/api/internal/llm"
	"ai-tutors/api/internal/prompt"
)

// Profile is the teacher-authored configuration of one tutor. Read-only for
// the lifetime of a session.
type Profile struct {
	Name         string
	Description  string
	Instructions string
	Guidelines   string
	Introduction string
	Knowledge    string
}

// Responder produces the tutor's candidate reply to one student turn.
// It does no validation of the completion; content correctness is entirely
// the moderator's job.
type Responder struct {
	provider     llm.Provider
	conv         *Conversation
	introduction string
}

// NewResponder seeds a fresh conversation with the system prompt and the
// fixed introduction.
func NewResponder(provider llm.Provider, profile Profile) *Responder {
	r := &Responder{
		provider:     provider,
		conv:         NewConversation(),
		introduction: profile.Introduction,
	}
	r.conv.Append(llm.RoleSystem, prompt.TutorSystem(profile.Instructions, profile.Guidelines, profile.Knowledge))
	r.conv.Append(llm.RoleAssistant, profile.Introduction)
	return r
}

// NewResponderWithHistory resumes from a transported conversation instead of
// seeding a new one (stateless API mode).
func NewResponderWithHistory(provider llm.Provider, profile Profile, history []llm.Message) *Responder {
	if len(history) == 0 {
		return NewResponder(provider, profile)
	}
	return &Responder{
		provider:     provider,
		conv:         FromMessages(history),
		introduction: profile.Introduction,
	}
}

// Introduction is the greeting shown at session start; authored once,
// never regenerated.
func (r *Responder) Introduction() string { return r.introduction }

func (r *Responder) Conversation() *Conversation { return r.conv }

// GetResponse appends the student's message, asks the provider for the next
// assistant message and appends it. The conversation grows by exactly two
// messages per call.
func (r *Responder) GetResponse(ctx context.Context, studentInput string) (string, error) {
	r.conv.Append(llm.RoleUser, studentInput)

	response, err := r.provider.Chat(ctx, r.conv.Messages())
	if err != nil {
		return "", err
	}

	r.conv.Append(llm.RoleAssistant, response)
	return response, nil
}
