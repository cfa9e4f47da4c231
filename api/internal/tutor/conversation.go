package tutor

import (
	"fmt"
	"strings"

	"ai-tutors/api/internal/llm"
)

// Conversation is the ordered log shared by the tutor and the moderation
// loop. It only ever grows by appending, except that the loop may replace
// the content of the tail message while a correction is being applied.
type Conversation struct {
	msgs []llm.Message
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// FromMessages rebuilds a conversation from a transported history
// (the HTTP API carries the log with every request).
func FromMessages(msgs []llm.Message) *Conversation {
	c := &Conversation{msgs: make([]llm.Message, len(msgs))}
	copy(c.msgs, msgs)
	return c
}

func (c *Conversation) Append(role llm.Role, content string) {
	c.msgs = append(c.msgs, llm.Message{Role: role, Content: content})
}

// ReplaceLast swaps the content of the tail message in place. This is the
// only mutation the moderation loop performs: corrections replace the
// candidate, they never append.
func (c *Conversation) ReplaceLast(content string) {
	if len(c.msgs) == 0 {
		return
	}
	c.msgs[len(c.msgs)-1].Content = content
}

// Messages returns a copy of the log; callers cannot edit the structure.
func (c *Conversation) Messages() []llm.Message {
	out := make([]llm.Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c *Conversation) Last() (llm.Message, bool) {
	if len(c.msgs) == 0 {
		return llm.Message{}, false
	}
	return c.msgs[len(c.msgs)-1], true
}

func (c *Conversation) Len() int { return len(c.msgs) }

// HistoryBeforeLast returns everything up to (excluding) the tail message,
// the "chat history" the moderator judges the candidate against.
func (c *Conversation) HistoryBeforeLast() []llm.Message {
	if len(c.msgs) == 0 {
		return nil
	}
	out := make([]llm.Message, len(c.msgs)-1)
	copy(out, c.msgs[:len(c.msgs)-1])
	return out
}

// RenderHistory formats messages the way the moderator prompts expect.
func RenderHistory(msgs []llm.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, fmt.Sprintf("**%s**: %s", m.Role, m.Content))
	}
	return strings.Join(parts, "\n\n")
}
