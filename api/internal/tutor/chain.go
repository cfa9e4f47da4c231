package tutor

import (
	"context"

	"ai-tutors/api/internal/llm"
)

// DefaultMaxAttempts bounds the correction loop when nothing else is
// configured.
const DefaultMaxAttempts = 3

// Turn is the outcome of one moderated student turn.
type Turn struct {
	Text      string   // final reply shown to the student
	Moderated bool     // false when moderation was disabled for this turn
	Approved  bool     // moderator accepted the reply (false on forced final)
	Attempts  int      // correction attempts consumed inside the loop
	Feedback  []string // moderator feedback per rejected attempt, in order
}

// Chain drives one tutor session: the responder drafts, the moderator
// judges and corrects, bounded by MaxAttempts, with one unconditional final
// correction when the budget runs out.
type Chain struct {
	responder *Responder
	moderator *Moderator

	// MaxAttempts == 0 means moderation is disabled and the raw tutor
	// response is returned unchanged.
	MaxAttempts int
}

// NewChain builds a session from a tutor profile. The tutor and moderator
// providers may differ (different models/temperatures); both are injected.
func NewChain(tutorLLM, moderatorLLM llm.Provider, profile Profile, maxAttempts int) *Chain {
	return &Chain{
		responder:   NewResponder(tutorLLM, profile),
		moderator:   NewModerator(moderatorLLM, profile.Guidelines),
		MaxAttempts: maxAttempts,
	}
}

// NewChainWithHistory resumes a session from a transported conversation.
func NewChainWithHistory(tutorLLM, moderatorLLM llm.Provider, profile Profile, history []llm.Message, maxAttempts int) *Chain {
	return &Chain{
		responder:   NewResponderWithHistory(tutorLLM, profile, history),
		moderator:   NewModerator(moderatorLLM, profile.Guidelines),
		MaxAttempts: maxAttempts,
	}
}

// InitRequest is the greeting that opens a session.
func (c *Chain) InitRequest() string { return c.responder.Introduction() }

func (c *Chain) Conversation() *Conversation { return c.responder.Conversation() }

// GetResponse runs one moderated turn. The conversation grows by exactly two
// messages (student, assistant); corrections replace the tail content in
// place, so the log length is the same before and after moderation.
//
// Provider errors abort the turn and bubble up; the caller decides on retry
// or user messaging. One turn must fully complete before the next student
// input is accepted on the same chain.
func (c *Chain) GetResponse(ctx context.Context, studentInput string) (*Turn, error) {
	response, err := c.responder.GetResponse(ctx, studentInput)
	if err != nil {
		return nil, err
	}

	turn := &Turn{Text: response}
	if c.MaxAttempts <= 0 {
		return turn, nil
	}
	turn.Moderated = true

	conv := c.responder.Conversation()
	var responses, feedbacks []string

	for turn.Attempts < c.MaxAttempts {
		feedback, ok, err := c.moderator.Moderate(ctx, conv)
		if err != nil {
			return nil, err
		}
		if ok {
			turn.Approved = true
			break
		}

		history := RenderHistory(conv.HistoryBeforeLast())
		corrected, err := c.moderator.Correct(ctx, history, []string{response}, []string{feedback})
		if err != nil {
			return nil, err
		}

		conv.ReplaceLast(corrected)
		response = corrected
		responses = append(responses, corrected)
		feedbacks = append(feedbacks, feedback)
		turn.Attempts++
	}

	if !turn.Approved {
		// Budget exhausted: one forced correction fed the whole rejection
		// history. Its output is not judged again, so the turn always ends
		// with a reply.
		history := RenderHistory(conv.HistoryBeforeLast())
		final, err := c.moderator.Correct(ctx, history, responses, feedbacks)
		if err != nil {
			return nil, err
		}
		conv.ReplaceLast(final)
		response = final
	}

	turn.Text = response
	turn.Feedback = feedbacks
	return turn, nil
}
