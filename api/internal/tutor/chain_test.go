package tutor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rejection = "Violates the guidelines.\n\nNo. The response is not appropriate."
const approval = "Checked each guideline.\n\nYes. The response is appropriate."

func TestChainApprovedOnFirstTry(t *testing.T) {
	tutorLLM := &fakeProvider{chatReplies: []string{"The answer is 4."}}
	modLLM := &fakeProvider{chatReplies: []string{approval}}
	c := NewChain(tutorLLM, modLLM, testProfile(), 3)

	turn, err := c.GetResponse(context.Background(), "What is 2+2?")
	require.NoError(t, err)

	assert.Equal(t, "The answer is 4.", turn.Text)
	assert.True(t, turn.Moderated)
	assert.True(t, turn.Approved)
	assert.Equal(t, 0, turn.Attempts)
	assert.Empty(t, turn.Feedback)

	assert.Len(t, modLLM.chatCalls, 1)     // one judgment
	assert.Len(t, modLLM.completeCalls, 0) // no corrections
}

func TestChainOneCorrectionThenApproved(t *testing.T) {
	tutorLLM := &fakeProvider{chatReplies: []string{"Here's the full solution: x=5"}}
	modLLM := &fakeProvider{
		chatReplies:     []string{rejection, approval},
		completeReplies: []string{"Let's work through it together. What's your first step?"},
	}
	c := NewChain(tutorLLM, modLLM, testProfile(), 3)

	turn, err := c.GetResponse(context.Background(), "Solve for x")
	require.NoError(t, err)

	assert.Equal(t, "Let's work through it together. What's your first step?", turn.Text)
	assert.True(t, turn.Approved)
	assert.Equal(t, 1, turn.Attempts)
	require.Len(t, turn.Feedback, 1)
	assert.Contains(t, turn.Feedback[0], "Violates the guidelines.")

	assert.Len(t, modLLM.chatCalls, 2)
	assert.Len(t, modLLM.completeCalls, 1)

	// the log holds the corrected candidate, not the rejected draft
	last, _ := c.Conversation().Last()
	assert.Equal(t, turn.Text, last.Content)
}

func TestChainExhaustionForcesFinalCorrection(t *testing.T) {
	tutorLLM := &fakeProvider{chatReplies: []string{"bad draft"}}
	modLLM := &fakeProvider{
		chatReplies:     []string{rejection, rejection},
		completeReplies: []string{"corr-1", "corr-2", "final-corr"},
	}
	c := NewChain(tutorLLM, modLLM, testProfile(), 2)

	turn, err := c.GetResponse(context.Background(), "Solve it for me")
	require.NoError(t, err)

	assert.Equal(t, "final-corr", turn.Text)
	assert.False(t, turn.Approved)
	assert.True(t, turn.Moderated)
	assert.Equal(t, 2, turn.Attempts)

	// 2 in-loop corrections plus exactly one forced final, never re-judged
	assert.Len(t, modLLM.chatCalls, 2)
	require.Len(t, modLLM.completeCalls, 3)

	// the forced final sees the whole rejection history, numbered
	final := modLLM.completeCalls[2]
	assert.Contains(t, final, "corr-1")
	assert.Contains(t, final, "corr-2")
	assert.Contains(t, final, "**AI Response 1**")
	assert.Contains(t, final, "**AI Response 2**")
	assert.Contains(t, final, "**Moderator Feedback 1**")
	assert.Contains(t, final, "**Moderator Feedback 2**")

	last, _ := c.Conversation().Last()
	assert.Equal(t, "final-corr", last.Content)
}

func TestChainMutatesInsteadOfGrowing(t *testing.T) {
	tutorLLM := &fakeProvider{chatReplies: []string{"draft"}}
	modLLM := &fakeProvider{
		chatReplies:     []string{rejection, rejection, rejection},
		completeReplies: []string{"c1", "c2", "c3", "forced"},
	}
	c := NewChain(tutorLLM, modLLM, testProfile(), 3)

	_, err := c.GetResponse(context.Background(), "q")
	require.NoError(t, err)

	// system + introduction + user + assistant: corrections replaced the
	// tail, the log never grew during moderation
	assert.Equal(t, 4, c.Conversation().Len())
}

func TestChainZeroAttemptsSkipsModeration(t *testing.T) {
	tutorLLM := &fakeProvider{chatReplies: []string{"raw tutor reply"}}
	modLLM := &fakeProvider{} // any call would fail: nothing scripted
	c := NewChain(tutorLLM, modLLM, testProfile(), 0)

	turn, err := c.GetResponse(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, "raw tutor reply", turn.Text)
	assert.False(t, turn.Moderated)
	assert.Len(t, modLLM.chatCalls, 0)
	assert.Len(t, modLLM.completeCalls, 0)
}

func TestChainTutorErrorPropagates(t *testing.T) {
	tutorLLM := &fakeProvider{chatErr: assert.AnError}
	c := NewChain(tutorLLM, &fakeProvider{}, testProfile(), 3)

	_, err := c.GetResponse(context.Background(), "q")
	assert.Error(t, err)
}

func TestChainModeratorErrorPropagates(t *testing.T) {
	tutorLLM := &fakeProvider{chatReplies: []string{"draft"}}
	modLLM := &fakeProvider{chatErr: assert.AnError}
	c := NewChain(tutorLLM, modLLM, testProfile(), 3)

	_, err := c.GetResponse(context.Background(), "q")
	assert.Error(t, err)
}

func TestChainInitRequest(t *testing.T) {
	c := NewChain(&fakeProvider{}, &fakeProvider{}, testProfile(), 3)
	assert.Equal(t, "Hi! What are we working on today?", c.InitRequest())
}
