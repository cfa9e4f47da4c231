package tutor

import (
	"context"
	"errors"

	"ai-tutors/api/internal/llm"
)

// fakeProvider scripts Chat/Complete replies and records every call.
// The moderation loop uses Chat for judgments and Complete for corrections,
// so the two call logs separate moderate from correct traffic.
type fakeProvider struct {
	chatReplies     []string
	completeReplies []string
	chatErr         error
	completeErr     error

	chatCalls     [][]llm.Message
	completeCalls []string
}

func (f *fakeProvider) Name() string     { return "fake" }
func (f *fakeProvider) GetModel() string { return "fake-model" }

func (f *fakeProvider) Chat(_ context.Context, msgs []llm.Message) (string, error) {
	cp := make([]llm.Message, len(msgs))
	copy(cp, msgs)
	f.chatCalls = append(f.chatCalls, cp)
	if f.chatErr != nil {
		return "", f.chatErr
	}
	if len(f.chatCalls) > len(f.chatReplies) {
		return "", errors.New("fake: no chat reply scripted")
	}
	return f.chatReplies[len(f.chatCalls)-1], nil
}

func (f *fakeProvider) Complete(_ context.Context, prompt string) (string, error) {
	f.completeCalls = append(f.completeCalls, prompt)
	if f.completeErr != nil {
		return "", f.completeErr
	}
	if len(f.completeCalls) > len(f.completeReplies) {
		return "", errors.New("fake: no complete reply scripted")
	}
	return f.completeReplies[len(f.completeCalls)-1], nil
}

func testProfile() Profile {
	return Profile{
		Name:         "Physics Helper",
		Description:  "Guides students through mechanics problems",
		Instructions: "Guide the student. Never give away final answers.",
		Guidelines:   "Do not reveal complete solutions.",
		Introduction: "Hi! What are we working on today?",
	}
}
