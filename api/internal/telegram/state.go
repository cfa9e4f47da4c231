package telegram

import (
	"sync"

	"ai-tutors/api/internal/tutor"
)

// session is one student's live tutor chat. The mutex serializes turns per
// chat: a moderation loop must fully complete before the next input runs.
type session struct {
	mu sync.Mutex

	AccessCode string
	TutorName  string
	Chain      *tutor.Chain
}

var sessions sync.Map // chatID -> *session

func getSession(chatID int64) (*session, bool) {
	if v, ok := sessions.Load(chatID); ok {
		return v.(*session), true
	}
	return nil, false
}

func setSession(chatID int64, s *session) { sessions.Store(chatID, s) }

func clearSession(chatID int64) { sessions.Delete(chatID) }
