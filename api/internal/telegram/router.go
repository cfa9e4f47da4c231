package telegram

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-tutors/api/internal/llm"
	"ai-tutors/api/internal/store"
	"ai-tutors/api/internal/tutor"
)

const turnTimeout = 180 * time.Second

type Router struct {
	Bot         *tgbotapi.BotAPI
	Tutors      *store.TutorRepo
	Codes       *store.AccessCodeRepo
	Transcripts *store.TranscriptRepo
	LLMs        *llm.Registry

	TutorModel     string
	ModeratorModel string
	MaxAttempts    int
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		r.send(cid, "Send me a text message, please. I can only read text.")
		return
	}

	if _, ok := getSession(cid); !ok {
		// no session yet: the first plain message is treated as an access code
		r.startSession(cid, text)
		return
	}
	// turns can take minutes; don't hold up other chats
	go r.runTurn(cid, text)
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		clearSession(cid)
		r.send(cid, "Hi! Send your tutor access code to begin.\nCommands: /code <code>, /reset, /health")
	case "code":
		code := strings.TrimSpace(upd.Message.CommandArguments())
		if code == "" {
			r.send(cid, "Usage: /code <access code>")
			return
		}
		r.startSession(cid, code)
	case "reset":
		clearSession(cid)
		r.send(cid, "Session cleared. Send an access code to start again.")
	case "health":
		r.send(cid, "✅ OK")
	default:
		r.send(cid, "Unknown command. Try /start, /code, /reset or /health.")
	}
}

func (r *Router) startSession(cid int64, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ac, err := r.Codes.Resolve(ctx, code, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCodeNotFound):
			r.send(cid, "That access code does not exist. Check it and try again.")
		case errors.Is(err, store.ErrCodeExpired):
			r.send(cid, "That access code has expired. Ask your teacher for a new one.")
		default:
			log.Printf("telegram: resolve code: %v", err)
			r.send(cid, "Something went wrong looking up that code. Try again in a minute.")
		}
		return
	}

	row, err := r.Tutors.Get(ctx, ac.TutorName)
	if err != nil {
		log.Printf("telegram: load tutor %q: %v", ac.TutorName, err)
		r.send(cid, "Something went wrong loading the tutor. Try again in a minute.")
		return
	}

	tutorLLM, err := r.LLMs.ForModel(r.TutorModel)
	if err != nil {
		log.Printf("telegram: %v", err)
		r.send(cid, "The tutor is not configured correctly. Tell your teacher.")
		return
	}
	moderatorLLM, err := r.LLMs.ForModel(r.ModeratorModel)
	if err != nil {
		log.Printf("telegram: %v", err)
		r.send(cid, "The tutor is not configured correctly. Tell your teacher.")
		return
	}

	s := &session{
		AccessCode: ac.Code,
		TutorName:  row.Name,
		Chain:      tutor.NewChain(tutorLLM, moderatorLLM, row.Profile, r.MaxAttempts),
	}
	setSession(cid, s)

	r.send(cid, "Connected to "+row.Name+".")
	r.send(cid, s.Chain.InitRequest())
}

func (r *Router) runTurn(cid int64, text string) {
	s, ok := getSession(cid)
	if !ok {
		return
	}
	if !s.mu.TryLock() {
		r.send(cid, "One moment, still working on your previous message.")
		return
	}
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	turn, err := s.Chain.GetResponse(ctx, text)
	if err != nil {
		log.Printf("telegram: turn failed for chat %d: %v", cid, err)
		r.send(cid, "I could not come up with a response. Please try again.")
		return
	}

	if err := r.Transcripts.Insert(ctx, store.TurnRecord{
		AccessCode:    s.AccessCode,
		TutorName:     s.TutorName,
		StudentPrompt: text,
		FinalResponse: turn.Text,
		Attempts:      turn.Attempts,
		Approved:      turn.Approved,
		Feedback:      turn.Feedback,
	}); err != nil {
		log.Printf("telegram: transcript insert failed: %v", err)
	}

	r.send(cid, turn.Text)
}

func (r *Router) send(cid int64, text string) {
	msg := tgbotapi.NewMessage(cid, text)
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram send error: %v", err)
	}
}
