package chat

import (
	"context"
	"log"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
	"github.com/manasmitra/backend/internal/service/mentalhealth"
)

// contextWindow is how many trailing turns accompany each inference request.
const contextWindow = 5

// Responder produces the annotated reply for one user message. It must be
// total: every call returns a usable reply.
type Responder interface {
	Respond(ctx context.Context, message string, history []chatmodel.Turn) mentalhealth.Reply
}

// Service orchestrates one chat exchange per call: record the user turn,
// gather trailing context, obtain the annotated reply, record it.
type Service struct {
	store     *SessionStore
	responder Responder
}

// NewService wires the orchestrator to its session store and responder.
func NewService(store *SessionStore, responder Responder) *Service {
	return &Service{store: store, responder: responder}
}

// ProcessMessage runs the full pipeline for one inbound message. The context
// window handed to the responder includes the turn just appended. Because the
// responder absorbs its own failures, both turns are recorded on every pass.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, language, message string) chatmodel.Result {
	s.store.Append(sessionID, chatmodel.RoleUser, message)
	history := s.store.RecentContext(sessionID, contextWindow)

	reply := s.responder.Respond(ctx, message, history)

	s.store.Append(sessionID, chatmodel.RoleAssistant, reply.Text)
	log.Printf("[chat] session=%s level=%s crisis=%t", sessionID, reply.Level, reply.CrisisDetected)

	return chatmodel.Result{
		Response:       reply.Text,
		SessionID:      sessionID,
		Language:       language,
		CrisisDetected: reply.CrisisDetected,
	}
}
