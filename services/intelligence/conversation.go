package ai

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApologyMessage replaces the assistant reply when the model itself fails on
// a plain chat turn, so the transcript stays consistent.
const ApologyMessage = "Sorry, something went wrong while answering. Please try again."

// ErrTurnInFlight is returned while a previous turn is still being resolved.
// Turns are never queued; the caller retries once the current one finishes.
var ErrTurnInFlight = errors.New("a turn is already being processed")

// SessionFactory creates a fresh model session, used at construction and on
// reset.
type SessionFactory func() ConversationSession

// Conversation owns the single active chat: the model session handle, the
// bearer token obtained at startup and the append-only transcript. Exactly
// one turn is in flight at a time.
type Conversation struct {
	factory SessionFactory
	orch    *Orchestrator
	token   string
	logger  *zap.Logger

	mu         sync.Mutex
	id         string
	session    ConversationSession
	busy       bool
	transcript []models.ChatTurn
}

func NewConversation(factory SessionFactory, orch *Orchestrator, token string, logger *zap.Logger) *Conversation {
	return &Conversation{
		factory: factory,
		orch:    orch,
		token:   token,
		logger:  logger,
		id:      uuid.NewString(),
		session: factory(),
	}
}

func (c *Conversation) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// PostTurn submits one user message and returns the assistant reply. While a
// turn is outstanding further submissions fail with ErrTurnInFlight. A
// failure from the model on the non-booking path is absorbed here into the
// fixed apology message rather than surfaced to the caller.
func (c *Conversation) PostTurn(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", ErrTurnInFlight
	}
	c.busy = true
	session := c.session
	c.mu.Unlock()

	reply, err := c.orch.SendTurn(ctx, session, text, c.token)
	if err != nil {
		c.logger.Error("Conversation turn failed", zap.Error(err))
		reply = ApologyMessage
	}

	now := time.Now()
	c.mu.Lock()
	c.transcript = append(c.transcript,
		models.ChatTurn{ID: uuid.NewString(), Role: models.RoleUser, Text: text, CreatedAt: now},
		models.ChatTurn{ID: uuid.NewString(), Role: models.RoleAssistant, Text: reply, CreatedAt: time.Now()},
	)
	c.busy = false
	c.mu.Unlock()

	return reply, nil
}

// Transcript returns a copy of the ordered transcript.
func (c *Conversation) Transcript() []models.ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatTurn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Reset discards the session and transcript and starts a fresh conversation
// under a new ID. Refused while a turn is in flight.
func (c *Conversation) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrTurnInFlight
	}
	c.id = uuid.NewString()
	c.session = c.factory()
	c.transcript = nil
	c.logger.Info("Conversation reset", zap.String("conversationId", c.id))
	return nil
}
