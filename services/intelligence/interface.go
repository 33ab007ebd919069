package ai

import (
	"context"
	"time"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/models"
)

// FunctionCall is a structured request from the model to run a named
// external capability before it will produce further text.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// TurnResult is what the model returns for one user turn: plain text,
// pending function calls, or both.
type TurnResult struct {
	Text          string
	FunctionCalls []FunctionCall
}

// ConversationSession is the boundary to the model provider. A session is
// configured once at creation with the system instruction and the declared
// function schema; afterwards it only carries turns.
type ConversationSession interface {
	SendText(ctx context.Context, text string) (*TurnResult, error)
	SendFunctionResult(ctx context.Context, name, result string) (string, error)
}

// BookingBackend is the slice of the backend client the orchestrator needs.
type BookingBackend interface {
	FindAvailableRooms(ctx context.Context, token string, start, end time.Time, capacity int) ([]models.AvailableRoom, error)
	CreateMeeting(ctx context.Context, token string, meeting models.MeetingCreationRequest) (*models.MeetingRecord, error)
}
