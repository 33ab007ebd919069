package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/models"

	"go.uber.org/zap"
)

// echoSession replies with plain text derived from the user message.
type echoSession struct {
	err     error
	block   chan struct{}
	started chan struct{}
}

func (s *echoSession) SendText(ctx context.Context, text string) (*TurnResult, error) {
	if s.started != nil {
		select {
		case s.started <- struct{}{}:
		default:
		}
	}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return &TurnResult{Text: "echo: " + text}, nil
}

func (s *echoSession) SendFunctionResult(ctx context.Context, name, result string) (string, error) {
	return "", errors.New("unexpected function result")
}

func newTestConversation(session ConversationSession, bk BookingBackend) *Conversation {
	factory := func() ConversationSession { return session }
	return NewConversation(factory, NewOrchestrator(bk, zap.NewNop()), "tok", zap.NewNop())
}

func TestTranscriptGrowsTwoPerTurnInOrder(t *testing.T) {
	bk := &fakeBackend{}
	conv := newTestConversation(&echoSession{}, bk)

	const n = 3
	for i := 0; i < n; i++ {
		msg := fmt.Sprintf("message %d", i)
		reply, err := conv.PostTurn(context.Background(), msg)
		if err != nil {
			t.Fatalf("PostTurn(%q) error = %v", msg, err)
		}
		if reply != "echo: "+msg {
			t.Fatalf("reply = %q", reply)
		}
	}

	turns := conv.Transcript()
	if len(turns) != 2*n {
		t.Fatalf("transcript length = %d, want %d", len(turns), 2*n)
	}
	for i := 0; i < n; i++ {
		user, assistant := turns[2*i], turns[2*i+1]
		if user.Role != models.RoleUser || assistant.Role != models.RoleAssistant {
			t.Fatalf("turn pair %d roles = %q/%q", i, user.Role, assistant.Role)
		}
		if user.Text != fmt.Sprintf("message %d", i) {
			t.Fatalf("turn pair %d out of order: %q", i, user.Text)
		}
		if assistant.Text != "echo: "+user.Text {
			t.Fatalf("assistant text %q does not match user text %q", assistant.Text, user.Text)
		}
	}

	// Plain turns never reach the backend and never re-authenticate.
	if bk.searchCalls != 0 || bk.createCalls != 0 {
		t.Fatalf("backend touched by plain turns")
	}
}

func TestPostTurnSessionFailureBecomesApology(t *testing.T) {
	conv := newTestConversation(&echoSession{err: errors.New("model down")}, &fakeBackend{})

	reply, err := conv.PostTurn(context.Background(), "hello")
	if err != nil {
		t.Fatalf("PostTurn() error = %v, want apology reply instead", err)
	}
	if reply != ApologyMessage {
		t.Fatalf("reply = %q, want apology", reply)
	}

	turns := conv.Transcript()
	if len(turns) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(turns))
	}
	if turns[1].Text != ApologyMessage {
		t.Fatalf("assistant turn = %q, want apology", turns[1].Text)
	}
}

func TestPostTurnRejectsWhileBusy(t *testing.T) {
	session := &echoSession{block: make(chan struct{}), started: make(chan struct{}, 1)}
	conv := newTestConversation(session, &fakeBackend{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := conv.PostTurn(context.Background(), "first"); err != nil {
			t.Errorf("first PostTurn() error = %v", err)
		}
	}()

	// Wait until the first turn is inside the session call.
	<-session.started

	if _, err := conv.PostTurn(context.Background(), "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Fatalf("second PostTurn() error = %v, want ErrTurnInFlight", err)
	}

	close(session.block)
	<-done

	if got := len(conv.Transcript()); got != 2 {
		t.Fatalf("transcript length = %d, want 2 (rejected turn leaves no trace)", got)
	}
}

func TestResetStartsFreshConversation(t *testing.T) {
	conv := newTestConversation(&echoSession{}, &fakeBackend{})

	if _, err := conv.PostTurn(context.Background(), "hello"); err != nil {
		t.Fatalf("PostTurn() error = %v", err)
	}
	oldID := conv.ID()

	if err := conv.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if conv.ID() == oldID {
		t.Fatalf("Reset() kept the conversation ID")
	}
	if got := len(conv.Transcript()); got != 0 {
		t.Fatalf("transcript length after reset = %d, want 0", got)
	}
}
