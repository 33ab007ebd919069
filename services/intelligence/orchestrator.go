package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/models"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/services/backend"

	"go.uber.org/zap"
)

// BookingFunctionName is the single function declared to the model.
const BookingFunctionName = "bookMeetingRoom"

// MeetingTitle is the fixed title for every meeting created through chat.
const MeetingTitle = "Meeting booked by Chatbot"

// confirmTimeFormat is how the start time is rendered in the confirmation.
const confirmTimeFormat = "Monday, 02 Jan 2006 at 15:04"

// dateTimeLayout is the zone-less ISO 8601 form the model is instructed to
// produce. Zone-less inputs are read as UTC.
const dateTimeLayout = "2006-01-02T15:04:05"

// Orchestrator resolves one user turn against the model session and, when
// the model asks for the booking function, runs the backend call sequence.
type Orchestrator struct {
	Backend BookingBackend
	Logger  *zap.Logger
}

func NewOrchestrator(bk BookingBackend, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{Backend: bk, Logger: logger}
}

// SendTurn forwards userText to the session and returns the final reply for
// the turn. Turns that do not trigger the booking function return the
// session's reply unmodified; an error from the session itself on that path
// is the caller's to handle. Booking-path failures never surface as errors:
// they are folded into the function result so the model can phrase a reply.
func (o *Orchestrator) SendTurn(ctx context.Context, session ConversationSession, userText, token string) (string, error) {
	turn, err := session.SendText(ctx, userText)
	if err != nil {
		return "", err
	}
	if len(turn.FunctionCalls) == 0 {
		return turn.Text, nil
	}

	// Only the first requested call is handled; any further calls in the
	// same response are dropped.
	call := turn.FunctionCalls[0]
	result := o.resolveFunctionCall(ctx, call, token)
	return session.SendFunctionResult(ctx, BookingFunctionName, result)
}

func (o *Orchestrator) resolveFunctionCall(ctx context.Context, call FunctionCall, token string) string {
	if call.Name != BookingFunctionName {
		o.Logger.Warn("Model requested an undeclared function", zap.String("name", call.Name))
		return "Error: no handler found for the requested function."
	}

	booking, err := parseBookingArgs(call.Args)
	if err != nil {
		o.Logger.Error("Failed to parse booking arguments", zap.Error(err))
		return contactErrorResult(err)
	}
	return o.bookMeetingRoom(ctx, booking, token)
}

// bookMeetingRoom runs the backend sequence: availability search, then
// creation with the first room the backend listed. Every outcome is a
// human-readable sentence.
func (o *Orchestrator) bookMeetingRoom(ctx context.Context, req models.BookingRequest, token string) string {
	start := req.StartTime
	end := start.Add(time.Duration(req.DurationInHours) * time.Hour)

	o.Logger.Info("Resolving booking request",
		zap.Int("people", req.NumberOfPeople),
		zap.Time("start", start),
		zap.Int("hours", req.DurationInHours))

	rooms, err := o.Backend.FindAvailableRooms(ctx, token, start, end, req.NumberOfPeople)
	if err != nil {
		var callErr *backend.CallError
		if errors.As(err, &callErr) {
			return contactErrorResult(fmt.Errorf("room search failed: %s", callErr.StatusText))
		}
		return contactErrorResult(err)
	}

	if len(rooms) == 0 {
		return fmt.Sprintf("Sorry, I checked but there are no rooms free for %d people at that time.", req.NumberOfPeople)
	}

	// The backend's ordering is the tie-break: always take the first room.
	room := rooms[0]
	o.Logger.Info("Found available room", zap.String("room", room.Name), zap.Int64("roomId", room.ID))

	meeting := models.MeetingCreationRequest{
		Title:          MeetingTitle,
		RoomID:         room.ID,
		StartTime:      backend.FormatTimestamp(start),
		EndTime:        backend.FormatTimestamp(end),
		ParticipantIDs: []int64{},
	}

	created, err := o.Backend.CreateMeeting(ctx, token, meeting)
	if err != nil {
		var callErr *backend.CallError
		if errors.As(err, &callErr) {
			msg := backend.ExtractErrorMessage(callErr.Body)
			return fmt.Sprintf("Booking failed. The system reported: %s", msg)
		}
		return contactErrorResult(err)
	}

	return fmt.Sprintf("Booking confirmed! Room %s (meeting ID %d) at %s.",
		room.Name, created.ID, start.Format(confirmTimeFormat))
}

func contactErrorResult(err error) string {
	return fmt.Sprintf("An error occurred while contacting the system: %s", err.Error())
}

// parseBookingArgs reads the model's function-call arguments into a
// BookingRequest. Numbers arrive as float64 from the wire.
func parseBookingArgs(args map[string]any) (models.BookingRequest, error) {
	var req models.BookingRequest

	people, ok := asInt(args["numberOfPeople"])
	if !ok {
		return req, errors.New("missing or invalid 'numberOfPeople' argument")
	}
	req.NumberOfPeople = people

	raw, ok := args["dateTime"].(string)
	if !ok {
		return req, errors.New("missing 'dateTime' argument")
	}
	start, err := parseDateTime(raw)
	if err != nil {
		return req, err
	}
	req.StartTime = start

	req.DurationInHours = 1
	if hours, ok := asInt(args["durationInHours"]); ok {
		req.DurationInHours = hours
	}
	if name, ok := args["roomName"].(string); ok {
		req.RoomName = name
	}
	return req, nil
}

func parseDateTime(raw string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid dateTime %q", raw)
	}
	return t, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
