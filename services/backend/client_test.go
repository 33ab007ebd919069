package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/models"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zap.NewNop())
}

func TestLoginReturnsToken(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "jwt-abc"})
	})

	token, err := client.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token != "jwt-abc" {
		t.Fatalf("token = %q, want %q", token, "jwt-abc")
	}
	if gotBody["username"] != "alice@example.com" || gotBody["password"] != "secret" {
		t.Fatalf("unexpected login payload: %v", gotBody)
	}
}

func TestLoginRejectedIsAuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), "alice", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login() error = %v, want *AuthError", err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Fatalf("AuthError.Status = %d, want 401", authErr.Status)
	}
}

func TestLoginMissingTokenFieldIsAuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"somethingElse": "x"})
	})

	_, err := client.Login(context.Background(), "alice", "secret")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login() error = %v, want *AuthError", err)
	}
}

func TestFindAvailableRoomsQueryAndOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rooms/available" {
			t.Errorf("path = %q, want /rooms/available", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		q := r.URL.Query()
		if q.Get("startTime") != "2025-11-17T10:00:00.000Z" {
			t.Errorf("startTime = %q", q.Get("startTime"))
		}
		if q.Get("endTime") != "2025-11-17T12:00:00.000Z" {
			t.Errorf("endTime = %q", q.Get("endTime"))
		}
		if q.Get("capacity") != "5" {
			t.Errorf("capacity = %q, want 5", q.Get("capacity"))
		}
		json.NewEncoder(w).Encode([]models.AvailableRoom{
			{ID: 5, Name: "Room C", Capacity: 8},
			{ID: 9, Name: "Room D", Capacity: 12},
		})
	})

	start := time.Date(2025, 11, 17, 10, 0, 0, 0, time.UTC)
	rooms, err := client.FindAvailableRooms(context.Background(), "tok", start, start.Add(2*time.Hour), 5)
	if err != nil {
		t.Fatalf("FindAvailableRooms() error = %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != 5 || rooms[0].Name != "Room C" {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
}

func TestFindAvailableRoomsNonSuccessIsCallError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	start := time.Now()
	_, err := client.FindAvailableRooms(context.Background(), "tok", start, start.Add(time.Hour), 3)
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("FindAvailableRooms() error = %v, want *CallError", err)
	}
	if callErr.Status != http.StatusInternalServerError {
		t.Fatalf("CallError.Status = %d, want 500", callErr.Status)
	}
}

func TestCreateMeetingPostsPayload(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meetings" {
			t.Errorf("path = %q, want /meetings", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode meeting body: %v", err)
		}
		json.NewEncoder(w).Encode(models.MeetingRecord{ID: 42, RoomID: 5})
	})

	created, err := client.CreateMeeting(context.Background(), "tok", models.MeetingCreationRequest{
		Title:          "Meeting booked by Chatbot",
		RoomID:         5,
		StartTime:      "2025-11-17T10:00:00.000Z",
		EndTime:        "2025-11-17T12:00:00.000Z",
		ParticipantIDs: []int64{},
	})
	if err != nil {
		t.Fatalf("CreateMeeting() error = %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("created.ID = %d, want 42", created.ID)
	}
	if gotBody["roomId"] != float64(5) {
		t.Fatalf("body roomId = %v, want 5", gotBody["roomId"])
	}
	// participantIds must marshal as an empty array, not null.
	if participants, ok := gotBody["participantIds"].([]any); !ok || len(participants) != 0 {
		t.Fatalf("body participantIds = %v, want []", gotBody["participantIds"])
	}
}

func TestCreateMeetingFailureKeepsRawBody(t *testing.T) {
	errBody := `{"errors":[{"defaultMessage":"Room occupied"}]}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(errBody))
	})

	_, err := client.CreateMeeting(context.Background(), "tok", models.MeetingCreationRequest{ParticipantIDs: []int64{}})
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("CreateMeeting() error = %v, want *CallError", err)
	}
	if string(callErr.Body) != errBody {
		t.Fatalf("CallError.Body = %q, want %q", callErr.Body, errBody)
	}
}

func TestFormatTimestampMillisUTC(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	at := time.Date(2025, 11, 17, 17, 0, 0, 0, loc)
	if got := FormatTimestamp(at); got != "2025-11-17T10:00:00.000Z" {
		t.Fatalf("FormatTimestamp() = %q", got)
	}
}
