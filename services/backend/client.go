package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/models"

	"go.uber.org/zap"
)

// TimestampFormat is the wire format for start/end times, millisecond
// precision with a literal Z. Timestamps are always rendered in UTC.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Package-level HTTP client for backend calls.
var backendHTTPClient = &http.Client{Timeout: 15 * time.Second}

// Client talks to the meeting-management backend. One attempt per call, no
// retries; failures surface as *AuthError or *CallError.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    backendHTTPClient,
		logger:  logger,
	}
}

// FormatTimestamp renders a timestamp in the backend wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Login exchanges a username/password for a bearer token. The token is held
// in memory for the process lifetime; there is no refresh path.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &AuthError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &AuthError{Status: resp.StatusCode, Reason: resp.Status}
	}

	var auth struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", &AuthError{Reason: "failed to decode auth response: " + err.Error()}
	}
	if auth.AccessToken == "" {
		return "", &AuthError{Reason: "no 'accessToken' field in auth response"}
	}

	c.logger.Info("Logged in to booking backend", zap.String("username", username))
	return auth.AccessToken, nil
}

// FindAvailableRooms queries rooms free in the given window with at least the
// given capacity. The backend's ordering is preserved.
func (c *Client) FindAvailableRooms(ctx context.Context, token string, start, end time.Time, capacity int) ([]models.AvailableRoom, error) {
	params := url.Values{}
	params.Set("startTime", FormatTimestamp(start))
	params.Set("endTime", FormatTimestamp(end))
	params.Set("capacity", strconv.Itoa(capacity))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rooms/available?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build availability request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("Calling backend API: GET /rooms/available",
		zap.Time("start", start), zap.Time("end", end), zap.Int("capacity", capacity))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("availability request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &CallError{Status: resp.StatusCode, StatusText: resp.Status, Body: body}
	}

	var rooms []models.AvailableRoom
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("failed to decode availability response: %w", err)
	}
	return rooms, nil
}

// CreateMeeting posts a meeting creation request and returns the created
// record. A failed creation returns *CallError with the raw error body.
func (c *Client) CreateMeeting(ctx context.Context, token string, meeting models.MeetingCreationRequest) (*models.MeetingRecord, error) {
	payload, err := json.Marshal(meeting)
	if err != nil {
		return nil, fmt.Errorf("marshal meeting payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/meetings", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("build meeting request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Calling backend API: POST /meetings", zap.Int64("roomId", meeting.RoomID))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meeting request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Backend rejected meeting creation",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return nil, &CallError{Status: resp.StatusCode, StatusText: resp.Status, Body: body}
	}

	var created models.MeetingRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode meeting response: %w", err)
	}
	return &created, nil
}
