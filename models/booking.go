package models

import "time"

// BookingRequest holds the parameters the model extracted for one booking
// attempt. It only lives for the duration of a single function-call
// resolution and is not validated beyond what the schema declares.
type BookingRequest struct {
	NumberOfPeople  int
	StartTime       time.Time
	DurationInHours int
	RoomName        string
}

// AvailableRoom is one entry of the backend's availability response. The
// backend returns rooms in its own order; the first entry is always taken.
type AvailableRoom struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// MeetingCreationRequest is the payload for POST /meetings. ParticipantIDs
// stays empty; the backend adds the booking user from the bearer token.
type MeetingCreationRequest struct {
	Title          string  `json:"title"`
	RoomID         int64   `json:"roomId"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	ParticipantIDs []int64 `json:"participantIds"`
}

// MeetingRecord is the backend's representation of a created meeting. Only
// the ID is read back for the confirmation message.
type MeetingRecord struct {
	ID             int64   `json:"id"`
	RoomID         int64   `json:"roomId"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	ParticipantIDs []int64 `json:"participantIds"`
}
