package backend

import "fmt"

// AuthError signals that login was rejected or the auth response was
// malformed. It is terminal for the caller; there is no retry path.
type AuthError struct {
	Status int
	Reason string
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("login failed: %d %s", e.Status, e.Reason)
	}
	return "login failed: " + e.Reason
}

// CallError signals a non-success HTTP status from the booking backend. The
// raw response body is kept so the caller can extract a readable message.
type CallError struct {
	Status     int
	StatusText string
	Body       []byte
}

func (e *CallError) Error() string {
	return fmt.Sprintf("backend returned %s", e.StatusText)
}
