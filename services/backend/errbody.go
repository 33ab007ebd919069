package backend

import "encoding/json"

// DefaultErrorMessage is used when an error body is JSON but carries none of
// the known message fields.
const DefaultErrorMessage = "Unknown error from the backend"

// maxRawErrorLen caps how much of a non-JSON error body (often an HTML error
// page) is surfaced to the user.
const maxRawErrorLen = 100

// ExtractErrorMessage turns an arbitrary backend error body into a single
// human-readable message. Two stages: parse the body as JSON and pick the
// best-known field, or fall back to the truncated raw text when the body is
// not JSON at all.
func ExtractErrorMessage(body []byte) string {
	if !json.Valid(body) {
		raw := []rune(string(body))
		if len(raw) > maxRawErrorLen {
			raw = raw[:maxRawErrorLen]
		}
		return string(raw)
	}

	var parsed struct {
		Errors []struct {
			DefaultMessage string `json:"defaultMessage"`
		} `json:"errors"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Valid JSON of an unexpected shape (array, bare string).
		return DefaultErrorMessage
	}

	// Validation errors come back as an "errors" array of field violations.
	if len(parsed.Errors) > 0 {
		return parsed.Errors[0].DefaultMessage
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return DefaultErrorMessage
}
