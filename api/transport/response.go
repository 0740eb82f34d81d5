package transport

import "encoding/json"

// ErrorBody is the JSON shape of every non-2xx response:
// {"message": "...", "error": "..."} with error omitted when there is no
// underlying cause. Success responses carry the bare entity.
type ErrorBody struct {
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

// NewError builds an error body from a user-facing message and an optional cause.
func NewError(message string, cause error) ErrorBody {
	body := ErrorBody{Message: message}
	if cause != nil {
		body.Err = cause.Error()
	}
	return body
}

// Message is the DELETE confirmation payload.
type Message struct {
	Message string `json:"message"`
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e ErrorBody) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
