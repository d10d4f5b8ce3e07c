package upstream

import "fmt"

// APIError is a business failure reported by the upstream service. The
// upstream signals failure through sentinel fields inside an otherwise
// successful body, so Code/Message come from the envelope, not from the
// transport status.
type APIError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("upstream error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("upstream error: %s", e.Message)
}

// envelope holds the sentinel fields the upstream embeds in failure bodies.
// Any of them being present means the call failed, even on HTTP 200.
type envelope struct {
	ErrorMessage  string `json:"errorMessage"`
	ErrorCode     string `json:"errorCode"`
	CustomMessage string `json:"customMessage"`
}

func (e envelope) failed() bool {
	return e.ErrorMessage != "" || e.ErrorCode != "" || e.CustomMessage != ""
}

// message prefers the operator-facing customMessage over the raw
// errorMessage.
func (e envelope) message() string {
	if e.CustomMessage != "" {
		return e.CustomMessage
	}
	if e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	return "upstream request failed"
}
