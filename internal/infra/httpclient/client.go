package httpclient

import (
	"net/http"
	"time"
)

// New returns the client used for upstream admin API calls. Every call must
// carry a deadline; a zero timeout falls back to ten seconds.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
