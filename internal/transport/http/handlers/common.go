package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/operatorauth"
	httperrors "github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/errors"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/upstream"
)

func requiredOperator(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok || identity.Operator == "" {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return "", false
	}
	return identity.Operator, true
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return 0, errors.New("missing url parameter " + name)
	}
	return strconv.ParseInt(raw, 10, 64)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

// writeUpstreamError relays a remote service rejection to the panel with the
// remote message kept verbatim. Anything else is an internal failure.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPStatus
		if status < http.StatusBadRequest {
			status = http.StatusUnprocessableEntity
		}
		httperrors.Write(w, status, httperrors.APIError{Code: "UPSTREAM_ERROR", Message: apiErr.Message})
		return
	}
	writeInternal(w, "INTERNAL_ERROR", "internal server error")
}
