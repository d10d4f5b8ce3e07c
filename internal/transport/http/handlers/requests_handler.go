package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
	reqsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/requests"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/dto"
	httperrors "github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/errors"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/upstream"
)

type RequestsHandler struct {
	service *reqsvc.Service
}

func NewRequestsHandler(service *reqsvc.Service) *RequestsHandler {
	return &RequestsHandler{service: service}
}

func (h *RequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "requests service is unavailable")
		return
	}

	filter := upstream.RequestFilter{
		UserQuery: strings.TrimSpace(r.URL.Query().Get("user")),
		Page:      queryInt(r, "page", 0),
		Size:      queryInt(r, "size", 0),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, ok := enums.ParseRequestStatus(raw)
		if !ok {
			writeBadRequest(w, "INVALID_STATUS", "unknown request status")
			return
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("eventId")); raw != "" {
		eventID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || eventID <= 0 {
			writeBadRequest(w, "INVALID_REQUEST", "eventId must be a positive integer")
			return
		}
		filter.EventID = eventID
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("needNegotiation")); raw != "" {
		need, err := strconv.ParseBool(raw)
		if err != nil {
			writeBadRequest(w, "INVALID_REQUEST", "needNegotiation must be a boolean")
			return
		}
		filter.NeedNegotiation = &need
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RequestListResponse{
		Items:      page.Items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
	})
}

func (h *RequestsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "requests service is unavailable")
		return
	}

	requestID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "request id must be an integer")
		return
	}

	request, err := h.service.Detail(r.Context(), requestID)
	if err != nil {
		handleRequestError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, request)
}

// AllowedTransitions reports which statuses the panel may offer for a
// request in its current state.
func (h *RequestsHandler) AllowedTransitions(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "requests service is unavailable")
		return
	}

	requestID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "request id must be an integer")
		return
	}

	request, err := h.service.Detail(r.Context(), requestID)
	if err != nil {
		handleRequestError(w, err)
		return
	}

	allowed := h.service.AllowedTransitions(request.Status)
	out := make([]string, 0, len(allowed))
	for _, status := range allowed {
		out = append(out, string(status))
	}
	httperrors.Write(w, http.StatusOK, dto.AllowedTransitionsResponse{
		Status:  string(request.Status),
		Allowed: out,
	})
}

func (h *RequestsHandler) Transition(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, false)
}

// ForceTransition skips the lifecycle table for admin correction of broken
// records. It has its own route so the panel can gate it behind a warning.
func (h *RequestsHandler) ForceTransition(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, true)
}

func (h *RequestsHandler) transition(w http.ResponseWriter, r *http.Request, forced bool) {
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "requests service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	requestID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "request id must be an integer")
		return
	}

	var req dto.TransitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	target, ok := enums.ParseRequestStatus(req.Status)
	if !ok {
		writeBadRequest(w, "INVALID_STATUS", "unknown request status")
		return
	}

	var updated model.PurchaseRequest
	if forced {
		updated, err = h.service.ForceTransition(r.Context(), requestID, target, operator)
	} else {
		updated, err = h.service.Transition(r.Context(), requestID, target, operator)
	}
	if err != nil {
		handleRequestError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, updated)
}

func (h *RequestsHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "requests service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	requestID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "request id must be an integer")
		return
	}

	var req dto.UpdateItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	updated, err := h.service.UpdateItems(r.Context(), requestID, req.Items, operator)
	if err != nil {
		handleRequestError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, updated)
}

func (h *RequestsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REQUESTS_SERVICE_UNAVAILABLE", "requests service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	requestID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "request id must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), requestID, operator); err != nil {
		handleRequestError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.DeleteResponse{OK: true})
}

func handleRequestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reqsvc.ErrValidation):
		writeBadRequest(w, "INVALID_REQUEST", "request validation failed")
	case errors.Is(err, reqsvc.ErrIllegalTransition):
		writeConflict(w, "ILLEGAL_TRANSITION", err.Error())
	case errors.Is(err, reqsvc.ErrNotDeletable):
		writeConflict(w, "NOT_DELETABLE", err.Error())
	default:
		writeUpstreamError(w, err)
	}
}
