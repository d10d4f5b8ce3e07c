package handlers

import (
	"errors"
	"net/http"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	matchsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/matching"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/dto"
	httperrors "github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/errors"
)

// ReceiptsHandler exposes the matching workflow. Selection state lives
// server-side per operator, so every route first resolves the caller's
// workflow.
type ReceiptsHandler struct {
	service *matchsvc.Service
}

func NewReceiptsHandler(service *matchsvc.Service) *ReceiptsHandler {
	return &ReceiptsHandler{service: service}
}

func (h *ReceiptsHandler) workflow(w http.ResponseWriter, r *http.Request) (*matchsvc.Workflow, bool) {
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return nil, false
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return nil, false
	}
	return h.service.Workflow(operator), true
}

func (h *ReceiptsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	h.writeSnapshot(w, workflow)
}

func (h *ReceiptsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	var req dto.ScanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := workflow.Scan(r.Context(), matchsvc.ScanInput{
		TrackingNumber:  req.TrackingNumber,
		ShippingCompany: req.ShippingCompany,
		Memo:            req.Memo,
	})
	if err != nil {
		handleMatchingError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, result)
}

func (h *ReceiptsHandler) UnmatchedPool(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	items, err := h.service.UnmatchedPool(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.UnmatchedPoolResponse{Items: items})
}

func (h *ReceiptsHandler) MatchedList(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	items, err := h.service.MatchedList(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.MatchedListResponse{Items: items})
}

func (h *ReceiptsHandler) SelectReceipt(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	var req dto.SelectReceiptRequest
	if err := decodeJSON(r, &req); err != nil || req.UnmatchedReceiptID <= 0 {
		writeBadRequest(w, "INVALID_REQUEST", "unmatchedReceiptId must be a positive integer")
		return
	}

	workflow.SelectUnmatched(req.UnmatchedReceiptID, req.TrackingNumber)
	h.writeSnapshot(w, workflow)
}

func (h *ReceiptsHandler) SelectRequest(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	var req dto.SelectRequestRequest
	if err := decodeJSON(r, &req); err != nil || req.RequestID <= 0 {
		writeBadRequest(w, "INVALID_REQUEST", "requestId must be a positive integer")
		return
	}

	workflow.SelectRequest(req.RequestID)
	h.writeSnapshot(w, workflow)
}

func (h *ReceiptsHandler) SetTab(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	var req dto.SetTabRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	tab := enums.WorkflowTab(req.Tab)
	if !tab.Valid() {
		writeBadRequest(w, "INVALID_TAB", "tab must be scan, unmatched or matched")
		return
	}

	workflow.SetActiveTab(tab)
	h.writeSnapshot(w, workflow)
}

// Search schedules a debounced candidate lookup and returns immediately.
// The panel polls Candidates for results.
func (h *ReceiptsHandler) Search(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	var req dto.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	workflow.Search(req.Query)
	w.WriteHeader(http.StatusAccepted)
}

func (h *ReceiptsHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}
	httperrors.Write(w, http.StatusOK, dto.CandidatesResponse{Items: workflow.Candidates()})
}

func (h *ReceiptsHandler) RequestPreview(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	request, err := workflow.RequestPreview(r.Context())
	if err != nil {
		handleMatchingError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, request)
}

func (h *ReceiptsHandler) ConfirmMatch(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	matched, err := workflow.ConfirmMatch(r.Context())
	if err != nil {
		handleMatchingError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, matched)
}

func (h *ReceiptsHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	var req dto.UnmatchRequest
	if err := decodeJSON(r, &req); err != nil || req.MatchedReceiptID <= 0 {
		writeBadRequest(w, "INVALID_REQUEST", "matchedReceiptId must be a positive integer")
		return
	}

	receipt, err := workflow.Unmatch(r.Context(), req.MatchedReceiptID, req.Reason, req.RequestID)
	if err != nil {
		handleMatchingError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, receipt)
}

func (h *ReceiptsHandler) DeleteUnmatched(w http.ResponseWriter, r *http.Request) {
	workflow, ok := h.workflow(w, r)
	if !ok {
		return
	}

	unmatchedReceiptID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "receipt id must be an integer")
		return
	}

	if err := workflow.DeleteUnmatched(r.Context(), unmatchedReceiptID); err != nil {
		handleMatchingError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.DeleteResponse{OK: true})
}

func (h *ReceiptsHandler) writeSnapshot(w http.ResponseWriter, workflow *matchsvc.Workflow) {
	snap := workflow.Snapshot()
	httperrors.Write(w, http.StatusOK, dto.WorkflowSnapshotResponse{
		Operator:            snap.Operator,
		SelectedUnmatchedID: snap.SelectedUnmatchedID,
		SelectedRequestID:   snap.SelectedRequestID,
		ActiveTab:           string(snap.ActiveTab),
		MatchInFlight:       snap.MatchInFlight,
		Candidates:          snap.Candidates,
	})
}

func handleMatchingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchsvc.ErrMissingScanFields):
		writeBadRequest(w, "MISSING_SCAN_FIELDS", "tracking number and shipping company are required")
	case errors.Is(err, matchsvc.ErrSelectionIncomplete):
		writeConflict(w, "SELECTION_INCOMPLETE", "select a receipt and a request before matching")
	case errors.Is(err, matchsvc.ErrMatchInFlight):
		writeConflict(w, "MATCH_IN_FLIGHT", "a match request is already running")
	case errors.Is(err, matchsvc.ErrMissingOperator):
		writeUnauthorized(w, "UNAUTHORIZED", "operator identity is required")
	default:
		writeUpstreamError(w, err)
	}
}
