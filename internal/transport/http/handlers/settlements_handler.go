package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	setsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/settlements"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/dto"
	httperrors "github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/errors"
)

type SettlementsHandler struct {
	service *setsvc.Service
}

func NewSettlementsHandler(service *setsvc.Service) *SettlementsHandler {
	return &SettlementsHandler{service: service}
}

func (h *SettlementsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}

	status := enums.SettlementStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))
	items, err := h.service.List(r.Context(), status)
	if err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.SettlementListResponse{Items: items})
}

func (h *SettlementsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}

	settlementID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "settlement id must be an integer")
		return
	}

	settlement, err := h.service.Detail(r.Context(), settlementID)
	if err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, settlement)
}

// Eligible lists requests in PENDING_SETTLEMENT that can seed a new
// settlement.
func (h *SettlementsHandler) Eligible(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}

	items, err := h.service.Eligible(r.Context())
	if err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.EligibleRequestsResponse{Items: items})
}

func (h *SettlementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	var req dto.CreateSettlementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	settlement, err := h.service.Create(r.Context(), req.RequestIDs, operator)
	if err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusCreated, settlement)
}

func (h *SettlementsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	settlementID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "settlement id must be an integer")
		return
	}

	var req dto.SettlementStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	status := enums.SettlementStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	settlement, err := h.service.UpdateStatus(r.Context(), settlementID, status, operator)
	if err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, settlement)
}

func (h *SettlementsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	settlementID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "settlement id must be an integer")
		return
	}

	settlement, err := h.service.Complete(r.Context(), settlementID, operator)
	if err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, settlement)
}

func (h *SettlementsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	settlementID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "settlement id must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), settlementID, operator); err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.DeleteResponse{OK: true})
}

// TransferItem moves one settled item into inventory stock. Items already
// transferred come back as a conflict without touching the remote service.
func (h *SettlementsHandler) TransferItem(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTLEMENTS_SERVICE_UNAVAILABLE", "settlements service is unavailable")
		return
	}
	operator, ok := requiredOperator(w, r)
	if !ok {
		return
	}

	settlementID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "settlement id must be an integer")
		return
	}
	itemID, err := urlParamInt64(r, "itemID")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "item id must be an integer")
		return
	}

	item, err := h.service.TransferItem(r.Context(), settlementID, itemID, operator)
	if err != nil {
		handleSettlementError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, item)
}

func handleSettlementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, setsvc.ErrValidation):
		writeBadRequest(w, "INVALID_REQUEST", "request validation failed")
	case errors.Is(err, setsvc.ErrAlreadyTransferred):
		writeConflict(w, "ALREADY_TRANSFERRED", "item was already transferred to stock")
	default:
		writeUpstreamError(w, err)
	}
}
