package handlers

import (
	"net/http"
	"strconv"
	"strings"

	catsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/catalog"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/dto"
	httperrors "github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/errors"
)

type CatalogHandler struct {
	service *catsvc.Service
}

func NewCatalogHandler(service *catsvc.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Albums(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	albums, err := h.service.Albums(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.AlbumListResponse{Items: albums})
}

func (h *CatalogHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	activeOnly := true
	if raw := strings.TrimSpace(r.URL.Query().Get("active")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeBadRequest(w, "INVALID_REQUEST", "active must be a boolean")
			return
		}
		activeOnly = parsed
	}

	events, err := h.service.Events(r.Context(), activeOnly)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.EventListResponse{Items: events})
}

func (h *CatalogHandler) Event(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	eventID, err := urlParamInt64(r, "id")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "event id must be an integer")
		return
	}

	event, err := h.service.Event(r.Context(), eventID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, event)
}
