package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
	matchsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/matching"
	authsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/operatorauth"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/dto"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/upstream"
)

type receiptAPIStub struct {
	scanResult   model.ScanResult
	matchErr     error
	matched      model.MatchedReceipt
	matchCalls   int
	scanCalls    int
	lastMatchReq upstream.MatchRequest
}

func (s *receiptAPIStub) ScanReceipt(_ context.Context, _ upstream.ScanRequest) (model.ScanResult, error) {
	s.scanCalls++
	return s.scanResult, nil
}

func (s *receiptAPIStub) ListUnmatchedReceipts(context.Context) ([]model.UnmatchedReceipt, error) {
	return []model.UnmatchedReceipt{{ID: 7, TrackingNumber: "123456789"}}, nil
}

func (s *receiptAPIStub) ListMatchedReceipts(context.Context) ([]model.MatchedReceipt, error) {
	return nil, nil
}

func (s *receiptAPIStub) SearchRequestCandidates(context.Context, string, int) ([]model.RequestCandidate, error) {
	return nil, nil
}

func (s *receiptAPIStub) MatchReceipt(_ context.Context, match upstream.MatchRequest) (model.MatchedReceipt, error) {
	s.matchCalls++
	s.lastMatchReq = match
	if s.matchErr != nil {
		return model.MatchedReceipt{}, s.matchErr
	}
	return s.matched, nil
}

func (s *receiptAPIStub) UnmatchReceipt(context.Context, upstream.UnmatchRequest) (model.UnmatchedReceipt, error) {
	return model.UnmatchedReceipt{}, nil
}

func (s *receiptAPIStub) DeleteUnmatchedReceipt(context.Context, int64) error {
	return nil
}

func (s *receiptAPIStub) GetRequest(_ context.Context, requestID int64) (model.PurchaseRequest, error) {
	return model.PurchaseRequest{RequestID: requestID}, nil
}

func newReceiptsRouter(t *testing.T, api *receiptAPIStub) chi.Router {
	t.Helper()

	service := matchsvc.NewService(matchsvc.Dependencies{API: api}, matchsvc.Config{
		SearchDebounce: time.Millisecond,
	})
	handler := NewReceiptsHandler(service)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := authsvc.WithIdentity(req.Context(), authsvc.Identity{
				Operator: "kim.op",
				SID:      "sid-1",
				Role:     "OPERATOR",
			})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/receipts/workflow", handler.Snapshot)
	r.Post("/receipts/scan", handler.Scan)
	r.Post("/receipts/workflow/select-receipt", handler.SelectReceipt)
	r.Post("/receipts/workflow/select-request", handler.SelectRequest)
	r.Post("/receipts/workflow/match", handler.ConfirmMatch)
	return r
}

func TestScanRejectsMissingFields(t *testing.T) {
	api := &receiptAPIStub{}
	router := newReceiptsRouter(t, api)

	req := httptest.NewRequest(http.MethodPost, "/receipts/scan", strings.NewReader(`{"trackingNumber":"123"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if api.scanCalls != 0 {
		t.Fatalf("scan calls = %d, want 0", api.scanCalls)
	}
}

func TestConfirmMatchWithoutSelectionsConflicts(t *testing.T) {
	api := &receiptAPIStub{}
	router := newReceiptsRouter(t, api)

	req := httptest.NewRequest(http.MethodPost, "/receipts/workflow/match", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if api.matchCalls != 0 {
		t.Fatalf("match calls = %d, want 0", api.matchCalls)
	}
}

func TestSelectThenMatchFlow(t *testing.T) {
	api := &receiptAPIStub{matched: model.MatchedReceipt{MatchedReceiptID: 55, RequestID: 42}}
	router := newReceiptsRouter(t, api)

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	if rr := post("/receipts/workflow/select-receipt", `{"unmatchedReceiptId":7,"trackingNumber":"123456789"}`); rr.Code != http.StatusOK {
		t.Fatalf("select receipt status = %d", rr.Code)
	}
	if rr := post("/receipts/workflow/select-request", `{"requestId":42}`); rr.Code != http.StatusOK {
		t.Fatalf("select request status = %d", rr.Code)
	}

	rr := post("/receipts/workflow/match", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("match status = %d, body %s", rr.Code, rr.Body.String())
	}
	if api.lastMatchReq.UnmatchedReceiptID != 7 || api.lastMatchReq.RequestID != 42 {
		t.Fatalf("match request = %+v", api.lastMatchReq)
	}
	if api.lastMatchReq.MatchedBy != "kim.op" {
		t.Fatalf("matchedBy = %q, want operator from identity", api.lastMatchReq.MatchedBy)
	}

	var snap dto.WorkflowSnapshotResponse
	snapReq := httptest.NewRequest(http.MethodGet, "/receipts/workflow", nil)
	snapRR := httptest.NewRecorder()
	router.ServeHTTP(snapRR, snapReq)
	if err := json.Unmarshal(snapRR.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.SelectedUnmatchedID != nil {
		t.Fatal("receipt selection should clear after a successful match")
	}
	if snap.SelectedRequestID == nil || *snap.SelectedRequestID != 42 {
		t.Fatal("request selection should survive a successful match")
	}
}

func TestMatchFailureRelaysUpstreamMessage(t *testing.T) {
	api := &receiptAPIStub{matchErr: &upstream.APIError{
		Code:       "E2001",
		Message:    "ALREADY_MATCHED",
		HTTPStatus: http.StatusOK,
	}}
	router := newReceiptsRouter(t, api)

	post := func(path, body string) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	post("/receipts/workflow/select-receipt", `{"unmatchedReceiptId":7}`)
	post("/receipts/workflow/select-request", `{"requestId":42}`)

	req := httptest.NewRequest(http.MethodPost, "/receipts/workflow/match", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "ALREADY_MATCHED") {
		t.Fatalf("body should carry the remote message verbatim, got %s", rr.Body.String())
	}
}

func TestWorkflowRoutesRequireIdentity(t *testing.T) {
	service := matchsvc.NewService(matchsvc.Dependencies{API: &receiptAPIStub{}}, matchsvc.Config{})
	handler := NewReceiptsHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/receipts/workflow", nil)
	rr := httptest.NewRecorder()
	handler.Snapshot(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
