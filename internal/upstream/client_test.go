package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, server.Client()), server
}

func TestEnvelopeErrorInOKBodyRaises(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"errorCode":"E1","customMessage":"duplicate"}`))
	})

	_, err := client.GetRequest(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "E1" {
		t.Fatalf("unexpected code: got %q want %q", apiErr.Code, "E1")
	}
	if apiErr.Message != "duplicate" {
		t.Fatalf("customMessage must win: got %q", apiErr.Message)
	}
	if apiErr.HTTPStatus != http.StatusOK {
		t.Fatalf("unexpected transport status: %d", apiErr.HTTPStatus)
	}
}

func TestEnvelopeFallsBackToErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"errorMessage":"ALREADY_MATCHED"}`))
	})

	_, err := client.MatchReceipt(context.Background(), MatchRequest{UnmatchedReceiptID: 5, RequestID: 42, MatchedBy: "kim"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "ALREADY_MATCHED" {
		t.Fatalf("server message must pass through verbatim: got %q", apiErr.Message)
	}
}

func TestCleanBodyIsReturnedAsData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logi/album-purchase/admin/request/7" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"requestId": 7,
			"status":    "REVIEWING",
		})
	})

	request, err := client.GetRequest(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.RequestID != 7 || request.Status != enums.RequestStatusReviewing {
		t.Fatalf("unexpected request: %+v", request)
	}
}

func TestNon2xxWithoutEnvelopeBecomesGenericError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListUnmatchedReceipts(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.HTTPStatus != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", apiErr.HTTPStatus)
	}
}

func TestNon2xxWithEnvelopeKeepsServerMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"errorCode":"ILLEGAL_TRANSITION","errorMessage":"cannot move DRAFT to SHIPPED"}`))
	})

	_, err := client.UpdateRequestStatus(context.Background(), 3, enums.RequestStatusShipped, "kim")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "ILLEGAL_TRANSITION" || apiErr.Message != "cannot move DRAFT to SHIPPED" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestScanSendsExpectedBody(t *testing.T) {
	var received ScanRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/logi/album-purchase/admin/receipt/scan" {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode scan body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"matched":            false,
			"unmatchedReceiptId": 5,
			"trackingNumber":     "123456789",
		})
	})

	result, err := client.ScanReceipt(context.Background(), ScanRequest{
		TrackingNumber:  "123456789",
		ShippingCompany: "CJ",
		ReceivedBy:      "admin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.TrackingNumber != "123456789" || received.ShippingCompany != "CJ" {
		t.Fatalf("unexpected scan body: %+v", received)
	}
	if result.Matched || result.UnmatchedReceiptID != 5 {
		t.Fatalf("unexpected scan result: %+v", result)
	}
}

func TestUnmatchPostsToUnmatchedReceiptPath(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             5,
			"trackingNumber": "123456789",
		})
	})

	receipt, err := client.UnmatchReceipt(context.Background(), UnmatchRequest{
		MatchedReceiptID: 5,
		UnmatchedBy:      "kim",
		Reason:           "wrong box",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/logi/album-purchase/admin/receipt/unmatched/5/unmatch" {
		t.Fatalf("unexpected call: %s %s", gotMethod, gotPath)
	}
	if receipt.ID != 5 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestDeleteRequestUsesDeleteVerb(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	if err := client.DeleteRequest(context.Background(), 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/logi/album-purchase/admin/request/11" {
		t.Fatalf("unexpected call: %s %s", gotMethod, gotPath)
	}
}
