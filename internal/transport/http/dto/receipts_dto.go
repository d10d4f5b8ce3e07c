package dto

import "github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"

type ScanRequest struct {
	TrackingNumber  string `json:"trackingNumber"`
	ShippingCompany string `json:"shippingCompany"`
	Memo            string `json:"memo,omitempty"`
}

type SelectReceiptRequest struct {
	UnmatchedReceiptID int64  `json:"unmatchedReceiptId"`
	TrackingNumber     string `json:"trackingNumber,omitempty"`
}

type SelectRequestRequest struct {
	RequestID int64 `json:"requestId"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SetTabRequest struct {
	Tab string `json:"tab"`
}

type UnmatchRequest struct {
	MatchedReceiptID int64  `json:"matchedReceiptId"`
	RequestID        int64  `json:"requestId"`
	Reason           string `json:"reason,omitempty"`
}

type CandidatesResponse struct {
	Items []model.RequestCandidate `json:"items"`
}

type UnmatchedPoolResponse struct {
	Items []model.UnmatchedReceipt `json:"items"`
}

type MatchedListResponse struct {
	Items []model.MatchedReceipt `json:"items"`
}

type WorkflowSnapshotResponse struct {
	Operator            string                   `json:"operator"`
	SelectedUnmatchedID *int64                   `json:"selectedUnmatchedId"`
	SelectedRequestID   *int64                   `json:"selectedRequestId"`
	ActiveTab           string                   `json:"activeTab"`
	MatchInFlight       bool                     `json:"matchInFlight"`
	Candidates          []model.RequestCandidate `json:"candidates"`
}
