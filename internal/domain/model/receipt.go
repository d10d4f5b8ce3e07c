package model

import "time"

// UnmatchedReceipt is a scanned package the server could not tie to any
// request. It stays in the unmatched pool until an operator matches it.
type UnmatchedReceipt struct {
	ID              int64     `json:"id"`
	TrackingNumber  string    `json:"trackingNumber"`
	ShippingCompany string    `json:"shippingCompany"`
	ReceivedBy      string    `json:"receivedBy"`
	Memo            string    `json:"memo,omitempty"`
	ScannedAt       time.Time `json:"scannedAt"`
}

// MatchedReceipt is a receipt bound to exactly one request. MatchedReceiptID
// identifies the match record itself; ShippingID is the post-match shipping
// row on the request.
type MatchedReceipt struct {
	MatchedReceiptID int64     `json:"matchedReceiptId"`
	ShippingID       int64     `json:"shippingId"`
	RequestID        int64     `json:"requestId"`
	TrackingNumber   string    `json:"trackingNumber"`
	ShippingCompany  string    `json:"shippingCompany"`
	MatchedBy        string    `json:"matchedBy"`
	MatchedAt        time.Time `json:"matchedAt"`
}

// ScanResult is the server's answer to a tracking-number scan. When Matched
// is false the server has created an unmatched-receipt record instead.
type ScanResult struct {
	Matched            bool   `json:"matched"`
	RequestID          int64  `json:"requestId,omitempty"`
	UnmatchedReceiptID int64  `json:"unmatchedReceiptId,omitempty"`
	TrackingNumber     string `json:"trackingNumber"`
	Message            string `json:"message,omitempty"`
}

// RequestCandidate is a search hit offered for manual matching.
type RequestCandidate struct {
	RequestID int64  `json:"requestId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	UserPhone string `json:"userPhone"`
	Status    string `json:"status"`
}
