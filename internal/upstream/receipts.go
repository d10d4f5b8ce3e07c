package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
)

type ScanRequest struct {
	TrackingNumber  string `json:"trackingNumber"`
	ShippingCompany string `json:"shippingCompany"`
	ReceivedBy      string `json:"receivedBy"`
	Memo            string `json:"memo,omitempty"`
}

// ScanReceipt registers a physically scanned package. The server either
// auto-matches it against a registered tracking number or parks it in the
// unmatched pool.
func (c *Client) ScanReceipt(ctx context.Context, scan ScanRequest) (model.ScanResult, error) {
	var result model.ScanResult
	if err := c.post(ctx, "/receipt/scan", scan, &result); err != nil {
		return model.ScanResult{}, err
	}
	return result, nil
}

func (c *Client) ListMatchedReceipts(ctx context.Context) ([]model.MatchedReceipt, error) {
	var out struct {
		Items []model.MatchedReceipt `json:"items"`
	}
	if err := c.get(ctx, "/receipt/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListUnmatchedReceipts(ctx context.Context) ([]model.UnmatchedReceipt, error) {
	var out struct {
		Items []model.UnmatchedReceipt `json:"items"`
	}
	if err := c.get(ctx, "/receipt/unmatched", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// SearchRequestCandidates runs a free-text search over name/email/phone and
// returns a bounded candidate set for manual matching.
func (c *Client) SearchRequestCandidates(ctx context.Context, query string, limit int) ([]model.RequestCandidate, error) {
	values := url.Values{}
	values.Set("query", query)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Items []model.RequestCandidate `json:"items"`
	}
	if err := c.get(ctx, "/receipt/search", values, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type MatchRequest struct {
	UnmatchedReceiptID int64  `json:"unmatchedReceiptId"`
	RequestID          int64  `json:"requestId"`
	MatchedBy          string `json:"matchedBy"`
	TrackingNumber     string `json:"trackingNumber,omitempty"`
}

func (c *Client) MatchReceipt(ctx context.Context, match MatchRequest) (model.MatchedReceipt, error) {
	var matched model.MatchedReceipt
	err := c.post(ctx, fmt.Sprintf("/receipt/unmatched/%d/match", match.UnmatchedReceiptID), match, &matched)
	if err != nil {
		return model.MatchedReceipt{}, err
	}
	return matched, nil
}

type UnmatchRequest struct {
	MatchedReceiptID int64  `json:"matchedReceiptId"`
	UnmatchedBy      string `json:"unmatchedBy"`
	Reason           string `json:"reason,omitempty"`
}

// UnmatchReceipt reverses a match, returning the receipt to the unmatched
// pool.
func (c *Client) UnmatchReceipt(ctx context.Context, unmatch UnmatchRequest) (model.UnmatchedReceipt, error) {
	var receipt model.UnmatchedReceipt
	err := c.post(ctx, fmt.Sprintf("/receipt/unmatched/%d/unmatch", unmatch.MatchedReceiptID), unmatch, &receipt)
	if err != nil {
		return model.UnmatchedReceipt{}, err
	}
	return receipt, nil
}

// DeleteUnmatchedReceipt removes a receipt that was scanned in error. Only
// unmatched receipts may be deleted; matched ones must be unmatched first.
func (c *Client) DeleteUnmatchedReceipt(ctx context.Context, unmatchedReceiptID int64) error {
	return c.delete(ctx, fmt.Sprintf("/receipt/unmatched/%d", unmatchedReceiptID))
}
