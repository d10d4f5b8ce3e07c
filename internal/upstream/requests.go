package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
)

type RequestFilter struct {
	Status          enums.RequestStatus
	UserQuery       string
	EventID         int64
	NeedNegotiation *bool
	Page            int
	Size            int
}

type RequestPage struct {
	Items      []model.PurchaseRequest `json:"items"`
	TotalCount int                     `json:"totalCount"`
	Page       int                     `json:"page"`
}

func (c *Client) ListRequests(ctx context.Context, filter RequestFilter) (RequestPage, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.UserQuery != "" {
		query.Set("user", filter.UserQuery)
	}
	if filter.EventID > 0 {
		query.Set("eventId", strconv.FormatInt(filter.EventID, 10))
	}
	if filter.NeedNegotiation != nil {
		query.Set("needNegotiation", strconv.FormatBool(*filter.NeedNegotiation))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Size > 0 {
		query.Set("size", strconv.Itoa(filter.Size))
	}

	var page RequestPage
	if err := c.get(ctx, "/request", query, &page); err != nil {
		return RequestPage{}, err
	}
	return page, nil
}

func (c *Client) GetRequest(ctx context.Context, requestID int64) (model.PurchaseRequest, error) {
	var request model.PurchaseRequest
	if err := c.get(ctx, fmt.Sprintf("/request/%d", requestID), nil, &request); err != nil {
		return model.PurchaseRequest{}, err
	}
	return request, nil
}

type statusUpdateBody struct {
	Status    string `json:"status"`
	UpdatedBy string `json:"updatedBy"`
}

// UpdateRequestStatus transitions a request to the target status. Legality
// is decided upstream; callers gate the options they offer, nothing more.
func (c *Client) UpdateRequestStatus(ctx context.Context, requestID int64, status enums.RequestStatus, updatedBy string) (model.PurchaseRequest, error) {
	var request model.PurchaseRequest
	err := c.patch(ctx, fmt.Sprintf("/request/%d/status", requestID), statusUpdateBody{
		Status:    string(status),
		UpdatedBy: updatedBy,
	}, &request)
	if err != nil {
		return model.PurchaseRequest{}, err
	}
	return request, nil
}

type itemUpdateBody struct {
	Items []model.RequestItem `json:"items"`
}

func (c *Client) UpdateRequestItems(ctx context.Context, requestID int64, items []model.RequestItem) (model.PurchaseRequest, error) {
	var request model.PurchaseRequest
	if err := c.patch(ctx, fmt.Sprintf("/request/%d/items", requestID), itemUpdateBody{Items: items}, &request); err != nil {
		return model.PurchaseRequest{}, err
	}
	return request, nil
}

func (c *Client) DeleteRequest(ctx context.Context, requestID int64) error {
	return c.delete(ctx, fmt.Sprintf("/request/%d", requestID))
}
