package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
)

func (c *Client) ListSettlements(ctx context.Context, status enums.SettlementStatus) ([]model.Settlement, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var out struct {
		Items []model.Settlement `json:"items"`
	}
	if err := c.get(ctx, "/settlement", query, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) GetSettlement(ctx context.Context, settlementID int64) (model.Settlement, error) {
	var settlement model.Settlement
	if err := c.get(ctx, fmt.Sprintf("/settlement/%d", settlementID), nil, &settlement); err != nil {
		return model.Settlement{}, err
	}
	return settlement, nil
}

// ListEligibleRequests returns requests that finished review and await
// settlement creation.
func (c *Client) ListEligibleRequests(ctx context.Context) ([]model.PurchaseRequest, error) {
	var out struct {
		Items []model.PurchaseRequest `json:"items"`
	}
	if err := c.get(ctx, "/settlement/eligible", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type CreateSettlementRequest struct {
	RequestIDs []int64 `json:"requestIds"`
	CreatedBy  string  `json:"createdBy"`
}

func (c *Client) CreateSettlement(ctx context.Context, create CreateSettlementRequest) (model.Settlement, error) {
	var settlement model.Settlement
	if err := c.post(ctx, "/settlement", create, &settlement); err != nil {
		return model.Settlement{}, err
	}
	return settlement, nil
}

type settlementStatusBody struct {
	Status    string `json:"status"`
	UpdatedBy string `json:"updatedBy"`
}

func (c *Client) UpdateSettlementStatus(ctx context.Context, settlementID int64, status enums.SettlementStatus, updatedBy string) (model.Settlement, error) {
	var settlement model.Settlement
	err := c.patch(ctx, fmt.Sprintf("/settlement/%d/status", settlementID), settlementStatusBody{
		Status:    string(status),
		UpdatedBy: updatedBy,
	}, &settlement)
	if err != nil {
		return model.Settlement{}, err
	}
	return settlement, nil
}

type completeSettlementBody struct {
	CompletedBy string `json:"completedBy"`
}

func (c *Client) CompleteSettlement(ctx context.Context, settlementID int64, completedBy string) (model.Settlement, error) {
	var settlement model.Settlement
	err := c.post(ctx, fmt.Sprintf("/settlement/%d/complete", settlementID), completeSettlementBody{
		CompletedBy: completedBy,
	}, &settlement)
	if err != nil {
		return model.Settlement{}, err
	}
	return settlement, nil
}

func (c *Client) DeleteSettlement(ctx context.Context, settlementID int64) error {
	return c.delete(ctx, fmt.Sprintf("/settlement/%d", settlementID))
}

type transferItemBody struct {
	TransferredBy string `json:"transferredBy"`
}

// TransferSettlementItem moves one settled item into inventory stock. The
// operation is one-way; the server reports the resulting logi product id.
func (c *Client) TransferSettlementItem(ctx context.Context, settlementID, itemID int64, transferredBy string) (model.SettlementItem, error) {
	var item model.SettlementItem
	path := fmt.Sprintf("/settlement/%d/items/%d/transfer", settlementID, itemID)
	if err := c.post(ctx, path, transferItemBody{TransferredBy: transferredBy}, &item); err != nil {
		return model.SettlementItem{}, err
	}
	return item, nil
}
