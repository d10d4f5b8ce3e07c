package dto

import "github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"

type SettlementListResponse struct {
	Items []model.Settlement `json:"items"`
}

type EligibleRequestsResponse struct {
	Items []model.PurchaseRequest `json:"items"`
}

type CreateSettlementRequest struct {
	RequestIDs []int64 `json:"requestIds"`
}

type SettlementStatusRequest struct {
	Status string `json:"status"`
}
