package dto

import "github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"

type RequestListResponse struct {
	Items      []model.PurchaseRequest `json:"items"`
	TotalCount int                     `json:"totalCount"`
	Page       int                     `json:"page"`
}

type AllowedTransitionsResponse struct {
	Status  string   `json:"status"`
	Allowed []string `json:"allowed"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type UpdateItemsRequest struct {
	Items []model.RequestItem `json:"items"`
}

type DeleteResponse struct {
	OK bool `json:"ok"`
}
