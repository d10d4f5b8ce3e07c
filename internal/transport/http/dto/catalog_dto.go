package dto

import "github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"

type AlbumListResponse struct {
	Items []model.Album `json:"items"`
}

type EventListResponse struct {
	Items []model.Event `json:"items"`
}
