package model

import (
	"time"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
)

type PurchaseRequest struct {
	RequestID       int64                `json:"requestId"`
	Status          enums.RequestStatus  `json:"status"`
	UserName        string               `json:"userName"`
	UserEmail       string               `json:"userEmail"`
	UserPhone       string               `json:"userPhone"`
	EventID         int64                `json:"eventId"`
	NeedNegotiation bool                 `json:"needNegotiation"`
	Items           []RequestItem        `json:"items"`
	Shippings       []ShippingInfo       `json:"shippings"`
	TrackingNumbers []TrackingNumberInfo `json:"trackingNumbers"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type RequestItem struct {
	ItemID    int64  `json:"itemId"`
	AlbumID   int64  `json:"albumId"`
	AlbumName string `json:"albumName"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// ShippingInfo is a physically received package already linked to a request.
type ShippingInfo struct {
	ShippingID      int64     `json:"shippingId"`
	TrackingNumber  string    `json:"trackingNumber"`
	ShippingCompany string    `json:"shippingCompany"`
	ReceivedBy      string    `json:"receivedBy"`
	ReceivedAt      time.Time `json:"receivedAt"`
}

type TrackingNumberInfo struct {
	ID              int64  `json:"id"`
	TrackingNumber  string `json:"trackingNumber"`
	ShippingCompany string `json:"shippingCompany"`
}
