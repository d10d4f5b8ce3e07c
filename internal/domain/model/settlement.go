package model

import (
	"time"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
)

type Settlement struct {
	ID          int64                  `json:"id"`
	Status      enums.SettlementStatus `json:"status"`
	UserName    string                 `json:"userName"`
	TotalAmount int64                  `json:"totalAmount"`
	RequestIDs  []int64                `json:"requestIds"`
	Items       []SettlementItem       `json:"items"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// SettlementItem carries one settled album line. TransferredToLogiProductID
// being set marks the one-way transfer into inventory stock as done.
type SettlementItem struct {
	ItemID                     int64  `json:"itemId"`
	AlbumID                    int64  `json:"albumId"`
	AlbumName                  string `json:"albumName"`
	Quantity                   int    `json:"quantity"`
	Amount                     int64  `json:"amount"`
	TransferredToLogiProductID *int64 `json:"transferredToLogiProductId,omitempty"`
}

func (i SettlementItem) Transferred() bool {
	return i.TransferredToLogiProductID != nil
}
