package enums

import "strings"

type RequestStatus string

const (
	RequestStatusDraft                  RequestStatus = "DRAFT"
	RequestStatusNeedNegotiation        RequestStatus = "NEED_NEGOTIATION"
	RequestStatusSubmitted              RequestStatus = "SUBMITTED"
	RequestStatusShipped                RequestStatus = "SHIPPED"
	RequestStatusCompleteTrackingNumber RequestStatus = "COMPLETE_TRACKING_NUMBER"
	RequestStatusReceivedAndMatched     RequestStatus = "RECEIVED_AND_MATCHED"
	RequestStatusReviewing              RequestStatus = "REVIEWING"
	RequestStatusFinalNegotiation       RequestStatus = "FINAL_NEGOTIATION"
	RequestStatusFinishReview           RequestStatus = "FINISH_REVIEW"
	RequestStatusPendingSettlement      RequestStatus = "PENDING_SETTLEMENT"
	RequestStatusSettlementCompleted    RequestStatus = "SETTLEMENT_COMPLETED"
)

var requestStatuses = map[RequestStatus]struct{}{
	RequestStatusDraft:                  {},
	RequestStatusNeedNegotiation:        {},
	RequestStatusSubmitted:              {},
	RequestStatusShipped:                {},
	RequestStatusCompleteTrackingNumber: {},
	RequestStatusReceivedAndMatched:     {},
	RequestStatusReviewing:              {},
	RequestStatusFinalNegotiation:       {},
	RequestStatusFinishReview:           {},
	RequestStatusPendingSettlement:      {},
	RequestStatusSettlementCompleted:    {},
}

func ParseRequestStatus(raw string) (RequestStatus, bool) {
	status := RequestStatus(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := requestStatuses[status]
	return status, ok
}

func (s RequestStatus) Valid() bool {
	_, ok := requestStatuses[s]
	return ok
}
