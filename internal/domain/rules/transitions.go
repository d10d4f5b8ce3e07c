package rules

import "github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"

// transitionTable mirrors the server-enforced lifecycle rules. The copy here
// only narrows what the admin UI offers; the server remains authoritative and
// may still reject a transition computed from a stale status.
var transitionTable = map[enums.RequestStatus][]enums.RequestStatus{
	enums.RequestStatusDraft:                  {enums.RequestStatusSubmitted, enums.RequestStatusNeedNegotiation},
	enums.RequestStatusNeedNegotiation:        {enums.RequestStatusSubmitted, enums.RequestStatusFinalNegotiation},
	enums.RequestStatusSubmitted:              {enums.RequestStatusShipped},
	enums.RequestStatusShipped:                {enums.RequestStatusCompleteTrackingNumber},
	enums.RequestStatusCompleteTrackingNumber: {enums.RequestStatusReceivedAndMatched},
	enums.RequestStatusReceivedAndMatched:     {enums.RequestStatusReviewing},
	enums.RequestStatusReviewing:              {enums.RequestStatusFinishReview, enums.RequestStatusFinalNegotiation},
	enums.RequestStatusFinalNegotiation:       {enums.RequestStatusSubmitted, enums.RequestStatusFinishReview},
	enums.RequestStatusFinishReview:           {enums.RequestStatusPendingSettlement},
	enums.RequestStatusPendingSettlement:      {enums.RequestStatusSettlementCompleted},
	enums.RequestStatusSettlementCompleted:    {},
}

// AllowedTransitions returns the ordered legal next statuses for the given
// status. Unknown statuses yield an empty list (fail closed).
func AllowedTransitions(status enums.RequestStatus) []enums.RequestStatus {
	next, ok := transitionTable[status]
	if !ok {
		return nil
	}
	out := make([]enums.RequestStatus, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to enums.RequestStatus) bool {
	for _, next := range transitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DeletableStatus reports whether an admin may delete a request outright.
// Deletion is restricted to requests that never left negotiation.
func DeletableStatus(status enums.RequestStatus) bool {
	return status == enums.RequestStatusDraft || status == enums.RequestStatusNeedNegotiation
}
