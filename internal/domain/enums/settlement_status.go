package enums

import "strings"

type SettlementStatus string

const (
	SettlementStatusPending    SettlementStatus = "PENDING"
	SettlementStatusInProgress SettlementStatus = "IN_PROGRESS"
	SettlementStatusCompleted  SettlementStatus = "COMPLETED"
	SettlementStatusCancelled  SettlementStatus = "CANCELLED"
	SettlementStatusHold       SettlementStatus = "HOLD"
)

var settlementStatuses = map[SettlementStatus]struct{}{
	SettlementStatusPending:    {},
	SettlementStatusInProgress: {},
	SettlementStatusCompleted:  {},
	SettlementStatusCancelled:  {},
	SettlementStatusHold:       {},
}

func ParseSettlementStatus(raw string) (SettlementStatus, bool) {
	status := SettlementStatus(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := settlementStatuses[status]
	return status, ok
}

func (s SettlementStatus) Valid() bool {
	_, ok := settlementStatuses[s]
	return ok
}
