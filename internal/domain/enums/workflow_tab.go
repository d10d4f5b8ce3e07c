package enums

type WorkflowTab string

const (
	WorkflowTabScan      WorkflowTab = "scan"
	WorkflowTabUnmatched WorkflowTab = "unmatched"
	WorkflowTabMatched   WorkflowTab = "matched"
)

func (t WorkflowTab) Valid() bool {
	switch t {
	case WorkflowTabScan, WorkflowTabUnmatched, WorkflowTabMatched:
		return true
	}
	return false
}
