package events

import "time"

const (
	LeaveStatusTopic       = "hr.leave.status.v1"
	LeaveStatusChangedType = "leave_status_changed"
)

// LeaveStatusChangedEvent is emitted once per committed status transition.
// LedgerDelta is the signed change applied to used_leaves, "0" when the
// transition did not touch the ledger.
type LeaveStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveType   string    `json:"leave_type"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ActionBy    string    `json:"action_by,omitempty"`
	LedgerDelta string    `json:"ledger_delta"`
	OccurredAt  time.Time `json:"occurred_at"`
}
