package events

import "time"

const (
	EmployeeLifecycleTopic  = "hr.employee.lifecycle.v1"
	EmployeeCreatedType     = "employee_created"
	EmployeeDeactivatedType = "employee_deactivated"
)

type EmployeeLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	UserID       string    `json:"user_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
