package leave

import (
	"time"

	"go-hrms/internal/audit"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"

	FirstHalf  = "FIRST_HALF"
	SecondHalf = "SECOND_HALF"
)

// LeaveRequest is one application for leave. BilledDays is the amount
// currently deducted from the ledger for it: non-zero only while APPROVED.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates,priority:1"`

	LeaveType     string    `gorm:"type:varchar(20);not null"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates,priority:2"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates,priority:3"`
	IsHalfDay     bool      `gorm:"not null;default:false"`
	HalfDayPeriod *string   `gorm:"type:varchar(20)"`
	Reason        string    `gorm:"type:text"`

	Status          string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ActionBy        *uuid.UUID      `gorm:"type:uuid"`
	ActionAt        *time.Time      `gorm:"type:timestamptz"`
	RejectionReason *string         `gorm:"type:text"`
	BilledDays      decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l LeaveRequest) AuditTable() string { return "leave_requests" }

func (l LeaveRequest) AuditKey() string { return l.ID.String() }

func (l LeaveRequest) AuditSnapshot() audit.Snapshot {
	return audit.Snapshot{
		"id":               l.ID,
		"employee_id":      l.EmployeeID,
		"leave_type":       l.LeaveType,
		"start_date":       l.StartDate,
		"end_date":         l.EndDate,
		"is_half_day":      l.IsHalfDay,
		"half_day_period":  l.HalfDayPeriod,
		"reason":           l.Reason,
		"status":           l.Status,
		"action_by":        l.ActionBy,
		"rejection_reason": l.RejectionReason,
		"billed_days":      l.BilledDays,
	}
}

// Owner is the slice of the employee record the state machine needs.
type Owner struct {
	ID        uuid.UUID
	ManagerID *uuid.UUID
	Region    string
}
