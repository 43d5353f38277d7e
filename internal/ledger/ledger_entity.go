package ledger

import (
	"time"

	"go-hrms/internal/audit"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LeaveTypeSick   = "SICK"
	LeaveTypeCasual = "CASUAL"
	LeaveTypeEarned = "EARNED"
	LeaveTypeUnpaid = "UNPAID"
)

var LeaveTypes = []string{LeaveTypeSick, LeaveTypeCasual, LeaveTypeEarned, LeaveTypeUnpaid}

// DefaultAllocations is what a new employee starts with.
var DefaultAllocations = map[string]decimal.Decimal{
	LeaveTypeSick:   decimal.NewFromInt(10),
	LeaveTypeCasual: decimal.NewFromInt(12),
	LeaveTypeEarned: decimal.NewFromInt(15),
	LeaveTypeUnpaid: decimal.Zero,
}

func IsValidLeaveType(t string) bool {
	_, ok := DefaultAllocations[t]
	return ok
}

// LeaveBalance is one row per (employee, leave type). UsedLeaves only moves
// through Deduct and Refund.
type LeaveBalance struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type,priority:1"`
	LeaveType      string          `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_balances_employee_type,priority:2"`
	TotalAllocated decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	UsedLeaves     decimal.Decimal `gorm:"type:numeric(5,1);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) Remaining() decimal.Decimal {
	return b.TotalAllocated.Sub(b.UsedLeaves)
}

func (b LeaveBalance) AuditTable() string { return "leave_balances" }

func (b LeaveBalance) AuditKey() string { return b.ID.String() }

func (b LeaveBalance) AuditSnapshot() audit.Snapshot {
	return audit.Snapshot{
		"id":              b.ID,
		"employee_id":     b.EmployeeID,
		"leave_type":      b.LeaveType,
		"total_allocated": b.TotalAllocated,
		"used_leaves":     b.UsedLeaves,
	}
}
