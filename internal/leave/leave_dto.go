package leave

import (
	"time"

	"go-hrms/internal/calendar"
)

type CreateLeaveRequest struct {
	LeaveType     string `json:"leave_type" binding:"required,oneof=SICK CASUAL EARNED UNPAID"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	IsHalfDay     bool   `json:"is_half_day"`
	HalfDayPeriod string `json:"half_day_period" binding:"omitempty,oneof=FIRST_HALF SECOND_HALF"`
	Reason        string `json:"reason" binding:"max=2000"`
}

// UpdateLeaveRequest edits a pending request. Omitted fields keep their value.
type UpdateLeaveRequest struct {
	LeaveType     *string `json:"leave_type" binding:"omitempty,oneof=SICK CASUAL EARNED UNPAID"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	IsHalfDay     *bool   `json:"is_half_day"`
	HalfDayPeriod *string `json:"half_day_period" binding:"omitempty,oneof=FIRST_HALF SECOND_HALF"`
	Reason        *string `json:"reason" binding:"omitempty,max=2000"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type ListLeavesQuery struct {
	Status string `form:"status"`
}

type LeaveResponse struct {
	ID               string              `json:"id"`
	EmployeeID       string              `json:"employee_id"`
	LeaveType        string              `json:"leave_type"`
	StartDate        string              `json:"start_date"`
	EndDate          string              `json:"end_date"`
	IsHalfDay        bool                `json:"is_half_day"`
	HalfDayPeriod    *string             `json:"half_day_period,omitempty"`
	Reason           string              `json:"reason"`
	Status           string              `json:"status"`
	ActionBy         *string             `json:"action_by,omitempty"`
	ActionAt         *string             `json:"action_at,omitempty"`
	RejectionReason  *string             `json:"rejection_reason,omitempty"`
	BilledDays       float64             `json:"billed_days"`
	Duration         *float64            `json:"duration,omitempty"`
	ExcludedHolidays []calendar.Excluded `json:"excluded_holidays,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format(calendar.DateLayout),
		EndDate:         l.EndDate.Format(calendar.DateLayout),
		IsHalfDay:       l.IsHalfDay,
		HalfDayPeriod:   l.HalfDayPeriod,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		BilledDays:      l.BilledDays.InexactFloat64(),
		CreatedAt:       l.CreatedAt,
	}
	if l.ActionBy != nil {
		v := l.ActionBy.String()
		resp.ActionBy = &v
	}
	if l.ActionAt != nil {
		v := l.ActionAt.Format(time.RFC3339)
		resp.ActionAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
