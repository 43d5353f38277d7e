package ledger

type ListBalancesQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type BalanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveType      string  `json:"leave_type"`
	TotalAllocated float64 `json:"total_allocated"`
	UsedLeaves     float64 `json:"used_leaves"`
	Remaining      float64 `json:"remaining"`
}

func toBalanceResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID.String(),
		EmployeeID:     b.EmployeeID.String(),
		LeaveType:      b.LeaveType,
		TotalAllocated: b.TotalAllocated.InexactFloat64(),
		UsedLeaves:     b.UsedLeaves.InexactFloat64(),
		Remaining:      b.Remaining().InexactFloat64(),
	}
}

func toBalanceResponses(balances []LeaveBalance) []BalanceResponse {
	out := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, toBalanceResponse(b))
	}
	return out
}
