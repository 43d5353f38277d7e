package leave

import "time"

// LedgerEffect is what a status change does to the balance ledger.
type LedgerEffect int

const (
	NoLedgerEffect LedgerEffect = iota
	Deduct
	Refund
)

func (e LedgerEffect) String() string {
	switch e {
	case Deduct:
		return "deduct"
	case Refund:
		return "refund"
	default:
		return "none"
	}
}

// BillingEffect decides the ledger movement for from -> to. Entering APPROVED
// deducts, leaving it refunds, anything else is free.
func BillingEffect(from, to string) LedgerEffect {
	switch {
	case from != StatusApproved && to == StatusApproved:
		return Deduct
	case from == StatusApproved && to != StatusApproved:
		return Refund
	default:
		return NoLedgerEffect
	}
}

var transitions = map[string]map[string]bool{
	StatusPending: {
		StatusApproved:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusApproved: {
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusRejected: {
		StatusApproved: true,
	},
}

// CanTransition reports whether from -> to is a legal move. CANCELLED is
// final. A status never transitions to itself.
func CanTransition(from, to string) bool {
	return transitions[from][to]
}

// IsRevocation reports whether the move withdraws an earlier decision.
func IsRevocation(from string) bool {
	return from == StatusApproved || from == StatusRejected
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Overlaps reports whether two inclusive date ranges share a day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
