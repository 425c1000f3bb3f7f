package loan

// CanDecide reports whether a privileged decision may move a loan from
// one status to another. Pending and on-hold loans can be moved to any
// other status; approved loans leave only through the programmatic
// maturity/liquidation path; everything else is a dead end.
func CanDecide(from, to Status) bool {
	if !to.Valid() || from == to {
		return false
	}
	switch from {
	case StatusPending, StatusOnHold:
		return true
	}
	return false
}

// CanClose reports whether a programmatic closure transition is legal.
// Disbursement/closure batch processes call this path; it is never
// reachable through the review workflow.
func CanClose(from, to Status) bool {
	return from == StatusApproved && (to == StatusMatured || to == StatusLiquidated)
}
