package loan

import "testing"

func TestCanDecide(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDenied, true},
		{StatusPending, StatusOnHold, true},
		{StatusPending, StatusDiscontinued, true},
		{StatusOnHold, StatusApproved, true},
		{StatusOnHold, StatusDenied, true},
		{StatusPending, StatusPending, false}, // no self transition
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusDenied, false},
		{StatusDenied, StatusApproved, false},
		{StatusMatured, StatusApproved, false},
		{StatusLiquidated, StatusPending, false},
		{StatusPending, Status("bogus"), false},
	}
	for _, c := range cases {
		if got := CanDecide(c.from, c.to); got != c.want {
			t.Errorf("CanDecide(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanClose(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusApproved, StatusMatured, true},
		{StatusApproved, StatusLiquidated, true},
		{StatusApproved, StatusDiscontinued, false},
		{StatusPending, StatusMatured, false},
		{StatusOnHold, StatusLiquidated, false},
		{StatusMatured, StatusLiquidated, false},
	}
	for _, c := range cases {
		if got := CanClose(c.from, c.to); got != c.want {
			t.Errorf("CanClose(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	for _, s := range []Status{StatusMatured, StatusLiquidated, StatusDiscontinued} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusApproved, StatusDenied, StatusOnHold} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}

	// discontinued is terminal for the review pathway but the loan record
	// itself is not frozen
	l := &Loan{Status: StatusDiscontinued}
	if l.Immutable() {
		t.Error("a discontinued loan is terminal but not immutable")
	}
	for _, s := range []Status{StatusMatured, StatusLiquidated} {
		if !(&Loan{Status: s}).Immutable() {
			t.Errorf("a %s loan should be immutable", s)
		}
	}

	if !StatusApproved.RequiresRemark() || !StatusDenied.RequiresRemark() {
		t.Error("approval and denial must carry a remark")
	}
	if StatusOnHold.RequiresRemark() {
		t.Error("on_hold does not require a remark")
	}
}
