package finance

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"lendcore-backend/internal/domain/apperror"
	"lendcore-backend/internal/domain/loan"
)

var hundred = decimal.NewFromInt(100)

// Recompute derives the loan's monetary fields from recommended amount,
// recommended tenor and the resolved params. It is pure over its inputs:
// derived fields are written, never read, so repeated calls on an
// unchanged loan always produce identical output.
//
// Callers invoke it only when recommended amount or tenor change; it is
// deliberately not re-run on every save.
func Recompute(l *loan.Loan) error {
	if l.RecommendedTenor <= 0 {
		return apperror.Validation("recommendedTenor", "must be greater than zero")
	}
	if l.Params.NetPay <= 0 {
		return apperror.Validation("netPay", "must be greater than zero")
	}

	amount := decimal.NewFromFloat(l.RecommendedAmount)
	tenor := decimal.NewFromInt(int64(l.RecommendedTenor))

	upfrontFee := amount.
		Mul(decimal.NewFromFloat(l.Params.UpfrontFeePercent)).
		Div(hundred).
		Round(2)
	netValue := amount.
		Sub(upfrontFee).
		Sub(decimal.NewFromFloat(l.Params.TransferFee)).
		Round(2)

	// Fees eating the principal, or a non-positive fee total, can only be
	// produced by broken tenant/segment configuration. Log with full
	// context so an operator can find the offending parameters.
	if !netValue.IsPositive() || netValue.GreaterThanOrEqual(amount) {
		log.Printf("finance: invariant violation loan=%s tenant=%s amount=%s upfrontFee=%s transferFee=%.2f netValue=%s",
			l.LoanID, l.TenantID, amount, upfrontFee, l.Params.TransferFee, netValue)
		return apperror.Invariant("net value must stay between zero and the recommended amount")
	}

	repayment := amount.
		Mul(decimal.NewFromFloat(l.Params.InterestRate)).
		Div(hundred).
		Add(amount.Div(tenor)).
		Round(2)
	// Total repayment multiplies the already-rounded instalment so the
	// schedule sums to exactly tenor * instalment.
	totalRepayment := repayment.Mul(tenor).Round(2)
	dti := repayment.
		Div(decimal.NewFromFloat(l.Params.NetPay)).
		Mul(hundred).
		Round(2)

	l.Derived.UpfrontFee, _ = upfrontFee.Float64()
	l.Derived.NetValue, _ = netValue.Float64()
	l.Derived.Repayment, _ = repayment.Float64()
	l.Derived.TotalRepayment, _ = totalRepayment.Float64()
	l.Derived.DTI, _ = dti.Float64()
	return nil
}

// WholeYearsSince returns full years elapsed between from and now.
func WholeYearsSince(from, now time.Time) int {
	years := now.Year() - from.Year()
	if from.AddDate(years, 0, 0).After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// RefreshTenure recomputes age and service length on the loan from the
// customer's dates. Independent of the monetary path: it is triggered by
// customer record changes, not by loan edits.
func RefreshTenure(l *loan.Loan, birthDate, employmentStart time.Time, now time.Time) {
	l.Params.Age = WholeYearsSince(birthDate, now)
	l.Params.ServiceLength = WholeYearsSince(employmentStart, now)
}
