package validation

import (
	"fmt"

	"lendcore-backend/internal/domain/apperror"
	"lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/loanparams"
)

// CreateInput is the shape validated before a loan is originated.
type CreateInput struct {
	Amount   float64
	Tenor    int
	NetPay   float64
	LoanType string
}

// EditInput treats every field as optional; nil means "not in the patch".
type EditInput struct {
	Amount            *float64
	Tenor             *int
	RecommendedAmount *float64
	RecommendedTenor  *int
	LoanType          *string
	Status            *loan.Status
	Remark            *loan.Remark
	AgentID           *string
	CreditOfficerID   *string
	NetPay            *float64
}

// LoanValidator enforces tenant/segment-specific numeric bounds on a
// structurally fixed loan schema. Bounds are resolved at request time,
// which is why validators are built per call instead of being package
// globals. Both methods return (value, error) rather than panicking;
// callers branch on the error.
type LoanValidator struct {
	params loanparams.Params
}

// BuildLoanValidator wraps an already-resolved parameter set.
func BuildLoanValidator(p loanparams.Params) *LoanValidator {
	return &LoanValidator{params: p}
}

func (v *LoanValidator) ValidateCreate(in CreateInput) (CreateInput, error) {
	if err := v.checkAmount("amount", in.Amount); err != nil {
		return in, err
	}
	if err := v.checkTenor("tenor", in.Tenor); err != nil {
		return in, err
	}
	if in.NetPay < v.params.MinNetPay {
		return in, apperror.Validationf("netPay", "must be at least %.2f", v.params.MinNetPay)
	}
	if in.LoanType == "" {
		return in, apperror.Validation("loanType", "is required")
	}
	return in, nil
}

func (v *LoanValidator) ValidateEdit(in EditInput) (EditInput, error) {
	if in.Amount != nil {
		if err := v.checkAmount("amount", *in.Amount); err != nil {
			return in, err
		}
	}
	if in.Tenor != nil {
		if err := v.checkTenor("tenor", *in.Tenor); err != nil {
			return in, err
		}
	}
	if in.RecommendedAmount != nil {
		if err := v.checkAmount("recommendedAmount", *in.RecommendedAmount); err != nil {
			return in, err
		}
	}
	if in.RecommendedTenor != nil {
		if err := v.checkTenor("recommendedTenor", *in.RecommendedTenor); err != nil {
			return in, err
		}
	}
	if in.NetPay != nil && *in.NetPay < v.params.MinNetPay {
		return in, apperror.Validationf("netPay", "must be at least %.2f", v.params.MinNetPay)
	}
	if in.LoanType != nil && *in.LoanType == "" {
		return in, apperror.Validation("loanType", "must not be empty")
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return in, apperror.Validationf("status", "unknown status %q", string(*in.Status))
		}
		// Remark is conditionally required by the status in the same patch.
		if in.Status.RequiresRemark() && in.Remark == nil {
			return in, apperror.Validationf("remark", "is required when status is %s", string(*in.Status))
		}
	}
	if in.Remark != nil && !in.Remark.Valid() {
		return in, apperror.Validationf("remark", "unknown remark %q", string(*in.Remark))
	}
	return in, nil
}

func (v *LoanValidator) checkAmount(field string, amount float64) error {
	if amount < v.params.MinAmount || amount > v.params.MaxAmount {
		return apperror.Validation(field, fmt.Sprintf("must be between %.2f and %.2f",
			v.params.MinAmount, v.params.MaxAmount))
	}
	return nil
}

func (v *LoanValidator) checkTenor(field string, tenor int) error {
	if tenor <= 0 {
		return apperror.Validation(field, "must be greater than zero")
	}
	if tenor < v.params.MinTenor || tenor > v.params.MaxTenor {
		return apperror.Validation(field, fmt.Sprintf("must be between %d and %d",
			v.params.MinTenor, v.params.MaxTenor))
	}
	return nil
}
