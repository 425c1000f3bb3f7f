package loan

import (
	"context"
	"time"

	"lendcore-backend/internal/domain/apperror"
	"lendcore-backend/internal/domain/identity"
	"lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/finance"
	"lendcore-backend/internal/loanparams"
	"lendcore-backend/internal/validation"
	"lendcore-backend/pkg/id"
)

type Usecase struct {
	uow      uow.UnitOfWork
	resolver *loanparams.Resolver
}

func NewUsecase(tx uow.UnitOfWork, resolver *loanparams.Resolver) *Usecase {
	return &Usecase{uow: tx, resolver: resolver}
}

// Create originates a loan. Recommended amount/tenor are seeded from the
// requested amount/tenor, params are snapshotted from the resolved
// tenant+segment configuration, and the financial engine runs once.
func (u *Usecase) Create(ctx context.Context, actor identity.Actor, in CreateLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Customers.GetByCustomerID(ctx, actor.TenantID, in.CustomerID)
		if err != nil {
			return apperror.NotFound("customer not found")
		}

		params, err := u.resolver.Resolve(ctx, actor.TenantID, c.SegmentID)
		if err != nil {
			return err
		}
		v := validation.BuildLoanValidator(params)
		if _, err := v.ValidateCreate(validation.CreateInput{
			Amount:   in.Amount,
			Tenor:    in.Tenor,
			NetPay:   in.NetPay,
			LoanType: in.LoanType,
		}); err != nil {
			return err
		}

		now := time.Now().UTC()
		l := &loan.Loan{
			LoanID:            id.NewID32(),
			TenantID:          actor.TenantID,
			CustomerID:        c.CustomerID,
			Amount:            in.Amount,
			Tenor:             in.Tenor,
			RecommendedAmount: in.Amount,
			RecommendedTenor:  in.Tenor,
			LoanType:          in.LoanType,
			Status:            loan.StatusPending,
			AgentID:           in.AgentID,
			CreditOfficerID:   in.CreditOfficerID,
			Params: loan.Params{
				InterestRate:      params.InterestRate,
				UpfrontFeePercent: params.UpfrontFeePercent,
				TransferFee:       params.TransferFee,
				MinNetPay:         params.MinNetPay,
				MaxDTI:            params.MaxDTI,
				NetPay:            in.NetPay,
			},
			StatusUpdatedAt: now,
		}
		finance.RefreshTenure(l, c.BirthDate, c.EmploymentStartDate, now)

		if err := finance.Recompute(l); err != nil {
			return err
		}
		if l.Derived.DTI > l.Params.MaxDTI {
			return apperror.Validationf("dti", "%.2f exceeds the maximum of %.2f", l.Derived.DTI, l.Params.MaxDTI)
		}

		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Edit applies a direct (non-review) patch. Only actors with the
// direct-write capability, or the credit officer assigned to the loan,
// may call it; everyone else goes through the review workflow.
func (u *Usecase) Edit(ctx context.Context, actor identity.Actor, loanID string, in EditLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := u.editTx(ctx, r, actor, loanID, in, true)
		if err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ApplyAlteration replays a review request's stored alteration onto the
// live loan, inside the caller's transaction. The loan's own validation,
// lifecycle rules and the financial engine all re-run here.
func (u *Usecase) ApplyAlteration(ctx context.Context, r uow.Repos, actor identity.Actor, loanID string, alt map[string]any) error {
	in, err := decodeLoanAlteration(alt)
	if err != nil {
		return err
	}
	_, err = u.editTx(ctx, r, actor, loanID, in, false)
	return err
}

func (u *Usecase) editTx(ctx context.Context, r uow.Repos, actor identity.Actor, loanID string, in EditLoanInput, direct bool) (*loan.Loan, error) {
	l, err := r.Loans.GetByLoanID(ctx, actor.TenantID, loanID)
	if err != nil {
		return nil, apperror.NotFound("loan not found")
	}
	if direct && !canEditDirectly(actor, l) {
		return nil, apperror.Validation("actor", "role cannot edit loans directly; submit a review request")
	}
	if l.Immutable() {
		return nil, apperror.Conflict("loan is " + string(l.Status) + " and can no longer be edited")
	}
	if l.Status.Terminal() {
		return nil, apperror.Conflict("loan is " + string(l.Status) + "; edits are closed")
	}
	if l.Locked {
		return nil, apperror.Conflict("loan is locked by a downstream process")
	}

	c, err := r.Customers.GetByCustomerID(ctx, actor.TenantID, l.CustomerID)
	if err != nil {
		return nil, apperror.NotFound("customer not found")
	}
	params, err := u.resolver.Resolve(ctx, actor.TenantID, c.SegmentID)
	if err != nil {
		return nil, err
	}
	v := validation.BuildLoanValidator(params)
	if _, err := v.ValidateEdit(validation.EditInput{
		Amount:            in.Amount,
		Tenor:             in.Tenor,
		RecommendedAmount: in.RecommendedAmount,
		RecommendedTenor:  in.RecommendedTenor,
		LoanType:          in.LoanType,
		Status:            in.Status,
		Remark:            in.Remark,
		AgentID:           in.AgentID,
		CreditOfficerID:   in.CreditOfficerID,
		NetPay:            in.NetPay,
	}); err != nil {
		return nil, err
	}

	prevRecommendedAmount := l.RecommendedAmount
	prevRecommendedTenor := l.RecommendedTenor

	if in.Amount != nil {
		l.Amount = *in.Amount
		l.RecommendedAmount = *in.Amount // re-seed on amount change
	}
	if in.Tenor != nil {
		l.Tenor = *in.Tenor
		l.RecommendedTenor = *in.Tenor // re-seed on tenor change
	}
	if in.RecommendedAmount != nil {
		l.RecommendedAmount = *in.RecommendedAmount
	}
	if in.RecommendedTenor != nil {
		l.RecommendedTenor = *in.RecommendedTenor
	}
	if in.LoanType != nil {
		l.LoanType = *in.LoanType
	}
	if in.AgentID != nil {
		l.AgentID = *in.AgentID
	}
	if in.CreditOfficerID != nil {
		l.CreditOfficerID = *in.CreditOfficerID
	}
	if in.NetPay != nil {
		l.Params.NetPay = *in.NetPay
	}
	if in.Remark != nil {
		l.Remark = *in.Remark
	}
	if in.Status != nil && *in.Status != l.Status {
		if !loan.CanDecide(l.Status, *in.Status) {
			return nil, apperror.Validationf("status", "cannot move a %s loan to %s", string(l.Status), string(*in.Status))
		}
		l.Status = *in.Status
		l.StatusUpdatedAt = time.Now().UTC()
	}

	// The engine runs only when its inputs moved; saves that leave the
	// recommended figures alone keep their previous derived fields.
	if l.RecommendedAmount != prevRecommendedAmount || l.RecommendedTenor != prevRecommendedTenor || in.NetPay != nil {
		if err := finance.Recompute(l); err != nil {
			return nil, err
		}
		if l.Derived.DTI > l.Params.MaxDTI {
			return nil, apperror.Validationf("dti", "%.2f exceeds the maximum of %.2f", l.Derived.DTI, l.Params.MaxDTI)
		}
	}

	if err := r.Loans.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Mature and Liquidate are the programmatic closure transitions used by
// external disbursement/closure processes. They bypass edit validation
// but still honor the transition table.
func (u *Usecase) Mature(ctx context.Context, actor identity.Actor, loanID string) (*LoanDTO, error) {
	return u.close(ctx, actor, loanID, loan.StatusMatured)
}

func (u *Usecase) Liquidate(ctx context.Context, actor identity.Actor, loanID string) (*LoanDTO, error) {
	return u.close(ctx, actor, loanID, loan.StatusLiquidated)
}

func (u *Usecase) close(ctx context.Context, actor identity.Actor, loanID string, to loan.Status) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, actor.TenantID, loanID)
		if err != nil {
			return apperror.NotFound("loan not found")
		}
		if !loan.CanClose(l.Status, to) {
			return apperror.Conflict("only approved loans can be " + string(to))
		}
		l.Status = to
		l.StatusUpdatedAt = time.Now().UTC()
		l.Active = false
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns one loan in the actor's tenant.
func (u *Usecase) Get(ctx context.Context, actor identity.Actor, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, actor.TenantID, loanID)
		if err != nil {
			return apperror.NotFound("loan not found")
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func canEditDirectly(actor identity.Actor, l *loan.Loan) bool {
	if actor.Can(identity.CanEditAnyLoan) {
		return true
	}
	return actor.Can(identity.ScopedToAssignedLoans) && l.CreditOfficerID == actor.ID
}
