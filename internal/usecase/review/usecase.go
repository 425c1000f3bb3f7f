package review

import (
	"context"
	"sort"
	"time"

	"lendcore-backend/internal/domain/apperror"
	"lendcore-backend/internal/domain/identity"
	"lendcore-backend/internal/domain/review"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/pkg/id"
)

// LoanApplier and CustomerApplier re-apply a stored alteration onto the
// live target record inside the caller's transaction, re-running the
// target's own validation, lifecycle rules and (for loans) the financial
// engine.
type LoanApplier interface {
	ApplyAlteration(ctx context.Context, r uow.Repos, actor identity.Actor, loanID string, alt map[string]any) error
}

type CustomerApplier interface {
	ApplyAlteration(ctx context.Context, r uow.Repos, actor identity.Actor, customerID string, alt map[string]any) error
}

type Usecase struct {
	uow       uow.UnitOfWork
	loans     LoanApplier
	customers CustomerApplier
}

func NewUsecase(tx uow.UnitOfWork, loans LoanApplier, customers CustomerApplier) *Usecase {
	return &Usecase{uow: tx, loans: loans, customers: customers}
}

const (
	remarkMinLen = 3
	remarkMaxLen = 500
)

// Submit stages an alteration for review. The target's existence is
// deliberately not checked here; a vanished target surfaces as NotFound
// at decision time, keeping the audit trail complete.
func (u *Usecase) Submit(ctx context.Context, actor identity.Actor, in SubmitInput) (*ReviewDTO, error) {
	if !review.TargetType(in.TargetType).Valid() {
		return nil, apperror.Validationf("targetType", "must be %q or %q", review.TargetCustomer, review.TargetLoan)
	}
	if in.TargetID == "" {
		return nil, apperror.Validation("targetId", "is required")
	}
	if len(in.Alteration) == 0 {
		return nil, apperror.Validation("alteration", "must contain at least one field")
	}

	req := &review.ReviewRequest{
		ReviewID:   id.NewID32(),
		TenantID:   actor.TenantID,
		TargetType: review.TargetType(in.TargetType),
		TargetID:   in.TargetID,
		Alteration: in.Alteration,
		Status:     review.StatusPending,
		CreatedBy:  actor.ID,
		ModifiedBy: actor.ID,
		CreatedAt:  time.Now().UTC(),
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Reviews.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(&review.WithTarget{ReviewRequest: *req}), nil
}

// List returns the requests visible to the actor: the customer-typed and
// loan-typed joined views are fetched separately, concatenated, then
// re-sorted globally by creation time so join order never leaks into the
// final ordering.
func (u *Usecase) List(ctx context.Context, actor identity.Actor) ([]*ReviewDTO, error) {
	scope := scopeFor(actor)

	var merged []review.WithTarget
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		customerTyped, err := r.Reviews.ListCustomerTyped(ctx, actor.TenantID, scope)
		if err != nil {
			return err
		}
		loanTyped, err := r.Reviews.ListLoanTyped(ctx, actor.TenantID, scope)
		if err != nil {
			return err
		}
		merged = append(customerTyped, loanTyped...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	out := make([]*ReviewDTO, 0, len(merged))
	for i := range merged {
		out = append(out, toDTO(&merged[i]))
	}
	return out, nil
}

// Get returns one request under the same scoping rules as List. A request
// that exists but is out of the actor's scope is reported as not found;
// the two cases are indistinguishable on purpose.
func (u *Usecase) Get(ctx context.Context, actor identity.Actor, reviewID string) (*ReviewDTO, error) {
	var dto *ReviewDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Reviews.GetByReviewID(ctx, actor.TenantID, reviewID)
		if err != nil {
			return apperror.NotFound("review request not found")
		}
		if err := inScope(ctx, r, actor, req); err != nil {
			return err
		}
		dto = toDTO(&review.WithTarget{ReviewRequest: *req})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Decide applies a decision, or amends a pending request's content.
//
// Actors without the decision capability may only replace the alteration
// of their own pending request. Deciders must supply a remark; approval
// loads the live target, re-applies the alteration, re-validates, and
// persists target and request inside one transaction. If the target save
// fails for any reason the request stays pending with nothing committed.
func (u *Usecase) Decide(ctx context.Context, actor identity.Actor, reviewID string, in DecideInput) (*ReviewDTO, error) {
	if !actor.Can(identity.CanDecideReview) && in.Status != "" {
		return nil, apperror.Validation("status", "deciding a review requires review privilege")
	}
	if in.Status == "" {
		return u.amend(ctx, actor, reviewID, in)
	}

	status := review.Status(in.Status)
	if status != review.StatusApproved && status != review.StatusDenied {
		return nil, apperror.Validationf("status", "must be %q or %q", review.StatusApproved, review.StatusDenied)
	}
	if len(in.Remark) < remarkMinLen || len(in.Remark) > remarkMaxLen {
		return nil, apperror.Validationf("remark", "is required and must be between %d and %d characters", remarkMinLen, remarkMaxLen)
	}

	var dto *ReviewDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Reviews.GetByReviewID(ctx, actor.TenantID, reviewID)
		if err != nil {
			return apperror.NotFound("review request not found")
		}
		if err := inScope(ctx, r, actor, req); err != nil {
			return err
		}
		if req.Decided() {
			return apperror.Conflict("review request is already " + string(req.Status))
		}

		if status == review.StatusApproved {
			if err := u.applyToTarget(ctx, r, actor, req); err != nil {
				// rolls the transaction back; the request stays pending
				return err
			}
		}

		req.Status = status
		req.Remark = in.Remark
		req.ModifiedBy = actor.ID
		if err := r.Reviews.Save(ctx, req); err != nil {
			return err
		}
		dto = toDTO(&review.WithTarget{ReviewRequest: *req})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// amend replaces the alteration of a still-pending request. Only the
// creator (or an actor with direct-write privilege) may amend.
func (u *Usecase) amend(ctx context.Context, actor identity.Actor, reviewID string, in DecideInput) (*ReviewDTO, error) {
	if len(in.Alteration) == 0 {
		return nil, apperror.Validation("alteration", "must contain at least one field")
	}
	var dto *ReviewDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Reviews.GetByReviewID(ctx, actor.TenantID, reviewID)
		if err != nil {
			return apperror.NotFound("review request not found")
		}
		if req.CreatedBy != actor.ID && !actor.Can(identity.CanEditAnyLoan) {
			return apperror.NotFound("review request not found")
		}
		if req.Decided() {
			return apperror.Conflict("review request is already " + string(req.Status))
		}
		req.Alteration = in.Alteration
		req.ModifiedBy = actor.ID
		if err := r.Reviews.Save(ctx, req); err != nil {
			return err
		}
		dto = toDTO(&review.WithTarget{ReviewRequest: *req})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Remove deletes a pending request. Only the creator or an elevated role
// may remove one, and never after it has been decided.
func (u *Usecase) Remove(ctx context.Context, actor identity.Actor, reviewID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Reviews.GetByReviewID(ctx, actor.TenantID, reviewID)
		if err != nil {
			return apperror.NotFound("review request not found")
		}
		if err := inScope(ctx, r, actor, req); err != nil {
			return err
		}
		if req.CreatedBy != actor.ID && !actor.Can(identity.CanEditAnyLoan) {
			return apperror.Conflict("only the creator or an elevated role may remove a review request")
		}
		if req.Decided() {
			return apperror.Conflict("review request is already " + string(req.Status))
		}
		return r.Reviews.Delete(ctx, req)
	})
}

func (u *Usecase) applyToTarget(ctx context.Context, r uow.Repos, actor identity.Actor, req *review.ReviewRequest) error {
	switch req.TargetType {
	case review.TargetLoan:
		return u.loans.ApplyAlteration(ctx, r, actor, req.TargetID, req.Alteration)
	case review.TargetCustomer:
		return u.customers.ApplyAlteration(ctx, r, actor, req.TargetID, req.Alteration)
	}
	return apperror.Validationf("targetType", "unsupported target type %q", string(req.TargetType))
}

// scopeFor maps the actor's capabilities to a repository list scope.
func scopeFor(actor identity.Actor) review.ListScope {
	switch {
	case actor.Can(identity.CanSeeAllReviews):
		return review.ListScope{All: true}
	case actor.Can(identity.ScopedToAssignedLoans):
		return review.ListScope{CreditOfficerID: actor.ID}
	default:
		return review.ListScope{CreatedBy: actor.ID}
	}
}

// inScope enforces the same visibility rules as List for a single
// request. Out-of-scope and non-existent are both NotFound.
func inScope(ctx context.Context, r uow.Repos, actor identity.Actor, req *review.ReviewRequest) error {
	scope := scopeFor(actor)
	switch {
	case scope.All:
		return nil
	case scope.CreditOfficerID != "":
		if req.TargetType != review.TargetLoan {
			return apperror.NotFound("review request not found")
		}
		l, err := r.Loans.GetByLoanID(ctx, actor.TenantID, req.TargetID)
		if err != nil || l.CreditOfficerID != scope.CreditOfficerID {
			return apperror.NotFound("review request not found")
		}
		return nil
	default:
		if req.CreatedBy != scope.CreatedBy {
			return apperror.NotFound("review request not found")
		}
		return nil
	}
}
