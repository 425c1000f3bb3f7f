package customer

import (
	"context"
	"time"

	"lendcore-backend/internal/domain/apperror"
	"lendcore-backend/internal/domain/customer"
	"lendcore-backend/internal/domain/identity"
	"lendcore-backend/internal/domain/uow"
	"lendcore-backend/internal/finance"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// DateChangeInput carries the two dates whose change cascades into loan
// params. Nil fields are left untouched.
type DateChangeInput struct {
	BirthDate           *time.Time `json:"birth_date"`
	EmploymentStartDate *time.Time `json:"employment_start_date"`
}

type CustomerDTO struct {
	CustomerID          string    `json:"customer_id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Phone               string    `json:"phone"`
	EmploymentCode      string    `json:"employment_code"`
	BirthDate           time.Time `json:"birth_date"`
	EmploymentStartDate time.Time `json:"employment_start_date"`
	SegmentID           string    `json:"segment_id"`
}

func toDTO(c *customer.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID:          c.CustomerID,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		Phone:               c.Phone,
		EmploymentCode:      c.EmploymentCode,
		BirthDate:           c.BirthDate,
		EmploymentStartDate: c.EmploymentStartDate,
		SegmentID:           c.SegmentID,
	}
}

// ApplyBirthOrHireDateChange mutates the customer's dates and refreshes
// age/service length on every open loan of that customer, all inside one
// transaction: either the customer and all affected loans move together,
// or nothing does.
func (u *Usecase) ApplyBirthOrHireDateChange(ctx context.Context, actor identity.Actor, customerID string, in DateChangeInput) (*CustomerDTO, error) {
	if in.BirthDate == nil && in.EmploymentStartDate == nil {
		return nil, apperror.Validation("dates", "at least one of birth_date or employment_start_date is required")
	}
	if !actor.Can(identity.CanEditAnyLoan) {
		return nil, apperror.Validation("actor", "role cannot edit customers directly; submit a review request")
	}

	var dto *CustomerDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Customers.GetByCustomerID(ctx, actor.TenantID, customerID)
		if err != nil {
			return apperror.NotFound("customer not found")
		}
		datesChanged := false
		if in.BirthDate != nil {
			c.BirthDate = *in.BirthDate
			datesChanged = true
		}
		if in.EmploymentStartDate != nil {
			c.EmploymentStartDate = *in.EmploymentStartDate
			datesChanged = true
		}
		if err := validate(ctx, r, c); err != nil {
			return err
		}
		if err := r.Customers.Save(ctx, c); err != nil {
			return err
		}
		if datesChanged {
			if err := cascadeTenure(ctx, r, c); err != nil {
				return err
			}
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ApplyAlteration replays a review request's stored alteration onto the
// live customer, inside the caller's transaction. Full customer
// validation re-runs, and a date change triggers the loan cascade.
func (u *Usecase) ApplyAlteration(ctx context.Context, r uow.Repos, actor identity.Actor, customerID string, alt map[string]any) error {
	c, err := r.Customers.GetByCustomerID(ctx, actor.TenantID, customerID)
	if err != nil {
		return apperror.NotFound("customer not found")
	}
	datesChanged, err := applyCustomerAlteration(c, alt)
	if err != nil {
		return err
	}
	if err := validate(ctx, r, c); err != nil {
		return err
	}
	if err := r.Customers.Save(ctx, c); err != nil {
		return err
	}
	if datesChanged {
		return cascadeTenure(ctx, r, c)
	}
	return nil
}

// validate re-runs the customer's full record validation against the
// live segment: identifier prefix rule plus date sanity.
func validate(ctx context.Context, r uow.Repos, c *customer.Customer) error {
	seg, err := r.Segments.GetBySegmentID(ctx, c.TenantID, c.SegmentID)
	if err != nil {
		return apperror.NotFound("segment not found")
	}
	if !seg.Active {
		return apperror.Validation("segmentId", "segment is inactive")
	}
	if !c.MatchesSegment(seg) {
		return apperror.Validationf("employmentCode", "must start with the segment prefix %q", seg.CodePrefix)
	}
	now := time.Now().UTC()
	if c.BirthDate.IsZero() || c.BirthDate.After(now) {
		return apperror.Validation("birthDate", "must be a past date")
	}
	if c.EmploymentStartDate.IsZero() || c.EmploymentStartDate.After(now) {
		return apperror.Validation("employmentStartDate", "must be a past date")
	}
	if c.EmploymentStartDate.Before(c.BirthDate) {
		return apperror.Validation("employmentStartDate", "cannot precede the birth date")
	}
	return nil
}

// cascadeTenure refreshes age/service length on every loan still on the
// edit pathway. Terminal loans keep the figures they were decided with.
// The monetary recompute is intentionally not part of this path.
func cascadeTenure(ctx context.Context, r uow.Repos, c *customer.Customer) error {
	loans, err := r.Loans.ListOpenByCustomerID(ctx, c.TenantID, c.CustomerID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, l := range loans {
		finance.RefreshTenure(l, c.BirthDate, c.EmploymentStartDate, now)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
