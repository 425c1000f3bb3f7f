package review

import "context"

// ListScope narrows review visibility. Exactly one of the three modes is
// set by the caller, derived from the actor's capabilities.
type ListScope struct {
	// All: every request in the tenant.
	All bool
	// CreatedBy: only requests this actor created.
	CreatedBy string
	// CreditOfficerID: only loan-typed requests whose target loan is
	// assigned to this officer, regardless of creator.
	CreditOfficerID string
}

type Repository interface {
	Create(ctx context.Context, r *ReviewRequest) error
	GetByReviewID(ctx context.Context, tenantID, reviewID string) (*ReviewRequest, error)
	// ListCustomerTyped joins customer-typed requests against the customers
	// collection; ListLoanTyped joins loan-typed requests against loans.
	// Both apply the scope in the query and sort by created_at descending.
	ListCustomerTyped(ctx context.Context, tenantID string, scope ListScope) ([]WithTarget, error)
	ListLoanTyped(ctx context.Context, tenantID string, scope ListScope) ([]WithTarget, error)
	Save(ctx context.Context, r *ReviewRequest) error
	Delete(ctx context.Context, r *ReviewRequest) error
}
