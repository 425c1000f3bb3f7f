package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, tenantID, loanID string) (*Loan, error)
	// ListOpenByCustomerID returns the customer's loans that are still on
	// the edit-approval pathway (non-terminal statuses only).
	ListOpenByCustomerID(ctx context.Context, tenantID, customerID string) ([]*Loan, error)
	Save(ctx context.Context, l *Loan) error
}
