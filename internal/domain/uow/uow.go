package uow

import (
	"context"

	"lendcore-backend/internal/domain/customer"
	"lendcore-backend/internal/domain/loan"
	"lendcore-backend/internal/domain/review"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Customers customer.Repository
	Segments  customer.SegmentRepository
	Loans     loan.Repository
	Reviews   review.Repository
}

// UnitOfWork runs fn against transaction-bound repositories; any error
// rolls the whole transaction back. Approval decisions and the customer
// date-change cascade rely on this to stay all-or-nothing.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
