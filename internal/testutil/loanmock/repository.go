package loanmock

import (
	"context"
	"errors"

	domain "lendcore-backend/internal/domain/loan"
)

// Repo is a function-backed mock satisfying loan.Repository. Only wire
// the functions a test needs; unwired getters report not-implemented.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, tenantID, loanID string) (*domain.Loan, error)
	ListOpenByCustomerIDFn func(ctx context.Context, tenantID, customerID string) ([]*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, tenantID, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, tenantID, loanID)
	}
	return nil, errors.New("loanmock: GetByLoanID not implemented")
}

func (m *Repo) ListOpenByCustomerID(ctx context.Context, tenantID, customerID string) ([]*domain.Loan, error) {
	if m.ListOpenByCustomerIDFn != nil {
		return m.ListOpenByCustomerIDFn(ctx, tenantID, customerID)
	}
	return nil, errors.New("loanmock: ListOpenByCustomerID not implemented")
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
