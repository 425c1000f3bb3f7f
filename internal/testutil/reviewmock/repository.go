package reviewmock

import (
	"context"
	"errors"

	domain "lendcore-backend/internal/domain/review"
)

// Repo is a function-backed mock satisfying review.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, r *domain.ReviewRequest) error
	GetByReviewIDFn     func(ctx context.Context, tenantID, reviewID string) (*domain.ReviewRequest, error)
	ListCustomerTypedFn func(ctx context.Context, tenantID string, scope domain.ListScope) ([]domain.WithTarget, error)
	ListLoanTypedFn     func(ctx context.Context, tenantID string, scope domain.ListScope) ([]domain.WithTarget, error)
	SaveFn              func(ctx context.Context, r *domain.ReviewRequest) error
	DeleteFn            func(ctx context.Context, r *domain.ReviewRequest) error
}

func (m *Repo) Create(ctx context.Context, r *domain.ReviewRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByReviewID(ctx context.Context, tenantID, reviewID string) (*domain.ReviewRequest, error) {
	if m.GetByReviewIDFn != nil {
		return m.GetByReviewIDFn(ctx, tenantID, reviewID)
	}
	return nil, errors.New("reviewmock: GetByReviewID not implemented")
}

func (m *Repo) ListCustomerTyped(ctx context.Context, tenantID string, scope domain.ListScope) ([]domain.WithTarget, error) {
	if m.ListCustomerTypedFn != nil {
		return m.ListCustomerTypedFn(ctx, tenantID, scope)
	}
	return nil, nil
}

func (m *Repo) ListLoanTyped(ctx context.Context, tenantID string, scope domain.ListScope) ([]domain.WithTarget, error) {
	if m.ListLoanTypedFn != nil {
		return m.ListLoanTypedFn(ctx, tenantID, scope)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, r *domain.ReviewRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, r *domain.ReviewRequest) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, r)
	}
	return nil
}
