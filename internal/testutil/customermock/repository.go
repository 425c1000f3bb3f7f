package customermock

import (
	"context"
	"errors"

	domain "lendcore-backend/internal/domain/customer"
)

// Repo is a function-backed mock satisfying customer.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, c *domain.Customer) error
	GetByCustomerIDFn func(ctx context.Context, tenantID, customerID string) (*domain.Customer, error)
	SaveFn            func(ctx context.Context, c *domain.Customer) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCustomerID(ctx context.Context, tenantID, customerID string) (*domain.Customer, error) {
	if m.GetByCustomerIDFn != nil {
		return m.GetByCustomerIDFn(ctx, tenantID, customerID)
	}
	return nil, errors.New("customermock: GetByCustomerID not implemented")
}

func (m *Repo) Save(ctx context.Context, c *domain.Customer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

// SegmentRepo is a function-backed mock satisfying customer.SegmentRepository.
type SegmentRepo struct {
	GetBySegmentIDFn func(ctx context.Context, tenantID, segmentID string) (*domain.Segment, error)
}

func (m *SegmentRepo) GetBySegmentID(ctx context.Context, tenantID, segmentID string) (*domain.Segment, error) {
	if m.GetBySegmentIDFn != nil {
		return m.GetBySegmentIDFn(ctx, tenantID, segmentID)
	}
	return nil, errors.New("customermock: GetBySegmentID not implemented")
}
