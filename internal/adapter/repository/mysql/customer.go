package mysql

import (
	"context"

	customerDomain "lendcore-backend/internal/domain/customer"

	"gorm.io/gorm"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, c *customerDomain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) Save(ctx context.Context, c *customerDomain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CustomerRepository) GetByCustomerID(ctx context.Context, tenantID, customerID string) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

type SegmentRepository struct{ db *gorm.DB }

func NewSegmentRepository(db *gorm.DB) *SegmentRepository { return &SegmentRepository{db: db} }

func (r *SegmentRepository) GetBySegmentID(ctx context.Context, tenantID, segmentID string) (*customerDomain.Segment, error) {
	var out customerDomain.Segment
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND segment_id = ?", tenantID, segmentID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
