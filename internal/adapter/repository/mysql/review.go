package mysql

import (
	"context"

	reviewDomain "lendcore-backend/internal/domain/review"

	"gorm.io/gorm"
)

type ReviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{db: db} }

func (r *ReviewRepository) Create(ctx context.Context, req *reviewDomain.ReviewRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *ReviewRepository) Save(ctx context.Context, req *reviewDomain.ReviewRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, req *reviewDomain.ReviewRequest) error {
	return r.db.WithContext(ctx).Delete(req).Error
}

func (r *ReviewRepository) GetByReviewID(ctx context.Context, tenantID, reviewID string) (*reviewDomain.ReviewRequest, error) {
	var out reviewDomain.ReviewRequest
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND review_id = ?", tenantID, reviewID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// ListCustomerTyped joins customer-typed requests against the customers
// collection to denormalize display data. Scope is applied in SQL; rows
// come back newest first.
func (r *ReviewRepository) ListCustomerTyped(ctx context.Context, tenantID string, scope reviewDomain.ListScope) ([]reviewDomain.WithTarget, error) {
	// A credit officer's view contains loan-typed requests only.
	if scope.CreditOfficerID != "" {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Table("review_requests AS rr").
		Select("rr.*, c.last_name AS target_display, c.segment_id AS target_state").
		Joins("JOIN customers c ON c.customer_id = rr.target_id AND c.tenant_id = rr.tenant_id AND c.deleted_at IS NULL").
		Where("rr.tenant_id = ? AND rr.target_type = ?", tenantID, reviewDomain.TargetCustomer).
		Order("rr.created_at DESC")
	if !scope.All {
		q = q.Where("rr.created_by = ?", scope.CreatedBy)
	}
	var out []reviewDomain.WithTarget
	err := q.Scan(&out).Error
	return out, err
}

// ListLoanTyped joins loan-typed requests against the loans collection.
// Credit officers see requests on their assigned loans regardless of who
// created them.
func (r *ReviewRepository) ListLoanTyped(ctx context.Context, tenantID string, scope reviewDomain.ListScope) ([]reviewDomain.WithTarget, error) {
	q := r.db.WithContext(ctx).
		Table("review_requests AS rr").
		Select("rr.*, l.loan_type AS target_display, l.status AS target_state").
		Joins("JOIN loans l ON l.loan_id = rr.target_id AND l.tenant_id = rr.tenant_id AND l.deleted_at IS NULL").
		Where("rr.tenant_id = ? AND rr.target_type = ?", tenantID, reviewDomain.TargetLoan).
		Order("rr.created_at DESC")
	switch {
	case scope.All:
	case scope.CreditOfficerID != "":
		q = q.Where("l.credit_officer_id = ?", scope.CreditOfficerID)
	default:
		q = q.Where("rr.created_by = ?", scope.CreatedBy)
	}
	var out []reviewDomain.WithTarget
	err := q.Scan(&out).Error
	return out, err
}
