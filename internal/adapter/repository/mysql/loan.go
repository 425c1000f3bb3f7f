package mysql

import (
	"context"

	loanDomain "lendcore-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, tenantID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND loan_id = ?", tenantID, loanID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) ListOpenByCustomerID(ctx context.Context, tenantID, customerID string) ([]*loanDomain.Loan, error) {
	var out []*loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ? AND status NOT IN ?",
			tenantID, customerID,
			[]loanDomain.Status{loanDomain.StatusMatured, loanDomain.StatusLiquidated, loanDomain.StatusDiscontinued}).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
