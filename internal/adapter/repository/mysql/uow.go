package mysql

import (
	"context"

	"lendcore-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// GormUoW spans one gorm transaction across all repositories, so an
// approval decision persists its target mutation and the request's
// terminal status atomically, or not at all.
type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Customers: &CustomerRepository{db: tx},
			Segments:  &SegmentRepository{db: tx},
			Loans:     &LoanRepository{db: tx},
			Reviews:   &ReviewRepository{db: tx},
		}
		return fn(r)
	})
}
