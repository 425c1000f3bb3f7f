package uowmock

import (
	"context"

	"lendcore-backend/internal/domain/uow"
)

// UoW hands the provided repo bundle to fn. It performs no real
// transaction; rollback semantics are exercised in the sqlite-backed
// GormUoW tests instead.
type UoW struct {
	Repos uow.Repos
	// WithinTxFn overrides the default behavior when set.
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if u.WithinTxFn != nil {
		return u.WithinTxFn(ctx, fn)
	}
	return fn(u.Repos)
}
