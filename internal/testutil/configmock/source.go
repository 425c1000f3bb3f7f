package configmock

import (
	"context"

	"lendcore-backend/internal/loanparams"
)

// Source is a function-backed mock satisfying loanparams.Source.
type Source struct {
	GetLoanDefaultsFn     func(ctx context.Context, tenantID string) (loanparams.TenantDefaults, error)
	GetSegmentOverridesFn func(ctx context.Context, tenantID, segmentID string) (loanparams.SegmentOverrides, error)
}

func (m *Source) GetLoanDefaults(ctx context.Context, tenantID string) (loanparams.TenantDefaults, error) {
	if m.GetLoanDefaultsFn != nil {
		return m.GetLoanDefaultsFn(ctx, tenantID)
	}
	return loanparams.TenantDefaults{}, nil
}

func (m *Source) GetSegmentOverrides(ctx context.Context, tenantID, segmentID string) (loanparams.SegmentOverrides, error) {
	if m.GetSegmentOverridesFn != nil {
		return m.GetSegmentOverridesFn(ctx, tenantID, segmentID)
	}
	return loanparams.SegmentOverrides{}, nil
}
