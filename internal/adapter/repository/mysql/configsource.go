package mysql

import (
	"context"
	"errors"

	"lendcore-backend/internal/loanparams"

	"gorm.io/gorm"
)

// TenantLoanDefaults is the persisted tenant-level parameter row. It is
// read-only from the core's perspective; provisioning owns writes.
type TenantLoanDefaults struct {
	ID                uint64  `gorm:"primaryKey;column:id"`
	TenantID          string  `gorm:"size:32;column:tenant_id;uniqueIndex:ux_loan_defaults_tenant"`
	InterestRate      float64 `gorm:"column:interest_rate;type:decimal(6,2)"`
	UpfrontFeePercent float64 `gorm:"column:upfront_fee_percent;type:decimal(6,2)"`
	TransferFee       float64 `gorm:"column:transfer_fee;type:decimal(18,2)"`
	MaxDTI            float64 `gorm:"column:max_dti;type:decimal(6,2)"`
	MinAmount         float64 `gorm:"column:min_amount;type:decimal(18,2)"`
	MaxAmount         float64 `gorm:"column:max_amount;type:decimal(18,2)"`
	MinTenor          int     `gorm:"column:min_tenor"`
	MaxTenor          int     `gorm:"column:max_tenor"`
	MinNetPay         float64 `gorm:"column:min_net_pay;type:decimal(18,2)"`
}

func (TenantLoanDefaults) TableName() string { return "tenant_loan_defaults" }

// SegmentLoanParams is the persisted per-segment override row; zero
// columns inherit the tenant default.
type SegmentLoanParams struct {
	ID        uint64  `gorm:"primaryKey;column:id"`
	TenantID  string  `gorm:"size:32;column:tenant_id;uniqueIndex:ux_segment_params_tenant_segment,priority:1"`
	SegmentID string  `gorm:"size:32;column:segment_id;uniqueIndex:ux_segment_params_tenant_segment,priority:2"`
	MinAmount float64 `gorm:"column:min_amount;type:decimal(18,2)"`
	MaxAmount float64 `gorm:"column:max_amount;type:decimal(18,2)"`
	MinTenor  int     `gorm:"column:min_tenor"`
	MaxTenor  int     `gorm:"column:max_tenor"`
	MinNetPay float64 `gorm:"column:min_net_pay;type:decimal(18,2)"`
}

func (SegmentLoanParams) TableName() string { return "segment_loan_params" }

// ConfigSource reads loan parameter configuration from the record store.
// It satisfies loanparams.Source. A missing segment row is not an error;
// the segment simply inherits every tenant default.
type ConfigSource struct{ db *gorm.DB }

func NewConfigSource(db *gorm.DB) *ConfigSource { return &ConfigSource{db: db} }

func (s *ConfigSource) GetLoanDefaults(ctx context.Context, tenantID string) (loanparams.TenantDefaults, error) {
	var row TenantLoanDefaults
	res := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&row)
	if res.Error != nil {
		return loanparams.TenantDefaults{}, res.Error
	}
	return loanparams.TenantDefaults{
		InterestRate:      row.InterestRate,
		UpfrontFeePercent: row.UpfrontFeePercent,
		TransferFee:       row.TransferFee,
		MaxDTI:            row.MaxDTI,
		MinAmount:         row.MinAmount,
		MaxAmount:         row.MaxAmount,
		MinTenor:          row.MinTenor,
		MaxTenor:          row.MaxTenor,
		MinNetPay:         row.MinNetPay,
	}, nil
}

func (s *ConfigSource) GetSegmentOverrides(ctx context.Context, tenantID, segmentID string) (loanparams.SegmentOverrides, error) {
	var row SegmentLoanParams
	res := s.db.WithContext(ctx).
		Where("tenant_id = ? AND segment_id = ?", tenantID, segmentID).
		First(&row)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return loanparams.SegmentOverrides{}, nil
		}
		return loanparams.SegmentOverrides{}, res.Error
	}
	return loanparams.SegmentOverrides{
		MinAmount: row.MinAmount,
		MaxAmount: row.MaxAmount,
		MinTenor:  row.MinTenor,
		MaxTenor:  row.MaxTenor,
		MinNetPay: row.MinNetPay,
	}, nil
}
