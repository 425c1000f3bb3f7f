package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusDenied       Status = "denied"
	StatusOnHold       Status = "on_hold"
	StatusLiquidated   Status = "liquidated"
	StatusDiscontinued Status = "discontinued"
	StatusMatured      Status = "matured"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied, StatusOnHold,
		StatusLiquidated, StatusDiscontinued, StatusMatured:
		return true
	}
	return false
}

// Terminal reports whether the status exits the edit-approval pathway:
// no further review request may be applied to a loan in this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusMatured, StatusLiquidated, StatusDiscontinued:
		return true
	}
	return false
}

// RequiresRemark: approval and denial decisions must carry a remark.
func (s Status) RequiresRemark() bool {
	return s == StatusApproved || s == StatusDenied
}

// Remark values are a fixed enumeration coupled to status decisions.
type Remark string

const (
	RemarkMeetsCriteria        Remark = "meets_criteria"
	RemarkInsufficientNetPay   Remark = "insufficient_net_pay"
	RemarkDTIExceeded          Remark = "dti_exceeded"
	RemarkIncompleteDocuments  Remark = "incomplete_documents"
	RemarkDuplicateApplication Remark = "duplicate_application"
	RemarkCustomerRequest      Remark = "customer_request"
	RemarkOther                Remark = "other"
)

func (r Remark) Valid() bool {
	switch r {
	case RemarkMeetsCriteria, RemarkInsufficientNetPay, RemarkDTIExceeded,
		RemarkIncompleteDocuments, RemarkDuplicateApplication,
		RemarkCustomerRequest, RemarkOther:
		return true
	}
	return false
}

// Params are the tenant/segment-resolved inputs the financial engine reads.
// They are snapshotted onto the loan at creation; age and service length
// are refreshed by the customer date-change cascade.
type Params struct {
	InterestRate      float64 `gorm:"column:interest_rate;type:decimal(6,2)" json:"interest_rate"`
	UpfrontFeePercent float64 `gorm:"column:upfront_fee_percent;type:decimal(6,2)" json:"upfront_fee_percent"`
	TransferFee       float64 `gorm:"column:transfer_fee;type:decimal(18,2)" json:"transfer_fee"`
	MinNetPay         float64 `gorm:"column:min_net_pay;type:decimal(18,2)" json:"min_net_pay"`
	MaxDTI            float64 `gorm:"column:max_dti;type:decimal(6,2)" json:"max_dti"`
	NetPay            float64 `gorm:"column:net_pay;type:decimal(18,2)" json:"net_pay"`
	Age               int     `gorm:"column:age" json:"age"`
	ServiceLength     int     `gorm:"column:service_length" json:"service_length"`
}

// Derived monetary fields are written only by the financial engine,
// never directly by a caller.
type Derived struct {
	UpfrontFee     float64 `gorm:"column:upfront_fee;type:decimal(18,2)" json:"upfront_fee"`
	NetValue       float64 `gorm:"column:net_value;type:decimal(18,2)" json:"net_value"`
	Repayment      float64 `gorm:"column:repayment;type:decimal(18,2)" json:"repayment"`
	TotalRepayment float64 `gorm:"column:total_repayment;type:decimal(18,2)" json:"total_repayment"`
	DTI            float64 `gorm:"column:dti;type:decimal(6,2)" json:"dti"`
}

type Loan struct {
	ID                uint64  `gorm:"primaryKey;column:id" json:"-"`
	LoanID            string  `gorm:"size:32;column:loan_id;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	TenantID          string  `gorm:"size:32;column:tenant_id;index:idx_loans_tenant" json:"tenant_id"`
	CustomerID        string  `gorm:"size:32;column:customer_id;index:idx_loans_customer" json:"customer_id"`
	Amount            float64 `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	Tenor             int     `gorm:"column:tenor" json:"tenor"`
	RecommendedAmount float64 `gorm:"column:recommended_amount;type:decimal(18,2)" json:"recommended_amount"`
	RecommendedTenor  int     `gorm:"column:recommended_tenor" json:"recommended_tenor"`
	LoanType          string  `gorm:"size:32;column:loan_type" json:"loan_type"`
	Status            Status  `gorm:"size:16;column:status;default:'pending'" json:"status"`
	Remark            Remark  `gorm:"size:32;column:remark" json:"remark"`
	AgentID           string  `gorm:"size:32;column:agent_id;index" json:"agent_id"`
	CreditOfficerID   string  `gorm:"size:32;column:credit_officer_id;index" json:"credit_officer_id"`

	Params  Params  `gorm:"embedded" json:"params"`
	Derived Derived `gorm:"embedded" json:"derived"`

	Active    bool `gorm:"column:active" json:"active"`
	Booked    bool `gorm:"column:booked" json:"booked"`
	Disbursed bool `gorm:"column:disbursed" json:"disbursed"`
	Locked    bool `gorm:"column:locked" json:"locked"`

	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at;autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Immutable reports whether the loan rejects every edit, direct or via
// review; only programmatic lifecycle bookkeeping may still touch it.
func (l *Loan) Immutable() bool {
	return l.Status == StatusMatured || l.Status == StatusLiquidated
}
