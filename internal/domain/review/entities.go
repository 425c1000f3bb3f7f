package review

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type TargetType string

const (
	TargetCustomer TargetType = "customer"
	TargetLoan     TargetType = "loan"
)

func (t TargetType) Valid() bool { return t == TargetCustomer || t == TargetLoan }

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Alteration is a partial field map over the target's mutable fields.
// It is stored as JSON and validated only at approval time, against the
// live target document.
type Alteration map[string]any

func (a Alteration) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Alteration) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("alteration: unsupported scan type")
	}
	return json.Unmarshal(raw, a)
}

// ReviewRequest is a staged, not-yet-applied mutation against a customer
// or loan record, gated behind privileged approval. Once decided it is
// terminal: further changes require a new request.
type ReviewRequest struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"-"`
	ReviewID   string     `gorm:"size:32;column:review_id;uniqueIndex:ux_reviews_review_id" json:"review_id"`
	TenantID   string     `gorm:"size:32;column:tenant_id;index:idx_reviews_tenant" json:"tenant_id"`
	TargetType TargetType `gorm:"size:16;column:target_type;index" json:"target_type"`
	TargetID   string     `gorm:"size:32;column:target_id;index" json:"target_id"`
	Alteration Alteration `gorm:"column:alteration;type:json" json:"alteration"`
	Status     Status     `gorm:"size:16;column:status;default:'pending'" json:"status"`
	Remark     string     `gorm:"size:500;column:remark" json:"remark"`
	CreatedBy  string     `gorm:"size:32;column:created_by;index" json:"created_by"`
	ModifiedBy string     `gorm:"size:32;column:modified_by" json:"modified_by"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReviewRequest) TableName() string { return "review_requests" }

func (r *ReviewRequest) Decided() bool { return r.Status != StatusPending }

// WithTarget is a review request joined with denormalized display data
// from its target collection.
type WithTarget struct {
	ReviewRequest `gorm:"embedded"`
	// TargetDisplay: customer last name, or the loan's type.
	TargetDisplay string `gorm:"column:target_display" json:"target_display"`
	// TargetState: the customer's segment id, or the loan's status.
	TargetState string `gorm:"column:target_state" json:"target_state"`
}
