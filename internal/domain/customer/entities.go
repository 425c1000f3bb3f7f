package customer

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Segment groups applicants (typically by employer) and carries the
// identifier-prefix rule plus per-segment loan parameter overrides.
type Segment struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	SegmentID  string    `gorm:"size:32;column:segment_id;uniqueIndex:ux_segments_segment_id" json:"segment_id"`
	TenantID   string    `gorm:"size:32;column:tenant_id;index:idx_segments_tenant" json:"tenant_id"`
	Name       string    `gorm:"size:128;column:name" json:"name"`
	CodePrefix string    `gorm:"size:16;column:code_prefix" json:"code_prefix"`
	Active     bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Segment) TableName() string { return "segments" }

type Customer struct {
	ID                  uint64         `gorm:"primaryKey;column:id" json:"-"`
	CustomerID          string         `gorm:"size:32;column:customer_id;uniqueIndex:ux_customers_customer_id_active" json:"customer_id"`
	TenantID            string         `gorm:"size:32;column:tenant_id;index:idx_customers_tenant" json:"tenant_id"`
	FirstName           string         `gorm:"size:64;column:first_name" json:"first_name"`
	LastName            string         `gorm:"size:64;column:last_name" json:"last_name"`
	Phone               string         `gorm:"size:32;column:phone" json:"phone"`
	EmploymentCode      string         `gorm:"size:32;column:employment_code" json:"employment_code"`
	BirthDate           time.Time      `gorm:"column:birth_date;type:date" json:"birth_date"`
	EmploymentStartDate time.Time      `gorm:"column:employment_start_date;type:date" json:"employment_start_date"`
	SegmentID           string         `gorm:"size:32;column:segment_id;index" json:"segment_id"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string { return "customers" }

// MatchesSegment reports whether the customer's employment identifier
// carries the segment's code prefix.
func (c *Customer) MatchesSegment(s *Segment) bool {
	return strings.HasPrefix(c.EmploymentCode, s.CodePrefix)
}
