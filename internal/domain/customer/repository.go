package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByCustomerID(ctx context.Context, tenantID, customerID string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}

type SegmentRepository interface {
	GetBySegmentID(ctx context.Context, tenantID, segmentID string) (*Segment, error)
}
