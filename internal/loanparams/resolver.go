package loanparams

import (
	"context"
	"sync"
	"time"

	"lendcore-backend/internal/domain/apperror"
)

// TenantDefaults are tenant-level loan parameters, including fallback
// bounds used when a segment does not override them.
type TenantDefaults struct {
	InterestRate      float64
	UpfrontFeePercent float64
	TransferFee       float64
	MaxDTI            float64
	MinAmount         float64
	MaxAmount         float64
	MinTenor          int
	MaxTenor          int
	MinNetPay         float64
}

// SegmentOverrides carry per-segment thresholds; zero values inherit the
// tenant default.
type SegmentOverrides struct {
	MinAmount float64
	MaxAmount float64
	MinTenor  int
	MaxTenor  int
	MinNetPay float64
}

// Params is the merged, ready-to-use parameter set for one tenant+segment.
type Params struct {
	InterestRate      float64
	UpfrontFeePercent float64
	TransferFee       float64
	MaxDTI            float64
	MinAmount         float64
	MaxAmount         float64
	MinTenor          int
	MaxTenor          int
	MinNetPay         float64
}

// Source is the external configuration collaborator.
type Source interface {
	GetLoanDefaults(ctx context.Context, tenantID string) (TenantDefaults, error)
	GetSegmentOverrides(ctx context.Context, tenantID, segmentID string) (SegmentOverrides, error)
}

type cacheKey struct{ tenantID, segmentID string }

type cacheEntry struct {
	params   Params
	storedAt time.Time
}

// Resolver merges segment overrides over tenant defaults and memoizes the
// result in an explicit, size-bounded TTL cache it owns. The cache is
// read-through only; the resolver never mutates configuration.
type Resolver struct {
	src        Source
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

func NewResolver(src Source, ttl time.Duration, maxEntries int) *Resolver {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &Resolver{
		src:        src,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[cacheKey]cacheEntry),
	}
}

func (r *Resolver) Resolve(ctx context.Context, tenantID, segmentID string) (Params, error) {
	key := cacheKey{tenantID, segmentID}
	now := time.Now()

	r.mu.Lock()
	if e, ok := r.entries[key]; ok && now.Sub(e.storedAt) < r.ttl {
		r.mu.Unlock()
		return e.params, nil
	}
	r.mu.Unlock()

	defaults, err := r.src.GetLoanDefaults(ctx, tenantID)
	if err != nil {
		return Params{}, apperror.Dependency("loan defaults unavailable for tenant "+tenantID, err)
	}
	overrides, err := r.src.GetSegmentOverrides(ctx, tenantID, segmentID)
	if err != nil {
		return Params{}, apperror.Dependency("segment parameters unavailable for segment "+segmentID, err)
	}

	p := merge(defaults, overrides)
	if err := checkComplete(p); err != nil {
		return Params{}, err
	}

	r.mu.Lock()
	if len(r.entries) >= r.maxEntries {
		r.evictOldestLocked()
	}
	r.entries[key] = cacheEntry{params: p, storedAt: now}
	r.mu.Unlock()
	return p, nil
}

func merge(d TenantDefaults, o SegmentOverrides) Params {
	p := Params{
		InterestRate:      d.InterestRate,
		UpfrontFeePercent: d.UpfrontFeePercent,
		TransferFee:       d.TransferFee,
		MaxDTI:            d.MaxDTI,
		MinAmount:         d.MinAmount,
		MaxAmount:         d.MaxAmount,
		MinTenor:          d.MinTenor,
		MaxTenor:          d.MaxTenor,
		MinNetPay:         d.MinNetPay,
	}
	if o.MinAmount > 0 {
		p.MinAmount = o.MinAmount
	}
	if o.MaxAmount > 0 {
		p.MaxAmount = o.MaxAmount
	}
	if o.MinTenor > 0 {
		p.MinTenor = o.MinTenor
	}
	if o.MaxTenor > 0 {
		p.MaxTenor = o.MaxTenor
	}
	if o.MinNetPay > 0 {
		p.MinNetPay = o.MinNetPay
	}
	return p
}

// checkComplete rejects merged parameter sets a validator or the engine
// could not safely run on.
func checkComplete(p Params) error {
	switch {
	case p.InterestRate <= 0,
		p.MaxDTI <= 0,
		p.MinAmount <= 0,
		p.MaxAmount < p.MinAmount,
		p.MinTenor <= 0,
		p.MaxTenor < p.MinTenor,
		p.MinNetPay <= 0,
		p.UpfrontFeePercent < 0,
		p.TransferFee < 0:
		return apperror.Dependency("configuration source returned incomplete loan parameters", nil)
	}
	return nil
}

func (r *Resolver) evictOldestLocked() {
	var oldest cacheKey
	var oldestAt time.Time
	first := true
	for k, e := range r.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldest, oldestAt, first = k, e.storedAt, false
		}
	}
	if !first {
		delete(r.entries, oldest)
	}
}
