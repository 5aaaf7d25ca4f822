package types

import (
	"github.com/shopspring/decimal"
)

// Domain names used across the metrics table
const (
	DomainEipAuthorship       = "EIP Authorship"
	DomainCoreDevAttendance   = "Core Dev Attendance"
	DomainClientDiversity     = "Client Diversity"
	DomainStakingDistribution = "Staking Distribution"
)

// Data quality flags surfaced in the metrics table
const (
	FlagEmptyDomain        = "empty_domain"
	FlagShareBelowOne      = "total_share_below_one"
	FlagUnmappedAboveLimit = "unmapped_share_above_threshold"
)

// EntityShare is the atomic unit consumed by the nakamoto engine: one
// entity and its share of a domain. Share is either a proportion in [0,1]
// or a raw count, depending on what the caller passes to the engine.
type EntityShare struct {
	Entity string
	Share  decimal.Decimal
}

// CumulativeShare is one row of a result breakdown, in descending share
// order with the running total up to and including this entity.
type CumulativeShare struct {
	Entity     string
	Share      decimal.Decimal
	Cumulative decimal.Decimal
}

// NakamotoResult is the outcome of one coefficient computation.
// Coefficient is nil for an empty domain.
type NakamotoResult struct {
	Domain        string
	Coefficient   *uint64
	Breakdown     []CumulativeShare
	TotalEntities int
	TotalShare    decimal.Decimal
}

// DomainResult is one row of the unified metrics table. Err carries a
// per-domain load or computation failure; other domains still complete.
type DomainResult struct {
	Result      *NakamotoResult
	TopEntities []EntityShare
	Flags       []string
	Err         error
}

// MetricsTable is the unified cross-domain output, keyed by domain name.
// Order preserves the configured domain order for reporting.
type MetricsTable struct {
	Order   []string
	Domains map[string]*DomainResult
}

// ResultRow is the persisted form of one domain result
type ResultRow struct {
	RunAt       string `db:"run_at"`
	Domain      string `db:"domain"`
	Coefficient int64  `db:"coefficient"` // -1 when undefined
	Entities    int64  `db:"entities"`
	TotalShare  string `db:"total_share"`
	Flags       string `db:"flags"`
}
