// Package metrics aggregates per-domain Nakamoto coefficients into one
// comparable results table.
package metrics

import (
	"github.com/ethgovscan/governance-metrics/nakamoto"
	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/ethgovscan/governance-metrics/types"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var logger = logrus.StandardLogger().WithField("module", "metrics")

// Aggregator orchestrates the cross-domain computation. All inputs are
// point-in-time snapshot files named in the config; the run is
// idempotent.
type Aggregator struct {
	cfg  *types.Config
	norm *orgmap.Normalizer
}

func NewAggregator(cfg *types.Config, norm *orgmap.Normalizer) *Aggregator {
	return &Aggregator{cfg: cfg, norm: norm}
}

// domainLoader produces the share table of one domain, stating whether
// the shares are raw counts
type domainLoader func() ([]types.EntityShare, bool, error)

// ComputeAllMetrics computes every configured domain. A failure loading
// one domain's input aborts only that domain; all others still complete
// and the table records which domains failed.
func (a *Aggregator) ComputeAllMetrics() *types.MetricsTable {
	table := &types.MetricsTable{Domains: make(map[string]*types.DomainResult)}

	a.addDomain(table, types.DomainEipAuthorship, func() ([]types.EntityShare, bool, error) {
		rows, err := LoadAuthorRows(a.cfg.Output.AuthorsCsv)
		if err != nil {
			return nil, false, err
		}
		return nakamoto.EIPShares(rows, a.cfg.Analysis.AcceptedStatuses), true, nil
	})
	a.addDomain(table, types.DomainCoreDevAttendance, func() ([]types.EntityShare, bool, error) {
		rows, err := LoadAttendanceRows(a.cfg.Output.AttendanceCsv)
		if err != nil {
			return nil, false, err
		}
		return nakamoto.AttendanceShares(rows), true, nil
	})
	a.addDomain(table, types.DomainClientDiversity, func() ([]types.EntityShare, bool, error) {
		return LoadClientShares(a.cfg.Sources.ClientShares, a.norm)
	})
	a.addDomain(table, types.DomainStakingDistribution, func() ([]types.EntityShare, bool, error) {
		return LoadStakingShares(a.cfg.Sources.StakingShares, a.norm)
	})

	return table
}

func (a *Aggregator) addDomain(table *types.MetricsTable, domain string, load domainLoader) {
	table.Order = append(table.Order, domain)

	shares, rawCounts, err := load()
	if err != nil {
		logger.WithField("domain", domain).WithError(err).Error("domain computation failed")
		table.Domains[domain] = &types.DomainResult{Err: err}
		return
	}

	result := nakamoto.Compute(domain, shares, rawCounts)
	sorted, _ := nakamoto.SortedShares(shares, rawCounts)
	if len(sorted) > a.cfg.Analysis.TopEntities {
		sorted = sorted[:a.cfg.Analysis.TopEntities]
	}
	table.Domains[domain] = &types.DomainResult{
		Result:      result,
		TopEntities: sorted,
		Flags:       a.qualityFlags(result, shares, rawCounts),
	}
}

// qualityFlags derives the data-quality warnings of one domain. These
// are surfaced in the table, never raised as faults.
func (a *Aggregator) qualityFlags(result *types.NakamotoResult, shares []types.EntityShare, rawCounts bool) []string {
	var flags []string
	if result.TotalEntities == 0 {
		return append(flags, types.FlagEmptyDomain)
	}

	tolerance := decimal.NewFromFloat(a.cfg.Analysis.ShareTolerance)
	if !rawCounts && result.TotalShare.LessThan(decimal.New(1, 0).Sub(tolerance)) {
		flags = append(flags, types.FlagShareBelowOne)
	}

	total := decimal.Zero
	unknown := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Share)
		if s.Entity == orgmap.Unknown {
			unknown = unknown.Add(s.Share)
		}
	}
	if total.IsPositive() {
		limit := decimal.NewFromFloat(a.cfg.Analysis.UnmappedThreshold)
		if unknown.Div(total).GreaterThan(limit) {
			flags = append(flags, types.FlagUnmappedAboveLimit)
		}
	}
	return flags
}
