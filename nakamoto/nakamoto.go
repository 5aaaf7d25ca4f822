// Package nakamoto computes Nakamoto coefficients: the minimum number of
// entities, taken in descending share order, whose combined share of a
// governance domain strictly exceeds 50%.
package nakamoto

import (
	"sort"
	"strings"

	"github.com/ethgovscan/governance-metrics/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
)

// threshold is the majority bound. Share arithmetic runs on decimals so
// exact-half totals like 0.3+0.2 never cross it through float drift.
var threshold = decimal.New(5, -1)

// Compute calculates the coefficient for one domain. Duplicate entity
// keys are merged by summation. Entities are sorted by descending share,
// ties broken by name ascending, so the result is independent of input
// order. rawCounts states explicitly whether shares are raw counts to be
// normalized by the batch total or already proportions; the engine never
// guesses. If the total share never exceeds the threshold the
// coefficient is the full entity count. Empty input yields a nil
// coefficient and no error.
func Compute(domain string, shares []types.EntityShare, rawCounts bool) *types.NakamotoResult {
	result := &types.NakamotoResult{
		Domain:     domain,
		TotalShare: decimal.Zero,
	}
	if len(shares) == 0 {
		return result
	}

	entities, total := SortedShares(shares, rawCounts)

	result.TotalEntities = len(entities)
	result.TotalShare = total

	cumulative := decimal.Zero
	for i, e := range entities {
		cumulative = cumulative.Add(e.Share)
		result.Breakdown = append(result.Breakdown, types.CumulativeShare{
			Entity:     e.Entity,
			Share:      e.Share,
			Cumulative: cumulative,
		})
		if cumulative.GreaterThan(threshold) {
			k := uint64(i + 1)
			result.Coefficient = &k
			break
		}
	}
	if result.Coefficient == nil {
		// total never crossed the majority bound: every entity is needed
		k := uint64(len(entities))
		result.Coefficient = &k
	}
	return result
}

// SortedShares merges duplicate entity keys by summation, normalizes raw
// counts to proportions of the batch total, and sorts descending by
// share with ties broken by entity name ascending. Returns the sorted
// table and its total share.
func SortedShares(shares []types.EntityShare, rawCounts bool) ([]types.EntityShare, decimal.Decimal) {
	merged := make(map[string]decimal.Decimal)
	for _, s := range shares {
		merged[s.Entity] = merged[s.Entity].Add(s.Share)
	}

	entities := make([]types.EntityShare, 0, len(merged))
	total := decimal.Zero
	for _, entity := range maps.Keys(merged) {
		entities = append(entities, types.EntityShare{Entity: entity, Share: merged[entity]})
		total = total.Add(merged[entity])
	}
	if rawCounts && total.IsPositive() {
		for i := range entities {
			entities[i].Share = entities[i].Share.Div(total)
		}
		total = decimal.Zero
		for _, e := range entities {
			total = total.Add(e.Share)
		}
	}

	sort.Slice(entities, func(i, j int) bool {
		if c := entities[i].Share.Cmp(entities[j].Share); c != 0 {
			return c > 0
		}
		return strings.Compare(entities[i].Entity, entities[j].Entity) < 0
	})
	return entities, total
}

// EIPShares converts normalized author rows into per-organization
// proposal counts. Each proposal with an accepted status counts once for
// every distinct organization credited on it; co-authored proposals
// contribute a full count per organization, not a fractional split. Rows
// without an organization fall into the Unknown bucket.
func EIPShares(rows []types.AuthorRow, acceptedStatuses []string) []types.EntityShare {
	accepted := make(map[string]bool, len(acceptedStatuses))
	for _, s := range acceptedStatuses {
		accepted[s] = true
	}

	perOrg := make(map[string]map[uint64]bool)
	for _, row := range rows {
		if !accepted[row.Status] {
			continue
		}
		org := row.Organization
		if org == "" {
			org = "Unknown"
		}
		if perOrg[org] == nil {
			perOrg[org] = make(map[uint64]bool)
		}
		perOrg[org][row.Eip] = true
	}

	counts := make([]types.EntityShare, 0, len(perOrg))
	for org, eips := range perOrg {
		counts = append(counts, types.EntityShare{Entity: org, Share: decimal.NewFromInt(int64(len(eips)))})
	}
	return counts
}

// ComputeEIPNakamoto computes the coefficient for EIP authorship from
// normalized author rows.
func ComputeEIPNakamoto(rows []types.AuthorRow, acceptedStatuses []string) *types.NakamotoResult {
	return Compute(types.DomainEipAuthorship, EIPShares(rows, acceptedStatuses), true)
}

// AttendanceShares converts attendance rows into per-organization
// attendance-slot counts. Each (meeting, attendee) row is one slot
// credited to the attendee's organization.
func AttendanceShares(rows []types.AttendanceRow) []types.EntityShare {
	counts := make(map[string]int64)
	for _, row := range rows {
		org := row.Organization
		if org == "" {
			org = "Unknown"
		}
		counts[org]++
	}

	shares := make([]types.EntityShare, 0, len(counts))
	for org, n := range counts {
		shares = append(shares, types.EntityShare{Entity: org, Share: decimal.NewFromInt(n)})
	}
	return shares
}

// ComputeAttendanceNakamoto computes the coefficient for core dev
// meeting attendance.
func ComputeAttendanceNakamoto(rows []types.AttendanceRow) *types.NakamotoResult {
	return Compute(types.DomainCoreDevAttendance, AttendanceShares(rows), true)
}
