package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ethgovscan/governance-metrics/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestDB(t *testing.T) {
	t.Helper()
	MustInitDB(filepath.Join(t.TempDir(), "analysis.sqlite"))
	t.Cleanup(func() {
		AnalysisDb.Close()
		AnalysisDb = nil
	})
}

func TestSaveAndGetAuthorRows(t *testing.T) {
	initTestDB(t)
	rows := []types.AuthorRow{
		{Eip: 20, Title: "Tokens", Status: "Final", Author: "Fabian Vogelsteller", GithubHandle: "frozeman", Organization: "LUKSO"},
		{Eip: 1, Title: "Purpose", Status: "Living", Author: "Martin Becze", Email: "mb@ethereum.org", Organization: "Ethereum Foundation"},
	}

	require.NoError(t, SaveAuthorRows(rows))

	got, err := GetAuthorRows()
	require.NoError(t, err)
	require.Len(t, got, 2)
	// snapshot reads come back ordered by proposal number
	assert.Equal(t, uint64(1), got[0].Eip)
	assert.Equal(t, uint64(20), got[1].Eip)
	assert.Equal(t, "LUKSO", got[1].Organization)

	// saving again replaces the snapshot instead of appending
	require.NoError(t, SaveAuthorRows(rows[:1]))
	got, err = GetAuthorRows()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveAndGetAttendanceRows(t *testing.T) {
	initTestDB(t)
	rows := []types.AttendanceRow{
		{Meeting: 42, Date: "2020-01-10", Attendee: "Tim Beiko", Organization: "Ethereum Foundation", SourceFile: "meeting-42.md"},
		{Meeting: 43, Date: "2020-01-24", Attendee: "Lukasz Rozmej", Organization: "Nethermind", SourceFile: "meeting-43.md"},
	}

	require.NoError(t, SaveAttendanceRows(rows))

	got, err := GetAttendanceRows()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Tim Beiko", got[0].Attendee)
	assert.Equal(t, "Nethermind", got[1].Organization)
}

func TestSaveAndGetResults(t *testing.T) {
	initTestDB(t)
	k := uint64(2)
	table := &types.MetricsTable{
		Order: []string{types.DomainClientDiversity, types.DomainStakingDistribution},
		Domains: map[string]*types.DomainResult{
			types.DomainClientDiversity: {
				Result: &types.NakamotoResult{
					Domain:        types.DomainClientDiversity,
					Coefficient:   &k,
					TotalEntities: 3,
					TotalShare:    decimal.RequireFromString("1"),
				},
				Flags: []string{types.FlagShareBelowOne},
			},
			types.DomainStakingDistribution: {
				Err: assert.AnError,
			},
		},
	}

	require.NoError(t, SaveResults(time.Now(), table))

	got, err := GetLatestResults()
	require.NoError(t, err)
	require.Len(t, got, 2)
	// ordered by domain name
	assert.Equal(t, types.DomainClientDiversity, got[0].Domain)
	assert.Equal(t, int64(2), got[0].Coefficient)
	assert.Equal(t, types.FlagShareBelowOne, got[0].Flags)
	// failed domains are stored with the sentinel coefficient
	assert.Equal(t, int64(-1), got[1].Coefficient)
	assert.Contains(t, got[1].Flags, "error")
}

func TestGetLatestResultsPicksNewestRun(t *testing.T) {
	initTestDB(t)
	k := uint64(1)
	table := &types.MetricsTable{
		Order: []string{types.DomainEipAuthorship},
		Domains: map[string]*types.DomainResult{
			types.DomainEipAuthorship: {
				Result: &types.NakamotoResult{
					Domain:        types.DomainEipAuthorship,
					Coefficient:   &k,
					TotalEntities: 1,
					TotalShare:    decimal.RequireFromString("1"),
				},
			},
		},
	}

	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, SaveResults(first, table))

	k2 := uint64(4)
	table.Domains[types.DomainEipAuthorship].Result.Coefficient = &k2
	require.NoError(t, SaveResults(first.Add(time.Hour), table))

	got, err := GetLatestResults()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].Coefficient)
}
