package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/ethgovscan/governance-metrics/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// columnIndex maps lowercased header names to their column position
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func readCsv(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error opening %v", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error reading %v", path)
	}
	if len(records) == 0 {
		return nil, nil, errors.Errorf("empty csv file %v", path)
	}
	return records[1:], columnIndex(records[0]), nil
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// LoadAuthorRows reads a normalized authors csv as written by the
// parse-eips binary
func LoadAuthorRows(path string) ([]types.AuthorRow, error) {
	records, idx, err := readCsv(path)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{"eip", "status", "organization"} {
		if _, ok := idx[required]; !ok {
			return nil, errors.Errorf("authors file %v is missing required column %v", path, required)
		}
	}

	rows := make([]types.AuthorRow, 0, len(records))
	for _, record := range records {
		eip, err := strconv.ParseUint(field(record, idx, "eip"), 10, 64)
		if err != nil {
			continue
		}
		rows = append(rows, types.AuthorRow{
			Eip:          eip,
			Title:        field(record, idx, "title"),
			Status:       field(record, idx, "status"),
			Author:       field(record, idx, "author"),
			Email:        field(record, idx, "email"),
			GithubHandle: field(record, idx, "github"),
			Organization: field(record, idx, "organization"),
		})
	}
	return rows, nil
}

// LoadAttendanceRows reads a normalized attendance csv as written by the
// parse-coredevs binary
func LoadAttendanceRows(path string) ([]types.AttendanceRow, error) {
	records, idx, err := readCsv(path)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{"meeting", "attendee", "organization"} {
		if _, ok := idx[required]; !ok {
			return nil, errors.Errorf("attendance file %v is missing required column %v", path, required)
		}
	}

	rows := make([]types.AttendanceRow, 0, len(records))
	for _, record := range records {
		meeting, err := strconv.ParseUint(field(record, idx, "meeting"), 10, 64)
		if err != nil {
			continue
		}
		rows = append(rows, types.AttendanceRow{
			Meeting:      meeting,
			Date:         field(record, idx, "date"),
			Attendee:     field(record, idx, "attendee"),
			Organization: field(record, idx, "organization"),
			SourceFile:   field(record, idx, "source_file"),
		})
	}
	return rows, nil
}

// LoadClientShares reads a client diversity table from a JSON file of
// either the shape {"geth": 0.41, ...} or a list of {"client": ...,
// "share": ...} records. Values summing well past 1 are taken as raw
// counts or percentages and flagged for normalization by the engine.
func LoadClientShares(path string, norm *orgmap.Normalizer) ([]types.EntityShare, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, "error reading client shares %v", path)
	}

	byClient := make(map[string]float64)
	if err := json.Unmarshal(data, &byClient); err != nil {
		var list []struct {
			Client string  `json:"client"`
			Share  float64 `json:"share"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, false, errors.Wrapf(err, "unsupported client share format in %v", path)
		}
		for _, entry := range list {
			byClient[entry.Client] += entry.Share
		}
	}

	shares := make([]types.EntityShare, 0, len(byClient))
	total := 0.0
	for client, share := range byClient {
		shares = append(shares, types.EntityShare{
			Entity: norm.Normalize(client, orgmap.DomainClient),
			Share:  decimal.NewFromFloat(share),
		})
		total += share
	}
	return shares, total > 1.5, nil
}

// LoadStakingShares reads a staking distribution csv with a pool column
// and either a share or a count column. The column name decides whether
// the values are proportions or raw counts.
func LoadStakingShares(path string, norm *orgmap.Normalizer) ([]types.EntityShare, bool, error) {
	records, idx, err := readCsv(path)
	if err != nil {
		return nil, false, err
	}
	if _, ok := idx["pool"]; !ok {
		return nil, false, errors.Errorf("staking file %v is missing required column pool", path)
	}
	valueColumn, rawCounts := "", false
	for _, candidate := range []string{"share", "count", "validators", "staked"} {
		if _, ok := idx[candidate]; ok {
			valueColumn = candidate
			rawCounts = candidate != "share"
			break
		}
	}
	if valueColumn == "" {
		return nil, false, errors.Errorf("staking file %v is missing a share or count column", path)
	}

	shares := make([]types.EntityShare, 0, len(records))
	for _, record := range records {
		pool := field(record, idx, "pool")
		if pool == "" {
			continue
		}
		value, err := decimal.NewFromString(field(record, idx, valueColumn))
		if err != nil {
			continue
		}
		shares = append(shares, types.EntityShare{
			Entity: norm.Normalize(pool, orgmap.DomainPool),
			Share:  value,
		})
	}
	return shares, rawCounts, nil
}
