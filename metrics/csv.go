package metrics

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/ethgovscan/governance-metrics/types"
	"github.com/ethgovscan/governance-metrics/utils"
	"github.com/pkg/errors"
)

// AuthorRows flattens parsed proposal metadata into one row per
// (eip, author) for the csv and database outputs
func AuthorRows(eips []*types.EipMetadata) []types.AuthorRow {
	var rows []types.AuthorRow
	for _, eip := range eips {
		for _, author := range eip.Authors {
			rows = append(rows, types.AuthorRow{
				Eip:          eip.Number,
				Title:        eip.Title,
				Status:       eip.Status,
				Author:       author.Name,
				Email:        author.Email,
				GithubHandle: author.GithubHandle,
				Organization: author.Organization,
			})
		}
	}
	return rows
}

// AttendanceRows flattens parsed meetings into one row per
// (meeting, attendee)
func AttendanceRows(meetings []*types.MeetingData) []types.AttendanceRow {
	var rows []types.AttendanceRow
	for _, meeting := range meetings {
		for _, attendee := range meeting.Attendees {
			rows = append(rows, types.AttendanceRow{
				Meeting:      meeting.Number,
				Date:         meeting.Date,
				Attendee:     attendee.Name,
				Organization: attendee.Organization,
				SourceFile:   meeting.SourceFile,
			})
		}
	}
	return rows
}

func writeCsv(path string, header []string, records [][]string) error {
	if err := utils.MkdirForFile(path); err != nil {
		return errors.Wrapf(err, "error creating output dir for %v", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating %v", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrapf(err, "error writing %v", path)
	}
	if err := w.WriteAll(records); err != nil {
		return errors.Wrapf(err, "error writing %v", path)
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "error flushing %v", path)
}

// WriteAuthorsCsv writes the normalized author rows
func WriteAuthorsCsv(path string, rows []types.AuthorRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatUint(r.Eip, 10), r.Title, r.Status, r.Author, r.Email, r.GithubHandle, r.Organization,
		})
	}
	return writeCsv(path, []string{"EIP", "Title", "Status", "Author", "Email", "GitHub", "Organization"}, records)
}

// WriteAttendanceCsv writes the normalized attendance rows
func WriteAttendanceCsv(path string, rows []types.AttendanceRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatUint(r.Meeting, 10), r.Date, r.Attendee, r.Organization, r.SourceFile,
		})
	}
	return writeCsv(path, []string{"Meeting", "Date", "Attendee", "Organization", "Source_File"}, records)
}

// WriteResultsCsv writes the unified metrics table, one row per domain.
// Failed domains are written with an empty coefficient and an error
// marker so the report shows which domains succeeded.
func WriteResultsCsv(path string, table *types.MetricsTable) error {
	records := make([][]string, 0, len(table.Order))
	for _, name := range table.Order {
		domain := table.Domains[name]
		if domain.Err != nil {
			records = append(records, []string{name, "", "", "", "error: " + domain.Err.Error()})
			continue
		}
		coefficient := ""
		if domain.Result.Coefficient != nil {
			coefficient = strconv.FormatUint(*domain.Result.Coefficient, 10)
		}
		records = append(records, []string{
			name,
			coefficient,
			strconv.Itoa(domain.Result.TotalEntities),
			domain.Result.TotalShare.StringFixed(4),
			strings.Join(domain.Flags, ";"),
		})
	}
	return writeCsv(path, []string{"Domain", "Nakamoto_Coefficient", "Entities", "Total_Share", "Flags"}, records)
}
