package db

import (
	"strings"
	"time"

	"github.com/ethgovscan/governance-metrics/types"
	"github.com/pkg/errors"
)

// SaveAuthorRows replaces the stored author snapshot
func SaveAuthorRows(rows []types.AuthorRow) error {
	tx, err := AnalysisDb.Beginx()
	if err != nil {
		return errors.Wrap(err, "error starting author snapshot tx")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM eip_authors"); err != nil {
		return errors.Wrap(err, "error clearing author snapshot")
	}
	for _, row := range rows {
		_, err := tx.NamedExec(`
			INSERT INTO eip_authors (eip, title, status, author, email, github_handle, organization)
			VALUES (:eip, :title, :status, :author, :email, :github_handle, :organization)`, row)
		if err != nil {
			return errors.Wrap(err, "error inserting author row")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "error committing author snapshot")
	}
	logger.WithField("rows", len(rows)).Info("saved author snapshot")
	return nil
}

// SaveAttendanceRows replaces the stored attendance snapshot
func SaveAttendanceRows(rows []types.AttendanceRow) error {
	tx, err := AnalysisDb.Beginx()
	if err != nil {
		return errors.Wrap(err, "error starting attendance snapshot tx")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM meeting_attendance"); err != nil {
		return errors.Wrap(err, "error clearing attendance snapshot")
	}
	for _, row := range rows {
		_, err := tx.NamedExec(`
			INSERT INTO meeting_attendance (meeting, date, attendee, organization, source_file)
			VALUES (:meeting, :date, :attendee, :organization, :source_file)`, row)
		if err != nil {
			return errors.Wrap(err, "error inserting attendance row")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "error committing attendance snapshot")
	}
	logger.WithField("rows", len(rows)).Info("saved attendance snapshot")
	return nil
}

// SaveResults appends one run of the metrics table. Failed domains are
// stored with coefficient -1 and the error in the flags column.
func SaveResults(runAt time.Time, table *types.MetricsTable) error {
	stamp := runAt.UTC().Format(time.RFC3339)
	for _, name := range table.Order {
		domain := table.Domains[name]
		row := types.ResultRow{
			RunAt:       stamp,
			Domain:      name,
			Coefficient: -1,
		}
		if domain.Err != nil {
			row.Flags = "error: " + domain.Err.Error()
		} else {
			if domain.Result.Coefficient != nil {
				row.Coefficient = int64(*domain.Result.Coefficient)
			}
			row.Entities = int64(domain.Result.TotalEntities)
			row.TotalShare = domain.Result.TotalShare.StringFixed(4)
			row.Flags = strings.Join(domain.Flags, ";")
		}
		_, err := AnalysisDb.NamedExec(`
			INSERT INTO nakamoto_results (run_at, domain, coefficient, entities, total_share, flags)
			VALUES (:run_at, :domain, :coefficient, :entities, :total_share, :flags)`, row)
		if err != nil {
			return errors.Wrapf(err, "error inserting result row for %v", name)
		}
	}
	logger.WithField("domains", len(table.Order)).Info("saved run results")
	return nil
}

// GetAuthorRows returns the stored author snapshot
func GetAuthorRows() ([]types.AuthorRow, error) {
	var rows []types.AuthorRow
	err := AnalysisDb.Select(&rows, "SELECT eip, title, status, author, email, github_handle, organization FROM eip_authors ORDER BY eip")
	return rows, err
}

// GetAttendanceRows returns the stored attendance snapshot
func GetAttendanceRows() ([]types.AttendanceRow, error) {
	var rows []types.AttendanceRow
	err := AnalysisDb.Select(&rows, "SELECT meeting, date, attendee, organization, source_file FROM meeting_attendance ORDER BY meeting")
	return rows, err
}

// GetLatestResults returns the most recent run of the metrics table
func GetLatestResults() ([]types.ResultRow, error) {
	var rows []types.ResultRow
	err := AnalysisDb.Select(&rows, `
		SELECT run_at, domain, coefficient, entities, total_share, flags
		FROM nakamoto_results
		WHERE run_at = (SELECT MAX(run_at) FROM nakamoto_results)
		ORDER BY domain`)
	return rows, err
}
