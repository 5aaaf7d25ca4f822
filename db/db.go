// Package db persists normalized records and run results in a local
// sqlite snapshot store so successive analysis runs can be compared.
package db

import (
	"embed"

	"github.com/ethgovscan/governance-metrics/utils"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var logger = logrus.StandardLogger().WithField("module", "db")

//go:embed migrations/*.sql
var embedMigrations embed.FS

// AnalysisDb is the globally accessible database handle
var AnalysisDb *sqlx.DB

// MustInitDB opens (and if needed creates) the sqlite store at path and
// brings the schema up to date
func MustInitDB(path string) {
	if err := utils.MkdirForFile(path); err != nil {
		utils.LogFatal(err, "error creating database directory", 0)
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		utils.LogFatal(err, "error opening analysis database", 0)
	}
	// modernc sqlite serializes writes itself, a single conn avoids
	// SQLITE_BUSY on concurrent inserts
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		utils.LogFatal(err, "error setting migration dialect", 0)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		utils.LogFatal(err, "error applying database migrations", 0)
	}

	logger.WithField("path", path).Info("database initialized")
	AnalysisDb = db
}
