package main

import (
	"flag"

	"github.com/ethgovscan/governance-metrics/db"
	"github.com/ethgovscan/governance-metrics/metrics"
	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/ethgovscan/governance-metrics/parser"
	"github.com/ethgovscan/governance-metrics/types"
	"github.com/ethgovscan/governance-metrics/utils"
	"github.com/ethgovscan/governance-metrics/version"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file, if empty string defaults will be used")
	source := flag.String("source", "", "Path to the meeting notes directory, overrides the config")
	output := flag.String("output", "", "Output csv file path, overrides the config")

	flag.Parse()

	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, *configPath)
	if err != nil {
		logrus.Fatalf("error reading config file: %v", err)
	}
	utils.Config = cfg
	logrus.WithField("config", *configPath).WithField("version", version.Version).Printf("starting")

	if *source != "" {
		cfg.Sources.MeetingNotesDir = *source
	}
	if *output != "" {
		cfg.Output.AttendanceCsv = *output
	}

	norm, err := orgmap.LoadFile(cfg.Sources.OrgMapping)
	if err != nil {
		logrus.Fatalf("error loading organization mapping: %v", err)
	}

	docs, err := parser.ReadDocuments(cfg.Sources.MeetingNotesDir, "*.md")
	if err != nil {
		logrus.Fatalf("error reading meeting notes: %v", err)
	}
	logrus.WithField("documents", len(docs)).Info("found meeting notes")

	meetings, failures := parser.NewMeetingParser(norm).ProcessMeetings(docs, cfg.Analysis.ParserWorkers)
	rows := metrics.AttendanceRows(meetings)

	if err := metrics.WriteAttendanceCsv(cfg.Output.AttendanceCsv, rows); err != nil {
		utils.LogFatal(err, "error writing attendance csv", 0)
	}

	db.MustInitDB(cfg.Output.DatabaseFile)
	defer db.AnalysisDb.Close()
	if err := db.SaveAttendanceRows(rows); err != nil {
		utils.LogError(err, "error saving attendance snapshot", 0)
	}

	logrus.WithFields(logrus.Fields{
		"meetings":    len(meetings),
		"attendances": len(rows),
		"failed":      len(failures),
		"output":      cfg.Output.AttendanceCsv,
	}).Info("wrote attendance data")
	logrus.Println("exiting...")
}
