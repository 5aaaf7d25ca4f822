package main

import (
	"flag"
	"time"

	"github.com/ethgovscan/governance-metrics/db"
	"github.com/ethgovscan/governance-metrics/metrics"
	"github.com/ethgovscan/governance-metrics/orgmap"
	"github.com/ethgovscan/governance-metrics/types"
	"github.com/ethgovscan/governance-metrics/utils"
	"github.com/ethgovscan/governance-metrics/version"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file, if empty string defaults will be used")
	authors := flag.String("authors", "", "Path to the authors csv, overrides the config")
	attendance := flag.String("attendance", "", "Path to the attendance csv, overrides the config")
	clientData := flag.String("client-data", "", "Path to the client diversity json, overrides the config")
	stakingData := flag.String("staking-data", "", "Path to the staking distribution csv, overrides the config")
	output := flag.String("output", "", "Output csv file path, overrides the config")
	noReports := flag.Bool("no-reports", false, "Skip writing per-domain text reports")

	flag.Parse()

	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, *configPath)
	if err != nil {
		logrus.Fatalf("error reading config file: %v", err)
	}
	utils.Config = cfg
	logrus.WithField("config", *configPath).WithField("version", version.Version).Printf("starting")

	if *authors != "" {
		cfg.Output.AuthorsCsv = *authors
	}
	if *attendance != "" {
		cfg.Output.AttendanceCsv = *attendance
	}
	if *clientData != "" {
		cfg.Sources.ClientShares = *clientData
	}
	if *stakingData != "" {
		cfg.Sources.StakingShares = *stakingData
	}
	if *output != "" {
		cfg.Output.ResultsCsv = *output
	}

	norm, err := orgmap.LoadFile(cfg.Sources.OrgMapping)
	if err != nil {
		logrus.Fatalf("error loading organization mapping: %v", err)
	}

	runAt := time.Now()
	table := metrics.NewAggregator(cfg, norm).ComputeAllMetrics()

	if err := metrics.WriteResultsCsv(cfg.Output.ResultsCsv, table); err != nil {
		utils.LogFatal(err, "error writing results csv", 0)
	}
	if !*noReports {
		if err := metrics.WriteTextReports(table, cfg.Output.Dir, runAt); err != nil {
			utils.LogError(err, "error writing text reports", 0)
		}
	}

	db.MustInitDB(cfg.Output.DatabaseFile)
	defer db.AnalysisDb.Close()
	if err := db.SaveResults(runAt, table); err != nil {
		utils.LogError(err, "error saving run results", 0)
	}

	for _, name := range table.Order {
		domain := table.Domains[name]
		entry := logrus.WithField("domain", name)
		switch {
		case domain.Err != nil:
			entry.WithError(domain.Err).Error("domain failed")
		case domain.Result.Coefficient == nil:
			entry.Warn("nakamoto coefficient undefined (empty domain)")
		default:
			entry.WithField("entities", domain.Result.TotalEntities).
				WithField("flags", domain.Flags).
				Infof("nakamoto coefficient: %d", *domain.Result.Coefficient)
		}
	}
	logrus.Println("exiting...")
}
