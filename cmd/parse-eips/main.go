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
	source := flag.String("source", "", "Path to the EIPs directory, overrides the config")
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
		cfg.Sources.EipsDir = *source
	}
	if *output != "" {
		cfg.Output.AuthorsCsv = *output
	}

	norm, err := orgmap.LoadFile(cfg.Sources.OrgMapping)
	if err != nil {
		logrus.Fatalf("error loading organization mapping: %v", err)
	}

	docs, err := parser.ReadDocuments(cfg.Sources.EipsDir, "eip-*.md")
	if err != nil {
		logrus.Fatalf("error reading proposal documents: %v", err)
	}
	logrus.WithField("documents", len(docs)).Info("found proposal documents")

	eips, failures := parser.NewEipParser(norm).ProcessRepository(docs, cfg.Analysis.ParserWorkers)
	rows := metrics.AuthorRows(eips)

	if err := metrics.WriteAuthorsCsv(cfg.Output.AuthorsCsv, rows); err != nil {
		utils.LogFatal(err, "error writing authors csv", 0)
	}

	db.MustInitDB(cfg.Output.DatabaseFile)
	defer db.AnalysisDb.Close()
	if err := db.SaveAuthorRows(rows); err != nil {
		utils.LogError(err, "error saving author snapshot", 0)
	}

	logrus.WithFields(logrus.Fields{
		"eips":    len(eips),
		"authors": len(rows),
		"failed":  len(failures),
		"output":  cfg.Output.AuthorsCsv,
	}).Info("wrote author data")
	logrus.Println("exiting...")
}
