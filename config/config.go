// Package config holds the embedded default configuration.
package config

// DefaultConfigYml is used when no config file path is supplied
var DefaultConfigYml = `
sources:
  eipsDir: "data/EIPs/EIPS"
  meetingNotesDir: "data/pm/AllCoreDevs-EL-Meetings"
  clientShares: "data/client_diversity.json"
  stakingShares: "data/staking_distribution.csv"
  orgMapping: ""
output:
  dir: "output"
  authorsCsv: "output/authors.csv"
  attendanceCsv: "output/core_dev_attendance.csv"
  resultsCsv: "output/nakamoto.csv"
  databaseFile: "output/governance.sqlite"
analysis:
  acceptedStatuses:
    - "Final"
    - "Living"
    - "Last Call"
    - "Review"
  topEntities: 15
  shareTolerance: 0.01
  unmappedThreshold: 0.2
  parserWorkers: 4
`
