package types

// Config is the top level configuration of all analysis binaries
type Config struct {
	Sources struct {
		EipsDir         string `yaml:"eipsDir" envconfig:"SOURCES_EIPS_DIR"`
		MeetingNotesDir string `yaml:"meetingNotesDir" envconfig:"SOURCES_MEETING_NOTES_DIR"`
		ClientShares    string `yaml:"clientShares" envconfig:"SOURCES_CLIENT_SHARES"`
		StakingShares   string `yaml:"stakingShares" envconfig:"SOURCES_STAKING_SHARES"`
		OrgMapping      string `yaml:"orgMapping" envconfig:"SOURCES_ORG_MAPPING"`
	} `yaml:"sources"`
	Output struct {
		Dir           string `yaml:"dir" envconfig:"OUTPUT_DIR"`
		AuthorsCsv    string `yaml:"authorsCsv" envconfig:"OUTPUT_AUTHORS_CSV"`
		AttendanceCsv string `yaml:"attendanceCsv" envconfig:"OUTPUT_ATTENDANCE_CSV"`
		ResultsCsv    string `yaml:"resultsCsv" envconfig:"OUTPUT_RESULTS_CSV"`
		DatabaseFile  string `yaml:"databaseFile" envconfig:"OUTPUT_DATABASE_FILE"`
	} `yaml:"output"`
	Analysis struct {
		AcceptedStatuses  []string `yaml:"acceptedStatuses" envconfig:"ANALYSIS_ACCEPTED_STATUSES"`
		TopEntities       int      `yaml:"topEntities" envconfig:"ANALYSIS_TOP_ENTITIES"`
		ShareTolerance    float64  `yaml:"shareTolerance" envconfig:"ANALYSIS_SHARE_TOLERANCE"`
		UnmappedThreshold float64  `yaml:"unmappedThreshold" envconfig:"ANALYSIS_UNMAPPED_THRESHOLD"`
		ParserWorkers     int      `yaml:"parserWorkers" envconfig:"ANALYSIS_PARSER_WORKERS"`
	} `yaml:"analysis"`
}
