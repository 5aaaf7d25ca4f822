package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ethgovscan/governance-metrics/config"
	"github.com/ethgovscan/governance-metrics/types"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config is the globally accessible configuration
var Config *types.Config

func readConfigEnv(cfg *types.Config) error {
	return envconfig.Process("", cfg)
}

// ReadConfig will process a configuration
func ReadConfig(cfg *types.Config, path string) error {
	err := readConfigFile(cfg, path)
	if err != nil {
		return err
	}

	readConfigEnv(cfg)

	if len(cfg.Analysis.AcceptedStatuses) == 0 {
		cfg.Analysis.AcceptedStatuses = []string{"Final", "Living", "Last Call", "Review"}
	}
	if cfg.Analysis.TopEntities == 0 {
		cfg.Analysis.TopEntities = 15
	}
	if cfg.Analysis.ShareTolerance == 0 {
		cfg.Analysis.ShareTolerance = 0.01
	}
	if cfg.Analysis.UnmappedThreshold == 0 {
		cfg.Analysis.UnmappedThreshold = 0.2
	}
	if cfg.Analysis.ParserWorkers == 0 {
		cfg.Analysis.ParserWorkers = runtime.NumCPU()
	}

	logrus.WithFields(logrus.Fields{
		"eipsDir":          cfg.Sources.EipsDir,
		"meetingNotesDir":  cfg.Sources.MeetingNotesDir,
		"outputDir":        cfg.Output.Dir,
		"acceptedStatuses": cfg.Analysis.AcceptedStatuses,
		"parserWorkers":    cfg.Analysis.ParserWorkers,
	}).Infof("did init config")

	return nil
}

func readConfigFile(cfg *types.Config, path string) error {
	if path == "" {
		return yaml.Unmarshal([]byte(config.DefaultConfigYml), cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening config file %v: %v", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		return fmt.Errorf("error decoding config file %v: %v", path, err)
	}

	return nil
}

// LogFatal logs a fatal error with callstack info that skips callerSkip many levels with arbitrarily many additional infos.
// callerSkip equal to 0 gives you info directly where LogFatal is called.
func LogFatal(err error, errorMsg interface{}, callerSkip int, additionalInfos ...string) {
	logErrorInfo(err, callerSkip, additionalInfos...).Fatal(errorMsg)
}

// LogError logs an error with callstack info that skips callerSkip many levels with arbitrarily many additional infos.
// callerSkip equal to 0 gives you info directly where LogError is called.
func LogError(err error, errorMsg interface{}, callerSkip int, additionalInfos ...string) {
	logErrorInfo(err, callerSkip, additionalInfos...).Error(errorMsg)
}

func logErrorInfo(err error, callerSkip int, additionalInfos ...string) *logrus.Entry {
	logFields := logrus.NewEntry(logrus.New())

	pc, fullFilePath, line, ok := runtime.Caller(callerSkip + 2)
	if ok {
		logFields = logFields.WithFields(logrus.Fields{
			"cs_file":     filepath.Base(fullFilePath),
			"cs_function": runtime.FuncForPC(pc).Name(),
			"cs_line":     line,
		})
	} else {
		logFields = logFields.WithField("runtime", "Callstack cannot be read")
	}

	if err != nil {
		logFields = logFields.WithField("error type", fmt.Sprintf("%T", err)).WithError(err)
	}

	for idx, info := range additionalInfos {
		logFields = logFields.WithField(fmt.Sprintf("info_%v", idx), info)
	}

	return logFields
}

// MkdirForFile creates the parent directory of path if it does not exist
func MkdirForFile(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
