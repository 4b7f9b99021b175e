package common

import (
	"io"
	"os"
	"sync"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oasisprotocol/prng-suite/common/logging"
)

const (
	// CfgLogFile is the log file flag.
	CfgLogFile = "log.file"
	// CfgLogFmt is the log format flag.
	CfgLogFmt = "log.format"
	// CfgLogLevel is the log level flag. Per module levels are only
	// supported by the config file.
	CfgLogLevel = "log.level"
)

// LoggingFlags has the logging flags.
var LoggingFlags = flag.NewFlagSet("", flag.ContinueOnError)

var (
	loggingOnce sync.Once
	loggingErr  error
)

// InitLogging initializes logging from the bound configuration. Only the
// first call has any effect.
func InitLogging() error {
	loggingOnce.Do(func() {
		loggingErr = initLogging()
	})
	return loggingErr
}

func initLogging() error {
	var logLevel logging.Level
	moduleLevels := map[string]logging.Level{}
	if err := logLevel.Set(viper.GetString(CfgLogLevel)); err != nil {
		if errDefault := logLevel.Set(viper.GetString(CfgLogLevel + ".default")); errDefault != nil {
			return errDefault
		}

		for k, v := range viper.GetStringMapString(CfgLogLevel) {
			if k == "default" {
				continue
			}

			var lvl logging.Level
			if err = lvl.Set(v); err != nil {
				return err
			}
			moduleLevels[k] = lvl
		}
	}

	var logFmt logging.Format
	if err := logFmt.Set(viper.GetString(CfgLogFmt)); err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if logFile := viper.GetString(CfgLogFile); logFile != "" {
		var err error
		if w, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err != nil {
			return err
		}
	}

	return logging.Initialize(w, logFmt, logLevel, moduleLevels)
}

func init() {
	logFmt := logging.FmtLogfmt
	logLevel := logging.LevelWarn

	LoggingFlags.String(CfgLogFile, "", "log file")
	LoggingFlags.Var(&logFmt, CfgLogFmt, "log format")
	LoggingFlags.Var(&logLevel, CfgLogLevel, "log level")

	_ = viper.BindPFlags(LoggingFlags)
}
