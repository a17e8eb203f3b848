// Package logger is heartline's process-wide structured log. Entries go to a
// rotated file in <config dir>/logs; --debug mirrors them to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/heartline/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	discard = log.New(io.Discard)
)

type Config struct {
	Debug bool
	// Level overrides the default threshold (warn, or debug with Debug).
	// Accepts debug, info, warn, error.
	Level     string
	ConfigDir string
	// Stderr receives the debug mirror; nil means os.Stderr.
	Stderr io.Writer
}

func (c Config) level() (log.Level, error) {
	if c.Level != "" {
		lvl, err := log.ParseLevel(c.Level)
		if err != nil {
			return 0, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		return lvl, nil
	}
	if c.Debug {
		return log.DebugLevel, nil
	}
	return log.WarnLevel, nil
}

// FilePath is the active log file for configDir.
func FilePath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	level, err := cfg.level()
	if err != nil {
		return err
	}

	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var writer io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
	if cfg.Debug {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writer = io.MultiWriter(stderr, writer)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// ForPatient returns a logger that tags every entry with the patient id.
// Before Init it discards everything.
func ForPatient(patientID string) *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger.With("patient", patientID)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
	os.Exit(1)
}
