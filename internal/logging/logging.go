package logging

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// VerbosityLevel defines the logging verbosity.
type VerbosityLevel int

const (
	Verbose VerbosityLevel = iota
	Info
	Warning
	Error
	Off
)

var verbosityNames = map[VerbosityLevel]string{
	Verbose: "Verbose",
	Info:    "Info",
	Warning: "Warning",
	Error:   "Error",
	Off:     "Off",
}

func (v VerbosityLevel) String() string {
	if name, ok := verbosityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VerbosityLevel(%d)", int(v))
}

// ParseVerbosity resolves a level name, ignoring case.
func ParseVerbosity(s string) (VerbosityLevel, error) {
	for level, name := range verbosityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return level, nil
		}
	}
	return Info, fmt.Errorf("invalid verbosity level '%s', valid levels are Verbose, Info, Warning, Error, Off", s)
}

// LogrusLevel maps the verbosity onto the logrus level threshold.
func (v VerbosityLevel) LogrusLevel() log.Level {
	switch v {
	case Verbose:
		return log.DebugLevel
	case Warning:
		return log.WarnLevel
	case Error, Off:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// NewLogger creates a text logger writing to out. Off discards everything.
func NewLogger(v VerbosityLevel, out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetLevel(v.LogrusLevel())
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	if v == Off {
		out = io.Discard
	}
	logger.SetOutput(out)
	return logger
}
