package logging

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FilteredLog collects info and error messages of a single processing step so
// they can be shown to the user as a block. Messages are optionally forwarded
// to a logrus logger as they arrive.
type FilteredLog struct {
	mu     sync.Mutex
	title  string
	infos  []string
	errors []string
	logger log.FieldLogger
}

func NewFilteredLog(title string) *FilteredLog {
	return &FilteredLog{title: title}
}

// WithLogger forwards subsequent messages to logger.
func (l *FilteredLog) WithLogger(logger log.FieldLogger) *FilteredLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = logger
	return l
}

func (l *FilteredLog) Title() string { return l.title }

func (l *FilteredLog) LogInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
	if l.logger != nil {
		l.logger.Info(msg)
	}
}

func (l *FilteredLog) LogError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
	if l.logger != nil {
		l.logger.Error(msg)
	}
}

// Infos returns the collected info messages in arrival order.
func (l *FilteredLog) Infos() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.infos...)
}

// Errors returns the collected error messages in arrival order.
func (l *FilteredLog) Errors() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}

func (l *FilteredLog) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors) > 0
}
