package adapters

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"universal-scraper/internal/logging/types"
)

// ConsoleAdapter renders entries for a human at a terminal using charmbracelet/log
type ConsoleAdapter struct {
	name   string
	logger *log.Logger
}

// ConsoleConfig represents configuration for the console adapter
type ConsoleConfig struct {
	ReportTimestamp bool      `yaml:"report_timestamp"`
	Prefix          string    `yaml:"prefix"`
	Writer          io.Writer `yaml:"-"` // defaults to os.Stderr
}

// NewConsoleAdapter creates a new console adapter. Level filtering is left to
// the MultiLogger, so the underlying logger accepts everything.
func NewConsoleAdapter(name string, config ConsoleConfig) *ConsoleAdapter {
	out := config.Writer
	if out == nil {
		out = os.Stderr
	}

	return &ConsoleAdapter{
		name: name,
		logger: log.NewWithOptions(out, log.Options{
			ReportTimestamp: config.ReportTimestamp,
			Prefix:          config.Prefix,
			Level:           log.DebugLevel,
		}),
	}
}

// Write writes a log entry
func (a *ConsoleAdapter) Write(entry *types.LogEntry) error {
	keyvals := make([]interface{}, 0, len(entry.Fields)*2)
	for _, k := range sortedKeys(entry.Fields) {
		keyvals = append(keyvals, k, entry.Fields[k])
	}

	a.logger.Log(consoleLevel(entry.Level), entry.Message, keyvals...)
	return nil
}

func (a *ConsoleAdapter) Close() error  { return nil }
func (a *ConsoleAdapter) Health() error { return nil }
func (a *ConsoleAdapter) Name() string  { return a.name }

// consoleLevel maps fatal to error so the adapter never exits the process itself
func consoleLevel(level types.LogLevel) log.Level {
	switch level {
	case types.DebugLevel:
		return log.DebugLevel
	case types.InfoLevel:
		return log.InfoLevel
	case types.WarnLevel:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
