// Package types holds the logging contracts shared by the logger and its adapters.
package types

import (
	"context"
	"strings"
	"time"
)

// LogLevel orders severities; entries below a logger's level are dropped
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelNames = [...]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

// String returns the lowercase level name used in json and text output.
// Out-of-range values print as info.
func (l LogLevel) String() string {
	if l < DebugLevel || l > FatalLevel {
		return levelNames[InfoLevel]
	}
	return levelNames[l]
}

// ParseLevel is the inverse of String, also accepting "warning".
// Unknown names parse as info.
func ParseLevel(name string) LogLevel {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		return WarnLevel
	}
	for level, levelName := range levelNames {
		if levelName == name {
			return LogLevel(level)
		}
	}
	return InfoLevel
}

// Fields are structured key/values attached to an entry
type Fields = map[string]interface{}

// LogEntry is a single log line as handed to adapters
type LogEntry struct {
	Level     LogLevel        `json:"level"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Fields    Fields          `json:"fields,omitempty"`
	Context   context.Context `json:"-"`
}

// LogAdapter writes entries to one destination. Write may be called from
// many goroutines; adapters serialize internally when they need to.
type LogAdapter interface {
	Write(entry *LogEntry) error
	Close() error
	Health() error
	Name() string
}

// Logger is what the scraper's packages log through. Derived loggers
// (WithField, WithFields, WithContext) share adapters and level with their parent.
type Logger interface {
	Debug(message string, fields ...Fields)
	Info(message string, fields ...Fields)
	Warn(message string, fields ...Fields)
	Error(message string, fields ...Fields)
	Fatal(message string, fields ...Fields)
	Log(level LogLevel, message string, fields ...Fields)

	WithContext(ctx context.Context) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger

	SetLevel(level LogLevel)
	GetLevel() LogLevel

	AddAdapter(adapter LogAdapter) error
	RemoveAdapter(adapterName string) error
	Close() error
}

// AdapterConfig is one entry of logging.adapters in the config file
type AdapterConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Enabled bool   `yaml:"enabled"`
	Options Fields `yaml:"options"`
}
