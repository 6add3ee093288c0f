package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelNamesRoundTrip(t *testing.T) {
	for _, level := range []LogLevel{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel} {
		assert.Equal(t, level, ParseLevel(level.String()))
	}
}

func TestLevelFallbacks(t *testing.T) {
	assert.Equal(t, "info", LogLevel(42).String())
	assert.Equal(t, "info", LogLevel(-1).String())
	assert.Equal(t, WarnLevel, ParseLevel(" Warning "))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}
