package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomErrorUnwrapsThroughWrapping(t *testing.T) {
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	wrapped := fmt.Errorf("pipeline: %w", NewScrapingError(cause))

	ce, ok := AsCustomError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, ce.Code)
	assert.Equal(t, "scraping_failed", ce.Kind)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "Scraping failed: net::ERR_NAME_NOT_RESOLVED", ce.Error())
}

func TestNoDataError(t *testing.T) {
	err := NewNoDataError()
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, NoDataNotice, err.Error())
}

func TestSessionIDs(t *testing.T) {
	id := GenerateSessionID()
	assert.True(t, IsValidSessionID(id))
	assert.False(t, IsValidSessionID("not-a-session"))
	assert.NotEqual(t, id, GenerateSessionID())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.0m", FormatDuration(2*time.Minute))
}
