package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestGlobalLoggerDisabledByDefault verifies library consumers get no log output
// unless they opt in; only the CLI enables console logging.
func TestGlobalLoggerDisabledByDefault(t *testing.T) {
	assert.EqualValues(t, zerolog.Disabled, GlobalLogger.Level())
}

// TestStructuredWriterOutput verifies log events reach an attached writer with the
// sub-logger's context key attached.
func TestStructuredWriterOutput(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buffer)
	subLogger := logger.NewSubLogger("module", "test")

	subLogger.Info("indexing ", 3, " artifacts")
	output := buffer.String()
	assert.True(t, strings.Contains(output, "indexing 3 artifacts"))
	assert.True(t, strings.Contains(output, `"module":"test"`))
}

// TestSetLevelSuppressesEvents verifies raising the level filters lower-severity events.
func TestSetLevelSuppressesEvents(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buffer)
	logger.SetLevel(zerolog.ErrorLevel)

	logger.Info("should not appear")
	assert.EqualValues(t, "", buffer.String())

	logger.Error("should appear")
	assert.True(t, strings.Contains(buffer.String(), "should appear"))
}
