package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("warnings and errors by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		logger := newLogger(&buf, false, true)
		logger.Debug("debug entry", nil)
		logger.Info("info entry", nil)
		logger.Warn("failed to publish audit record", map[string]interface{}{"subject": "sellsy.calls"})
		logger.Error("API Call Failed", map[string]interface{}{"method": "Client.getOne"})

		output := buf.String()
		assert.NotContains(t, output, "debug entry")
		assert.NotContains(t, output, "info entry")
		assert.Contains(t, output, "failed to publish audit record")
		assert.Contains(t, output, "subject=sellsy.calls")
		assert.Contains(t, output, "API Call Failed")
		assert.Contains(t, output, "method=Client.getOne")
	})

	t.Run("verbose keeps debug entries", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		logger := newLogger(&buf, true, true)
		logger.Debug("HTTP Request", map[string]interface{}{"method": "POST"})

		assert.Contains(t, buf.String(), "HTTP Request")
		assert.Contains(t, buf.String(), "method=POST")
		assert.Contains(t, buf.String(), "service=sellsy")
	})
}
