package shared

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("WritesToWriter", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&buf)
		l.Info("mounted", "layers", 3)
		assert.Contains(t, buf.String(), "mounted")
		assert.Contains(t, buf.String(), "layers=3")
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		l := WithLogger(NewLogger(&buf), "mount", "abc")
		l.Info("frame")
		assert.Contains(t, buf.String(), "mount=abc")
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		l := NewLogger(&bytes.Buffer{})
		require.NoError(t, SetLogLevel(l, "debug"))
		assert.Equal(t, log.DebugLevel, l.GetLevel())

		assert.Error(t, SetLogLevel(l, "loud"))
		assert.Equal(t, log.InfoLevel, l.GetLevel())
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
