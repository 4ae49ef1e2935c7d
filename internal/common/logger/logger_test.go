package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"provider": "news"})

	log.Info("fetched", map[string]interface{}{"count": 5})
	log.WithError(errors.New("boom")).Warn("degraded", nil)
	log.Error("failed", map[string]interface{}{"cause": errors.New("bad gateway")})

	entries := logs.All()
	assert.Len(t, entries, 3)

	assert.Equal(t, "fetched", entries[0].Message)
	assert.Equal(t, "news", entries[0].ContextMap()["provider"])
	assert.EqualValues(t, 5, entries[0].ContextMap()["count"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.Equal(t, "bad gateway", entries[2].ContextMap()["cause"])
}

func TestNew_Levels(t *testing.T) {
	l := New("warn", "json", "stderr")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	d := New("debug", "console", "")
	assert.True(t, d.Core().Enabled(zapcore.DebugLevel))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.With(map[string]interface{}{"a": 1}).Info("ignored", nil)
	})
}
