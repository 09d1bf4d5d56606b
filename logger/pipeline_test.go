package logger

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shahafle/costs-manager/models"
)

func TestMain(m *testing.M) {
	if err := Init(true, DebugLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type captureEmitter struct {
	payloads [][]byte
}

func (e *captureEmitter) Emit(payload []byte) {
	e.payloads = append(e.payloads, payload)
}

func pipelineLogger(emitter Emitter, level zapcore.Level) *zap.Logger {
	return zap.New(NewPipelineCore("costs-service", emitter, level))
}

func TestPipelineCoreEmitsEntries(t *testing.T) {
	emitter := &captureEmitter{}
	log := pipelineLogger(emitter, zapcore.InfoLevel)

	log.Info("created new cost", zap.Int("user_id", 3), zap.String("category", "food"))

	require.Len(t, emitter.payloads, 1)
	var entry models.LogEntry
	require.NoError(t, json.Unmarshal(emitter.payloads[0], &entry))
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, "costs-service", entry.Service)
	assert.Equal(t, "created new cost", entry.Message)
	assert.Equal(t, os.Getpid(), entry.PID)
	assert.Equal(t, float64(3), entry.Metadata["user_id"])
	assert.Equal(t, "food", entry.Metadata["category"])
	assert.False(t, entry.Time.IsZero())
}

func TestPipelineCoreRespectsLevel(t *testing.T) {
	emitter := &captureEmitter{}
	log := pipelineLogger(emitter, zapcore.WarnLevel)

	log.Info("below threshold")
	log.Warn("at threshold")

	require.Len(t, emitter.payloads, 1)
	var entry models.LogEntry
	require.NoError(t, json.Unmarshal(emitter.payloads[0], &entry))
	assert.Equal(t, "warn", entry.Level)
}

func TestPipelineCoreCarriesWithFields(t *testing.T) {
	emitter := &captureEmitter{}
	log := pipelineLogger(emitter, zapcore.InfoLevel).With(zap.String("request_id", "abc"))

	log.Info("endpoint accessed", zap.String("path", "/api/report"))

	require.Len(t, emitter.payloads, 1)
	var entry models.LogEntry
	require.NoError(t, json.Unmarshal(emitter.payloads[0], &entry))
	assert.Equal(t, "abc", entry.Metadata["request_id"])
	assert.Equal(t, "/api/report", entry.Metadata["path"])
}
