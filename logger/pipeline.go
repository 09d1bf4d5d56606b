package logger

import (
	"encoding/json"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/shahafle/costs-manager/models"
)

// Emitter hands a serialized log entry to the shared log pipeline.
// Emit must never block and must swallow delivery failures: a log entry
// is at-most-once and must not affect the request that produced it.
type Emitter interface {
	Emit(payload []byte)
}

// pipelineCore is a zapcore.Core that converts every entry into a
// models.LogEntry and emits it best-effort. It is attached alongside
// the console core, never instead of it.
type pipelineCore struct {
	zapcore.LevelEnabler
	service string
	emitter Emitter
	fields  []zapcore.Field
}

// NewPipelineCore returns a core mirroring entries at or above level
// into the given emitter.
func NewPipelineCore(service string, emitter Emitter, level zapcore.Level) zapcore.Core {
	return &pipelineCore{
		LevelEnabler: level,
		service:      service,
		emitter:      emitter,
	}
}

func (c *pipelineCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *pipelineCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *pipelineCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	entry := models.LogEntry{
		Level:    ent.Level.String(),
		Time:     ent.Time,
		PID:      os.Getpid(),
		Service:  c.service,
		Message:  ent.Message,
		Metadata: enc.Fields,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		// Unserializable metadata is dropped, not surfaced.
		return nil
	}

	c.emitter.Emit(payload)
	return nil
}

func (c *pipelineCore) Sync() error {
	return nil
}
