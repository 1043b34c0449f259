// Package logsinktest provides an in-memory log sink for tests.
package logsinktest

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xraph/strata/logsink"
)

// Entry is one recorded log line.
type Entry struct {
	Tag     string
	Message string
}

// Recorder is a sink that keeps every entry in memory.
type Recorder struct {
	*logsink.ZapSink
	logs *observer.ObservedLogs
}

// NewRecorder creates an in-memory sink.
func NewRecorder() *Recorder {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Recorder{ZapSink: logsink.New(zap.New(core)), logs: logs}
}

// Entries returns the recorded entries in order.
func (r *Recorder) Entries() []Entry {
	all := r.logs.All()
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		tag, _ := e.ContextMap()["tag"].(string)
		out = append(out, Entry{Tag: tag, Message: e.Message})
	}
	return out
}

// Tagged returns the messages recorded under tag.
func (r *Recorder) Tagged(tag string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Tag == tag {
			out = append(out, e.Message)
		}
	}
	return out
}
