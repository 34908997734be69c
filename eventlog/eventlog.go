//go:build !solution

// Package eventlog writes library transitions to a zap logger.
package eventlog

import (
	"go.uber.org/zap"

	"gitlab.com/slon/readerwriter/library"
)

var verbs = map[library.EventKind]string{
	library.EventWantsRead:     "wants to read",
	library.EventEntersRead:    "enters to read",
	library.EventLeavesRead:    "leaves after reading",
	library.EventAbandonsRead:  "gives up reading",
	library.EventWantsWrite:    "wants to write",
	library.EventEntersWrite:   "enters to write",
	library.EventLeavesWrite:   "leaves after writing",
	library.EventAbandonsWrite: "gives up writing",
}

// Logger is a library.Observer that logs every event at info level.
type Logger struct {
	log *zap.Logger
	lib *library.Library
}

// New returns an observer logging to log. If lib is not nil every entry also
// carries the ids inside and waiting, taken right after the event.
func New(log *zap.Logger, lib *library.Library) *Logger {
	return &Logger{log: log, lib: lib}
}

// Attach sets the library whose members are added to entries. It exists because
// the observer has to be passed to library.New before the library exists.
func (l *Logger) Attach(lib *library.Library) {
	l.lib = lib
}

func (l *Logger) Observe(e library.Event) {
	verb, ok := verbs[e.Kind]
	if !ok {
		verb = string(e.Kind)
	}

	fields := []zap.Field{
		zap.Uint64("seq", e.Seq),
		zap.String("event", string(e.Kind)),
		zap.String("actor", e.ID),
		zap.Int("inside", e.Inside),
		zap.Int("waiting", e.Waiting),
		zap.Int("readers", e.Readers),
		zap.Int("writers", e.Writers),
	}
	if l.lib != nil {
		// Состав может уже отличаться от счётчиков события
		s := l.lib.Snapshot()
		fields = append(fields, zap.Strings("inside_ids", s.Inside), zap.Strings("waiting_ids", s.Waiting))
	}

	l.log.Info(e.ID+" "+verb, fields...)
}
