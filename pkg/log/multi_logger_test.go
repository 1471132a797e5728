package log

import (
	"errors"
	"path/filepath"
	"testing"
)

// recordingLogger records events for testing.
type recordingLogger struct {
	events []Event
	closed bool
	err    error
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func (r *recordingLogger) Close() error {
	r.closed = true
	return r.err
}

func TestMultiLoggerCallsAll(t *testing.T) {
	loggers := []*recordingLogger{{}, {}, {}}
	multi := NewMultiLogger(loggers[0], loggers[1], nil, loggers[2])

	multi.Log(testEvent("conn-123"))

	for i, l := range loggers {
		if len(l.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(l.events))
			continue
		}
		if l.events[0].ConnectionID != "conn-123" {
			t.Errorf("logger %d: ConnectionID = %q, want %q", i, l.events[0].ConnectionID, "conn-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()
	multi.Log(testEvent("conn-123"))
	if err := multi.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestMultiLoggerClose(t *testing.T) {
	failing := &recordingLogger{err: errors.New("disk full")}
	ok := &recordingLogger{}
	file, err := NewFileLogger(filepath.Join(t.TempDir(), "test.nplog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	multi := NewMultiLogger(NoopLogger{}, failing, ok, file)
	err = multi.Close()
	if err == nil || err.Error() != "disk full" {
		t.Errorf("Close: got %v, want disk full", err)
	}
	if !failing.closed || !ok.closed {
		t.Error("expected every closer to be closed")
	}
}
