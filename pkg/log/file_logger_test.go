package log

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func testEvent(connID string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    DirectionIn,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
	}
}

// decodeAll decodes every event in a log file.
func decodeAll(t *testing.T, path string) []Event {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	decoder := NewDecoder(bytes.NewReader(data))
	var events []Event
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			break
		}
		events = append(events, event)
	}
	return events
}

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := testEvent("conn-123")
	event.Frame = &FrameEvent{Size: 100, Data: []byte{1, 2, 3}}
	logger.Log(event)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	events := decodeAll(t, path)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ConnectionID != "conn-123" {
		t.Errorf("ConnectionID: got %q, want %q", events[0].ConnectionID, "conn-123")
	}
	if events[0].Frame == nil || events[0].Frame.Size != 100 {
		t.Errorf("Frame: got %+v, want size 100", events[0].Frame)
	}
}

func TestFileLoggerBuffersUntilFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Log(testEvent("conn-1"))
	if events := decodeAll(t, path); len(events) != 0 {
		t.Fatalf("expected buffered event, found %d on disk", len(events))
	}

	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if events := decodeAll(t, path); len(events) != 1 {
		t.Fatalf("expected 1 event after flush, got %d", len(events))
	}
	if err := logger.Err(); err != nil {
		t.Errorf("Err: got %v, want nil", err)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")

	for _, id := range []string{"conn-1", "conn-2"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(testEvent(id))
		logger.Close()
	}

	events := decodeAll(t, path)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ConnectionID != "conn-1" || events[1].ConnectionID != "conn-2" {
		t.Errorf("ConnectionIDs: got %q, %q", events[0].ConnectionID, events[1].ConnectionID)
	}
}

func TestFileLoggerThreadSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const numGoroutines = 10
	const eventsPerGoroutine = 100

	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range eventsPerGoroutine {
				logger.Log(testEvent("conn-" + string(rune('A'+id))))
			}
		}(i)
	}
	wg.Wait()
	logger.Close()

	if got, want := len(decodeAll(t, path)), numGoroutines*eventsPerGoroutine; got != want {
		t.Errorf("event count: got %d, want %d", got, want)
	}
}

func TestFileLoggerClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(testEvent("conn-123"))

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := logger.Flush(); err != nil {
		t.Errorf("Flush after Close failed: %v", err)
	}

	// Logging after close is ignored.
	logger.Log(testEvent("conn-456"))
	if got := len(decodeAll(t, path)); got != 1 {
		t.Errorf("event count: got %d, want 1", got)
	}
}
