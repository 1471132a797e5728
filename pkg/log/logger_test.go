package log

import "testing"

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	r := &recordingLogger{}
	if OrNoop(r) != Logger(r) {
		t.Error("OrNoop should return a non-nil logger unchanged")
	}

	// The zero NoopLogger accepts every payload kind.
	var noop NoopLogger
	for _, e := range []Event{
		{},
		{Frame: &FrameEvent{Size: 8}},
		{Message: &MessageEvent{MessageID: 1}},
		{StateChange: &StateChangeEvent{NewState: "CONNECTED"}},
		{Error: &ErrorEventData{Message: "x"}},
	} {
		noop.Log(e)
	}
}

func TestLoggerFunc(t *testing.T) {
	var got []string
	l := NewMultiLogger(LoggerFunc(func(e Event) { got = append(got, e.ConnectionID) }), nil)

	l.Log(Event{ConnectionID: "a"})
	l.Log(Event{ConnectionID: "b"})

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v", got)
	}
	// LoggerFunc is not a Closer; Close must still succeed.
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
