package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// jsonSlog returns an adapter over a JSON handler at the given level and a
// function decoding every line written so far.
func jsonSlog(t *testing.T, level slog.Level) (*SlogAdapter, func() []map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	return adapter, func() []map[string]any {
		var out []map[string]any
		dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
		for dec.More() {
			var m map[string]any
			if err := dec.Decode(&m); err != nil {
				t.Fatalf("bad log line: %v", err)
			}
			out = append(out, m)
		}
		return out
	}
}

func group(t *testing.T, entry map[string]any, name string) map[string]any {
	t.Helper()
	g, ok := entry[name].(map[string]any)
	if !ok {
		t.Fatalf("entry has no %q group: %v", name, entry)
	}
	return g
}

func TestSlogAdapterRequestAndResponse(t *testing.T) {
	adapter, lines := jsonSlog(t, slog.LevelDebug)

	req, err := wire.NewRequest(3, wire.OpBrowse, model.StandardRef(2253), nil)
	if err != nil {
		t.Fatal(err)
	}
	adapter.Log(RequestEvent("conn-9", RoleClient, DirectionOut, req))
	adapter.Log(ResponseEvent("conn-9", RoleClient, DirectionIn, wire.ErrorResponse(3, wire.StatusBadNotReadable, ""), 0))

	entries := lines()
	if len(entries) != 2 {
		t.Fatalf("got %d lines, want 2", len(entries))
	}

	first := entries[0]
	if first["level"] != "DEBUG" || first["msg"] != "protocol MESSAGE" || first["conn_id"] != "conn-9" || first["role"] != "CLIENT" {
		t.Errorf("request line = %v", first)
	}
	m := group(t, first, "message")
	if m["type"] != "REQUEST" || m["op"] != "Browse" || m["target"] != model.StandardRef(2253).String() {
		t.Errorf("request group = %v", m)
	}

	m = group(t, entries[1], "message")
	if m["type"] != "RESPONSE" || m["status"] != wire.StatusBadNotReadable.String() {
		t.Errorf("response group = %v", m)
	}
	if _, ok := m["took"]; ok {
		t.Error("client-side response should not report processing time")
	}
}

func TestSlogAdapterFrameAndState(t *testing.T) {
	adapter, lines := jsonSlog(t, slog.LevelDebug)

	adapter.Log(Event{ConnectionID: "c", Layer: LayerTransport, Frame: &FrameEvent{Size: 68, Truncated: true}})
	adapter.Log(ConnectionStateEvent("c", RoleServer, "10.0.0.2:4000", "CONNECTED", "DISCONNECTED", ""))

	entries := lines()
	if len(entries) != 2 {
		t.Fatalf("got %d lines, want 2", len(entries))
	}
	f := group(t, entries[0], "frame")
	if f["size"] != float64(68) || f["truncated"] != true {
		t.Errorf("frame group = %v", f)
	}
	if entries[1]["remote"] != "10.0.0.2:4000" {
		t.Errorf("remote = %v", entries[1]["remote"])
	}
	s := group(t, entries[1], "state")
	if s["from"] != "CONNECTED" || s["to"] != "DISCONNECTED" {
		t.Errorf("state group = %v", s)
	}
	if _, ok := s["reason"]; ok {
		t.Error("empty reason should be omitted")
	}
}

func TestSlogAdapterLevels(t *testing.T) {
	adapter, lines := jsonSlog(t, slog.LevelInfo)

	adapter.Log(ConnectionStateEvent("c", RoleClient, "", "", "CONNECTED", ""))
	adapter.Log(ErrorEvent("c", RoleClient, LayerWire, errors.New("bad frame"), "decode response"))

	entries := lines()
	if len(entries) != 1 {
		t.Fatalf("got %d lines at info, want only the error", len(entries))
	}
	if entries[0]["level"] != "WARN" {
		t.Errorf("level = %v", entries[0]["level"])
	}
	e := group(t, entries[0], "error")
	if e["message"] != "bad frame" || e["context"] != "decode response" || e["layer"] != "WIRE" {
		t.Errorf("error group = %v", e)
	}
}
