package log

import (
	"testing"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"direction in", DirectionIn.String(), "IN"},
		{"direction out", DirectionOut.String(), "OUT"},
		{"direction unknown", Direction(99).String(), "UNKNOWN"},
		{"layer transport", LayerTransport.String(), "TRANSPORT"},
		{"layer wire", LayerWire.String(), "WIRE"},
		{"layer service", LayerService.String(), "SERVICE"},
		{"layer unknown", Layer(99).String(), "UNKNOWN"},
		{"category message", CategoryMessage.String(), "MESSAGE"},
		{"category state", CategoryState.String(), "STATE"},
		{"category error", CategoryError.String(), "ERROR"},
		{"category unknown", Category(1).String(), "UNKNOWN"},
		{"role server", RoleServer.String(), "SERVER"},
		{"role client", RoleClient.String(), "CLIENT"},
		{"role unknown", Role(99).String(), "UNKNOWN"},
		{"message request", MessageTypeRequest.String(), "REQUEST"},
		{"message response", MessageTypeResponse.String(), "RESPONSE"},
		{"message unknown", MessageType(99).String(), "UNKNOWN"},
		{"entity connection", StateEntityConnection.String(), "CONNECTION"},
		{"entity client", StateEntityClient.String(), "CLIENT"},
		{"entity unknown", StateEntity(99).String(), "UNKNOWN"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnumValuesAreStable(t *testing.T) {
	// Values are persisted in log files.
	if DirectionIn != 0 || DirectionOut != 1 {
		t.Error("Direction values changed")
	}
	if LayerTransport != 0 || LayerWire != 1 || LayerService != 2 {
		t.Error("Layer values changed")
	}
	if CategoryMessage != 0 || CategoryState != 2 || CategoryError != 3 {
		t.Error("Category values changed")
	}
	if RoleServer != 0 || RoleClient != 1 {
		t.Error("Role values changed")
	}
}

func TestRequestEvent(t *testing.T) {
	target := model.StandardRef(2253)
	req, err := wire.NewRequest(7, wire.OpRead, target, &wire.ReadPayload{Key: model.KeyDisplayName})
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	event := RequestEvent("conn-1", RoleClient, DirectionOut, req)

	if event.ConnectionID != "conn-1" || event.LocalRole != RoleClient || event.Direction != DirectionOut {
		t.Errorf("unexpected header: %+v", event)
	}
	if event.Layer != LayerWire || event.Category != CategoryMessage {
		t.Errorf("layer/category = %s/%s, want WIRE/MESSAGE", event.Layer, event.Category)
	}
	if event.Message == nil {
		t.Fatal("Message is nil")
	}
	if event.Message.Type != MessageTypeRequest || event.Message.MessageID != 7 {
		t.Errorf("message = %+v", event.Message)
	}
	if event.Message.Operation == nil || *event.Message.Operation != wire.OpRead {
		t.Errorf("Operation = %v, want Read", event.Message.Operation)
	}
	if event.Message.Target != target.String() {
		t.Errorf("Target = %q, want %q", event.Message.Target, target.String())
	}
	if event.Message.Payload == nil {
		t.Error("expected decoded payload")
	}
}

func TestResponseEvent(t *testing.T) {
	resp := wire.ErrorResponse(7, wire.StatusBadNotWritable, "read-only")

	event := ResponseEvent("conn-1", RoleServer, DirectionOut, resp, 3*time.Millisecond)
	if event.Message == nil {
		t.Fatal("Message is nil")
	}
	if event.Message.Status == nil || *event.Message.Status != wire.StatusBadNotWritable {
		t.Errorf("Status = %v, want Bad_NotWritable", event.Message.Status)
	}
	if event.Message.ProcessingTime == nil || *event.Message.ProcessingTime != 3*time.Millisecond {
		t.Errorf("ProcessingTime = %v, want 3ms", event.Message.ProcessingTime)
	}
	if event.Message.Payload != nil {
		t.Errorf("Payload = %v, want nil", event.Message.Payload)
	}

	event = ResponseEvent("conn-1", RoleClient, DirectionIn, resp, 0)
	if event.Message.ProcessingTime != nil {
		t.Error("zero processing time should be omitted")
	}
}

func TestConnectionStateEvent(t *testing.T) {
	e := ConnectionStateEvent("c1", RoleServer, "127.0.0.1:5000", "CONNECTED", "DISCONNECTED", "closed by peer")
	if e.Layer != LayerTransport || e.Category != CategoryState || e.RemoteAddr != "127.0.0.1:5000" {
		t.Errorf("event = %+v", e)
	}
	sc := e.StateChange
	if sc == nil || sc.Entity != StateEntityConnection || sc.OldState != "CONNECTED" || sc.NewState != "DISCONNECTED" || sc.Reason != "closed by peer" {
		t.Errorf("state change = %+v", sc)
	}
}

func TestErrorEvent(t *testing.T) {
	e := ErrorEvent("c1", RoleClient, LayerWire, wire.ErrReservedMessageID, "decode response")
	if e.Category != CategoryError || e.LocalRole != RoleClient || e.Timestamp.IsZero() {
		t.Errorf("event = %+v", e)
	}
	if e.Error == nil || e.Error.Layer != LayerWire || e.Error.Message != wire.ErrReservedMessageID.Error() || e.Error.Context != "decode response" {
		t.Errorf("error data = %+v", e.Error)
	}
	if e.Message != nil || e.Frame != nil || e.StateChange != nil {
		t.Error("error event carries another payload")
	}
}
