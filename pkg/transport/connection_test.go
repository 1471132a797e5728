package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
)

// mockHandler implements ConnectionHandler for testing.
type mockHandler struct {
	mu           sync.Mutex
	stateChanges []struct{ old, new ConnectionState }
	errors       []error
	messageCh    chan []byte
	stateCh      chan ConnectionState
}

func newMockHandler() *mockHandler {
	return &mockHandler{
		messageCh: make(chan []byte, 10),
		stateCh:   make(chan ConnectionState, 10),
	}
}

func (h *mockHandler) OnMessage(msg []byte) {
	h.messageCh <- msg
}

func (h *mockHandler) OnStateChange(oldState, newState ConnectionState) {
	h.mu.Lock()
	h.stateChanges = append(h.stateChanges, struct{ old, new ConnectionState }{oldState, newState})
	h.mu.Unlock()
	select {
	case h.stateCh <- newState:
	default:
	}
}

func (h *mockHandler) OnError(err error) {
	h.mu.Lock()
	h.errors = append(h.errors, err)
	h.mu.Unlock()
}

func (h *mockHandler) waitState(t *testing.T, want ConnectionState) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-h.stateCh:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for state %v", want)
		}
	}
}

// eventRecorder collects log events.
type eventRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *eventRecorder) Log(e log.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) states() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.StateChange != nil {
			out = append(out, e.StateChange.NewState)
		}
	}
	return out
}

// acceptOne accepts a single raw connection and wraps it in a framer.
func acceptOne(t *testing.T) (net.Listener, <-chan net.Conn) {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start listener: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	ch := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			close(ch)
			return
		}
		ch <- conn
	}()
	return listener, ch
}

func TestConnectionState(t *testing.T) {
	tests := []struct {
		state ConnectionState
		want  string
	}{
		{StateDisconnected, "DISCONNECTED"},
		{StateConnecting, "CONNECTING"},
		{StateConnected, "CONNECTED"},
		{StateClosing, "CLOSING"},
		{ConnectionState(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestDefaultConnectionConfig(t *testing.T) {
	config := DefaultConnectionConfig()

	if config.MaxMessageSize != DefaultMaxMessageSize {
		t.Errorf("MaxMessageSize = %d, want %d", config.MaxMessageSize, DefaultMaxMessageSize)
	}
	if config.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v, want 5s", config.DialTimeout)
	}
}

func TestConnectionNotConnected(t *testing.T) {
	conn := NewConnection(DefaultConnectionConfig(), nil)

	if conn.State() != StateDisconnected {
		t.Errorf("initial state = %v, want DISCONNECTED", conn.State())
	}
	if err := conn.Send([]byte("x")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send error = %v, want ErrNotConnected", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("Close on idle connection = %v", err)
	}
	if conn.RemoteAddr() != nil || conn.LocalAddr() != nil {
		t.Error("addresses should be nil before Connect")
	}
}

func TestConnectionSendReceive(t *testing.T) {
	listener, accepted := acceptOne(t)
	handler := newMockHandler()
	conn := NewConnection(DefaultConnectionConfig(), handler)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Connect(ctx, listener.Addr().String()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer conn.Close()

	if conn.State() != StateConnected {
		t.Fatalf("state = %v, want CONNECTED", conn.State())
	}
	if err := conn.Connect(ctx, listener.Addr().String()); !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("second Connect = %v, want ErrAlreadyConnected", err)
	}

	peer := <-accepted
	if peer == nil {
		t.Fatal("accept failed")
	}
	defer peer.Close()
	peerFramer := NewFramer(peer)

	if err := conn.Send([]byte("request")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	got, err := peerFramer.ReadFrame()
	if err != nil || string(got) != "request" {
		t.Fatalf("peer read = %q, %v", got, err)
	}

	if err := peerFramer.WriteFrame([]byte("response")); err != nil {
		t.Fatalf("peer write failed: %v", err)
	}
	select {
	case msg := <-handler.messageCh:
		if string(msg) != "response" {
			t.Errorf("message = %q, want response", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
}

func TestConnectionClose(t *testing.T) {
	listener, accepted := acceptOne(t)
	handler := newMockHandler()
	recorder := &eventRecorder{}
	config := DefaultConnectionConfig()
	config.Logger = recorder
	conn := NewConnection(config, handler)

	if err := conn.Connect(context.Background(), listener.Addr().String()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	peer := <-accepted
	defer peer.Close()

	if err := conn.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if conn.State() != StateDisconnected {
		t.Errorf("state after Close = %v, want DISCONNECTED", conn.State())
	}
	if err := conn.Send([]byte("x")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send after Close = %v, want ErrNotConnected", err)
	}

	want := []string{"CONNECTING", "CONNECTED", "CLOSING", "DISCONNECTED"}
	got := recorder.states()
	if len(got) != len(want) {
		t.Fatalf("logged states = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("state[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if id := conn.ConnID(); id == "" {
		t.Error("ConnID should be set after Connect")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	if len(handler.errors) != 0 {
		t.Errorf("unexpected errors on local close: %v", handler.errors)
	}
}

func TestConnectionPeerClose(t *testing.T) {
	listener, accepted := acceptOne(t)
	handler := newMockHandler()
	conn := NewConnection(DefaultConnectionConfig(), handler)

	if err := conn.Connect(context.Background(), listener.Addr().String()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	peer := <-accepted
	peer.Close()

	handler.waitState(t, StateDisconnected)
	if conn.State() != StateDisconnected {
		t.Errorf("state = %v, want DISCONNECTED", conn.State())
	}

	// A disconnected connection can dial again.
	listener2, accepted2 := acceptOne(t)
	if err := conn.Connect(context.Background(), listener2.Addr().String()); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	defer conn.Close()
	if peer2 := <-accepted2; peer2 != nil {
		peer2.Close()
	}
}

func TestConnectionDialFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start listener: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	handler := newMockHandler()
	conn := NewConnection(DefaultConnectionConfig(), handler)
	if err := conn.Connect(context.Background(), addr); err == nil {
		conn.Close()
		t.Fatal("Connect to closed port should fail")
	}
	if conn.State() != StateDisconnected {
		t.Errorf("state = %v, want DISCONNECTED", conn.State())
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	if n := len(handler.stateChanges); n != 2 {
		t.Errorf("state changes = %d, want 2", n)
	}
}

func TestConnectionOversizedFrame(t *testing.T) {
	listener, accepted := acceptOne(t)
	handler := newMockHandler()
	config := DefaultConnectionConfig()
	config.MaxMessageSize = 8
	conn := NewConnection(config, handler)

	if err := conn.Connect(context.Background(), listener.Addr().String()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	peer := <-accepted
	defer peer.Close()

	if err := NewFramer(peer).WriteFrame([]byte("much too long")); err != nil {
		t.Fatalf("peer write failed: %v", err)
	}

	handler.waitState(t, StateDisconnected)
	handler.mu.Lock()
	defer handler.mu.Unlock()
	if len(handler.errors) != 1 || !errors.Is(handler.errors[0], ErrMessageTooLarge) {
		t.Errorf("errors = %v, want ErrMessageTooLarge", handler.errors)
	}
}
