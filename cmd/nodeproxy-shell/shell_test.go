package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nodeproxy/nodeproxy-go/pkg/connection"
	"github.com/nodeproxy/nodeproxy-go/pkg/interaction"
	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/proxy"
	"github.com/nodeproxy/nodeproxy-go/pkg/transport"
	"github.com/nodeproxy/nodeproxy-go/pkg/types"
)

const testSpaceYAML = `
root:
  ref: i=85
  browseName: Objects
  typeDefinition: i=61
  children:
    - ref: i=2253
      browseName: Server
      typeDefinition: i=2004
      children:
        - ref: i=2267
          browseName: ServiceLevel
          class: Variable
          typeDefinition: i=68
          dataType: uint8
          value: 200
        - ref: i=2274
          browseName: ServerDiagnostics
          typeDefinition: i=2020
          children:
            - ref: i=2294
              browseName: EnabledFlag
              class: Variable
              typeDefinition: i=68
              dataType: bool
              access: RW
              value: false
`

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// startServer serves testSpaceYAML on a loopback port.
func startServer(t *testing.T) (*transport.Server, *model.Space) {
	t.Helper()
	space, err := model.LoadSpace([]byte(testSpaceYAML))
	if err != nil {
		t.Fatalf("LoadSpace failed: %v", err)
	}
	handler := interaction.NewServer(space, interaction.ServerConfig{Logger: quietLogger()})

	cfg := transport.DefaultServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.OnMessage = func(conn *transport.ServerConn, msg []byte) {
		if out := handler.HandleFrame(context.Background(), conn.ConnID(), msg); out != nil {
			conn.Send(out)
		}
	}
	srv, err := transport.NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { srv.Stop() })
	return srv, space
}

func newTestLink(t *testing.T, addr string, reg prometheus.Registerer) *link {
	t.Helper()
	return newTestLinkWithEvents(t, addr, reg, nil)
}

func newTestLinkWithEvents(t *testing.T, addr string, reg prometheus.Registerer, events log.Logger) *link {
	t.Helper()
	connCfg := connection.DefaultConfig()
	connCfg.Backoff = connection.BackoffConfig{
		Initial:    10 * time.Millisecond,
		Max:        50 * time.Millisecond,
		Multiplier: 2,
	}
	connCfg.AttemptTimeout = time.Second
	connCfg.Logger = quietLogger()

	l, err := newLink(linkConfig{
		Address:        addr,
		RequestTimeout: 2 * time.Second,
		Connection:     connCfg,
		Logger:         quietLogger(),
		Registerer:     reg,
		Events:         events,
	})
	if err != nil {
		t.Fatalf("newLink failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func connectedShell(t *testing.T) (*shell, *model.Space, *prometheus.Registry) {
	t.Helper()
	srv, space := startServer(t)
	reg := prometheus.NewRegistry()
	l := newTestLink(t, srv.Addr().String(), reg)
	if err := l.Connect(context.Background(), 1); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	sh := newShell(l, model.StandardRef(85), 2*time.Second)
	sh.metrics = reg
	return sh, space, reg
}

func exec(t *testing.T, sh *shell, line string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := sh.Exec(context.Background(), line, &buf); err != nil {
		t.Fatalf("%q failed: %v", line, err)
	}
	return buf.String()
}

func TestShellNavigateAndRead(t *testing.T) {
	sh, _, _ := connectedShell(t)

	out := exec(t, sh, "pwd")
	if !strings.Contains(out, "Objects") {
		t.Errorf("pwd = %q, want Objects", out)
	}

	out = exec(t, sh, "cd Server")
	if !strings.Contains(out, "ServerType") {
		t.Errorf("cd Server = %q, want ServerType view", out)
	}
	if got := sh.prompt(); got != "/Server> " {
		t.Errorf("prompt = %q", got)
	}

	out = exec(t, sh, "get ServiceLevel")
	if !strings.Contains(out, proxy.ErrNoCachedValue.Error()) {
		t.Errorf("get before read = %q", out)
	}

	out = exec(t, sh, "read servicelevel")
	if !strings.Contains(out, "ServiceLevel = 200") {
		t.Errorf("read = %q", out)
	}

	out = exec(t, sh, "get ServiceLevel")
	if !strings.Contains(out, "ServiceLevel = 200") {
		t.Errorf("get after read = %q", out)
	}

	exec(t, sh, "cd ..")
	if got := sh.prompt(); got != "/> " {
		t.Errorf("prompt after cd .. = %q", got)
	}
}

func TestShellWrite(t *testing.T) {
	sh, space, _ := connectedShell(t)

	exec(t, sh, "cd Server")
	exec(t, sh, "cd ServerDiagnostics")

	out := exec(t, sh, "write EnabledFlag true")
	if !strings.Contains(out, "EnabledFlag = true") {
		t.Errorf("write = %q", out)
	}

	v, err := space.ReadAttribute(model.StandardRef(2274), types.ServerDiagnosticsTypeEnabledFlagKey)
	if err != nil {
		t.Fatalf("server read failed: %v", err)
	}
	if v != true {
		t.Errorf("server EnabledFlag = %v, want true", v)
	}

	out = exec(t, sh, "set EnabledFlag false")
	if !strings.Contains(out, "(cached)") {
		t.Errorf("set = %q", out)
	}
	v, _ = space.ReadAttribute(model.StandardRef(2274), types.ServerDiagnosticsTypeEnabledFlagKey)
	if v != true {
		t.Errorf("set must not reach the server, got %v", v)
	}
}

func TestShellErrors(t *testing.T) {
	sh, _, _ := connectedShell(t)
	ctx := context.Background()
	var buf bytes.Buffer

	if err := sh.Exec(ctx, "cd Nowhere", &buf); err == nil {
		t.Error("expected error for missing child")
	}
	if err := sh.Exec(ctx, "frobnicate", &buf); err == nil {
		t.Error("expected error for unknown command")
	}
	if err := sh.Exec(ctx, "open not-a-ref", &buf); err == nil {
		t.Error("expected error for bad ref")
	}
	if err := sh.Exec(ctx, "quit", &buf); !errors.Is(err, errQuit) {
		t.Errorf("quit = %v, want errQuit", err)
	}
	if err := sh.Exec(ctx, "   ", &buf); err != nil {
		t.Errorf("blank line = %v", err)
	}
}

func TestShellRefreshAndMetrics(t *testing.T) {
	sh, _, _ := connectedShell(t)

	exec(t, sh, "open i=2253")
	out := exec(t, sh, "refresh")
	if !strings.Contains(out, "Refreshed") {
		t.Errorf("refresh = %q", out)
	}

	out = exec(t, sh, "ls")
	if !strings.Contains(out, "ServiceLevel") || !strings.Contains(out, "200") {
		t.Errorf("ls = %q", out)
	}

	out = exec(t, sh, "metrics")
	if !strings.Contains(out, "nodeproxy_remote_calls_total") {
		t.Errorf("metrics = %q", out)
	}
}

func TestShellOffline(t *testing.T) {
	l := newTestLink(t, "127.0.0.1:1", nil)
	sh := newShell(l, model.StandardRef(85), time.Second)

	var buf bytes.Buffer
	if err := sh.Exec(context.Background(), "pwd", &buf); !errors.Is(err, errOffline) {
		t.Errorf("pwd offline = %v, want errOffline", err)
	}
}

func TestLinkReconnect(t *testing.T) {
	srv, _ := startServer(t)
	l := newTestLink(t, srv.Addr().String(), nil)

	sessions := make(chan *session, 4)
	l.OnSession(func(s *session) { sessions <- s })
	if err := l.Connect(context.Background(), 1); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	var first *session
	select {
	case first = <-sessions:
	case <-time.After(time.Second):
		t.Fatal("no session after connect")
	}

	// Closing the connection behind the link's back counts as a loss.
	first.conn.Close()

	select {
	case second := <-sessions:
		if second == first {
			t.Error("reconnect reused the old session")
		}
		if second.space == first.space {
			t.Error("reconnect reused the old address space")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no session after connection loss")
	}
}

func TestResolveKey(t *testing.T) {
	sh, _, _ := connectedShell(t)
	exec(t, sh, "open i=2253")
	n, err := sh.current(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got := resolveKey(n, "servicelevel"); got != types.ServerTypeServiceLevelKey {
		t.Errorf("declared key = %+v", got)
	}
	if got := resolveKey(n, "DisplayName"); got.ID != model.AttrDisplayName || !got.IsIntrinsic() {
		t.Errorf("intrinsic key = %+v", got)
	}
	got := resolveKey(n, "Custom")
	if got.IsIntrinsic() || got.Name != "Custom" || got.NamespaceURI != model.NamespaceStandard {
		t.Errorf("property key = %+v", got)
	}
}

func TestLinkSessionEvents(t *testing.T) {
	srv, _ := startServer(t)

	var mu sync.Mutex
	var states []string
	events := log.LoggerFunc(func(e log.Event) {
		if e.Layer == log.LayerService && e.StateChange != nil {
			mu.Lock()
			states = append(states, e.StateChange.NewState)
			mu.Unlock()
		}
	})

	l := newTestLinkWithEvents(t, srv.Addr().String(), nil, events)
	if err := l.Connect(context.Background(), 1); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(states) != 1 || states[0] != sessionReady {
		t.Errorf("session states = %v, want [%s]", states, sessionReady)
	}
}
