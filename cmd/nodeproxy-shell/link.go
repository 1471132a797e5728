package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/nodeproxy/nodeproxy-go/pkg/connection"
	"github.com/nodeproxy/nodeproxy-go/pkg/interaction"
	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/proxy"
	"github.com/nodeproxy/nodeproxy-go/pkg/transport"
	"github.com/nodeproxy/nodeproxy-go/pkg/types"
)

// errOffline is returned when a command needs the server while the link is
// down.
var errOffline = errors.New("not connected")

// Session states recorded in the protocol log.
const (
	sessionReady = "READY"
	sessionLost  = "LOST"
)

// linkConfig configures a link.
type linkConfig struct {
	Address        string
	RequestTimeout time.Duration
	Connection     connection.Config
	Logger         *slog.Logger
	Events         log.Logger
	Registerer     prometheus.Registerer
	TracerProvider trace.TracerProvider
}

// session is everything bound to one established connection. A reconnect
// builds a new session; proxies of the old one are dropped with it.
type session struct {
	conn   *transport.Connection
	client atomic.Pointer[interaction.Client]
	space  *proxy.AddressSpace
}

// link keeps a session to one server alive.
type link struct {
	cfg     linkConfig
	logger  *slog.Logger
	manager *connection.Manager

	mu      sync.RWMutex
	current *session

	onSession func(*session)
}

func newLink(cfg linkConfig) (*link, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := &link{cfg: cfg, logger: logger}

	mgr, err := connection.NewManager(l.dial, cfg.Connection)
	if err != nil {
		return nil, err
	}
	mgr.OnReconnecting(func(attempt int, delay time.Duration) {
		l.logger.Info("reconnecting", "address", cfg.Address, "attempt", attempt, "delay", delay)
	})
	mgr.OnConnected(func() {
		if s := l.session(); s != nil && l.onSession != nil {
			l.onSession(s)
		}
	})
	l.manager = mgr
	return l, nil
}

// OnSession registers a callback run after every successful connect.
// It must be set before Connect.
func (l *link) OnSession(fn func(*session)) {
	l.onSession = fn
}

// Connect establishes the first session.
func (l *link) Connect(ctx context.Context, maxAttempts int) error {
	return l.manager.Connect(ctx, maxAttempts)
}

// State returns the manager state.
func (l *link) State() connection.State {
	return l.manager.State()
}

// session returns the live session or nil.
func (l *link) session() *session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Space returns the address space of the live session.
func (l *link) Space() (*proxy.AddressSpace, error) {
	s := l.session()
	if s == nil {
		return nil, errOffline
	}
	return s.space, nil
}

// Close stops reconnecting and closes the live session.
func (l *link) Close() error {
	l.manager.Close()

	l.mu.Lock()
	s := l.current
	l.current = nil
	l.mu.Unlock()

	if s == nil {
		return nil
	}
	_ = s.client.Load().Close()
	if err := s.conn.Close(); err != nil && !errors.Is(err, transport.ErrNotConnected) {
		return err
	}
	return nil
}

// dial is the manager's connect function. It builds a fresh session per
// successful attempt.
func (l *link) dial(ctx context.Context) error {
	s := &session{}
	handler := transport.HandlerFuncs{
		Message: func(msg []byte) {
			client := s.client.Load()
			if client == nil {
				return
			}
			if err := client.HandleFrame(msg); err != nil {
				l.logger.Debug("dropped frame", "error", err)
			}
		},
		StateChange: func(oldState, newState transport.ConnectionState) {
			if oldState == transport.StateConnected && newState != transport.StateConnected {
				l.lost(s)
			}
		},
		Error: func(err error) {
			l.logger.Warn("connection error", "error", err)
		},
	}

	connCfg := transport.DefaultConnectionConfig()
	connCfg.Logger = l.cfg.Events
	conn := transport.NewConnection(connCfg, handler)
	if err := conn.Connect(ctx, l.cfg.Address); err != nil {
		return err
	}

	client, err := interaction.NewClient(conn, interaction.ClientConfig{
		Timeout:        l.cfg.RequestTimeout,
		ConnectionID:   conn.ConnID(),
		Logger:         l.logger,
		EventLogger:    l.cfg.Events,
		TracerProvider: l.cfg.TracerProvider,
	})
	if err != nil {
		_ = conn.Close()
		return err
	}

	pcfg := proxy.DefaultConfig()
	pcfg.Registry = types.NewRegistry()
	pcfg.Registerer = l.cfg.Registerer
	pcfg.MetricLabels = prometheus.Labels{"connection": conn.ConnID()}
	pcfg.Logger = l.logger
	space, err := proxy.NewAddressSpace(client, pcfg)
	if err != nil {
		_ = client.Close()
		_ = conn.Close()
		return fmt.Errorf("address space: %w", err)
	}

	s.conn = conn
	s.space = space
	s.client.Store(client)

	l.mu.Lock()
	l.current = s
	l.mu.Unlock()

	// The peer may have hung up before the session was published.
	if conn.State() != transport.StateConnected {
		l.lost(s)
		return transport.ErrConnectionClosed
	}

	log.OrNoop(l.cfg.Events).Log(log.SessionStateEvent(conn.ConnID(), "", sessionReady, ""))
	l.logger.Info("connected", "address", l.cfg.Address, "conn", conn.ConnID())
	return nil
}

// lost tears down s and hands the link back to the manager. Stale
// notifications from an older session are ignored.
func (l *link) lost(s *session) {
	l.mu.Lock()
	if l.current != s {
		l.mu.Unlock()
		return
	}
	l.current = nil
	l.mu.Unlock()

	if client := s.client.Load(); client != nil {
		_ = client.Close()
	}
	log.OrNoop(l.cfg.Events).Log(log.SessionStateEvent(s.conn.ConnID(), sessionReady, sessionLost, "connection lost"))
	l.logger.Warn("connection lost", "address", l.cfg.Address)
	l.manager.NotifyConnectionLost()
}
