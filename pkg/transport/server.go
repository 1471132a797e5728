package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
)

// DefaultAddress is the listen address used when none is configured.
const DefaultAddress = "127.0.0.1:4840"

// Server errors.
var (
	ErrServerRunning = errors.New("server already running")
	ErrInvalidConfig = errors.New("invalid transport config")
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Address to listen on (e.g., ":4840" or "127.0.0.1:4840").
	Address string

	// MaxMessageSize is the maximum frame payload size.
	MaxMessageSize uint32

	// Logger receives frame and connection state events (optional).
	Logger log.Logger

	// OnConnect is called when a new connection is accepted.
	OnConnect func(conn *ServerConn)

	// OnDisconnect is called after a connection is closed.
	OnDisconnect func(conn *ServerConn)

	// OnMessage is called for every received frame, on the connection's
	// read goroutine.
	OnMessage func(conn *ServerConn, msg []byte)

	// OnError is called when accepting or reading fails. conn is nil for
	// accept errors.
	OnError func(conn *ServerConn, err error)
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:        DefaultAddress,
		MaxMessageSize: DefaultMaxMessageSize,
	}
}

// Validate checks the configuration.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}
	if c.MaxMessageSize == 0 {
		return fmt.Errorf("%w: max message size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Server accepts TCP connections and delivers their frames to OnMessage.
type Server struct {
	config   ServerConfig
	listener net.Listener

	conns   map[*ServerConn]struct{}
	connsMu sync.RWMutex

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a server. Zero Address and MaxMessageSize take their
// defaults.
func NewServer(config ServerConfig) (*Server, error) {
	if config.Address == "" {
		config.Address = DefaultAddress
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Server{
		config: config,
		conns:  make(map[*ServerConn]struct{}),
	}, nil
}

// Start listens and begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return ErrServerRunning
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}
	s.listener = listener
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and every connection, then waits for their
// goroutines to finish.
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	s.cancel()
	err := s.listener.Close()

	s.connsMu.RLock()
	for conn := range s.conns {
		conn.Close()
	}
	s.connsMu.RUnlock()

	s.wg.Wait()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}

// Addr returns the listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener != nil {
		return s.listener.Addr()
	}
	return nil
}

// ConnectionCount returns the number of open connections.
func (s *Server) ConnectionCount() int {
	s.connsMu.RLock()
	defer s.connsMu.RUnlock()
	return len(s.conns)
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running.Load() {
				return
			}
			if s.config.OnError != nil {
				s.config.OnError(nil, fmt.Errorf("accept: %w", err))
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()

	sconn := &ServerConn{
		conn:       conn,
		framer:     NewFramerWithMaxSize(conn, s.config.MaxMessageSize),
		server:     s,
		closeCh:    make(chan struct{}),
		remoteAddr: conn.RemoteAddr(),
		connID:     uuid.New().String(),
	}
	if s.config.Logger != nil {
		sconn.framer.SetLogger(s.config.Logger, sconn.connID)
	}

	s.connsMu.Lock()
	if !s.running.Load() {
		s.connsMu.Unlock()
		conn.Close()
		return
	}
	s.conns[sconn] = struct{}{}
	s.connsMu.Unlock()

	sconn.logState("", StateConnected.String(), "")
	if s.config.OnConnect != nil {
		s.config.OnConnect(sconn)
	}

	reason := sconn.readLoop()
	sconn.Close()

	s.connsMu.Lock()
	delete(s.conns, sconn)
	s.connsMu.Unlock()

	sconn.logState(StateConnected.String(), StateDisconnected.String(), reason)
	if s.config.OnDisconnect != nil {
		s.config.OnDisconnect(sconn)
	}
}

// ServerConn is one accepted client connection.
type ServerConn struct {
	conn       net.Conn
	framer     *Framer
	server     *Server
	closeCh    chan struct{}
	closeOnce  sync.Once
	remoteAddr net.Addr
	connID     string
}

// RemoteAddr returns the client's address.
func (c *ServerConn) RemoteAddr() net.Addr {
	return c.remoteAddr
}

// ConnID returns the connection's unique identifier.
func (c *ServerConn) ConnID() string {
	return c.connID
}

// Send writes one frame to the client.
func (c *ServerConn) Send(data []byte) error {
	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}
	return c.framer.WriteFrame(data)
}

// Close closes the connection. It is safe to call more than once.
func (c *ServerConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}

// readLoop delivers frames until the connection ends and returns the reason.
func (c *ServerConn) readLoop() string {
	for {
		data, err := c.framer.ReadFrame()
		if err != nil {
			select {
			case <-c.closeCh:
				return "closed locally"
			default:
			}
			if errors.Is(err, io.EOF) {
				return "closed by peer"
			}
			if c.server.config.OnError != nil {
				c.server.config.OnError(c, err)
			}
			return err.Error()
		}

		if c.server.config.OnMessage != nil {
			c.server.config.OnMessage(c, data)
		}
	}
}

func (c *ServerConn) logState(oldState, newState, reason string) {
	logger := c.server.config.Logger
	if logger == nil {
		return
	}
	logger.Log(log.ConnectionStateEvent(c.connID, log.RoleServer, c.remoteAddr.String(), oldState, newState, reason))
}
