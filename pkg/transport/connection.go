package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
)

// ConnectionState is the lifecycle state of a Connection.
type ConnectionState int

const (
	// StateDisconnected indicates no connection.
	StateDisconnected ConnectionState = iota

	// StateConnecting indicates a dial in progress.
	StateConnecting

	// StateConnected indicates an active connection.
	StateConnected

	// StateClosing indicates a local close in progress.
	StateClosing
)

// String returns the connection state name.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateClosing:
		return "CLOSING"
	default:
		return "UNKNOWN"
	}
}

// Connection errors.
var (
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
	ErrConnectionClosed = errors.New("connection closed")
)

// ConnectionConfig configures a Connection.
type ConnectionConfig struct {
	// MaxMessageSize is the maximum frame payload size.
	MaxMessageSize uint32

	// DialTimeout bounds Connect in addition to its context (0 = none).
	DialTimeout time.Duration

	// WriteTimeout bounds each Send (0 = none).
	WriteTimeout time.Duration

	// Logger receives frame and connection state events (optional).
	Logger log.Logger
}

// DefaultConnectionConfig returns the default connection configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxMessageSize: DefaultMaxMessageSize,
		DialTimeout:    5 * time.Second,
	}
}

// ConnectionHandler receives connection events. Callbacks run on the
// connection's read goroutine, except state changes caused by Connect and
// Close, which run on the caller's goroutine.
type ConnectionHandler interface {
	// OnMessage is called for every received frame.
	OnMessage(msg []byte)

	// OnStateChange is called when the connection state changes.
	OnStateChange(oldState, newState ConnectionState)

	// OnError is called when reading fails unexpectedly.
	OnError(err error)
}

// HandlerFuncs adapts plain functions to ConnectionHandler. Nil fields are
// ignored.
type HandlerFuncs struct {
	Message     func(msg []byte)
	StateChange func(oldState, newState ConnectionState)
	Error       func(err error)
}

// OnMessage implements ConnectionHandler.
func (h HandlerFuncs) OnMessage(msg []byte) {
	if h.Message != nil {
		h.Message(msg)
	}
}

// OnStateChange implements ConnectionHandler.
func (h HandlerFuncs) OnStateChange(oldState, newState ConnectionState) {
	if h.StateChange != nil {
		h.StateChange(oldState, newState)
	}
}

// OnError implements ConnectionHandler.
func (h HandlerFuncs) OnError(err error) {
	if h.Error != nil {
		h.Error(err)
	}
}

// Connection is the client side of a framed TCP connection. A closed
// Connection may be connected again.
type Connection struct {
	config  ConnectionConfig
	handler ConnectionHandler

	state atomic.Int32

	mu        sync.RWMutex
	conn      net.Conn
	framer    *Framer
	connID    string
	closeDone chan struct{}
}

// NewConnection creates a connection that is not yet connected.
func NewConnection(config ConnectionConfig, handler ConnectionHandler) *Connection {
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if handler == nil {
		handler = HandlerFuncs{}
	}
	c := &Connection{config: config, handler: handler}
	c.state.Store(int32(StateDisconnected))
	return c
}

// State returns the current connection state.
func (c *Connection) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

// ConnID returns the identifier of the current or last connection.
func (c *Connection) ConnID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connID
}

// Connect dials address and starts the read loop.
func (c *Connection) Connect(ctx context.Context, address string) error {
	if !c.state.CompareAndSwap(int32(StateDisconnected), int32(StateConnecting)) {
		return ErrAlreadyConnected
	}
	connID := uuid.New().String()
	c.mu.Lock()
	c.connID = connID
	c.mu.Unlock()
	c.transition(StateDisconnected, StateConnecting, "")

	if c.config.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.DialTimeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		c.transition(StateConnecting, StateDisconnected, err.Error())
		return fmt.Errorf("dial %s: %w", address, err)
	}

	framer := NewFramerWithMaxSize(conn, c.config.MaxMessageSize)
	if c.config.Logger != nil {
		framer.SetLogger(c.config.Logger, connID)
	}
	done := make(chan struct{})

	c.mu.Lock()
	c.conn = conn
	c.framer = framer
	c.closeDone = done
	c.mu.Unlock()

	c.state.Store(int32(StateConnected))
	c.transition(StateConnecting, StateConnected, "")

	go c.readLoop(framer, done)
	return nil
}

// Send writes one frame to the server.
func (c *Connection) Send(data []byte) error {
	if c.State() != StateConnected {
		return ErrNotConnected
	}

	c.mu.RLock()
	conn, framer := c.conn, c.framer
	c.mu.RUnlock()
	if framer == nil {
		return ErrNotConnected
	}

	if c.config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	}
	return framer.WriteFrame(data)
}

// Close closes the connection and waits for the read loop to exit.
func (c *Connection) Close() error {
	if !c.state.CompareAndSwap(int32(StateConnected), int32(StateClosing)) {
		return nil
	}
	c.transition(StateConnected, StateClosing, "")

	c.mu.RLock()
	conn, done := c.conn, c.closeDone
	c.mu.RUnlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	<-done
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}

// LocalAddr returns the local address, or nil when not connected.
func (c *Connection) LocalAddr() net.Addr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn != nil {
		return c.conn.LocalAddr()
	}
	return nil
}

// RemoteAddr returns the server's address, or nil when not connected.
func (c *Connection) RemoteAddr() net.Addr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn != nil {
		return c.conn.RemoteAddr()
	}
	return nil
}

func (c *Connection) readLoop(framer *Framer, done chan struct{}) {
	defer close(done)

	reason := c.deliver(framer)

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = nil
	c.framer = nil
	c.mu.Unlock()

	old := c.State()
	c.state.Store(int32(StateDisconnected))
	c.transition(old, StateDisconnected, reason)
}

// deliver passes frames to the handler until reading fails and returns why
// the connection ended.
func (c *Connection) deliver(framer *Framer) string {
	for {
		data, err := framer.ReadFrame()
		if err != nil {
			switch {
			case c.State() == StateClosing:
				return "closed locally"
			case errors.Is(err, io.EOF):
				return "closed by peer"
			default:
				c.handler.OnError(fmt.Errorf("read: %w", err))
				return err.Error()
			}
		}
		c.handler.OnMessage(data)
	}
}

// transition logs a state change and notifies the handler.
func (c *Connection) transition(oldState, newState ConnectionState, reason string) {
	if c.config.Logger != nil {
		c.mu.RLock()
		connID := c.connID
		var remote string
		if c.conn != nil {
			remote = c.conn.RemoteAddr().String()
		}
		c.mu.RUnlock()

		c.config.Logger.Log(log.ConnectionStateEvent(connID, log.RoleClient, remote,
			oldState.String(), newState.String(), reason))
	}
	c.handler.OnStateChange(oldState, newState)
}
