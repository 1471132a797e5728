package transport

import (
	"context"
	"net"
)

// MessageSender sends one encoded message as a frame. Both Connection and
// ServerConn implement it, so interaction clients can run over either.
type MessageSender interface {
	Send(data []byte) error
}

// ClientConnection is the client side of a framed connection.
// Implemented by Connection.
type ClientConnection interface {
	MessageSender

	// Connect dials the server.
	Connect(ctx context.Context, address string) error

	// State returns the current connection state.
	State() ConnectionState

	// RemoteAddr returns the server's address.
	RemoteAddr() net.Addr

	// Close closes the connection.
	Close() error
}

// TransportServer accepts framed connections.
// Implemented by Server.
type TransportServer interface {
	// Start begins accepting connections.
	Start(ctx context.Context) error

	// Stop closes the listener and all connections.
	Stop() error

	// Addr returns the listen address.
	Addr() net.Addr

	// ConnectionCount returns the number of open connections.
	ConnectionCount() int
}

// FrameReadWriter provides length-prefixed frame I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	ReadFrame() ([]byte, error)
	WriteFrame(data []byte) error
}

var (
	_ MessageSender    = (*ServerConn)(nil)
	_ ClientConnection = (*Connection)(nil)
	_ TransportServer  = (*Server)(nil)
	_ FrameReadWriter  = (*Framer)(nil)
)
