package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/proxy"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// DefaultRequestTimeout bounds the wait for a response.
const DefaultRequestTimeout = 10 * time.Second

const tracerName = "github.com/nodeproxy/nodeproxy-go/pkg/interaction"

// Client errors.
var (
	ErrRequestTimeout  = errors.New("request timed out")
	ErrClientClosed    = errors.New("client is closed")
	ErrUnexpectedReply = errors.New("unexpected reply")
	ErrInvalidConfig   = errors.New("invalid interaction config")
)

// RequestSender sends an encoded request over a connection.
type RequestSender interface {
	Send(data []byte) error
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// Timeout bounds each request. Expiry is reported as Bad_Timeout.
	Timeout time.Duration

	// ConnectionID tags protocol log events.
	ConnectionID string

	// Logger receives operational logs. Nil means slog.Default().
	Logger *slog.Logger

	// EventLogger receives one protocol event per request and response.
	EventLogger log.Logger

	// TracerProvider creates the client's tracer. Nil means the global
	// provider.
	TracerProvider trace.TracerProvider
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{Timeout: DefaultRequestTimeout}
}

// Validate checks the configuration.
func (c ClientConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Client is the remote entity service used by proxies. It correlates
// responses to requests by message ID; the connection's read loop feeds
// responses back through HandleFrame.
type Client struct {
	sender  RequestSender
	timeout time.Duration
	connID  string
	logger  *slog.Logger
	events  log.Logger
	tracer  trace.Tracer

	nextMsgID atomic.Uint32

	mu      sync.Mutex
	pending map[uint32]chan *wire.Response
	closed  bool
}

var (
	_ proxy.RemoteEntityService = (*Client)(nil)
	_ proxy.Describer           = (*Client)(nil)
)

// NewClient creates a client sending through sender.
func NewClient(sender RequestSender, cfg ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Client{
		sender:  sender,
		timeout: cfg.Timeout,
		connID:  cfg.ConnectionID,
		logger:  logger.With("component", "interaction-client"),
		events:  log.OrNoop(cfg.EventLogger),
		tracer:  tp.Tracer(tracerName),
		pending: make(map[uint32]chan *wire.Response),
	}, nil
}

// Close fails every pending request with Bad_ConnectionClosed. Later
// requests fail the same way.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	return nil
}

// nextMessageID returns the next message ID. Zero is reserved and skipped
// on wraparound.
func (c *Client) nextMessageID() uint32 {
	for {
		if id := c.nextMsgID.Add(1); id != 0 {
			return id
		}
	}
}

// HandleFrame decodes a response frame and delivers it to its caller.
// A frame that cannot be decoded fails the request named by its message
// ID, when one can be recovered.
func (c *Client) HandleFrame(data []byte) error {
	resp, err := wire.DecodeResponse(data)
	if err != nil {
		c.events.Log(log.ErrorEvent(c.connID, log.RoleClient, log.LayerWire, err, "decode response"))
		id, peekErr := wire.PeekMessageID(data)
		if peekErr != nil {
			return err
		}
		resp = wire.ErrorResponse(id, wire.StatusBadDecodingError, err.Error())
	}
	return c.HandleResponse(resp)
}

// HandleResponse delivers a decoded response to the waiting request.
func (c *Client) HandleResponse(resp *wire.Response) error {
	c.events.Log(log.ResponseEvent(c.connID, log.RoleClient, log.DirectionIn, resp, 0))

	c.mu.Lock()
	ch, ok := c.pending[resp.MessageID]
	if ok {
		delete(c.pending, resp.MessageID)
	}
	c.mu.Unlock()

	if !ok {
		c.logger.Debug("dropping response", "msg_id", resp.MessageID, "status", resp.Status)
		err := fmt.Errorf("%w: message %d", ErrUnexpectedReply, resp.MessageID)
		c.events.Log(log.ErrorEvent(c.connID, log.RoleClient, log.LayerWire, err, "match response"))
		return err
	}
	ch <- resp
	return nil
}

// roundTrip sends one request and waits for its response. Failures before
// a response arrives are returned as *proxy.TransportError, except for
// cancellation of ctx, which is returned as is.
func (c *Client) roundTrip(ctx context.Context, op wire.Operation, target model.EntityRef, payload any) (*wire.Response, error) {
	name := opName(op)
	id := c.nextMessageID()

	ctx, span := c.tracer.Start(ctx, "nodeproxy."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("nodeproxy.operation", op.String()),
			attribute.String("nodeproxy.target", target.String()),
			attribute.Int64("nodeproxy.message_id", int64(id)),
		))
	defer span.End()

	resp, err := c.exchange(ctx, name, id, op, target, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("nodeproxy.status", resp.Status.String()))
	if resp.Status.IsBad() {
		span.SetStatus(codes.Error, resp.Status.String())
	}
	return resp, nil
}

func (c *Client) exchange(ctx context.Context, name string, id uint32, op wire.Operation, target model.EntityRef, payload any) (*wire.Response, error) {
	req, err := wire.NewRequest(id, op, target, payload)
	if err != nil {
		return nil, &proxy.TransportError{Op: name, Status: wire.StatusBadEncodingError, Err: err}
	}
	data, err := wire.EncodeRequest(req)
	if err != nil {
		return nil, &proxy.TransportError{Op: name, Status: wire.StatusBadEncodingError, Err: err}
	}

	respCh := make(chan *wire.Response, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, &proxy.TransportError{Op: name, Status: wire.StatusBadConnectionClosed, Err: ErrClientClosed}
	}
	c.pending[id] = respCh
	c.mu.Unlock()

	c.events.Log(log.RequestEvent(c.connID, log.RoleClient, log.DirectionOut, req))
	if err := c.sender.Send(data); err != nil {
		c.forget(id)
		return nil, &proxy.TransportError{Op: name, Status: wire.StatusBadCommunicationError, Err: err}
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	case <-timer.C:
		c.forget(id)
		return nil, &proxy.TransportError{Op: name, Status: wire.StatusBadTimeout, Err: ErrRequestTimeout}
	case resp, ok := <-respCh:
		if !ok {
			return nil, &proxy.TransportError{Op: name, Status: wire.StatusBadConnectionClosed, Err: ErrClientClosed}
		}
		return resp, nil
	}
}

func (c *Client) forget(id uint32) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// ReadAttribute reads key on ref.
func (c *Client) ReadAttribute(ctx context.Context, ref model.EntityRef, key model.AttributeKey) (any, error) {
	resp, err := c.roundTrip(ctx, wire.OpRead, ref, &wire.ReadPayload{Key: key})
	if err != nil {
		return nil, err
	}
	if resp.Status.IsBad() {
		return nil, statusError("read", resp)
	}
	var payload wire.ReadResponsePayload
	if err := resp.DecodePayload(&payload); err != nil {
		if errors.Is(err, wire.ErrNoPayload) {
			return nil, nil
		}
		return nil, &proxy.ServiceError{Op: "read", Status: wire.StatusBadDecodingError, Message: err.Error()}
	}
	return payload.Value, nil
}

// WriteAttribute writes value to key on ref. A bad status is returned
// together with a *proxy.ServiceError carrying the server's message.
func (c *Client) WriteAttribute(ctx context.Context, ref model.EntityRef, key model.AttributeKey, value any) (wire.Status, error) {
	resp, err := c.roundTrip(ctx, wire.OpWrite, ref, &wire.WritePayload{Key: key, Value: value})
	if err != nil {
		return wire.StatusBadCommunicationError, err
	}
	if resp.Status.IsBad() {
		return resp.Status, statusError("write", resp)
	}
	return resp.Status, nil
}

// BrowseChild resolves a child of ref. Bad_NoMatch means no child matches.
func (c *Client) BrowseChild(ctx context.Context, ref model.EntityRef, sel model.ChildSelector) (proxy.BrowseResult, bool, error) {
	resp, err := c.roundTrip(ctx, wire.OpBrowse, ref, &wire.BrowsePayload{Selector: sel})
	if err != nil {
		return proxy.BrowseResult{}, false, err
	}
	if resp.Status == wire.StatusBadNoMatch {
		return proxy.BrowseResult{}, false, nil
	}
	res, err := browseResult("browse", resp)
	if err != nil {
		return proxy.BrowseResult{}, false, err
	}
	return res, true, nil
}

// Describe looks up ref directly.
func (c *Client) Describe(ctx context.Context, ref model.EntityRef) (proxy.BrowseResult, error) {
	resp, err := c.roundTrip(ctx, wire.OpDescribe, ref, nil)
	if err != nil {
		return proxy.BrowseResult{}, err
	}
	return browseResult("describe", resp)
}

func browseResult(op string, resp *wire.Response) (proxy.BrowseResult, error) {
	if resp.Status.IsBad() {
		return proxy.BrowseResult{}, statusError(op, resp)
	}
	var desc wire.NodeDescription
	if err := resp.DecodePayload(&desc); err != nil {
		return proxy.BrowseResult{}, &proxy.ServiceError{Op: op, Status: wire.StatusBadDecodingError, Message: err.Error()}
	}
	return proxy.BrowseResult{
		Ref:          desc.Ref,
		DeclaredType: desc.TypeDefinition,
		Base:         desc.Base,
	}, nil
}

// statusError converts a bad response into the proxy error taxonomy.
func statusError(op string, resp *wire.Response) error {
	return &proxy.ServiceError{Op: op, Status: resp.Status, Message: resp.Message}
}

func opName(op wire.Operation) string {
	switch op {
	case wire.OpRead:
		return "read"
	case wire.OpWrite:
		return "write"
	case wire.OpBrowse:
		return "browse"
	case wire.OpDescribe:
		return "describe"
	default:
		return "unknown"
	}
}
