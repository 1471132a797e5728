package interaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Logger receives operational logs. Nil means slog.Default().
	Logger *slog.Logger

	// EventLogger receives one protocol event per request and response.
	EventLogger log.Logger
}

// Server answers Read, Write, Browse and Describe requests from an
// in-memory address space.
type Server struct {
	space  *model.Space
	logger *slog.Logger
	events log.Logger
}

// NewServer creates a server for the given address space.
func NewServer(space *model.Space, cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		space:  space,
		logger: logger.With("component", "interaction-server"),
		events: log.OrNoop(cfg.EventLogger),
	}
}

// HandleFrame decodes a request frame, processes it and returns the encoded
// response. It returns nil when the frame carries no usable message ID and
// therefore cannot be answered.
func (s *Server) HandleFrame(ctx context.Context, connID string, data []byte) []byte {
	start := time.Now()

	var resp *wire.Response
	req, err := wire.DecodeRequest(data)
	if err != nil {
		s.events.Log(log.ErrorEvent(connID, log.RoleServer, log.LayerWire, err, "decode request"))
		id, peekErr := wire.PeekMessageID(data)
		if peekErr != nil || id == 0 {
			s.logger.Debug("dropping undecodable frame", "conn_id", connID, "error", err)
			return nil
		}
		resp = errorResponse(id, decodeStatus(err), err.Error())
	} else {
		s.events.Log(log.RequestEvent(connID, log.RoleServer, log.DirectionIn, req))
		resp = s.HandleRequest(ctx, req)
	}

	out, err := wire.EncodeResponse(resp)
	if err != nil {
		s.logger.Warn("encoding response failed", "conn_id", connID, "msg_id", resp.MessageID, "error", err)
		resp = errorResponse(resp.MessageID, wire.StatusBadEncodingError, err.Error())
		if out, err = wire.EncodeResponse(resp); err != nil {
			return nil
		}
	}
	s.events.Log(log.ResponseEvent(connID, log.RoleServer, log.DirectionOut, resp, time.Since(start)))
	return out
}

// HandleRequest processes a decoded request and returns its response.
func (s *Server) HandleRequest(ctx context.Context, req *wire.Request) *wire.Response {
	if err := ctx.Err(); err != nil {
		return errorResponse(req.MessageID, wire.StatusBadShutdown, err.Error())
	}

	switch req.Operation {
	case wire.OpRead:
		return s.handleRead(req)
	case wire.OpWrite:
		return s.handleWrite(req)
	case wire.OpBrowse:
		return s.handleBrowse(req)
	case wire.OpDescribe:
		return s.handleDescribe(req)
	default:
		return errorResponse(req.MessageID, wire.StatusBadServiceUnsupported, "unknown operation")
	}
}

func (s *Server) handleRead(req *wire.Request) *wire.Response {
	var payload wire.ReadPayload
	if err := req.DecodePayload(&payload); err != nil {
		return errorResponse(req.MessageID, wire.StatusBadDecodingError, err.Error())
	}

	value, err := s.space.ReadAttribute(req.Target, payload.Key)
	if err != nil {
		return modelErrorResponse(req.MessageID, err)
	}
	return s.respond(req.MessageID, &wire.ReadResponsePayload{Value: value})
}

func (s *Server) handleWrite(req *wire.Request) *wire.Response {
	var payload wire.WritePayload
	if err := req.DecodePayload(&payload); err != nil {
		return errorResponse(req.MessageID, wire.StatusBadDecodingError, err.Error())
	}

	// Values arrive in their generic CBOR form; the model accepts any
	// integer width within the declared range.
	if err := s.space.WriteAttribute(req.Target, payload.Key, payload.Value); err != nil {
		return modelErrorResponse(req.MessageID, err)
	}
	s.logger.Debug("attribute written", "target", req.Target, "key", payload.Key)
	return s.respond(req.MessageID, nil)
}

func (s *Server) handleBrowse(req *wire.Request) *wire.Response {
	var payload wire.BrowsePayload
	if err := req.DecodePayload(&payload); err != nil {
		return errorResponse(req.MessageID, wire.StatusBadDecodingError, err.Error())
	}

	child, found, err := s.space.Browse(req.Target, payload.Selector)
	if err != nil {
		return modelErrorResponse(req.MessageID, err)
	}
	if !found {
		return errorResponse(req.MessageID, wire.StatusBadNoMatch, payload.Selector.String())
	}
	return s.respond(req.MessageID, describe(child))
}

func (s *Server) handleDescribe(req *wire.Request) *wire.Response {
	e, err := s.space.Lookup(req.Target)
	if err != nil {
		return modelErrorResponse(req.MessageID, err)
	}
	return s.respond(req.MessageID, describe(e))
}

func (s *Server) respond(id uint32, payload any) *wire.Response {
	resp, err := wire.NewResponse(id, wire.StatusGood, payload)
	if err != nil {
		return errorResponse(id, wire.StatusBadEncodingError, err.Error())
	}
	return resp
}

func describe(e *model.Entity) *wire.NodeDescription {
	return &wire.NodeDescription{
		Ref:            e.Ref(),
		TypeDefinition: e.TypeDefinition(),
		Base:           e.Base(),
	}
}

// modelErrorResponse maps address space errors to status codes.
func modelErrorResponse(id uint32, err error) *wire.Response {
	var status wire.Status
	switch {
	case errors.Is(err, model.ErrEntityNotFound):
		status = wire.StatusBadNodeIDUnknown
	case errors.Is(err, model.ErrAttributeNotFound):
		status = wire.StatusBadAttributeIDInvalid
	case errors.Is(err, model.ErrNotReadable):
		status = wire.StatusBadNotReadable
	case errors.Is(err, model.ErrNotWritable):
		status = wire.StatusBadNotWritable
	case errors.Is(err, model.ErrValueType), errors.Is(err, model.ErrInvalidShape):
		status = wire.StatusBadTypeMismatch
	default:
		status = wire.StatusBadInternalError
	}
	return errorResponse(id, status, err.Error())
}

func decodeStatus(err error) wire.Status {
	switch {
	case errors.Is(err, wire.ErrInvalidOperation):
		return wire.StatusBadServiceUnsupported
	case errors.Is(err, wire.ErrMissingTarget):
		return wire.StatusBadNodeIDUnknown
	default:
		return wire.StatusBadDecodingError
	}
}

// errorResponse creates an error response.
func errorResponse(msgID uint32, status wire.Status, message string) *wire.Response {
	return wire.ErrorResponse(msgID, status, message)
}
