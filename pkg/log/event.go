package log

import (
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// Event is one entry of a protocol log. Exactly one of Frame, Message,
// StateChange or Error is set, matching Category and Layer.
//
// Field keys are CBOR integers and must stay stable across releases so
// that old logs remain readable.
type Event struct {
	Timestamp    time.Time `cbor:"1,keyasint"`
	ConnectionID string    `cbor:"2,keyasint"`
	Direction    Direction `cbor:"3,keyasint"`
	Layer        Layer     `cbor:"4,keyasint"`
	Category     Category  `cbor:"5,keyasint"`
	LocalRole    Role      `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the peer's host:port when known.
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"`
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// enumName returns names[v], or "UNKNOWN" for values outside the table.
func enumName[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return "UNKNOWN"
}

// Direction is the flow of a message relative to the local endpoint.
type Direction uint8

const (
	DirectionIn  Direction = 0
	DirectionOut Direction = 1
)

var directionNames = []string{DirectionIn: "IN", DirectionOut: "OUT"}

func (d Direction) String() string { return enumName(directionNames, d) }

// Layer is the protocol layer that captured an event.
type Layer uint8

const (
	// LayerTransport sees raw length-prefixed frames.
	LayerTransport Layer = 0
	// LayerWire sees decoded requests and responses.
	LayerWire Layer = 1
	// LayerService sees proxy sessions.
	LayerService Layer = 2
)

var layerNames = []string{LayerTransport: "TRANSPORT", LayerWire: "WIRE", LayerService: "SERVICE"}

func (l Layer) String() string { return enumName(layerNames, l) }

// Category classifies an event. Value 1 is unused.
type Category uint8

const (
	CategoryMessage Category = 0
	CategoryState   Category = 2
	CategoryError   Category = 3
)

var categoryNames = []string{CategoryMessage: "MESSAGE", CategoryState: "STATE", CategoryError: "ERROR"}

func (c Category) String() string { return enumName(categoryNames, c) }

// Role tells whether the local endpoint serves or browses the address space.
type Role uint8

const (
	RoleServer Role = 0
	RoleClient Role = 1
)

var roleNames = []string{RoleServer: "SERVER", RoleClient: "CLIENT"}

func (r Role) String() string { return enumName(roleNames, r) }

// FrameEvent records one transport frame.
type FrameEvent struct {
	// Size includes the length prefix.
	Size int `cbor:"1,keyasint"`

	// Data holds at most the first MaxLogFrameDataSize bytes of the payload;
	// Truncated is set when more were cut.
	Data      []byte `cbor:"2,keyasint,omitempty"`
	Truncated bool   `cbor:"3,keyasint,omitempty"`
}

// MessageEvent records a decoded request or response.
type MessageEvent struct {
	Type      MessageType `cbor:"1,keyasint"`
	MessageID uint32      `cbor:"2,keyasint"`

	// Operation and Target are set on requests only. Target is the string
	// form of the entity ref.
	Operation *wire.Operation `cbor:"3,keyasint,omitempty"`
	Target    string          `cbor:"4,keyasint,omitempty"`

	// Status is set on responses only.
	Status *wire.Status `cbor:"6,keyasint,omitempty"`

	// Payload is the generic CBOR decoding of the embedded payload.
	Payload any `cbor:"8,keyasint,omitempty"`

	// ProcessingTime is the server-side time between receiving a request
	// and sending its response.
	ProcessingTime *time.Duration `cbor:"9,keyasint,omitempty"`
}

// MessageType distinguishes requests from responses.
type MessageType uint8

const (
	MessageTypeRequest  MessageType = 0
	MessageTypeResponse MessageType = 1
)

var messageTypeNames = []string{MessageTypeRequest: "REQUEST", MessageTypeResponse: "RESPONSE"}

func (m MessageType) String() string { return enumName(messageTypeNames, m) }

// StateChangeEvent records a lifecycle transition.
type StateChangeEvent struct {
	Entity   StateEntity `cbor:"1,keyasint"`
	OldState string      `cbor:"2,keyasint,omitempty"`
	NewState string      `cbor:"3,keyasint"`
	Reason   string      `cbor:"4,keyasint,omitempty"`
}

// StateEntity names what changed state.
type StateEntity uint8

const (
	StateEntityConnection StateEntity = 0
	StateEntityClient     StateEntity = 1
)

var stateEntityNames = []string{StateEntityConnection: "CONNECTION", StateEntityClient: "CLIENT"}

func (s StateEntity) String() string { return enumName(stateEntityNames, s) }

// ErrorEventData records a failure that was not surfaced to a caller, such
// as an undecodable frame or a reply nobody was waiting for.
type ErrorEventData struct {
	Layer   Layer  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
	Code    *int   `cbor:"3,keyasint,omitempty"`

	// Context names the activity that failed.
	Context string `cbor:"4,keyasint,omitempty"`
}

// RequestEvent builds the wire-layer event of a request.
func RequestEvent(connID string, role Role, dir Direction, req *wire.Request) Event {
	op := req.Operation
	e := newEvent(connID, role, dir, LayerWire, CategoryMessage)
	e.Message = &MessageEvent{
		Type:      MessageTypeRequest,
		MessageID: req.MessageID,
		Operation: &op,
		Target:    req.Target.String(),
		Payload:   decodedPayload(req.Payload),
	}
	return e
}

// ResponseEvent builds the wire-layer event of a response. A zero
// processing time is omitted.
func ResponseEvent(connID string, role Role, dir Direction, resp *wire.Response, processing time.Duration) Event {
	status := resp.Status
	e := newEvent(connID, role, dir, LayerWire, CategoryMessage)
	e.Message = &MessageEvent{
		Type:      MessageTypeResponse,
		MessageID: resp.MessageID,
		Status:    &status,
		Payload:   decodedPayload(resp.Payload),
	}
	if processing > 0 {
		e.Message.ProcessingTime = &processing
	}
	return e
}

// ConnectionStateEvent builds the transport-layer event of a connection
// state transition.
func ConnectionStateEvent(connID string, role Role, remote, oldState, newState, reason string) Event {
	e := newEvent(connID, role, DirectionIn, LayerTransport, CategoryState)
	e.RemoteAddr = remote
	e.StateChange = &StateChangeEvent{
		Entity:   StateEntityConnection,
		OldState: oldState,
		NewState: newState,
		Reason:   reason,
	}
	return e
}

// SessionStateEvent builds the service-layer event of a proxy session
// starting or ending on top of a connection.
func SessionStateEvent(connID, oldState, newState, reason string) Event {
	e := newEvent(connID, RoleClient, DirectionOut, LayerService, CategoryState)
	e.StateChange = &StateChangeEvent{
		Entity:   StateEntityClient,
		OldState: oldState,
		NewState: newState,
		Reason:   reason,
	}
	return e
}

// ErrorEvent builds an error event for an incoming message that could not
// be handled.
func ErrorEvent(connID string, role Role, layer Layer, err error, context string) Event {
	e := newEvent(connID, role, DirectionIn, layer, CategoryError)
	e.Error = &ErrorEventData{Layer: layer, Message: err.Error(), Context: context}
	return e
}

func newEvent(connID string, role Role, dir Direction, layer Layer, cat Category) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    dir,
		Layer:        layer,
		Category:     cat,
		LocalRole:    role,
	}
}

// decodedPayload returns the generic form of an embedded payload, or nil.
func decodedPayload(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := wire.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
