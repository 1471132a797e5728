package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// Message validation errors.
var (
	ErrReservedMessageID = errors.New("messageId 0 is reserved")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrMissingTarget     = errors.New("request without target")
	ErrNoPayload         = errors.New("message has no payload")
)

// Request represents a request message from client to server.
//
// CBOR encoding:
//
//	{
//	  1: messageId,    // uint32, never 0
//	  2: operation,    // uint8: 1=Read, 2=Write, 3=Browse, 4=Describe
//	  3: target,       // entity reference
//	  4: payload       // embedded CBOR, operation-specific
//	}
type Request struct {
	MessageID uint32          `cbor:"1,keyasint"`
	Operation Operation       `cbor:"2,keyasint"`
	Target    model.EntityRef `cbor:"3,keyasint"`
	Payload   cbor.RawMessage `cbor:"4,keyasint"`
}

// NewRequest builds a request and encodes its payload.
// A nil payload is encoded as CBOR null.
func NewRequest(id uint32, op Operation, target model.EntityRef, payload any) (*Request, error) {
	req := &Request{MessageID: id, Operation: op, Target: target}
	if payload != nil {
		data, err := Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", op, err)
		}
		req.Payload = data
	}
	return req, nil
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if r.MessageID == 0 {
		return ErrReservedMessageID
	}
	if !r.Operation.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidOperation, r.Operation)
	}
	if r.Target.IsNull() {
		return ErrMissingTarget
	}
	return nil
}

// DecodePayload decodes the embedded payload into v.
func (r *Request) DecodePayload(v any) error {
	if isNullPayload(r.Payload) {
		return ErrNoPayload
	}
	return Unmarshal(r.Payload, v)
}

// Response represents a response message from server to client.
//
// CBOR encoding:
//
//	{
//	  1: messageId,    // uint32: matches request
//	  2: status,       // uint32 status code, 0 = Good
//	  3: payload,      // embedded CBOR (if good)
//	  4: message       // diagnostic text (if bad)
//	}
type Response struct {
	MessageID uint32          `cbor:"1,keyasint"`
	Status    Status          `cbor:"2,keyasint"`
	Payload   cbor.RawMessage `cbor:"3,keyasint"`
	Message   string          `cbor:"4,keyasint,omitempty"`
}

// NewResponse builds a response and encodes its payload.
func NewResponse(id uint32, status Status, payload any) (*Response, error) {
	resp := &Response{MessageID: id, Status: status}
	if payload != nil {
		data, err := Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode response payload: %w", err)
		}
		resp.Payload = data
	}
	return resp, nil
}

// ErrorResponse builds a payload-less response with a diagnostic message.
func ErrorResponse(id uint32, status Status, message string) *Response {
	return &Response{MessageID: id, Status: status, Message: message}
}

// IsSuccess returns true if the response does not indicate a failure.
func (r *Response) IsSuccess() bool {
	return r.Status.IsSuccess()
}

// DecodePayload decodes the embedded payload into v.
func (r *Response) DecodePayload(v any) error {
	if isNullPayload(r.Payload) {
		return ErrNoPayload
	}
	return Unmarshal(r.Payload, v)
}

// isNullPayload reports whether p is absent, CBOR null or CBOR undefined.
func isNullPayload(p cbor.RawMessage) bool {
	return len(p) == 0 || (len(p) == 1 && (p[0] == 0xf6 || p[0] == 0xf7))
}

// ReadPayload is the payload of a Read request.
//
// CBOR encoding:
//
//	{
//	  1: key   // attribute key
//	}
type ReadPayload struct {
	Key model.AttributeKey `cbor:"1,keyasint"`
}

// ReadResponsePayload is the payload of a Read response.
//
// CBOR encoding:
//
//	{
//	  1: value   // attribute value, may be null
//	}
type ReadResponsePayload struct {
	Value any `cbor:"1,keyasint"`
}

// WritePayload is the payload of a Write request.
//
// CBOR encoding:
//
//	{
//	  1: key,    // attribute key
//	  2: value   // value to write, may be null
//	}
type WritePayload struct {
	Key   model.AttributeKey `cbor:"1,keyasint"`
	Value any                `cbor:"2,keyasint"`
}

// BrowsePayload is the payload of a Browse request.
//
// CBOR encoding:
//
//	{
//	  1: selector   // (namespace URI, browse name)
//	}
type BrowsePayload struct {
	Selector model.ChildSelector `cbor:"1,keyasint"`
}

// NodeDescription is the payload of a successful Browse or Describe
// response.
//
// CBOR encoding:
//
//	{
//	  1: ref,              // entity reference
//	  2: typeDefinition,   // declared type, may be the null ref
//	  3: base              // node class, browse name, display name
//	}
type NodeDescription struct {
	Ref            model.EntityRef      `cbor:"1,keyasint"`
	TypeDefinition model.EntityRef      `cbor:"2,keyasint"`
	Base           model.BaseAttributes `cbor:"3,keyasint"`
}
