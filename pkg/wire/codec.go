package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Protocol messages use canonical CBOR with integer map keys. Times carry
// tag 0 so that a variant attribute decodes back to time.Time. Decoding is
// lenient about duplicate keys and indefinite lengths so that newer peers
// can still be read.
var (
	encMode = must(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
		TimeTag:       cbor.EncTagRequired,
	}.EncMode())

	decMode = must(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode())
)

func must[M any](mode M, err error) M {
	if err != nil {
		panic("wire: cbor mode: " + err.Error())
	}
	return mode
}

// Marshal encodes v with the protocol's CBOR settings.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes protocol CBOR into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// EncodeRequest validates and encodes a request.
func EncodeRequest(req *Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return Marshal(req)
}

// DecodeRequest decodes a request and rejects it if it is not valid.
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return &req, nil
}

// EncodeResponse encodes a response.
func EncodeResponse(resp *Response) ([]byte, error) {
	return Marshal(resp)
}

// DecodeResponse decodes a response. The payload stays raw until the
// caller decodes it for the operation it sent.
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// PeekMessageID extracts key 1 of a message whose other fields may be
// malformed, so that a failure can still be reported to the right request.
func PeekMessageID(data []byte) (uint32, error) {
	var peek struct {
		MessageID uint32 `cbor:"1,keyasint"`
	}
	if err := Unmarshal(data, &peek); err != nil {
		return 0, fmt.Errorf("peek message id: %w", err)
	}
	return peek.MessageID, nil
}

// Convert re-decodes v into T. Values that already have type T are
// returned as is; nil converts to the zero value.
func Convert[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var result T
	if v == nil {
		return result, nil
	}
	data, err := Marshal(v)
	if err != nil {
		return result, err
	}
	if err := Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("convert %T to %T: %w", v, result, err)
	}
	return result, nil
}
