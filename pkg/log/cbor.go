package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// A log is a plain concatenation of CBOR-encoded events. Timestamps are
// RFC 3339 strings with nanoseconds. The decoder bounds nesting because
// message payloads are stored decoded.
var (
	logEncMode = must(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode())

	logDecMode = must(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		MaxNestedLevels:   64,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode())
)

func must[M any](mode M, err error) M {
	if err != nil {
		panic("log: cbor mode: " + err.Error())
	}
	return mode
}

// NewEncoder returns an encoder writing events to w in log format.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return logEncMode.NewEncoder(w)
}

// NewDecoder returns a decoder reading log-format events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return logDecMode.NewDecoder(r)
}
