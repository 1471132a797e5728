package log

import (
	"errors"
	"io"
	"iter"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// Filter selects events from a protocol log. Zero-valued fields accept
// every event.
type Filter struct {
	ConnectionID string
	Direction    *Direction
	Layer        *Layer
	Category     *Category

	// Since and Until bound the event timestamp to [Since, Until).
	Since *time.Time
	Until *time.Time

	// Operation selects requests of one operation. Responses carry no
	// operation and never match.
	Operation *wire.Operation

	// Target selects messages addressed to one entity, compared against
	// the ref's string form.
	Target string
}

// Match reports whether the event passes every criterion of the filter.
func (f Filter) Match(e Event) bool {
	switch {
	case f.ConnectionID != "" && e.ConnectionID != f.ConnectionID:
		return false
	case f.Direction != nil && e.Direction != *f.Direction:
		return false
	case f.Layer != nil && e.Layer != *f.Layer:
		return false
	case f.Category != nil && e.Category != *f.Category:
		return false
	case f.Since != nil && e.Timestamp.Before(*f.Since):
		return false
	case f.Until != nil && !e.Timestamp.Before(*f.Until):
		return false
	}

	if f.Operation == nil && f.Target == "" {
		return true
	}
	msg := e.Message
	if msg == nil {
		return false
	}
	if f.Operation != nil && (msg.Operation == nil || *msg.Operation != *f.Operation) {
		return false
	}
	return f.Target == "" || msg.Target == f.Target
}

// Reader streams events out of a protocol log.
type Reader struct {
	src    io.Reader
	dec    *cbor.Decoder
	filter Filter
}

// NewReader opens a log file and yields every event in it.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a log file and yields only events matching filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStreamReader(f, filter), nil
}

// NewStreamReader reads events from r, for example a pipe or stdin.
// Close closes r if it implements io.Closer.
func NewStreamReader(r io.Reader, filter Filter) *Reader {
	return &Reader{src: r, dec: NewDecoder(r), filter: filter}
}

// Next returns the next matching event, or io.EOF once the log is
// exhausted. A log cut short mid-event reports io.ErrUnexpectedEOF.
func (r *Reader) Next() (Event, error) {
	for {
		var e Event
		err := r.dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, err
		}
		if r.filter.Match(e) {
			return e, nil
		}
	}
}

// All iterates the remaining matching events. Iteration stops after the
// first decode error, which is yielded with a zero Event.
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			e, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(e, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the underlying source.
func (r *Reader) Close() error {
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
