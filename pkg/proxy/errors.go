package proxy

import (
	"context"
	"errors"
	"fmt"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// Proxy errors.
var (
	// ErrNoCachedValue reports a local get before any successful read or set.
	// Typed accessors return it as a false ok result instead.
	ErrNoCachedValue = errors.New("no cached value")

	// ErrTypeMismatch reports a resolved proxy that does not satisfy the
	// requested view type.
	ErrTypeMismatch = errors.New("proxy type mismatch")

	// ErrDescribeUnsupported reports a direct lookup against a service that
	// cannot describe entities.
	ErrDescribeUnsupported = errors.New("service does not support describe")

	// ErrInvalidConfig reports an invalid Config.
	ErrInvalidConfig = errors.New("invalid proxy config")
)

// ServiceError is a structured failure reported by the remote service, such
// as an unknown attribute, denied access or a type mismatch on write.
type ServiceError struct {
	Op      string
	Status  wire.Status
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// StatusCode returns the status reported by the service.
func (e *ServiceError) StatusCode() wire.Status { return e.Status }

// TransportError reports that the connection failed before a response was
// obtained. The operation may be retried.
type TransportError struct {
	Op     string
	Status wire.Status
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusCode returns the status describing the transport failure.
func (e *TransportError) StatusCode() wire.Status { return e.Status }

// UnexpectedError is raised when a failure has no protocol-level cause:
// cancellation of the caller, a panic in an asynchronous operation, or a
// value that cannot be converted to the attribute's type.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", wire.StatusBadUnexpectedError, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// StatusCode always returns Bad_UnexpectedError.
func (e *UnexpectedError) StatusCode() wire.Status { return wire.StatusBadUnexpectedError }

// StatusOf returns the status code carried by err, if any.
func StatusOf(err error) (wire.Status, bool) {
	var sc interface{ StatusCode() wire.Status }
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return wire.StatusGood, false
}

// IsTransient returns true for failures that a retry may fix.
func IsTransient(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// unwrapFailure maps the failure of an asynchronous operation to the single
// error returned by its blocking form. Protocol errors are returned as the
// same value, never wrapped again.
func unwrapFailure(err error) error {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	var ue *UnexpectedError
	if errors.As(err, &ue) {
		return ue
	}
	if errors.Is(err, model.ErrInvalidShape) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Op: "await", Status: wire.StatusBadTimeout, Err: err}
	}
	return &UnexpectedError{Err: err}
}
