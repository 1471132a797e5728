package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NamespaceStandard is the namespace URI of the standard type catalog.
const NamespaceStandard = "http://opcfoundation.org/UA/"

// IDKind distinguishes numeric from string identifiers.
type IDKind uint8

const (
	// IDNumeric marks a numeric identifier.
	IDNumeric IDKind = iota

	// IDString marks a string identifier.
	IDString
)

// EntityRef identifies a remote entity by namespace URI and identifier.
// EntityRef is comparable and is used directly as a map key.
type EntityRef struct {
	Namespace string `cbor:"1,keyasint" yaml:"namespace"`
	Kind      IDKind `cbor:"2,keyasint" yaml:"kind"`
	Numeric   uint32 `cbor:"3,keyasint,omitempty" yaml:"numeric,omitempty"`
	Name      string `cbor:"4,keyasint,omitempty" yaml:"name,omitempty"`
}

// Ref errors.
var (
	ErrInvalidRef = errors.New("invalid entity reference")
)

// NumericRef returns a reference with a numeric identifier.
func NumericRef(namespace string, id uint32) EntityRef {
	return EntityRef{Namespace: namespace, Kind: IDNumeric, Numeric: id}
}

// StringRef returns a reference with a string identifier.
func StringRef(namespace, name string) EntityRef {
	return EntityRef{Namespace: namespace, Kind: IDString, Name: name}
}

// StandardRef returns a numeric reference in the standard namespace.
func StandardRef(id uint32) EntityRef {
	return NumericRef(NamespaceStandard, id)
}

// IsNull returns true for the zero reference.
func (r EntityRef) IsNull() bool {
	return r == EntityRef{}
}

// String formats the reference as nsu=<uri>;i=<n> or nsu=<uri>;s=<name>.
func (r EntityRef) String() string {
	if r.Kind == IDString {
		return fmt.Sprintf("nsu=%s;s=%s", r.Namespace, r.Name)
	}
	return fmt.Sprintf("nsu=%s;i=%d", r.Namespace, r.Numeric)
}

// ParseRef parses the text form produced by EntityRef.String.
// The namespace part may be omitted, in which case the standard namespace is used.
func ParseRef(s string) (EntityRef, error) {
	ns := NamespaceStandard
	rest := s
	if strings.HasPrefix(rest, "nsu=") {
		idx := strings.LastIndex(rest, ";")
		if idx < 0 {
			return EntityRef{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
		}
		ns = rest[len("nsu="):idx]
		rest = rest[idx+1:]
	}

	switch {
	case strings.HasPrefix(rest, "i="):
		n, err := strconv.ParseUint(rest[2:], 10, 32)
		if err != nil {
			return EntityRef{}, fmt.Errorf("%w: %q: %v", ErrInvalidRef, s, err)
		}
		return NumericRef(ns, uint32(n)), nil
	case strings.HasPrefix(rest, "s="):
		if len(rest) == 2 {
			return EntityRef{}, fmt.Errorf("%w: %q: empty name", ErrInvalidRef, s)
		}
		return StringRef(ns, rest[2:]), nil
	default:
		return EntityRef{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}
}

// MustParseRef is like ParseRef but panics on error.
// It is intended for package-level tables.
func MustParseRef(s string) EntityRef {
	r, err := ParseRef(s)
	if err != nil {
		panic(err)
	}
	return r
}

// QualifiedName is a browse name qualified by its namespace URI.
type QualifiedName struct {
	Namespace string `cbor:"1,keyasint" yaml:"namespace"`
	Name      string `cbor:"2,keyasint" yaml:"name"`
}

// String returns "<uri>:<name>", or just the name in the standard namespace.
func (q QualifiedName) String() string {
	if q.Namespace == "" || q.Namespace == NamespaceStandard {
		return q.Name
	}
	return q.Namespace + ":" + q.Name
}
