package proxy

import (
	"context"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// BrowseResult describes an entity found by browse or describe.
type BrowseResult struct {
	Ref          model.EntityRef
	DeclaredType model.EntityRef
	Base         model.BaseAttributes
}

// RemoteEntityService is the connection the proxies talk through. It is
// shared by every proxy of an AddressSpace and is never closed by them.
//
// Implementations report structured remote failures as *ServiceError and
// connection failures as *TransportError. Calls block until the response
// arrives or ctx is done; the proxy layer provides the asynchronous forms.
type RemoteEntityService interface {
	// ReadAttribute returns the current value of key on ref.
	ReadAttribute(ctx context.Context, ref model.EntityRef, key model.AttributeKey) (any, error)

	// WriteAttribute writes value to key on ref.
	WriteAttribute(ctx context.Context, ref model.EntityRef, key model.AttributeKey, value any) (wire.Status, error)

	// BrowseChild resolves a child of ref. The boolean is false, with a nil
	// error, when no child matches.
	BrowseChild(ctx context.Context, ref model.EntityRef, sel model.ChildSelector) (BrowseResult, bool, error)
}

// Describer is implemented by services that can look up an entity directly
// by reference.
type Describer interface {
	Describe(ctx context.Context, ref model.EntityRef) (BrowseResult, error)
}
