package proxy

import (
	"context"
	"fmt"
	"reflect"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// Proxy is implemented by every node proxy. Generated views embed *Node and
// inherit ProxyNode from it.
type Proxy interface {
	ProxyNode() *Node
}

// Node is the generic typed node proxy. It mirrors one remote entity: the
// attribute cache holds the last known value of each attribute, the child
// cache holds resolved children.
//
// A Node is safe for concurrent use.
type Node struct {
	space    *AddressSpace
	ref      model.EntityRef
	typ      *model.TypeDefinition
	attrs    *AttributeCache
	children *ChildCache
}

// newNode creates a proxy and seeds its cache with the identity attributes.
func newNode(space *AddressSpace, ref model.EntityRef, typ *model.TypeDefinition, base model.BaseAttributes) *Node {
	n := &Node{
		space:    space,
		ref:      ref,
		typ:      typ,
		attrs:    NewAttributeCache(),
		children: NewChildCache(),
	}
	n.attrs.Set(model.KeyNodeID, ref)
	if base.NodeClass != 0 {
		n.attrs.Set(model.KeyNodeClass, base.NodeClass)
	}
	if base.BrowseName.Name != "" {
		n.attrs.Set(model.KeyBrowseName, base.BrowseName)
	}
	if base.DisplayName != "" {
		n.attrs.Set(model.KeyDisplayName, base.DisplayName)
	}
	return n
}

// ProxyNode returns n.
func (n *Node) ProxyNode() *Node { return n }

// Ref returns the reference of the mirrored entity.
func (n *Node) Ref() model.EntityRef { return n.ref }

// TypeDefinition returns the type the proxy was constructed for.
func (n *Node) TypeDefinition() *model.TypeDefinition { return n.typ }

// Space returns the address space the proxy belongs to.
func (n *Node) Space() *AddressSpace { return n.space }

// Attributes returns the attribute cache.
func (n *Node) Attributes() *AttributeCache { return n.attrs }

// Children returns the child cache.
func (n *Node) Children() *ChildCache { return n.children }

// NodeClass returns the cached node class.
func (n *Node) NodeClass() model.NodeClass {
	v, _ := AttributeOf[model.NodeClass](n, model.KeyNodeClass).Get()
	return v
}

// BrowseName returns the cached browse name.
func (n *Node) BrowseName() model.QualifiedName {
	v, _ := AttributeOf[model.QualifiedName](n, model.KeyBrowseName).Get()
	return v
}

// DisplayName returns the cached display name.
func (n *Node) DisplayName() string {
	v, _ := AttributeOf[string](n, model.KeyDisplayName).Get()
	return v
}

// Get returns the cached value of key.
func (n *Node) Get(key model.AttributeKey) (any, bool) {
	return AttributeOf[any](n, key).Get()
}

// Set overwrites the cached value of key.
func (n *Node) Set(key model.AttributeKey, v any) error {
	return AttributeOf[any](n, key).Set(v)
}

// Read fetches key from the service and caches the value.
func (n *Node) Read(ctx context.Context, key model.AttributeKey) (any, error) {
	return Await(ctx, n.ReadAsync(ctx, key))
}

// ReadAsync is the asynchronous form of Read.
func (n *Node) ReadAsync(ctx context.Context, key model.AttributeKey) *Future[any] {
	return readAsync[any](ctx, n, key)
}

// Write sends v to the service and caches it on success.
func (n *Node) Write(ctx context.Context, key model.AttributeKey, v any) error {
	_, err := Await(ctx, n.WriteAsync(ctx, key, v))
	return err
}

// WriteAsync is the asynchronous form of Write.
func (n *Node) WriteAsync(ctx context.Context, key model.AttributeKey, v any) *Future[wire.Status] {
	return writeAsync(ctx, n, key, v)
}

// Refresh reads every attribute declared by the node's type.
func (n *Node) Refresh(ctx context.Context) error {
	return n.space.Refresh(ctx, n)
}

// Child resolves member. A nil proxy with a nil error means the entity has
// no such child.
func (n *Node) Child(ctx context.Context, member model.Member) (Proxy, error) {
	return Await(ctx, n.ChildAsync(ctx, member))
}

// ChildAsync is the asynchronous form of Child. A cached entry, including a
// cached absence, completes immediately without a browse.
func (n *Node) ChildAsync(ctx context.Context, member model.Member) *Future[Proxy] {
	if p, ok := n.children.Lookup(member.Selector); ok {
		n.space.metrics.childHit()
		return Completed(p)
	}
	n.space.metrics.childMiss()

	return goAsync(ctx, func(ctx context.Context, f *Future[Proxy]) {
		p, err := n.children.resolve(ctx, n, member)
		f.complete(p, err)
	})
}

// Browse resolves the child named by sel, using the member declared by the
// node's type when there is one.
func (n *Node) Browse(ctx context.Context, sel model.ChildSelector) (Proxy, error) {
	member := model.Member{Selector: sel}
	if n.typ != nil {
		if m, ok := n.typ.Member(sel); ok {
			member = m
		}
	}
	return n.Child(ctx, member)
}

// CachedChild returns the cached entry for sel without browsing.
func (n *Node) CachedChild(sel model.ChildSelector) (Proxy, bool) {
	return n.children.Lookup(sel)
}

// browseChild performs the remote browse and caches the outcome.
func (n *Node) browseChild(ctx context.Context, member model.Member) (Proxy, error) {
	res, found, err := n.space.browseRemote(ctx, n.ref, member.Selector)
	if err != nil {
		return nil, err
	}

	var p Proxy
	if found {
		p = n.space.registry.Resolve(n.space, res.DeclaredType, res.Ref, res.Base, member.Expected)
	}
	return n.children.storeIfAbsent(ctx, member.Selector, p)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.typ, n.ref)
}

// ChildOf resolves member on n and returns it as T. A nil result with a nil
// error means the child does not exist. A child that is not a T fails with
// an *UnexpectedError wrapping ErrTypeMismatch.
func ChildOf[T Proxy](ctx context.Context, n *Node, member model.Member) (T, error) {
	return Await(ctx, ChildOfAsync[T](ctx, n, member))
}

// ChildOfAsync is the asynchronous form of ChildOf.
func ChildOfAsync[T Proxy](ctx context.Context, n *Node, member model.Member) *Future[T] {
	return Then(n.ChildAsync(ctx, member), func(p Proxy) (T, error) {
		var zero T
		if p == nil {
			return zero, nil
		}
		return NodeAs[T](p)
	})
}

// NodeAs returns p as T. Views embed their parent view, so a proxy built
// for a subtype also satisfies the view of every ancestor.
func NodeAs[T Proxy](p Proxy) (T, error) {
	var zero T
	if t, ok := p.(T); ok {
		return t, nil
	}

	rv := reflect.ValueOf(p)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		elem := rv.Elem()
		if elem.NumField() == 0 || !elem.Type().Field(0).Anonymous {
			break
		}
		rv = elem.Field(0)
		if !rv.CanInterface() {
			break
		}
		if t, ok := rv.Interface().(T); ok {
			return t, nil
		}
	}
	return zero, &UnexpectedError{Err: fmt.Errorf("%w: %T is not %T", ErrTypeMismatch, p, zero)}
}
