package proxy

import (
	"context"
	"fmt"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// Attribute is the typed accessor for one attribute of a node.
//
//	Get         cached value, no network
//	Set         overwrite the cache, no network
//	Read        fetch from the service and cache on success
//	Write       send to the service and cache the written value on success
//
// Read and Write have asynchronous forms returning a *Future. Failed
// operations leave the cache unchanged.
type Attribute[T any] struct {
	node *Node
	key  model.AttributeKey
}

// AttributeOf returns the typed accessor for key on n.
func AttributeOf[T any](n *Node, key model.AttributeKey) *Attribute[T] {
	return &Attribute[T]{node: n, key: key}
}

// Key returns the attribute key.
func (a *Attribute[T]) Key() model.AttributeKey { return a.key }

// Get returns the cached value. The boolean is false if the attribute was
// never read or set, or if the cached value cannot be represented as T.
func (a *Attribute[T]) Get() (T, bool) {
	var zero T
	raw, ok := a.node.attrs.Get(a.key)
	if !ok {
		a.node.space.metrics.attributeMiss()
		return zero, false
	}
	v, err := wire.Convert[T](raw)
	if err != nil {
		a.node.space.metrics.attributeMiss()
		return zero, false
	}
	a.node.space.metrics.attributeHit()
	return v, true
}

// Set overwrites the cached value. It fails only if v does not have the
// array rank the attribute declares.
func (a *Attribute[T]) Set(v T) error {
	if err := a.key.CheckShape(v); err != nil {
		return err
	}
	a.node.attrs.Set(a.key, v)
	return nil
}

// Read fetches the value from the service and caches it.
func (a *Attribute[T]) Read(ctx context.Context) (T, error) {
	return Await(ctx, a.ReadAsync(ctx))
}

// ReadAsync is the asynchronous form of Read.
func (a *Attribute[T]) ReadAsync(ctx context.Context) *Future[T] {
	return readAsync[T](ctx, a.node, a.key)
}

// Write sends v to the service and caches it on success.
func (a *Attribute[T]) Write(ctx context.Context, v T) error {
	_, err := Await(ctx, a.WriteAsync(ctx, v))
	return err
}

// WriteAsync is the asynchronous form of Write. The future holds the
// status reported by the service.
func (a *Attribute[T]) WriteAsync(ctx context.Context, v T) *Future[wire.Status] {
	return writeAsync(ctx, a.node, a.key, v)
}

func readAsync[T any](ctx context.Context, n *Node, key model.AttributeKey) *Future[T] {
	s := n.attrs.slot(key)
	return goAsync(ctx, func(ctx context.Context, f *Future[T]) {
		raw, err := n.space.readRemote(ctx, n.ref, key)
		var v T
		if err == nil {
			if v, err = wire.Convert[T](raw); err != nil {
				err = &UnexpectedError{Err: fmt.Errorf("read %s: %w", key, err)}
			}
		}
		commit(ctx, s, f, v, v, err)
	})
}

func writeAsync[T any](ctx context.Context, n *Node, key model.AttributeKey, v T) *Future[wire.Status] {
	if err := key.CheckShape(v); err != nil {
		return Failed[wire.Status](err)
	}
	s := n.attrs.slot(key)
	return goAsync(ctx, func(ctx context.Context, f *Future[wire.Status]) {
		status, err := n.space.writeRemote(ctx, n.ref, key, v)
		commit(ctx, s, f, status, v, err)
	})
}
