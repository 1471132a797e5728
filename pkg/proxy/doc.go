// Package proxy implements typed node proxies over a remote address space.
//
// A proxy mirrors one remote entity. It keeps the last known value of each
// attribute in an AttributeCache and each resolved child in a ChildCache,
// and talks to the server through a RemoteEntityService shared by every
// proxy of an AddressSpace.
//
// # Attributes
//
// Attribute[T] is the typed accessor for one attribute:
//
//	level := proxy.AttributeOf[float64](node, levelKey)
//	v, ok := level.Get()          // cache only
//	v, err := level.Read(ctx)     // service, caches on success
//	err = level.Write(ctx, 42.5)  // service, caches 42.5 on success
//
// Failed operations never modify the cache. Concurrent operations on the
// same attribute are linearized by completion: the value stored last belongs
// to the operation that completed last.
//
// # Children
//
// Node.Child browses a child by qualified name once and caches the result,
// including its absence. Concurrent first lookups share one browse. The
// resolved proxy is built by the Registry from the child's declared type.
//
// # Blocking and asynchronous forms
//
// Every operation has an asynchronous form returning a *Future. The blocking
// form is Await applied to it. Await returns *ServiceError and
// *TransportError values unchanged and reports any other failure as an
// *UnexpectedError.
package proxy
