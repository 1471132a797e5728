// Package wire defines the CBOR wire format for the node proxy protocol.
//
// Messages are CBOR (RFC 8949) maps with integer keys, length-prefixed by
// the transport layer.
//
// # Message Types
//
// There are two message types:
//   - Request: client to server (Read, Write, Browse, Describe)
//   - Response: server to client, carrying a 32-bit status code
//
// Payloads are carried as embedded CBOR and decoded into the typed payload
// structs of this package on demand, so a decoded message never exposes
// raw map[any]any values.
//
// # Status Codes
//
// Status codes follow the address-space protocol convention: the two top
// bits carry the severity (00 good, 01 uncertain, 10 bad) and the next
// 14 bits the sub code. Only the codes this protocol produces are named.
//
// # Values
//
// Attribute values are encoded as plain CBOR. After decoding into an empty
// interface, unsigned integers become uint64, negative integers int64,
// arrays []any, and tagged times time.Time. Callers that need a specific
// Go type re-decode with Convert.
package wire
