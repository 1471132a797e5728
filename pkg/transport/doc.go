// Package transport carries encoded requests and responses over TCP.
//
// Every message travels as one frame: a 4-byte big-endian length followed
// by the payload. Server accepts connections and hands each frame to a
// callback; Connection is the dialing side and delivers frames to a
// ConnectionHandler from its own read goroutine.
//
//	┌────────────────────────────────┐
//	│      CBOR Messages             │
//	├────────────────────────────────┤
//	│   Length-Prefix Framing (4B)   │
//	├────────────────────────────────┤
//	│           TCP                  │
//	└────────────────────────────────┘
//
// Both sides can log raw frames and connection state changes as
// transport-layer events through a log.Logger.
package transport
