// Package connection keeps a client's link to an address space server up.
//
// Manager retries the initial connect and, once a link is lost, restores it
// in the background using exponential backoff with jitter:
//
//	delay(n) = min(initial * multiplier^n, max)
//	actual   = delay(n) + random(0, delay(n) * jitter)
//
// The backoff resets after every successful connect. What a "link" is
// belongs to the ConnectFunc; the manager only tracks its state.
package connection
