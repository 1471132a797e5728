// Package interaction carries the four address space operations between
// a proxy and a server:
//
//   - Read: get the current value of an attribute
//   - Write: set the value of an attribute
//   - Browse: resolve a child of an entity by (namespace, browse name)
//   - Describe: look up an entity directly by reference
//
// # Server Usage
//
// The Server answers requests from an in-memory model.Space:
//
//	space, err := model.LoadSpaceFile("space.yaml")
//	server := interaction.NewServer(space, interaction.ServerConfig{})
//
//	// Handle an incoming frame and send back the response
//	if resp := server.HandleFrame(ctx, connID, frame); resp != nil {
//	    conn.Send(resp)
//	}
//
// # Client Usage
//
// The Client implements proxy.RemoteEntityService and proxy.Describer, so
// an AddressSpace can be built directly on top of it:
//
//	client, err := interaction.NewClient(conn, interaction.DefaultClientConfig())
//	space, err := proxy.NewAddressSpace(client, cfg)
//
//	// The connection's read loop feeds responses back
//	client.HandleFrame(frame)
//
// Failures follow the proxy error taxonomy: a bad response status is a
// *proxy.ServiceError, while a send failure, a timeout or a closed client is
// a *proxy.TransportError. A browse answered with Bad_NoMatch reports an
// absent child, not an error. Every request runs in an OpenTelemetry client
// span.
package interaction
