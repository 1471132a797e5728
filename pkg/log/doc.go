// Package log records the protocol traffic between a proxy and its server.
//
// It is independent of operational logging with slog: an Event is a
// machine-readable record of one thing that happened on a connection, so a
// session can be replayed and inspected after the fact.
//
// Three layers emit events:
//   - transport: every length-prefixed frame (FrameEvent) and connection
//     state transition (StateChangeEvent)
//   - wire: decoded requests and responses (MessageEvent), plus frames that
//     failed to decode (ErrorEventData)
//   - service: proxy sessions starting and ending on a connection
//
// Components accept a Logger and treat nil as "off":
//
//	file, err := log.NewFileLogger("shell.nplog")
//	...
//	events := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), file)
//	client, err := interaction.NewClient(conn, interaction.ClientConfig{EventLogger: events})
//	defer events.Close()
//
// # Files
//
// A protocol log is a bare sequence of CBOR-encoded events with integer
// map keys, conventionally named *.nplog. Reader streams a log back with an
// optional Filter; the nodeproxy-log command views, filters, exports and
// summarizes them.
package log
