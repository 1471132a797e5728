package commands

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Operations        map[wire.Operation]*OperationStats
	Connections       map[string]*ConnectionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// OperationStats aggregates the requests of one operation. Responses are
// attributed through their message ID within the same connection.
type OperationStats struct {
	Requests       int
	Responses      int
	BadStatuses    int
	TotalProcessed time.Duration
	timed          int
}

// AverageProcessing returns the mean server processing time, or zero when
// no response carried one.
func (s *OperationStats) AverageProcessing() time.Duration {
	if s.timed == 0 {
		return 0
	}
	return s.TotalProcessed / time.Duration(s.timed)
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	RemoteAddr string
	LastState  string
}

type requestKey struct {
	connID string
	msgID  uint32
}

// CollectStats aggregates every event of the log file.
func CollectStats(path string) (*Stats, error) {
	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Operations:        make(map[wire.Operation]*OperationStats),
		Connections:       make(map[string]*ConnectionStats),
	}
	pending := make(map[requestKey]wire.Operation)

	err := eachEvent(path, log.Filter{}, func(event log.Event) error {
		stats.add(event, pending)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Stats) add(event log.Event, pending map[requestKey]wire.Operation) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if conn.RemoteAddr == "" {
		conn.RemoteAddr = event.RemoteAddr
	}
	if event.StateChange != nil {
		conn.LastState = event.StateChange.NewState
	}
	if event.Error != nil {
		s.Errors++
	}

	msg := event.Message
	if msg == nil {
		return
	}
	key := requestKey{event.ConnectionID, msg.MessageID}
	switch msg.Type {
	case log.MessageTypeRequest:
		if msg.Operation == nil {
			return
		}
		s.operation(*msg.Operation).Requests++
		pending[key] = *msg.Operation
	case log.MessageTypeResponse:
		op, ok := pending[key]
		if !ok {
			return
		}
		delete(pending, key)
		ops := s.operation(op)
		ops.Responses++
		if msg.Status != nil && msg.Status.IsBad() {
			ops.BadStatuses++
		}
		if msg.ProcessingTime != nil {
			ops.TotalProcessed += *msg.ProcessingTime
			ops.timed++
		}
	}
}

func (s *Stats) operation(op wire.Operation) *OperationStats {
	ops, ok := s.Operations[op]
	if !ok {
		ops = &OperationStats{}
		s.Operations[op] = ops
	}
	return ops
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Node Proxy Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerTransport, log.LayerWire, log.LayerService} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Operations) > 0 {
		fmt.Fprintln(w, "Operations:")
		for op := wire.OpRead; op.IsValid(); op++ {
			ops, ok := stats.Operations[op]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-12s %d requests, %d responses, %d bad",
				op.String()+":", ops.Requests, ops.Responses, ops.BadStatuses)
			if avg := ops.AverageProcessing(); avg > 0 {
				fmt.Fprintf(w, ", avg %s", formatDuration(avg))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	ids := make([]string, 0, len(stats.Connections))
	for id := range stats.Connections {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return stats.Connections[a].FirstSeen.Compare(stats.Connections[b].FirstSeen)
	})
	for _, id := range ids {
		c := stats.Connections[id]
		duration := c.LastSeen.Sub(c.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(id), c.Events, duration)
		if c.RemoteAddr != "" {
			fmt.Fprintf(w, "           Remote: %s\n", c.RemoteAddr)
		}
		if c.LastState != "" {
			fmt.Fprintf(w, "           Last state: %s\n", c.LastState)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
