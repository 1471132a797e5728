package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// FilterOptions holds the raw filter flags shared by view and filter.
type FilterOptions struct {
	ConnID    string
	Since     string
	Until     string
	Layer     string
	Direction string
	Category  string
	Operation string
	Target    string
}

// Build parses the options into a log.Filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{ConnectionID: o.ConnID}

	if o.Since != "" {
		t, err := time.Parse(time.RFC3339, o.Since)
		if err != nil {
			return filter, fmt.Errorf("invalid since time: %w", err)
		}
		filter.Since = &t
	}
	if o.Until != "" {
		t, err := time.Parse(time.RFC3339, o.Until)
		if err != nil {
			return filter, fmt.Errorf("invalid until time: %w", err)
		}
		filter.Until = &t
	}
	if o.Layer != "" {
		l, err := ParseLayerFlag(o.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if o.Direction != "" {
		d, err := ParseDirectionFlag(o.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	if o.Operation != "" {
		op, err := ParseOperationFlag(o.Operation)
		if err != nil {
			return filter, err
		}
		filter.Operation = &op
	}
	if o.Target != "" {
		// Normalize so "i=2253" and "nsu=...;i=2253" select the same entity.
		ref, err := model.ParseRef(o.Target)
		if err != nil {
			return filter, fmt.Errorf("invalid target: %w", err)
		}
		filter.Target = ref.String()
	}
	return filter, nil
}

// RunFilter copies the events of path matching opts into a new log file at
// output and returns the number of events written.
func RunFilter(path, output string, opts FilterOptions, w io.Writer) (int, error) {
	filter, err := opts.Build()
	if err != nil {
		return 0, err
	}

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	err = eachEvent(path, filter, func(event log.Event) error {
		logger.Log(event)
		count++
		return nil
	})
	if cerr := logger.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write output: %w", cerr)
	}
	if err != nil {
		return count, err
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, output)
	return count, nil
}
