package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nodeproxy/nodeproxy-go/pkg/log"
)

// RunExport exports the log file as JSON lines or CSV to output, or to
// stdout when output is empty.
func RunExport(path, format, output string) error {
	var export func(string, io.Writer) error
	switch format {
	case "jsonl":
		export = exportJSONL
	case "csv":
		export = exportCSV
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	if output == "" {
		return export(path, os.Stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export(path, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportJSONL(path string, w io.Writer) error {
	encoder := json.NewEncoder(w)
	return eachEvent(path, log.Filter{}, func(event log.Event) error {
		if event.Message != nil && event.Message.Payload != nil {
			msg := *event.Message
			msg.Payload = jsonValue(msg.Payload)
			event.Message = &msg
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

func exportCSV(path string, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "connection_id", "direction", "layer", "category", "type", "message_id", "operation", "target", "status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	err := eachEvent(path, log.Filter{}, func(event log.Event) error {
		var msgID, op, target, status string
		if m := event.Message; m != nil {
			msgID = strconv.FormatUint(uint64(m.MessageID), 10)
			target = m.Target
			if m.Operation != nil {
				op = m.Operation.String()
			}
			if m.Status != nil {
				status = m.Status.String()
			}
		}
		row := []string{
			event.Timestamp.UTC().Format(timestampLayout),
			event.ConnectionID,
			event.Direction.String(),
			event.Layer.String(),
			event.Category.String(),
			eventLabel(event),
			msgID,
			op,
			target,
			status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
