package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// parseValue converts command input to the Go type the key declares. Keys
// without a concrete DataType borrow the type of sample, the last known
// value; with no sample the input is kept as a string. Array keys take a
// comma-separated list.
func parseValue(s string, key model.AttributeKey, sample any) (any, error) {
	dt := key.DataType
	if dt == model.DataTypeAny || dt == model.DataTypeUnknown {
		dt = dataTypeOf(sample)
	}

	if isArray(key, sample) {
		fields := strings.Split(s, ",")
		out := make([]any, len(fields))
		for i, f := range fields {
			v, err := parseScalar(strings.TrimSpace(f), dt)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	}
	return parseScalar(s, dt)
}

func isArray(key model.AttributeKey, sample any) bool {
	if key.ValueRank >= model.ValueRankOneDimension {
		return true
	}
	if key.ValueRank != model.ValueRankAny && key.ValueRank != model.ValueRankScalarOrOneDimension {
		return false
	}
	if sample == nil {
		return false
	}
	k := reflect.TypeOf(sample).Kind()
	_, isBytes := sample.([]byte)
	return (k == reflect.Slice || k == reflect.Array) && !isBytes
}

func parseScalar(s string, dt model.DataType) (any, error) {
	switch dt {
	case model.DataTypeBool:
		return strconv.ParseBool(s)
	case model.DataTypeInt8:
		n, err := strconv.ParseInt(s, 0, 8)
		return int8(n), err
	case model.DataTypeInt16:
		n, err := strconv.ParseInt(s, 0, 16)
		return int16(n), err
	case model.DataTypeInt32:
		n, err := strconv.ParseInt(s, 0, 32)
		return int32(n), err
	case model.DataTypeInt64:
		return strconv.ParseInt(s, 0, 64)
	case model.DataTypeUint8:
		n, err := strconv.ParseUint(s, 0, 8)
		return uint8(n), err
	case model.DataTypeUint16:
		n, err := strconv.ParseUint(s, 0, 16)
		return uint16(n), err
	case model.DataTypeUint32, model.DataTypeStatus:
		n, err := strconv.ParseUint(s, 0, 32)
		return uint32(n), err
	case model.DataTypeUint64:
		return strconv.ParseUint(s, 0, 64)
	case model.DataTypeFloat32:
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	case model.DataTypeFloat64:
		return strconv.ParseFloat(s, 64)
	case model.DataTypeTime:
		if s == "now" {
			return time.Now().UTC(), nil
		}
		return time.Parse(time.RFC3339, s)
	case model.DataTypeBytes:
		return []byte(s), nil
	case model.DataTypeRef:
		return model.ParseRef(s)
	case model.DataTypeString, model.DataTypeAny, model.DataTypeUnknown:
		return unquote(s), nil
	}
	return nil, fmt.Errorf("cannot enter %s values", dt)
}

// dataTypeOf infers a DataType from a decoded value. Slices report their
// element type.
func dataTypeOf(v any) model.DataType {
	switch t := v.(type) {
	case nil:
		return model.DataTypeString
	case bool:
		return model.DataTypeBool
	case int8:
		return model.DataTypeInt8
	case int16:
		return model.DataTypeInt16
	case int32:
		return model.DataTypeInt32
	case int64, int:
		return model.DataTypeInt64
	case uint8:
		return model.DataTypeUint8
	case uint16:
		return model.DataTypeUint16
	case uint32:
		return model.DataTypeUint32
	case uint64:
		return model.DataTypeUint64
	case float32:
		return model.DataTypeFloat32
	case float64:
		return model.DataTypeFloat64
	case time.Time:
		return model.DataTypeTime
	case []byte:
		return model.DataTypeBytes
	case model.EntityRef:
		return model.DataTypeRef
	case []any:
		if len(t) > 0 {
			return dataTypeOf(t[0])
		}
		return model.DataTypeString
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Len() > 0 {
		return dataTypeOf(rv.Index(0).Interface())
	}
	return model.DataTypeString
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}

// formatValue renders a value for display.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "<null>"
	case string:
		return strconv.Quote(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case []byte:
		return fmt.Sprintf("0x%x", t)
	case fmt.Stringer:
		return t.String()
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("%v", v)
}
