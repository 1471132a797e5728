package main

import (
	"reflect"
	"testing"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

func TestParseValue(t *testing.T) {
	scalar := func(dt model.DataType) model.AttributeKey {
		return model.AttributeKey{Name: "x", DataType: dt, ValueRank: model.ValueRankScalar}
	}
	anyKey := model.AttributeKey{Name: "x", DataType: model.DataTypeAny, ValueRank: model.ValueRankAny}

	tests := []struct {
		name    string
		input   string
		key     model.AttributeKey
		sample  any
		want    any
		wantErr bool
	}{
		{"bool", "true", scalar(model.DataTypeBool), nil, true, false},
		{"uint8", "200", scalar(model.DataTypeUint8), nil, uint8(200), false},
		{"uint8 overflow", "300", scalar(model.DataTypeUint8), nil, nil, true},
		{"int32 hex", "0x10", scalar(model.DataTypeInt32), nil, int32(16), false},
		{"float64", "1.5", scalar(model.DataTypeFloat64), nil, 1.5, false},
		{"quoted string", `"a b"`, scalar(model.DataTypeString), nil, "a b", false},
		{"ref", "i=2253", scalar(model.DataTypeRef), nil, model.StandardRef(2253), false},
		{"any from sample", "42", anyKey, uint16(7), uint16(42), false},
		{"any without sample", "hello", anyKey, nil, "hello", false},
		{
			"string array",
			"a, b",
			model.AttributeKey{Name: "x", DataType: model.DataTypeString, ValueRank: model.ValueRankOneDimension},
			nil,
			[]any{"a", "b"},
			false,
		},
		{"any array from sample", "1,2", anyKey, []any{uint64(5)}, []any{uint64(1), uint64(2)}, false},
		{"bad bool", "maybe", scalar(model.DataTypeBool), nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(tt.input, tt.key, tt.sample)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	key := model.AttributeKey{Name: "t", DataType: model.DataTypeTime, ValueRank: model.ValueRankScalar}
	got, err := parseValue("2026-03-01T12:00:00Z", key, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if ts, ok := got.(time.Time); !ok || !ts.Equal(want) {
		t.Errorf("parseValue() = %v, want %v", got, want)
	}

	got, err = parseValue("now", key, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(time.Time); !ok {
		t.Errorf("now = %T", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "<null>"},
		{"x", `"x"`},
		{uint64(200), "200"},
		{[]any{"a", uint64(1)}, `["a", 1]`},
		{[]byte{0xca, 0xfe}, "0xcafe"},
		{model.StandardRef(85), model.StandardRef(85).String()},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
