package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

var serviceLevelKey = model.AttributeKey{
	NamespaceURI: model.NamespaceStandard,
	Name:         "ServiceLevel",
	ID:           2267,
	DataType:     model.DataTypeUint8,
	ValueRank:    model.ValueRankScalar,
	Access:       model.AccessRead,
}

func TestRequestRoundTrip(t *testing.T) {
	server := model.StandardRef(2253)

	tests := []struct {
		name    string
		op      Operation
		payload any
		check   func(t *testing.T, req *Request)
	}{
		{
			name:    "read request",
			op:      OpRead,
			payload: ReadPayload{Key: serviceLevelKey},
			check: func(t *testing.T, req *Request) {
				var p ReadPayload
				require.NoError(t, req.DecodePayload(&p))
				assert.Equal(t, serviceLevelKey, p.Key)
			},
		},
		{
			name:    "write request",
			op:      OpWrite,
			payload: WritePayload{Key: serviceLevelKey, Value: uint8(200)},
			check: func(t *testing.T, req *Request) {
				var p WritePayload
				require.NoError(t, req.DecodePayload(&p))
				assert.Equal(t, serviceLevelKey, p.Key)
				assert.Equal(t, uint64(200), p.Value)
			},
		},
		{
			name:    "browse request",
			op:      OpBrowse,
			payload: BrowsePayload{Selector: model.Selector("http://example/", "Diagnostics")},
			check: func(t *testing.T, req *Request) {
				var p BrowsePayload
				require.NoError(t, req.DecodePayload(&p))
				assert.Equal(t, model.Selector("http://example/", "Diagnostics"), p.Selector)
			},
		},
		{
			name: "describe request",
			op:   OpDescribe,
			check: func(t *testing.T, req *Request) {
				assert.ErrorIs(t, req.DecodePayload(&struct{}{}), ErrNoPayload)
			},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(uint32(i+1), tt.op, server, tt.payload)
			require.NoError(t, err)

			data, err := EncodeRequest(req)
			require.NoError(t, err)

			decoded, err := DecodeRequest(data)
			require.NoError(t, err)

			assert.Equal(t, uint32(i+1), decoded.MessageID)
			assert.Equal(t, tt.op, decoded.Operation)
			assert.Equal(t, server, decoded.Target)
			tt.check(t, decoded)
		})
	}
}

func TestResponseRoundTrip(t *testing.T) {
	t.Run("description", func(t *testing.T) {
		desc := NodeDescription{
			Ref:            model.StringRef("http://example/", "Boiler1"),
			TypeDefinition: model.StandardRef(58),
			Base: model.BaseAttributes{
				NodeClass:   model.NodeClassObject,
				BrowseName:  model.QualifiedName{Namespace: "http://example/", Name: "Boiler1"},
				DisplayName: "Boiler 1",
			},
		}
		resp, err := NewResponse(7, StatusGood, desc)
		require.NoError(t, err)

		data, err := EncodeResponse(resp)
		require.NoError(t, err)

		decoded, err := DecodeResponse(data)
		require.NoError(t, err)
		assert.True(t, decoded.IsSuccess())

		var got NodeDescription
		require.NoError(t, decoded.DecodePayload(&got))
		assert.Equal(t, desc, got)
	})

	t.Run("error", func(t *testing.T) {
		data, err := EncodeResponse(ErrorResponse(8, StatusBadNodeIDUnknown, "no such node"))
		require.NoError(t, err)

		decoded, err := DecodeResponse(data)
		require.NoError(t, err)
		assert.False(t, decoded.IsSuccess())
		assert.Equal(t, StatusBadNodeIDUnknown, decoded.Status)
		assert.Equal(t, "no such node", decoded.Message)
		assert.ErrorIs(t, decoded.DecodePayload(&ReadResponsePayload{}), ErrNoPayload)
	})

	t.Run("null value", func(t *testing.T) {
		resp, err := NewResponse(9, StatusGood, ReadResponsePayload{Value: nil})
		require.NoError(t, err)

		data, err := EncodeResponse(resp)
		require.NoError(t, err)
		decoded, err := DecodeResponse(data)
		require.NoError(t, err)

		var got ReadResponsePayload
		require.NoError(t, decoded.DecodePayload(&got))
		assert.Nil(t, got.Value)
	})
}

func TestRequestValidation(t *testing.T) {
	target := model.StandardRef(2253)

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"reserved id", Request{MessageID: 0, Operation: OpRead, Target: target}, ErrReservedMessageID},
		{"bad operation", Request{MessageID: 1, Operation: 9, Target: target}, ErrInvalidOperation},
		{"no target", Request{MessageID: 1, Operation: OpRead}, ErrMissingTarget},
		{"valid", Request{MessageID: 1, Operation: OpDescribe, Target: target}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)

			_, err = EncodeRequest(&tt.req)
			assert.Error(t, err)
		})
	}
}

func TestPeekMessageID(t *testing.T) {
	data, err := EncodeResponse(ErrorResponse(42, StatusBadTimeout, ""))
	require.NoError(t, err)

	id, err := PeekMessageID(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)

	_, err = PeekMessageID([]byte{0xff})
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	t.Run("same type", func(t *testing.T) {
		v, err := Convert[uint8](uint8(3))
		require.NoError(t, err)
		assert.Equal(t, uint8(3), v)
	})

	t.Run("narrowing", func(t *testing.T) {
		v, err := Convert[uint8](uint64(200))
		require.NoError(t, err)
		assert.Equal(t, uint8(200), v)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := Convert[uint8](uint64(300))
		assert.Error(t, err)
	})

	t.Run("slice", func(t *testing.T) {
		v, err := Convert[[]string]([]any{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)
	})

	t.Run("struct from map", func(t *testing.T) {
		raw := map[any]any{uint64(1): "http://example/", uint64(2): "Level"}
		v, err := Convert[model.QualifiedName](raw)
		require.NoError(t, err)
		assert.Equal(t, model.QualifiedName{Namespace: "http://example/", Name: "Level"}, v)
	})

	t.Run("nil", func(t *testing.T) {
		v, err := Convert[int32](nil)
		require.NoError(t, err)
		assert.Equal(t, int32(0), v)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := Convert[bool]("yes")
		assert.Error(t, err)
	})
}

func TestTimeValues(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 30, 0, 123000000, time.UTC)

	data, err := Marshal(ReadResponsePayload{Value: now})
	require.NoError(t, err)

	var got ReadResponsePayload
	require.NoError(t, Unmarshal(data, &got))

	ts, ok := got.Value.(time.Time)
	require.True(t, ok, "expected time.Time, got %T", got.Value)
	assert.True(t, now.Equal(ts))
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusGood.IsGood())
	assert.True(t, StatusGood.IsSuccess())
	assert.False(t, StatusGood.IsBad())

	assert.True(t, StatusBadUnexpectedError.IsBad())
	assert.False(t, StatusBadUnexpectedError.IsSuccess())
	assert.Equal(t, Status(0x80010000), StatusBadUnexpectedError)
	assert.Equal(t, "Bad_UnexpectedError", StatusBadUnexpectedError.String())

	uncertain := Status(0x40000000)
	assert.True(t, uncertain.IsUncertain())
	assert.True(t, uncertain.IsSuccess())
	assert.Equal(t, "0x40000000", uncertain.String())
}
