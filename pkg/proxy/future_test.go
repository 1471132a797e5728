package proxy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

func TestFutureCompletedAndFailed(t *testing.T) {
	v, err := Await(context.Background(), Completed(3))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	boom := errors.New("boom")
	_, err = Await(context.Background(), Failed[int](boom))
	var ue *UnexpectedError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, boom)
}

func TestFutureCompletesOnce(t *testing.T) {
	f := newFuture[int](nil)
	assert.True(t, f.complete(1, nil))
	assert.False(t, f.complete(2, nil))

	v, err := f.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestAwaitUnwrapping(t *testing.T) {
	se := &ServiceError{Op: "read", Status: wire.StatusBadNodeIDUnknown}
	te := &TransportError{Op: "read", Status: wire.StatusBadConnectionClosed}
	ue := &UnexpectedError{Err: errors.New("broken")}

	tests := []struct {
		name   string
		err    error
		same   error
		status wire.Status
	}{
		{"service error", se, se, wire.StatusBadNodeIDUnknown},
		{"wrapped service error", fmt.Errorf("layer: %w", se), se, wire.StatusBadNodeIDUnknown},
		{"transport error", te, te, wire.StatusBadConnectionClosed},
		{"unexpected error", ue, ue, wire.StatusBadUnexpectedError},
		{"plain error", errors.New("plain"), nil, wire.StatusBadUnexpectedError},
		{"cancelled", context.Canceled, nil, wire.StatusBadUnexpectedError},
		{"deadline", context.DeadlineExceeded, nil, wire.StatusBadTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Await(context.Background(), Failed[any](tt.err))
			require.Error(t, err)
			if tt.same != nil {
				assert.Same(t, tt.same, err)
			}
			status, ok := StatusOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.status, status)
		})
	}

	t.Run("invalid shape passes through", func(t *testing.T) {
		shapeErr := fmt.Errorf("%w: test", model.ErrInvalidShape)
		_, err := Await(context.Background(), Failed[any](shapeErr))
		assert.Equal(t, shapeErr, err)
		_, ok := StatusOf(err)
		assert.False(t, ok)
	})
}

func TestGoAsyncPanic(t *testing.T) {
	svc := new(mockService)
	svc.On("ReadAttribute", mock.Anything, boilerRef, levelKey).
		Run(func(mock.Arguments) { panic("service exploded") }).
		Return(nil, nil)
	n := newTestNode(t, svc)

	_, err := AttributeOf[float64](n, levelKey).Read(context.Background())
	var ue *UnexpectedError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, err.Error(), "service exploded")

	_, ok := AttributeOf[float64](n, levelKey).Get()
	assert.False(t, ok)
}

func TestGoAsyncIncomplete(t *testing.T) {
	f := goAsync(context.Background(), func(context.Context, *Future[int]) {})
	_, err := waitDone(t, f)
	assert.ErrorIs(t, err, errNotCompleted)
}

func TestThen(t *testing.T) {
	t.Run("maps value", func(t *testing.T) {
		f := Then(Completed(2), func(v int) (string, error) { return fmt.Sprint(v * 2), nil })
		v, err := Await(context.Background(), f)
		require.NoError(t, err)
		assert.Equal(t, "4", v)
	})

	t.Run("skips fn on failure", func(t *testing.T) {
		called := false
		te := &TransportError{Op: "read", Status: wire.StatusBadTimeout}
		f := Then(Failed[int](te), func(int) (int, error) {
			called = true
			return 0, nil
		})
		_, err := Await(context.Background(), f)
		assert.Same(t, te, err)
		assert.False(t, called)
	})

	t.Run("recovers panic", func(t *testing.T) {
		f := Then(Completed(1), func(int) (int, error) { panic("bad mapper") })
		_, err := Await(context.Background(), f)
		var ue *UnexpectedError
		assert.ErrorAs(t, err, &ue)
	})

	t.Run("cancel propagates", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		src := goAsync(ctx, func(ctx context.Context, f *Future[int]) {
			<-ctx.Done()
			f.complete(0, ctx.Err())
		})
		out := Then(src, func(v int) (int, error) { return v, nil })
		out.Cancel()

		_, err := waitDone(t, src)
		assert.ErrorIs(t, err, context.Canceled)
		_, err = waitDone(t, out)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&TransportError{Status: wire.StatusBadTimeout}))
	assert.False(t, IsTransient(&ServiceError{Status: wire.StatusBadNotWritable}))
	assert.False(t, IsTransient(errors.New("other")))
}
