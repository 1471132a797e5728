package proxy

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

const testNS = "http://example/"

var (
	boilerRef = model.StringRef(testNS, "Boiler1")

	levelKey = model.AttributeKey{
		NamespaceURI: testNS,
		Name:         "Level",
		DataType:     model.DataTypeFloat64,
		ValueRank:    model.ValueRankScalar,
		Access:       model.AccessReadWrite,
	}
	tagsKey = model.AttributeKey{
		NamespaceURI: testNS,
		Name:         "Tags",
		DataType:     model.DataTypeString,
		ValueRank:    model.ValueRankOneDimension,
		Access:       model.AccessRead,
	}
	serviceLevelKey = model.AttributeKey{
		NamespaceURI: model.NamespaceStandard,
		Name:         "ServiceLevel",
		DataType:     model.DataTypeUint8,
		ValueRank:    model.ValueRankScalar,
		Access:       model.AccessRead,
	}
)

// mockService is a RemoteEntityService driven by testify expectations.
type mockService struct {
	mock.Mock
}

func (m *mockService) ReadAttribute(ctx context.Context, ref model.EntityRef, key model.AttributeKey) (any, error) {
	args := m.Called(ctx, ref, key)
	return args.Get(0), args.Error(1)
}

func (m *mockService) WriteAttribute(ctx context.Context, ref model.EntityRef, key model.AttributeKey, value any) (wire.Status, error) {
	args := m.Called(ctx, ref, key, value)
	return args.Get(0).(wire.Status), args.Error(1)
}

func (m *mockService) BrowseChild(ctx context.Context, ref model.EntityRef, sel model.ChildSelector) (BrowseResult, bool, error) {
	args := m.Called(ctx, ref, sel)
	return args.Get(0).(BrowseResult), args.Bool(1), args.Error(2)
}

// describingService adds Describe to mockService.
type describingService struct {
	mockService
}

func (m *describingService) Describe(ctx context.Context, ref model.EntityRef) (BrowseResult, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(BrowseResult), args.Error(1)
}

// gatedCall is one pending call on a gatedService. The test answers it by
// sending on reply.
type gatedCall struct {
	op    string
	key   model.AttributeKey
	sel   model.ChildSelector
	value any
	reply chan gatedReply
}

type gatedReply struct {
	value  any
	status wire.Status
	result BrowseResult
	found  bool
	err    error
}

// gatedService blocks every call until the test replies, which lets tests
// choose the completion order of concurrent operations.
type gatedService struct {
	calls chan *gatedCall
}

func newGatedService() *gatedService {
	return &gatedService{calls: make(chan *gatedCall, 16)}
}

func (g *gatedService) wait(ctx context.Context, c *gatedCall) (gatedReply, error) {
	g.calls <- c
	select {
	case r := <-c.reply:
		return r, r.err
	case <-ctx.Done():
		return gatedReply{}, ctx.Err()
	}
}

func (g *gatedService) ReadAttribute(ctx context.Context, _ model.EntityRef, key model.AttributeKey) (any, error) {
	r, err := g.wait(ctx, &gatedCall{op: "read", key: key, reply: make(chan gatedReply, 1)})
	return r.value, err
}

func (g *gatedService) WriteAttribute(ctx context.Context, _ model.EntityRef, key model.AttributeKey, value any) (wire.Status, error) {
	r, err := g.wait(ctx, &gatedCall{op: "write", key: key, value: value, reply: make(chan gatedReply, 1)})
	return r.status, err
}

func (g *gatedService) BrowseChild(ctx context.Context, _ model.EntityRef, sel model.ChildSelector) (BrowseResult, bool, error) {
	r, err := g.wait(ctx, &gatedCall{op: "browse", sel: sel, reply: make(chan gatedReply, 1)})
	return r.result, r.found, err
}

// next returns the next call that reached the service.
func (g *gatedService) next(t *testing.T) *gatedCall {
	t.Helper()
	select {
	case c := <-g.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a service call")
		return nil
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.DiscardHandler)
	return cfg
}

func newTestSpace(t *testing.T, svc RemoteEntityService) *AddressSpace {
	t.Helper()
	s, err := NewAddressSpace(svc, testConfig())
	require.NoError(t, err)
	return s
}

func newTestNode(t *testing.T, svc RemoteEntityService) *Node {
	t.Helper()
	s := newTestSpace(t, svc)
	return s.NewNode(boilerRef, model.EntityRef{}, model.BaseAttributes{
		NodeClass:   model.NodeClassObject,
		BrowseName:  model.QualifiedName{Namespace: testNS, Name: "Boiler1"},
		DisplayName: "Boiler 1",
	}).ProxyNode()
}

// waitDone fails the test if f does not complete in time.
func waitDone[T any](t *testing.T, f *Future[T]) (T, error) {
	t.Helper()
	select {
	case <-f.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("future did not complete")
	}
	return f.Result()
}
