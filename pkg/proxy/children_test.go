package proxy

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

var (
	objectTypeDef = &model.TypeDefinition{
		ID:    model.StandardRef(58),
		Name:  "BaseObjectType",
		Class: model.NodeClassObject,
	}
	boilerTypeDef = &model.TypeDefinition{
		ID:         model.StringRef(testNS, "BoilerType"),
		Name:       "BoilerType",
		Class:      model.NodeClassObject,
		Parent:     objectTypeDef,
		Attributes: []model.AttributeKey{levelKey, tagsKey},
		Members: []model.Member{
			{Selector: model.Selector(testNS, "Drum"), Expected: model.StringRef(testNS, "BoilerType")},
		},
	}

	drumMember        = model.Member{Selector: model.Selector(testNS, "Drum"), Expected: boilerTypeDef.ID}
	diagnosticsMember = model.Member{Selector: model.Selector(testNS, "Diagnostics")}

	drumResult = BrowseResult{
		Ref:          model.StringRef(testNS, "Boiler1.Drum"),
		DeclaredType: boilerTypeDef.ID,
		Base: model.BaseAttributes{
			NodeClass:  model.NodeClassObject,
			BrowseName: model.QualifiedName{Namespace: testNS, Name: "Drum"},
		},
	}
)

// TestObject and TestBoiler are views shaped like generated code.
type TestObject struct{ *Node }

type TestBoiler struct{ *TestObject }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(objectTypeDef, func(n *Node) Proxy { return &TestObject{Node: n} }))
	require.NoError(t, r.Register(boilerTypeDef, func(n *Node) Proxy {
		return &TestBoiler{TestObject: &TestObject{Node: n}}
	}))
	return r
}

func newRegistryNode(t *testing.T, svc RemoteEntityService, reg prometheus.Registerer) *Node {
	t.Helper()
	cfg := testConfig()
	cfg.Registry = newTestRegistry(t)
	cfg.Registerer = reg
	s, err := NewAddressSpace(svc, cfg)
	require.NoError(t, err)
	return s.NewNode(boilerRef, boilerTypeDef.ID, model.BaseAttributes{NodeClass: model.NodeClassObject}).ProxyNode()
}

func TestChildResolution(t *testing.T) {
	t.Run("found child is cached", func(t *testing.T) {
		svc := new(mockService)
		svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(drumResult, true, nil).Once()
		n := newRegistryNode(t, svc, nil)

		first, err := n.Child(context.Background(), drumMember)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := n.Child(context.Background(), drumMember)
		require.NoError(t, err)
		assert.Same(t, first, second)
		svc.AssertNumberOfCalls(t, "BrowseChild", 1)

		boiler, ok := first.(*TestBoiler)
		require.True(t, ok, "got %T", first)
		assert.Equal(t, drumResult.Ref, boiler.Ref())
		assert.Equal(t, "Drum", boiler.BrowseName().Name)
		assert.Same(t, boilerTypeDef, boiler.TypeDefinition())
	})

	t.Run("absence is cached", func(t *testing.T) {
		svc := new(mockService)
		svc.On("BrowseChild", mock.Anything, boilerRef, diagnosticsMember.Selector).Return(BrowseResult{}, false, nil).Once()
		n := newTestNode(t, svc)

		for range 2 {
			p, err := n.Child(context.Background(), diagnosticsMember)
			require.NoError(t, err)
			assert.Nil(t, p)
		}
		svc.AssertNumberOfCalls(t, "BrowseChild", 1)

		p, ok := n.CachedChild(diagnosticsMember.Selector)
		assert.True(t, ok)
		assert.Nil(t, p)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		te := &TransportError{Op: "browse", Status: wire.StatusBadConnectionClosed}
		svc := new(mockService)
		svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(BrowseResult{}, false, te).Once()
		svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(drumResult, true, nil).Once()
		n := newRegistryNode(t, svc, nil)

		_, err := n.Child(context.Background(), drumMember)
		assert.Same(t, te, err)
		_, ok := n.CachedChild(drumMember.Selector)
		assert.False(t, ok)

		p, err := n.Child(context.Background(), drumMember)
		require.NoError(t, err)
		assert.NotNil(t, p)
		svc.AssertNumberOfCalls(t, "BrowseChild", 2)
	})

	t.Run("browse uses declared member", func(t *testing.T) {
		unknown := drumResult
		unknown.DeclaredType = model.StringRef(testNS, "VendorDrumType")
		svc := new(mockService)
		svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(unknown, true, nil).Once()
		n := newRegistryNode(t, svc, nil)

		p, err := n.Browse(context.Background(), drumMember.Selector)
		require.NoError(t, err)
		_, ok := p.(*TestBoiler)
		assert.True(t, ok, "expected the member's type, got %T", p)
	})
}

func TestChildConcurrentLookups(t *testing.T) {
	svc := new(mockService)
	svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).
		Run(func(mock.Arguments) { time.Sleep(20 * time.Millisecond) }).
		Return(drumResult, true, nil)
	n := newRegistryNode(t, svc, nil)

	const callers = 8
	results := make([]Proxy, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := n.Child(context.Background(), drumMember)
			assert.NoError(t, err)
			results[i] = p
		}()
	}
	wg.Wait()

	require.NotNil(t, results[0])
	for _, p := range results[1:] {
		assert.Same(t, results[0], p)
	}
	assert.Equal(t, 1, n.Children().Len())
}

func TestChildLateResolveReusesEntry(t *testing.T) {
	svc := new(mockService)
	svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(drumResult, true, nil).Once()
	n := newRegistryNode(t, svc, nil)

	first, err := n.Child(context.Background(), drumMember)
	require.NoError(t, err)

	// A caller that missed the cache before the first browse stored its
	// result starts a flight of its own.
	late, err := n.children.resolve(context.Background(), n, drumMember)
	require.NoError(t, err)
	assert.Same(t, first, late)
	svc.AssertNumberOfCalls(t, "BrowseChild", 1)
}

func TestChildLeaderCancelled(t *testing.T) {
	svc := newGatedService()
	n := newTestNode(t, svc)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leader := n.ChildAsync(leaderCtx, drumMember)
	first := svc.next(t)
	assert.Equal(t, "browse", first.op)

	follower := n.ChildAsync(context.Background(), drumMember)
	cancel()

	retry := svc.next(t)
	retry.reply <- gatedReply{result: drumResult, found: true}

	p, err := waitDone(t, follower)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, drumResult.Ref, p.ProxyNode().Ref())

	_, err = waitDone(t, leader)
	assert.Error(t, err)
}

func TestChildCancelledNotCached(t *testing.T) {
	svc := newGatedService()
	n := newTestNode(t, svc)

	f := n.ChildAsync(context.Background(), drumMember)
	c := svc.next(t)
	f.Cancel()
	c.reply <- gatedReply{result: drumResult, found: true}

	_, err := waitDone(t, f)
	require.Error(t, err)
	_, ok := n.CachedChild(drumMember.Selector)
	assert.False(t, ok)
}

func TestChildStoreIfAbsent(t *testing.T) {
	c := NewChildCache()
	sel := drumMember.Selector
	winner := &TestObject{}
	loser := &TestObject{}

	got, err := c.storeIfAbsent(context.Background(), sel, winner)
	require.NoError(t, err)
	assert.Same(t, winner, got)

	got, err = c.storeIfAbsent(context.Background(), sel, loser)
	require.NoError(t, err)
	assert.Same(t, winner, got, "a late writer receives the cached instance")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.storeIfAbsent(ctx, diagnosticsMember.Selector, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, c.Len())
}

func TestChildOf(t *testing.T) {
	svc := new(mockService)
	svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(drumResult, true, nil).Once()
	svc.On("BrowseChild", mock.Anything, boilerRef, diagnosticsMember.Selector).Return(BrowseResult{}, false, nil).Once()
	n := newRegistryNode(t, svc, nil)
	ctx := context.Background()

	t.Run("exact view", func(t *testing.T) {
		b, err := ChildOf[*TestBoiler](ctx, n, drumMember)
		require.NoError(t, err)
		require.NotNil(t, b)
	})

	t.Run("ancestor view", func(t *testing.T) {
		o, err := ChildOf[*TestObject](ctx, n, drumMember)
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, drumResult.Ref, o.Ref())

		g, err := ChildOf[*Node](ctx, n, drumMember)
		require.NoError(t, err)
		assert.Same(t, o.Node, g)
	})

	t.Run("missing child", func(t *testing.T) {
		b, err := ChildOf[*TestBoiler](ctx, n, diagnosticsMember)
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	svc.AssertNumberOfCalls(t, "BrowseChild", 2)
}

func TestChildOfMismatch(t *testing.T) {
	objectResult := drumResult
	objectResult.DeclaredType = objectTypeDef.ID
	svc := new(mockService)
	svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(objectResult, true, nil).Once()
	n := newRegistryNode(t, svc, nil)

	_, err := ChildOf[*TestBoiler](context.Background(), n, drumMember)
	var ue *UnexpectedError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestChildMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := new(mockService)
	svc.On("BrowseChild", mock.Anything, boilerRef, drumMember.Selector).Return(drumResult, true, nil).Once()
	n := newRegistryNode(t, svc, reg)

	for range 3 {
		_, err := n.Child(context.Background(), drumMember)
		require.NoError(t, err)
	}

	m := n.Space().metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(m.childMisses))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.childHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteCalls.WithLabelValues("browse", "good")))
}
