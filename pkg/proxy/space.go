package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
	"github.com/nodeproxy/nodeproxy-go/pkg/wire"
)

// Config configures an AddressSpace.
type Config struct {
	// Registry maps declared types to views. Nil means an empty registry,
	// in which case every proxy is a generic *Node.
	Registry *Registry

	// Registerer receives the proxy metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer

	// MetricLabels are attached to every metric as constant labels.
	MetricLabels prometheus.Labels

	// Logger receives debug output for remote calls. Nil means slog.Default().
	Logger *slog.Logger

	// RefreshConcurrency bounds the reads issued in parallel by Refresh.
	RefreshConcurrency int

	// NodeCacheSize caps the proxies kept for Node lookups. The least
	// recently used entry is dropped first.
	NodeCacheSize int

	// NodeCacheTTL is how long a proxy returned by Node stays cached after
	// it was described.
	NodeCacheTTL time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RefreshConcurrency: 8,
		NodeCacheSize:      1024,
		NodeCacheTTL:       2 * time.Minute,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.RefreshConcurrency < 1 {
		return fmt.Errorf("%w: refresh concurrency must be at least 1, got %d", ErrInvalidConfig, c.RefreshConcurrency)
	}
	if c.NodeCacheSize < 1 {
		return fmt.Errorf("%w: node cache size must be at least 1, got %d", ErrInvalidConfig, c.NodeCacheSize)
	}
	if c.NodeCacheTTL <= 0 {
		return fmt.Errorf("%w: node cache TTL must be positive, got %v", ErrInvalidConfig, c.NodeCacheTTL)
	}
	return nil
}

// cachedNode is a Node lookup result and the time it stops being served.
type cachedNode struct {
	proxy   Proxy
	expires time.Time
}

// AddressSpace owns what the proxies of one connection share: the remote
// service, the type registry, metrics and the logger. Proxies never close
// the service.
type AddressSpace struct {
	service  RemoteEntityService
	registry *Registry
	metrics  *proxyMetrics
	logger   *slog.Logger
	refresh  int

	// mu orders lookups and inserts on nodes so that concurrent describes
	// of one ref settle on a single instance.
	mu      sync.Mutex
	nodes   *lru.Cache[model.EntityRef, cachedNode]
	nodeTTL time.Duration
	now     func() time.Time
}

// NewAddressSpace creates an address space over service.
func NewAddressSpace(service RemoteEntityService, cfg Config) (*AddressSpace, error) {
	if service == nil {
		return nil, fmt.Errorf("%w: nil service", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metrics, err := newProxyMetrics(cfg.Registerer, cfg.MetricLabels)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nodes, err := lru.New[model.EntityRef, cachedNode](cfg.NodeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &AddressSpace{
		service:  service,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
		refresh:  cfg.RefreshConcurrency,
		nodes:    nodes,
		nodeTTL:  cfg.NodeCacheTTL,
		now:      time.Now,
	}, nil
}

// Service returns the shared remote service.
func (s *AddressSpace) Service() RemoteEntityService { return s.service }

// Registry returns the type registry.
func (s *AddressSpace) Registry() *Registry { return s.registry }

// NewNode constructs a proxy for an entity whose identity attributes are
// already known. It does not contact the service and is not cached.
func (s *AddressSpace) NewNode(ref, declared model.EntityRef, base model.BaseAttributes) Proxy {
	return s.registry.Resolve(s, declared, ref, base, model.EntityRef{})
}

// Node returns the proxy for ref, describing the entity on first use.
// Later calls return the same instance until the entry expires or is
// pushed out of the node cache.
func (s *AddressSpace) Node(ctx context.Context, ref model.EntityRef) (Proxy, error) {
	return Await(ctx, s.NodeAsync(ctx, ref))
}

// NodeAsync is the asynchronous form of Node.
func (s *AddressSpace) NodeAsync(ctx context.Context, ref model.EntityRef) *Future[Proxy] {
	s.mu.Lock()
	p, ok := s.cachedNodeLocked(ref)
	s.mu.Unlock()
	if ok {
		return Completed(p)
	}

	describer, ok := s.service.(Describer)
	if !ok {
		return Failed[Proxy](ErrDescribeUnsupported)
	}

	return goAsync(ctx, func(ctx context.Context, f *Future[Proxy]) {
		start := time.Now()
		res, err := describer.Describe(ctx, ref)
		s.metrics.observeRemote("describe", start, err)
		if err != nil {
			s.logger.Debug("describe failed", "ref", ref, "error", err)
			f.complete(nil, err)
			return
		}

		p := s.registry.Resolve(s, res.DeclaredType, res.Ref, res.Base, model.EntityRef{})

		s.mu.Lock()
		defer s.mu.Unlock()
		if err := ctx.Err(); err != nil {
			f.complete(nil, err)
			return
		}
		if existing, ok := s.cachedNodeLocked(ref); ok {
			p = existing
		} else {
			s.nodes.Add(ref, cachedNode{proxy: p, expires: s.now().Add(s.nodeTTL)})
		}
		f.complete(p, nil)
	})
}

// cachedNodeLocked returns the live node cache entry for ref, dropping it
// if it has expired. s.mu must be held.
func (s *AddressSpace) cachedNodeLocked(ref model.EntityRef) (Proxy, bool) {
	e, ok := s.nodes.Get(ref)
	if !ok {
		return nil, false
	}
	if !s.now().Before(e.expires) {
		s.nodes.Remove(ref)
		return nil, false
	}
	return e.proxy, true
}

// Refresh reads every readable attribute declared by the type of p. All
// reads run to completion; each success is cached and the first failure is
// returned.
func (s *AddressSpace) Refresh(ctx context.Context, p Proxy) error {
	n := p.ProxyNode()
	if n.typ == nil {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(s.refresh)
	for _, key := range n.typ.AllAttributes() {
		if key.Access == model.AccessWrite {
			continue
		}
		g.Go(func() error {
			_, err := Await(ctx, readAsync[any](ctx, n, key))
			return err
		})
	}
	return g.Wait()
}

func (s *AddressSpace) readRemote(ctx context.Context, ref model.EntityRef, key model.AttributeKey) (any, error) {
	start := time.Now()
	v, err := s.service.ReadAttribute(ctx, ref, key)
	s.metrics.observeRemote("read", start, err)
	if err != nil {
		s.logger.Debug("read failed", "ref", ref, "key", key, "error", err)
	}
	return v, err
}

func (s *AddressSpace) writeRemote(ctx context.Context, ref model.EntityRef, key model.AttributeKey, v any) (wire.Status, error) {
	start := time.Now()
	status, err := s.service.WriteAttribute(ctx, ref, key, v)
	if err == nil && status.IsBad() {
		err = &ServiceError{Op: "write", Status: status}
	}
	s.metrics.observeRemote("write", start, err)
	if err != nil {
		s.logger.Debug("write failed", "ref", ref, "key", key, "error", err)
	}
	return status, err
}

func (s *AddressSpace) browseRemote(ctx context.Context, ref model.EntityRef, sel model.ChildSelector) (BrowseResult, bool, error) {
	start := time.Now()
	res, found, err := s.service.BrowseChild(ctx, ref, sel)
	s.metrics.observeRemote("browse", start, err)
	if err != nil {
		s.logger.Debug("browse failed", "ref", ref, "selector", sel, "error", err)
	}
	return res, found, err
}
