package proxy

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// errLeaderGone marks a shared browse that failed because the goroutine
// that started it was cancelled. Other callers retry with their own context.
var errLeaderGone = errors.New("shared browse abandoned")

// ChildCache maps child selectors to resolved proxies. A nil proxy records
// that the child does not exist. Entries are never removed or replaced.
type ChildCache struct {
	mu      sync.RWMutex
	entries map[model.ChildSelector]Proxy

	flights singleflight.Group
}

// NewChildCache creates an empty cache.
func NewChildCache() *ChildCache {
	return &ChildCache{entries: make(map[model.ChildSelector]Proxy)}
}

// Lookup returns the cached entry for sel. The boolean is false if sel was
// never resolved; a true result with a nil proxy is a cached absence.
func (c *ChildCache) Lookup(sel model.ChildSelector) (Proxy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[sel]
	return p, ok
}

// Len returns the number of cached entries, absences included.
func (c *ChildCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// storeIfAbsent inserts p unless sel already has an entry, and returns the
// entry that ended up in the cache. Nothing is inserted once ctx is done.
func (c *ChildCache) storeIfAbsent(ctx context.Context, sel model.ChildSelector, p Proxy) (Proxy, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[sel]; ok {
		return existing, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.entries[sel] = p
	return p, nil
}

// resolve returns the proxy for member, browsing at most once per selector
// across concurrent callers.
func (c *ChildCache) resolve(ctx context.Context, n *Node, member model.Member) (Proxy, error) {
	key := flightKey(member.Selector)
	for {
		ch := c.flights.DoChan(key, func() (any, error) {
			// A flight that finished just before this one started has
			// already stored the entry.
			if p, ok := c.Lookup(member.Selector); ok {
				return p, nil
			}
			p, err := n.browseChild(ctx, member)
			if err != nil && ctx.Err() != nil {
				return nil, errors.Join(errLeaderGone, err)
			}
			return p, err
		})

		select {
		case res := <-ch:
			if res.Err == nil {
				p, _ := res.Val.(Proxy)
				return p, nil
			}
			if errors.Is(res.Err, errLeaderGone) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				continue
			}
			return nil, res.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func flightKey(sel model.ChildSelector) string {
	return sel.NamespaceURI + "\x00" + sel.Name
}
