package client

import "sync"

// Kind names a cache region. List entries are keyed by the canonical query
// string, detail entries by the record identity.
type Kind string

const (
	KindOrders    Kind = "orders"
	KindOrder     Kind = "order"
	KindInventory Kind = "inventory"
	KindItem      Kind = "item"
)

type cacheKey struct {
	kind Kind
	id   string
}

type entry struct {
	data  any
	stale bool
	// gen guards against superseded in-flight fetches: a fetch only commits
	// if the generation it started under is still current.
	gen uint64
}

// Cache holds the last-known server responses. Entries for overlapping
// queries are independent; a mutation rewrites every matching entry
// individually.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*entry)}
}

// Get returns the cached data and whether it is fresh enough to serve
// without a refetch.
func (c *Cache) Get(kind Kind, id string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[cacheKey{kind, id}]
	if !ok || e.data == nil {
		return nil, false
	}
	return e.data, !e.stale
}

// Generation returns the current generation for a key, creating the entry
// slot if needed. Fetches capture it before issuing the request.
func (c *Cache) Generation(kind Kind, id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensure(cacheKey{kind, id}).gen
}

// Commit stores fetched data if the generation is unchanged since the fetch
// began. A bumped generation means the response was superseded by an
// optimistic write and must be discarded.
func (c *Cache) Commit(kind Kind, id string, gen uint64, data any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensure(cacheKey{kind, id})
	if e.gen != gen {
		return false
	}
	e.data = data
	e.stale = false
	return true
}

// put overwrites an entry unconditionally (optimistic writes and rollbacks).
func (c *Cache) put(k cacheKey, data any) {
	e := c.ensure(k)
	e.data = data
	e.gen++
}

func (c *Cache) ensure(k cacheKey) *entry {
	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}
	return e
}

// MarkStale flags every entry of the kind so the next read refetches.
func (c *Cache) MarkStale(kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.kind == kind {
			e.stale = true
			e.gen++
		}
	}
}

// MarkStaleKeys flags specific detail entries.
func (c *Cache) MarkStaleKeys(kind Kind, ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if e, ok := c.entries[cacheKey{kind, id}]; ok {
			e.stale = true
			e.gen++
		}
	}
}

// snapshotKind copies every entry of the kind for a later rollback.
func (c *Cache) snapshotKind(kind Kind) map[cacheKey]any {
	snap := make(map[cacheKey]any)
	for k, e := range c.entries {
		if k.kind == kind && e.data != nil {
			snap[k] = e.data
		}
	}
	return snap
}
