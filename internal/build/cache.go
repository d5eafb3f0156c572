package build

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rune-lang/rune/internal/ast"
)

// DefaultCacheSize is the entry limit used when none is given
const DefaultCacheSize = 1024

// CacheKey identifies parsed source by the SHA-256 of its content.
type CacheKey string

// KeyFor hashes source text into a cache key.
func KeyFor(content []byte) CacheKey {
	sum := sha256.Sum256(content)
	return CacheKey(hex.EncodeToString(sum[:]))
}

// CacheStats exposes basic metrics.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Entries   int64
	Evictions int64
}

// Cache abstracts a key->tree store. Trees are never modified after
// parsing, so a cached slice may be handed to several builds. Keys are
// content hashes, so entries never go stale and need no invalidation.
type Cache interface {
	Get(key CacheKey) ([]ast.Expr, bool)
	Put(key CacheKey, stmts []ast.Expr)
	Stats() CacheStats
}

// LRUCache is a thread-safe LRU cache with a max entry count.
type LRUCache struct {
	entries *lru.Cache[CacheKey, []ast.Expr]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewLRUCache creates a new cache with the given capacity (entries). If
// capacity<=0, defaults to DefaultCacheSize.
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}

	c := &LRUCache{}
	// only a non-positive size is rejected
	c.entries, _ = lru.NewWithEvict(capacity, func(CacheKey, []ast.Expr) {
		c.evictions.Add(1)
	})
	return c
}

// Get returns the cached statements for key and marks them recently used
func (c *LRUCache) Get(key CacheKey) ([]ast.Expr, bool) {
	stmts, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return stmts, ok
}

// Put stores stmts under key, evicting the least recently used entry when
// over capacity
func (c *LRUCache) Put(key CacheKey, stmts []ast.Expr) {
	c.entries.Add(key, stmts)
}

func (c *LRUCache) Stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Entries:   int64(c.entries.Len()),
		Evictions: c.evictions.Load(),
	}
}
