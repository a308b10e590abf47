// Package memo caches conversion results so repeated conversions of unchanged
// input skip the converters.
package memo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/HartBrook/toonify/internal/convert"
)

// DefaultSize is the number of results kept when no size is configured.
const DefaultSize = 128

// Stats reports cache effectiveness.
type Stats struct {
	Hits     int64
	Misses   int64
	Entries  int
	Capacity int
}

// HitRate returns the fraction of lookups served from the cache.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Engine wraps a convert.Engine with an LRU of results. Safe for concurrent use.
type Engine struct {
	engine   *convert.Engine
	cache    *lru.Cache[string, convert.Result]
	capacity int
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a memoizing engine holding up to size results.
// A size of 0 disables caching; every call converts.
func New(engine *convert.Engine, size int, logger *slog.Logger) (*Engine, error) {
	if size < 0 {
		return nil, fmt.Errorf("memo size must be >= 0, got %d", size)
	}
	if engine == nil {
		engine = convert.NewEngine()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{engine: engine, capacity: size, logger: logger}
	if size > 0 {
		cache, err := lru.New[string, convert.Result](size)
		if err != nil {
			return nil, err
		}
		e.cache = cache
	}
	return e, nil
}

// Key returns the cache key for a conversion request.
func Key(input string, format convert.Format) string {
	hash := sha256.Sum256([]byte(string(format) + "\x00" + input))
	return hex.EncodeToString(hash[:])
}

// Convert returns the cached result for (input, format), converting on a miss.
func (e *Engine) Convert(input string, format convert.Format) convert.Result {
	if e.cache == nil {
		e.misses.Add(1)
		return e.engine.Convert(input, format)
	}

	key := Key(input, format)
	if result, ok := e.cache.Get(key); ok {
		e.hits.Add(1)
		e.logger.Debug("memo hit", "key", key[:12], "format", result.Format)
		return result
	}

	e.misses.Add(1)
	result := e.engine.Convert(input, format)
	if evicted := e.cache.Add(key, result); evicted {
		e.logger.Debug("memo evicted oldest entry", "capacity", e.capacity)
	}
	e.logger.Debug("memo miss", "key", key[:12], "format", result.Format)
	return result
}

// Detect delegates to the wrapped engine; detection is not cached.
func (e *Engine) Detect(input string) convert.Format {
	return e.engine.Detect(input)
}

// Stats returns a snapshot of the hit/miss counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Hits:     e.hits.Load(),
		Misses:   e.misses.Load(),
		Capacity: e.capacity,
	}
	if e.cache != nil {
		s.Entries = e.cache.Len()
	}
	return s
}

// Purge drops every cached result. Counters are kept.
func (e *Engine) Purge() {
	if e.cache != nil {
		e.cache.Purge()
	}
}
