package motive

import "time"

// defaultMaxCacheAge bounds staleness for every cached entry. Entries are
// checked on access; there is no background sweep.
const defaultMaxCacheAge = 2 * time.Second

// cacheNow is swapped in cache tests to control entry aging.
var cacheNow = time.Now

type viewportEntry struct {
	width, height float64
	at            time.Time
	valid         bool
}

type geometryEntry struct {
	width, height float64
	at            time.Time
}

// conversionKey identifies one resolved conversion. Element identity keeps
// two elements with the same value string apart; the property name is part
// of the key because percentage semantics differ per property.
type conversionKey struct {
	raw       string
	elementID uint32
	property  string
}

type conversionEntry struct {
	value float64
	at    time.Time
}

// ConversionCache memoizes element geometry, viewport size, and resolved
// conversions inside a wall-clock window. Construct one explicitly with
// NewConversionCache and pass it by reference — there is no package-level
// instance. Shared across all slots without synchronization; motive runs on
// one logical thread of control.
type ConversionCache struct {
	// MaxAge is the staleness bound. An entry older than MaxAge is never
	// returned; the next access recomputes it.
	MaxAge time.Duration

	viewport    viewportEntry
	geometry    map[uint32]geometryEntry
	conversions map[conversionKey]conversionEntry

	// Hits and Misses count conversion lookups, for debug output.
	Hits, Misses int
}

// NewConversionCache creates a cache with the default ~2s staleness window.
func NewConversionCache() *ConversionCache {
	return &ConversionCache{
		MaxAge:      defaultMaxCacheAge,
		geometry:    make(map[uint32]geometryEntry),
		conversions: make(map[conversionKey]conversionEntry),
	}
}

// Viewport returns the cached viewport size, calling fetch on a miss or a
// stale entry.
func (c *ConversionCache) Viewport(fetch func() (w, h float64)) (float64, float64) {
	now := cacheNow()
	if c.viewport.valid && now.Sub(c.viewport.at) <= c.MaxAge {
		return c.viewport.width, c.viewport.height
	}
	w, h := fetch()
	c.viewport = viewportEntry{width: w, height: h, at: now, valid: true}
	return w, h
}

// Geometry returns the cached size for an element, calling fetch on a miss
// or a stale entry. Disposed elements (ID 0) bypass the cache entirely.
func (c *ConversionCache) Geometry(el *Element, fetch func() (w, h float64)) (float64, float64) {
	if el == nil || el.ID == 0 {
		return fetch()
	}
	now := cacheNow()
	if e, ok := c.geometry[el.ID]; ok && now.Sub(e.at) <= c.MaxAge {
		return e.width, e.height
	}
	w, h := fetch()
	c.geometry[el.ID] = geometryEntry{width: w, height: h, at: now}
	return w, h
}

// Convert returns the pixel value for (raw, element, property), computing
// and caching it when absent or stale.
func (c *ConversionCache) Convert(raw string, el *Element, property string, ctx ConversionContext) float64 {
	if el == nil || el.ID == 0 {
		return ConvertToPixels(raw, ctx, property)
	}
	key := conversionKey{raw: raw, elementID: el.ID, property: property}
	now := cacheNow()
	if e, ok := c.conversions[key]; ok && now.Sub(e.at) <= c.MaxAge {
		c.Hits++
		return e.value
	}
	c.Misses++
	value := ConvertToPixels(raw, ctx, property)
	c.conversions[key] = conversionEntry{value: value, at: now}
	return value
}

// HandleResize proactively clears everything: geometry may have changed for
// any element, and every resolved conversion depended on it.
func (c *ConversionCache) HandleResize() {
	c.viewport = viewportEntry{}
	clear(c.geometry)
	clear(c.conversions)
}

// Len reports the number of cached conversion entries (including stale ones
// not yet evicted by access).
func (c *ConversionCache) Len() int {
	return len(c.conversions)
}
