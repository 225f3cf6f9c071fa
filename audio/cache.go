package audio

import (
	"log/slog"
	"time"
)

// CachedStream is one named entry of the stream cache.
type CachedStream struct {
	Name      string
	Category  Category
	Streaming bool

	Duration   time.Duration
	SampleRate int
	BitDepth   int
	Channels   int
	Freq       float64 // procedural tone frequency

	// Memory is the estimated decoded footprint:
	// duration * sampleRate * channels * bytesPerSample.
	Memory int64

	LastUsed time.Time

	// pins counts active playbacks; pinned entries are never evicted.
	pins int
}

// LoadOptions override per-entry defaults on first load.
type LoadOptions struct {
	Duration time.Duration // 0 = category default
	Freq     float64       // 0 = default tone
}

// Default playback lengths per category, used when the caller does not
// specify one.
func defaultDuration(c Category) time.Duration {
	switch c {
	case CategoryMusic:
		return 90 * time.Second
	case CategoryAmbient:
		return 30 * time.Second
	case CategorySFX:
		return time.Second
	case CategoryUI:
		return 300 * time.Millisecond
	default:
		return time.Second
	}
}

// Cache holds named streams with memory accounting and LRU eviction.
// Single-writer: all mutation happens on the frame thread.
type Cache struct {
	entries map[string]*CachedStream
	total   int64

	threshold      int64
	maxEvictPasses int

	now func() time.Time
}

// NewCache creates a cache evicting down to threshold bytes.
func NewCache(threshold int64, maxEvictPasses int) *Cache {
	if maxEvictPasses < 1 {
		maxEvictPasses = 64
	}
	return &Cache{
		entries:        make(map[string]*CachedStream),
		threshold:      threshold,
		maxEvictPasses: maxEvictPasses,
		now:            time.Now,
	}
}

// Load returns the cached entry for name, constructing it on a miss with
// the given category and quality tier. A hit refreshes the LRU timestamp.
// Over-budget inserts trigger eviction immediately.
func (c *Cache) Load(name string, cat Category, tier QualityTier, opts LoadOptions) *CachedStream {
	if e, ok := c.entries[name]; ok {
		e.LastUsed = c.now()
		return e
	}

	dur := opts.Duration
	if dur <= 0 {
		dur = defaultDuration(cat)
	}
	freq := opts.Freq
	if freq <= 0 {
		freq = 220
	}

	e := &CachedStream{
		Name:       name,
		Category:   cat,
		Streaming:  cat.Streaming(),
		Duration:   dur,
		SampleRate: tier.SampleRate,
		BitDepth:   tier.BitDepth,
		Channels:   tier.Channels,
		Freq:       freq,
		LastUsed:   c.now(),
	}
	e.Memory = estimateMemory(dur, tier)

	c.entries[name] = e
	c.total += e.Memory
	c.EvictToBudget()
	return e
}

// estimateMemory computes the decoded footprint for a stream.
func estimateMemory(dur time.Duration, tier QualityTier) int64 {
	samples := int64(dur.Seconds() * float64(tier.SampleRate))
	return samples * int64(tier.Channels) * int64(tier.BitDepth/8)
}

// Get returns the entry for name, refreshing its LRU timestamp on a hit.
func (c *Cache) Get(name string) (*CachedStream, bool) {
	e, ok := c.entries[name]
	if ok {
		e.LastUsed = c.now()
	}
	return e, ok
}

// Contains reports whether name is cached without touching LRU state.
func (c *Cache) Contains(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Remove evicts a single entry by name.
func (c *Cache) Remove(name string) {
	if e, ok := c.entries[name]; ok {
		c.total -= e.Memory
		delete(c.entries, name)
	}
}

// EvictToBudget evicts least-recently-used unpinned entries until total
// memory is back under the threshold. A single pass is not enough under
// bursty load, so this loops, bounded by maxEvictPasses in case every
// remaining entry is pinned by an active playback.
func (c *Cache) EvictToBudget() int {
	evicted := 0
	for pass := 0; c.total > c.threshold && pass < c.maxEvictPasses; pass++ {
		victim := c.lruVictim()
		if victim == nil {
			break
		}
		slog.Debug("stream cache evict",
			"name", victim.Name,
			"category", victim.Category.String(),
			"bytes", victim.Memory,
		)
		c.Remove(victim.Name)
		evicted++
	}
	return evicted
}

// lruVictim returns the least-recently-used unpinned entry, or nil.
func (c *Cache) lruVictim() *CachedStream {
	var victim *CachedStream
	for _, e := range c.entries {
		if e.pins > 0 {
			continue
		}
		if victim == nil || e.LastUsed.Before(victim.LastUsed) {
			victim = e
		}
	}
	return victim
}

// TotalMemory returns the accounted memory of all cached entries.
func (c *Cache) TotalMemory() int64 {
	return c.total
}

// Threshold returns the configured memory budget.
func (c *Cache) Threshold() int64 {
	return c.threshold
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
