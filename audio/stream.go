package audio

import (
	"log/slog"
	"time"

	"github.com/mkrell/stardrift/systems"
)

// ActiveStream is one live playback, holding a pooled voice handle.
type ActiveStream struct {
	ID        uint64
	Entry     *CachedStream
	voice     *Voice
	StartedAt time.Time
	Loop      bool
}

// PlayOptions control one playback.
type PlayOptions struct {
	Loop bool
}

// ManagerConfig holds the stream manager tunables.
type ManagerConfig struct {
	MaxVoices            int
	MaxConcurrentStreams int
	// PreemptAgeWeight is the playback-progress weight in the preemption
	// score. Zero reduces preemption to pure category priority.
	PreemptAgeWeight float64
}

// Manager ties the cache, the voice pool and the engine together. It
// enforces the concurrent-stream budget through priority preemption and
// runs cache eviction at frame boundaries.
type Manager struct {
	engine *Engine
	cache  *Cache
	pool   *systems.Pool[Voice]

	active map[uint64]*ActiveStream
	nextID uint64

	maxConcurrent int
	ageWeight     float64

	gate *QualityGate
	now  func() time.Time

	warnedMissing map[string]bool
}

// NewManager creates a stream manager.
func NewManager(engine *Engine, cache *Cache, cfg ManagerConfig) *Manager {
	if cfg.MaxConcurrentStreams < 1 {
		cfg.MaxConcurrentStreams = 1
	}
	if cfg.MaxVoices < cfg.MaxConcurrentStreams {
		cfg.MaxVoices = cfg.MaxConcurrentStreams
	}
	return &Manager{
		engine: engine,
		cache:  cache,
		pool: systems.NewPool(cfg.MaxVoices,
			func() *Voice { return &Voice{} },
			func(v *Voice) { v.reset() },
		),
		active:        make(map[uint64]*ActiveStream),
		maxConcurrent: cfg.MaxConcurrentStreams,
		ageWeight:     cfg.PreemptAgeWeight,
		gate:          NewQualityGate(),
		now:           time.Now,
		warnedMissing: make(map[string]bool),
	}
}

// Load fetches or constructs a cache entry at the current quality tier.
func (m *Manager) Load(name string, cat Category, opts LoadOptions) *CachedStream {
	return m.cache.Load(name, cat, m.gate.Tier(), opts)
}

// Play starts playback of a previously loaded stream. Returns the stream id
// and false when the name is unknown or the request lost the preemption
// decision. A dropped request is never an error; callers skip.
func (m *Manager) Play(name string, opts PlayOptions) (uint64, bool) {
	entry, ok := m.cache.Get(name)
	if !ok {
		if !m.warnedMissing[name] {
			slog.Warn("audio stream not loaded", "name", name)
			m.warnedMissing[name] = true
		}
		return 0, false
	}

	// Enforce the concurrent budget before the new stream starts.
	if len(m.active) >= m.maxConcurrent {
		victim := m.preemptionVictim()
		newScore := float64(entry.Category.Priority())
		if victim == nil || m.score(victim) >= newScore {
			// Nothing cheaper to stop; drop this request instead.
			return 0, false
		}
		m.Stop(victim.ID)
	}

	voice, ok := m.pool.Acquire()
	if !ok {
		return 0, false
	}

	m.engine.StartVoice(voice, entry, opts.Loop)

	m.nextID++
	s := &ActiveStream{
		ID:        m.nextID,
		Entry:     entry,
		voice:     voice,
		StartedAt: m.now(),
		Loop:      opts.Loop,
	}
	m.active[s.ID] = s
	entry.pins++
	entry.LastUsed = m.now()

	return s.ID, true
}

// score ranks an active stream for preemption: category priority plus a
// protection bonus for playback progress, so a stream moments from finishing
// is not cut for a same-priority newcomer. Looping streams never gain the
// bonus. Lowest score is preempted first.
func (m *Manager) score(s *ActiveStream) float64 {
	score := float64(s.Entry.Category.Priority())
	if !s.Loop && s.Entry.Duration > 0 {
		progress := m.now().Sub(s.StartedAt).Seconds() / s.Entry.Duration.Seconds()
		if progress > 1 {
			progress = 1
		}
		if progress > 0 {
			score += m.ageWeight * progress
		}
	}
	return score
}

// preemptionVictim returns the active stream with the lowest score, or nil.
func (m *Manager) preemptionVictim() *ActiveStream {
	var victim *ActiveStream
	var victimScore float64
	for _, s := range m.active {
		sc := m.score(s)
		if victim == nil || sc < victimScore {
			victim, victimScore = s, sc
		}
	}
	return victim
}

// Stop halts an active stream and reclaims its voice handle.
func (m *Manager) Stop(id uint64) bool {
	s, ok := m.active[id]
	if !ok {
		return false
	}

	m.engine.StopVoice(s.voice)
	m.pool.Release(s.voice)
	s.Entry.pins--
	delete(m.active, id)
	return true
}

// StopAll halts every active stream.
func (m *Manager) StopAll() {
	for id := range m.active {
		m.Stop(id)
	}
}

// Update runs once per frame, at the frame boundary: it feeds the quality
// gate, reaps finished playbacks, and evicts the cache back under budget.
func (m *Manager) Update(quality float32) {
	m.gate.Observe(quality)

	now := m.now()
	for id, s := range m.active {
		if s.Loop {
			continue
		}
		if now.Sub(s.StartedAt) >= s.Entry.Duration {
			m.Stop(id)
		}
	}

	m.cache.EvictToBudget()
}

// ActiveCount returns the number of live playbacks.
func (m *Manager) ActiveCount() int {
	return len(m.active)
}

// MaxConcurrent returns the concurrent-stream budget.
func (m *Manager) MaxConcurrent() int {
	return m.maxConcurrent
}

// Cache returns the underlying stream cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Tier returns the current audio quality tier.
func (m *Manager) Tier() QualityTier {
	return m.gate.Tier()
}
