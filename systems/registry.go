package systems

// SystemInfo describes a core system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "visual", "audio")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "metrics", Name: "Metrics", Description: "Updates frame-time windows", Category: "core"})
	r.Register(SystemInfo{ID: "quality", Name: "Quality", Description: "Adjusts the adaptive quality loop", Category: "core"})
	r.Register(SystemInfo{ID: "spatialRebuild", Name: "Spatial Rebuild", Description: "Rebuilds the proximity grid", Category: "core"})
	r.Register(SystemInfo{ID: "culling", Name: "Culling", Description: "Assigns detail tiers to visible objects", Category: "core"})
	r.Register(SystemInfo{ID: "particles", Name: "Particles", Description: "Advances pooled effect particles", Category: "visual"})
	r.Register(SystemInfo{ID: "streams", Name: "Streams", Description: "Maintains the audio stream cache", Category: "audio"})
	r.Register(SystemInfo{ID: "render", Name: "Render", Description: "Batches and issues draw calls", Category: "visual"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// All returns every registered system in registration order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// Lookup returns the system with the given ID.
func (r *SystemRegistry) Lookup(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}
