package systems

import (
	"math"
	"math/rand"
)

// ParticleKind identifies the type of effect particle.
type ParticleKind uint8

const (
	ParticleExhaust ParticleKind = iota // engine trail behind the ship
	ParticleImpact                      // debris burst on collision
	ParticleTwinkle                     // background star shimmer
)

// Particle is one pooled effect particle.
type Particle struct {
	X, Y       float32
	VelX, VelY float32
	Life       float32 // seconds remaining
	MaxLife    float32
	Size       float32
	Kind       ParticleKind
}

// ParticleSystem manages effect particles on a bounded pool. When the pool
// is exhausted new emissions are skipped, never queued.
type ParticleSystem struct {
	pool   *Pool[Particle]
	active []*Particle
	rng    *rand.Rand

	// quality scales emission counts; updated each frame from the controller
	quality float32
}

// NewParticleSystem creates a particle system with the given budget.
func NewParticleSystem(maxParticles int, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		pool: NewPool(maxParticles,
			func() *Particle { return &Particle{} },
			func(p *Particle) { *p = Particle{} },
		),
		active:  make([]*Particle, 0, maxParticles),
		rng:     rng,
		quality: 1.0,
	}
}

// SetQuality sets the emission scale in [0, 1]. Applied to burst counts.
func (s *ParticleSystem) SetQuality(q float32) {
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	s.quality = q
}

// Update advances all particles and releases expired ones to the pool.
func (s *ParticleSystem) Update(dt float32) {
	alive := 0
	for _, p := range s.active {
		p.Life -= dt
		if p.Life <= 0 {
			s.pool.Release(p)
			continue
		}

		switch p.Kind {
		case ParticleExhaust:
			// Exhaust slows and fades
			p.VelX *= 1 - 2*dt
			p.VelY *= 1 - 2*dt
		case ParticleImpact:
			// Debris keeps most of its momentum
			p.VelX *= 1 - 0.5*dt
			p.VelY *= 1 - 0.5*dt
		case ParticleTwinkle:
			// Twinkles do not move
		}

		p.X += p.VelX * dt
		p.Y += p.VelY * dt

		s.active[alive] = p
		alive++
	}
	// Drop released tail references so the pool owns them exclusively
	for i := alive; i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = s.active[:alive]
}

// EmitExhaust emits an engine trail particle at the given position,
// directed against the heading.
func (s *ParticleSystem) EmitExhaust(x, y, heading float32) {
	p, ok := s.pool.Acquire()
	if !ok {
		return
	}

	spread := (s.rng.Float32() - 0.5) * 0.6
	speed := 40 + s.rng.Float32()*30
	angle := heading + math.Pi + spread

	p.X = x
	p.Y = y
	p.VelX = float32(math.Cos(float64(angle))) * speed
	p.VelY = float32(math.Sin(float64(angle))) * speed
	p.Life = 0.6 + s.rng.Float32()*0.4
	p.MaxLife = p.Life
	p.Size = 1.5 + s.rng.Float32()
	p.Kind = ParticleExhaust

	s.active = append(s.active, p)
}

// EmitImpact emits a radial debris burst. The burst size scales with the
// current quality level.
func (s *ParticleSystem) EmitImpact(x, y float32) {
	count := int(float32(8+s.rng.Intn(7)) * s.quality)
	for i := 0; i < count; i++ {
		p, ok := s.pool.Acquire()
		if !ok {
			return
		}

		angle := s.rng.Float32() * 2 * math.Pi
		speed := 60 + s.rng.Float32()*80

		p.X = x + (s.rng.Float32()-0.5)*4
		p.Y = y + (s.rng.Float32()-0.5)*4
		p.VelX = float32(math.Cos(float64(angle))) * speed
		p.VelY = float32(math.Sin(float64(angle))) * speed
		p.Life = 0.4 + s.rng.Float32()*0.5
		p.MaxLife = p.Life
		p.Size = 1 + s.rng.Float32()*2
		p.Kind = ParticleImpact

		s.active = append(s.active, p)
	}
}

// EmitTwinkle emits a stationary shimmer particle (35% chance per call,
// scaled by quality).
func (s *ParticleSystem) EmitTwinkle(x, y float32) {
	if s.rng.Float32() > 0.35*s.quality {
		return
	}
	p, ok := s.pool.Acquire()
	if !ok {
		return
	}

	p.X = x
	p.Y = y
	p.Life = 0.8 + s.rng.Float32()*0.8
	p.MaxLife = p.Life
	p.Size = 0.5 + s.rng.Float32()
	p.Kind = ParticleTwinkle

	s.active = append(s.active, p)
}

// Particles returns the live particle list for rendering. Read-only.
func (s *ParticleSystem) Particles() []*Particle {
	return s.active
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.active)
}
