package audio

// QualityTier is the requested sample format for newly loaded streams.
type QualityTier struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

// The three audio quality tiers. The gate walks between them as the global
// quality scalar moves.
var (
	TierHigh   = QualityTier{SampleRate: 48000, BitDepth: 16, Channels: 2}
	TierMedium = QualityTier{SampleRate: 32000, BitDepth: 16, Channels: 2}
	TierLow    = QualityTier{SampleRate: 22050, BitDepth: 16, Channels: 1}
)

// QualityGate maps the global quality scalar to an audio tier with
// hysteresis: the rising and falling edges use distinct thresholds so a
// quality value hovering at a boundary does not flap the tier every frame.
type QualityGate struct {
	level int // 2 = high, 1 = medium, 0 = low

	riseHigh float32 // enter high when quality rises above this
	fallHigh float32 // leave high when quality falls below this
	riseMed  float32 // enter medium from low above this
	fallMed  float32 // leave medium for low below this
}

// NewQualityGate creates a gate starting at the high tier.
func NewQualityGate() *QualityGate {
	return &QualityGate{
		level:    2,
		riseHigh: 0.85,
		fallHigh: 0.70,
		riseMed:  0.55,
		fallMed:  0.40,
	}
}

// Observe feeds the current quality scalar into the gate.
func (g *QualityGate) Observe(quality float32) {
	switch g.level {
	case 2:
		if quality < g.fallHigh {
			g.level = 1
		}
		if quality < g.fallMed {
			g.level = 0
		}
	case 1:
		if quality > g.riseHigh {
			g.level = 2
		} else if quality < g.fallMed {
			g.level = 0
		}
	case 0:
		if quality > g.riseHigh {
			g.level = 2
		} else if quality > g.riseMed {
			g.level = 1
		}
	}
}

// Tier returns the currently selected quality tier.
func (g *QualityGate) Tier() QualityTier {
	switch g.level {
	case 2:
		return TierHigh
	case 1:
		return TierMedium
	default:
		return TierLow
	}
}
