package starsurge

import "github.com/vovakirdan/starsurge/internal/core"

// EffectKind identifies a visual effect requested by the simulation.
type EffectKind int

const (
	EffectExplosion EffectKind = iota
	EffectScorePopup
	EffectPickup
	EffectFreeze
	EffectShieldPulse
	EffectIonPulse
	EffectRadarSweep
	EffectBossSpawn
	EffectBossHit
	EffectBossDefeat
	EffectBombWarning
	EffectLifeLost
	EffectExtraLife
	EffectLevelUp
	EffectUnlock
	EffectCombo
	EffectHit
	EffectPowerUpReady
)

// String returns the effect name used by renderers and logs.
func (k EffectKind) String() string {
	switch k {
	case EffectExplosion:
		return "explosion"
	case EffectScorePopup:
		return "score"
	case EffectPickup:
		return "pickup"
	case EffectFreeze:
		return "freeze"
	case EffectShieldPulse:
		return "shield"
	case EffectIonPulse:
		return "ionPulse"
	case EffectRadarSweep:
		return "radar"
	case EffectBossSpawn:
		return "bossSpawn"
	case EffectBossHit:
		return "bossHit"
	case EffectBossDefeat:
		return "bossDefeat"
	case EffectBombWarning:
		return "bombWarning"
	case EffectLifeLost:
		return "lifeLost"
	case EffectExtraLife:
		return "extraLife"
	case EffectLevelUp:
		return "levelUp"
	case EffectUnlock:
		return "unlock"
	case EffectCombo:
		return "combo"
	case EffectHit:
		return "hit"
	case EffectPowerUpReady:
		return "powerUpReady"
	default:
		return "unknown"
	}
}

// Effect is a fire-and-forget visual request.
type Effect struct {
	Kind  EffectKind
	X, Y  float64
	Color core.Color
	Count int    // Particle count hint
	Value int    // Score or damage shown by popups
	Text  string // Optional label (unlocked power-up, boss name)
	At    float64
}

// EffectSink receives visual effects.
type EffectSink interface {
	Emit(fx Effect)
}

// ScoreSink receives score awards.
type ScoreSink interface {
	AddScore(points int)
}

// effectBuffer collects effects between frames. Recent effects are kept for a
// short while so the fallback renderer can show them after a drain. Hosts
// that never drain lose the oldest pending effects past maxPendingEffects.
type effectBuffer struct {
	clock   func() float64
	pending []Effect
	recent  []Effect
}

const (
	recentEffectTTL   = 0.35
	maxRecentEffects  = 256
	maxPendingEffects = 512
)

func newEffectBuffer(clock func() float64) *effectBuffer {
	return &effectBuffer{clock: clock}
}

// Emit records an effect stamped with the current game time.
func (b *effectBuffer) Emit(fx Effect) {
	if b.clock != nil {
		fx.At = b.clock()
	}
	if len(b.pending) >= maxPendingEffects {
		n := copy(b.pending, b.pending[len(b.pending)-maxPendingEffects/2:])
		b.pending = b.pending[:n]
	}
	b.pending = append(b.pending, fx)
	if len(b.recent) >= maxRecentEffects {
		b.Recent(fx.At)
	}
	b.recent = append(b.recent, fx)
}

// Drain returns the effects emitted since the previous drain.
func (b *effectBuffer) Drain() []Effect {
	out := b.pending
	b.pending = nil
	return out
}

// Recent returns effects younger than the display window.
func (b *effectBuffer) Recent(now float64) []Effect {
	kept := b.recent[:0]
	for _, fx := range b.recent {
		if now-fx.At <= recentEffectTTL {
			kept = append(kept, fx)
		}
	}
	b.recent = kept
	return b.recent
}

// Len returns the number of undrained effects.
func (b *effectBuffer) Len() int {
	return len(b.pending)
}

func (b *effectBuffer) Clear() {
	b.pending = nil
	b.recent = nil
}
