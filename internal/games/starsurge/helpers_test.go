package starsurge

import (
	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// Shared fakes for subsystem tests.

type recordingEffects struct {
	list []Effect
}

func (r *recordingEffects) Emit(fx Effect) { r.list = append(r.list, fx) }

func (r *recordingEffects) count(kind EffectKind) int {
	n := 0
	for _, fx := range r.list {
		if fx.Kind == kind {
			n++
		}
	}
	return n
}

type scoreCounter struct {
	total int
}

func (s *scoreCounter) AddScore(points int) { s.total += points }

type stubPlayer struct {
	x, y   float64
	vx, vy float64
	star   bool
}

func (p *stubPlayer) Center() (float64, float64)   { return p.x, p.y }
func (p *stubPlayer) Velocity() (float64, float64) { return p.vx, p.vy }
func (p *stubPlayer) StarPowered() bool            { return p.star }

func testCanvas() config.CanvasConfig {
	return config.CanvasConfig{Width: 800, Height: 600}
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestEnemies(player PlayerView, fx EffectSink, score ScoreSink) *EnemySystem {
	return NewEnemySystem(EnemyDeps{
		Config:  config.DefaultDocument().Enemies,
		Canvas:  testCanvas(),
		RNG:     NewSimpleRNG(7),
		Effects: fx,
		Score:   score,
		Player:  player,
	})
}
