package starsurge

import (
	"math"

	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// Smoothing factors applied once per frame.
const (
	positionSmoothing = 0.2
	rotationSmoothing = 0.2
)

// Player is the avatar. It is created once per game and reset on restart.
// Positions are centers in world units.
type Player struct {
	X, Y             float64
	W, H             float64
	VX, VY           float64 // Input vector, length <= 1
	TargetX, TargetY float64 // Smoothed-approach target
	Angle            float64

	StarPowerTime float64 // Invincibility and kill bonus countdown
	DamageFlash   float64 // Post-hit invulnerability window

	speed       float64
	flashLength float64
	canvasW     float64
	canvasH     float64
}

// NewPlayer creates a player centered near the bottom of the canvas.
func NewPlayer(cfg config.PlayerConfig, canvas config.CanvasConfig) *Player {
	p := &Player{
		W:           cfg.Width,
		H:           cfg.Height,
		speed:       cfg.Speed,
		flashLength: cfg.DamageFlash,
		canvasW:     canvas.Width,
		canvasH:     canvas.Height,
	}
	p.Reset()
	return p
}

// Reset returns the player to the spawn point with all timers cleared.
func (p *Player) Reset() {
	p.X = p.canvasW / 2
	p.Y = p.canvasH * 0.8
	p.TargetX, p.TargetY = p.X, p.Y
	p.VX, p.VY = 0, 0
	p.Angle = -math.Pi / 2
	p.StarPowerTime = 0
	p.DamageFlash = 0
}

// Update applies the input vector and advances the player's timers.
func (p *Player) Update(dt, moveX, moveY float64) {
	p.VX, p.VY = moveX, moveY

	halfW, halfH := p.W/2, p.H/2
	p.TargetX = core.ClampF(p.TargetX+moveX*p.speed*dt, halfW, p.canvasW-halfW)
	p.TargetY = core.ClampF(p.TargetY+moveY*p.speed*dt, halfH, p.canvasH-halfH)

	p.X += (p.TargetX - p.X) * positionSmoothing
	p.Y += (p.TargetY - p.Y) * positionSmoothing

	if moveX != 0 || moveY != 0 {
		want := math.Atan2(moveY, moveX)
		p.Angle += core.AngleDelta(p.Angle, want) * rotationSmoothing
	}

	p.StarPowerTime = math.Max(0, p.StarPowerTime-dt)
	p.DamageFlash = math.Max(0, p.DamageFlash-dt)
}

// Bounds returns the player's collision rectangle.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.X-p.W/2, p.Y-p.H/2, p.W, p.H)
}

// Center returns the player's center.
func (p *Player) Center() (float64, float64) {
	return p.X, p.Y
}

// Velocity returns the player's velocity in world units per second.
func (p *Player) Velocity() (float64, float64) {
	return p.VX * p.speed, p.VY * p.speed
}

// StarPowered reports whether star power is running.
func (p *Player) StarPowered() bool {
	return p.StarPowerTime > 0
}

// GrantStarPower extends star power to at least d seconds.
func (p *Player) GrantStarPower(d float64) {
	p.StarPowerTime = math.Max(p.StarPowerTime, d)
}

// TakeDamage applies one hit. It returns false if the hit cost a life and
// true if the hit was absorbed by the damage flash window.
func (p *Player) TakeDamage() bool {
	if p.DamageFlash > 0 {
		return true
	}
	p.DamageFlash = p.flashLength
	return false
}
