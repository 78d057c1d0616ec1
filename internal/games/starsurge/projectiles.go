package starsurge

import (
	"math"

	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// ProjectileKind selects the size and lifetime of a projectile.
type ProjectileKind int

const (
	ProjectileBurst ProjectileKind = iota
	ProjectileMeteor
	ProjectileBigMeteor
	ProjectileLaser
	projectileKindCount
)

// String returns the kind name.
func (k ProjectileKind) String() string {
	switch k {
	case ProjectileBurst:
		return "burst"
	case ProjectileMeteor:
		return "meteor"
	case ProjectileBigMeteor:
		return "bigMeteor"
	case ProjectileLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// Source decides which targets a projectile can hit.
type Source int

const (
	SourcePlayer Source = iota
	SourceEnemy
	SourceBoss
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourcePlayer:
		return "player"
	case SourceEnemy:
		return "enemy"
	case SourceBoss:
		return "boss"
	default:
		return "unknown"
	}
}

type projectileShape struct {
	w, h     float64
	lifetime float64
}

// Laser width is fixed; its length comes from the spawn request.
const laserWidth = 4

var projectileShapes = [projectileKindCount]projectileShape{
	ProjectileBurst:     {w: 8, h: 8, lifetime: 3},
	ProjectileMeteor:    {w: 16, h: 16, lifetime: 4},
	ProjectileBigMeteor: {w: 24, h: 24, lifetime: 5},
	ProjectileLaser:     {w: 0, h: laserWidth, lifetime: 0.1},
}

// Distance past the canvas edge after which projectiles are dropped.
const offscreenMargin = 50

// Projectile is a moving shot or a static laser strip.
// For lasers X, Y is the origin and the beam extends Length along Angle.
type Projectile struct {
	ID       uint64
	Kind     ProjectileKind
	Source   Source
	X, Y     float64
	W, H     float64
	VX, VY   float64
	Angle    float64
	Length   float64
	Speed    float64 // Laser sweep speed, visual only
	Damage   float64
	LifeTime float64
	MaxLife  float64
	Color    core.Color
}

// Bounds returns the collision rectangle of a moving projectile.
func (p *Projectile) Bounds() core.Rect {
	return core.NewRect(p.X-p.W/2, p.Y-p.H/2, p.W, p.H)
}

// End returns the far end of a laser beam.
func (p *Projectile) End() (float64, float64) {
	return p.X + math.Cos(p.Angle)*p.Length, p.Y + math.Sin(p.Angle)*p.Length
}

// Hits reports whether the projectile overlaps r.
func (p *Projectile) Hits(r core.Rect) bool {
	if p.Kind == ProjectileLaser {
		ex, ey := p.End()
		return core.SegmentRectOverlap(p.X, p.Y, ex, ey, laserWidth, r)
	}
	return core.RectOverlap(p.Bounds(), r)
}

// ProjectileSpec is a create request for a moving projectile.
type ProjectileSpec struct {
	X, Y   float64
	VX, VY float64
	Kind   ProjectileKind
	Damage float64
	Source Source
	Color  core.Color
}

// LaserSpec is a create request for a laser.
type LaserSpec struct {
	X, Y     float64
	Angle    float64
	Length   float64
	Damage   float64
	Speed    float64
	Duration float64 // 0 uses the default laser lifetime
	Source   Source
	Color    core.Color
}

// ProjectileSpawner is the narrow surface used by shooters.
type ProjectileSpawner interface {
	Create(spec ProjectileSpec) *Projectile
	CreateLaser(spec LaserSpec) *Projectile
}

// EnemyTargets is what player-owned projectiles collide with.
type EnemyTargets interface {
	Live() []*Enemy
	Damage(e *Enemy, amount float64) bool
}

// BossTarget is the optional boss hit surface.
type BossTarget interface {
	BossBounds() (core.Rect, bool)
	DamageBoss(amount float64) bool
}

// PlayerTarget is what hostile projectiles collide with.
type PlayerTarget interface {
	Bounds() core.Rect
	Immune() bool
	// DamagePlayer applies one hit; returns false if a life was lost.
	DamagePlayer(amount float64) bool
}

// ProjectileSystem owns every live projectile.
type ProjectileSystem struct {
	list    []*Projectile
	canvasW float64
	canvasH float64
	effects EffectSink
	nextID  uint64
}

// NewProjectileSystem creates an empty projectile system.
func NewProjectileSystem(canvas config.CanvasConfig, effects EffectSink) *ProjectileSystem {
	return &ProjectileSystem{
		canvasW: canvas.Width,
		canvasH: canvas.Height,
		effects: effects,
	}
}

// Create appends a moving projectile sized from its kind.
func (s *ProjectileSystem) Create(spec ProjectileSpec) *Projectile {
	kind := spec.Kind
	if kind < 0 || kind >= projectileKindCount || kind == ProjectileLaser {
		kind = ProjectileBurst
	}
	shape := projectileShapes[kind]
	s.nextID++
	p := &Projectile{
		ID:       s.nextID,
		Kind:     kind,
		Source:   spec.Source,
		X:        spec.X,
		Y:        spec.Y,
		W:        shape.w,
		H:        shape.h,
		VX:       spec.VX,
		VY:       spec.VY,
		Angle:    math.Atan2(spec.VY, spec.VX),
		Damage:   spec.Damage,
		LifeTime: shape.lifetime,
		MaxLife:  shape.lifetime,
		Color:    spec.Color,
	}
	s.list = append(s.list, p)
	return p
}

// CreateLaser appends a static laser.
func (s *ProjectileSystem) CreateLaser(spec LaserSpec) *Projectile {
	life := spec.Duration
	if life <= 0 {
		life = projectileShapes[ProjectileLaser].lifetime
	}
	s.nextID++
	p := &Projectile{
		ID:       s.nextID,
		Kind:     ProjectileLaser,
		Source:   spec.Source,
		X:        spec.X,
		Y:        spec.Y,
		W:        spec.Length,
		H:        laserWidth,
		Angle:    spec.Angle,
		Length:   spec.Length,
		Speed:    spec.Speed,
		Damage:   spec.Damage,
		LifeTime: life,
		MaxLife:  life,
		Color:    spec.Color,
	}
	s.list = append(s.list, p)
	return p
}

// Update moves projectiles and drops expired or far offscreen ones.
func (s *ProjectileSystem) Update(dt float64) {
	kept := s.list[:0]
	for _, p := range s.list {
		if p.Kind != ProjectileLaser {
			p.X += p.VX * dt
			p.Y += p.VY * dt
		}
		p.LifeTime -= dt
		if p.LifeTime <= 0 || s.offscreen(p) {
			continue
		}
		kept = append(kept, p)
	}
	clear(s.list[len(kept):])
	s.list = kept
}

func (s *ProjectileSystem) offscreen(p *Projectile) bool {
	if p.Kind == ProjectileLaser {
		return false
	}
	return p.X < -offscreenMargin || p.X > s.canvasW+offscreenMargin ||
		p.Y < -offscreenMargin || p.Y > s.canvasH+offscreenMargin
}

// CheckCollisions resolves at most one hit per projectile.
// Player-owned projectiles hit enemies, then the boss. Hostile projectiles
// hit the player; shield or star power absorbs the hit but still consumes
// the projectile. boss may be nil.
func (s *ProjectileSystem) CheckCollisions(enemies EnemyTargets, boss BossTarget, player PlayerTarget) {
	for i := len(s.list) - 1; i >= 0; i-- {
		if i >= len(s.list) {
			// A hit callback cleared the list.
			continue
		}
		p := s.list[i]
		if s.resolve(p, enemies, boss, player) {
			s.removeAt(i, p)
		}
	}
}

func (s *ProjectileSystem) resolve(p *Projectile, enemies EnemyTargets, boss BossTarget, player PlayerTarget) bool {
	if p.Source == SourcePlayer {
		if enemies != nil {
			for _, e := range enemies.Live() {
				if e.Health <= 0 || !p.Hits(e.Bounds()) {
					continue
				}
				// A kill emits its own explosion.
				if !enemies.Damage(e, p.Damage) {
					s.emit(EffectHit, p, 4)
				}
				return true
			}
		}
		if boss != nil {
			if r, ok := boss.BossBounds(); ok && p.Hits(r) {
				boss.DamageBoss(p.Damage)
				s.emit(EffectHit, p, 4)
				return true
			}
		}
		return false
	}

	if player == nil || !p.Hits(player.Bounds()) {
		return false
	}
	if !player.Immune() {
		player.DamagePlayer(p.Damage)
	}
	return true
}

// removeAt drops p, which must be at index i unless the list was mutated.
func (s *ProjectileSystem) removeAt(i int, p *Projectile) {
	if i < len(s.list) && s.list[i] == p {
		s.list = append(s.list[:i], s.list[i+1:]...)
		return
	}
	for j, q := range s.list {
		if q == p {
			s.list = append(s.list[:j], s.list[j+1:]...)
			return
		}
	}
}

func (s *ProjectileSystem) emit(kind EffectKind, p *Projectile, count int) {
	if s.effects == nil {
		return
	}
	s.effects.Emit(Effect{Kind: kind, X: p.X, Y: p.Y, Color: p.Color, Count: count})
}

// Projectiles returns the live list. Callers must not retain it across updates.
func (s *ProjectileSystem) Projectiles() []*Projectile {
	return s.list
}

// Len returns the number of live projectiles.
func (s *ProjectileSystem) Len() int {
	return len(s.list)
}

// Clear drops every projectile.
func (s *ProjectileSystem) Clear() {
	clear(s.list)
	s.list = s.list[:0]
}
