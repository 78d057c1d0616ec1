package starsurge

import (
	"math"
	"testing"

	"github.com/vovakirdan/starsurge/internal/core"
)

type stubTarget struct {
	rect   core.Rect
	immune bool
	hits   int
}

func (p *stubTarget) Bounds() core.Rect { return p.rect }
func (p *stubTarget) Immune() bool      { return p.immune }
func (p *stubTarget) DamagePlayer(float64) bool {
	p.hits++
	return false
}

type stubRoster struct {
	list    []*Enemy
	damaged map[*Enemy]float64
}

func (r *stubRoster) Live() []*Enemy { return r.list }
func (r *stubRoster) Damage(e *Enemy, amount float64) bool {
	if r.damaged == nil {
		r.damaged = make(map[*Enemy]float64)
	}
	r.damaged[e] += amount
	return false
}

func TestHostileProjectileAgainstStarPower(t *testing.T) {
	s := NewProjectileSystem(testCanvas(), nil)
	s.Create(ProjectileSpec{X: 400, Y: 480, Kind: ProjectileBurst, Damage: 1, Source: SourceEnemy})
	player := &stubTarget{rect: core.NewRect(384, 464, 32, 32), immune: true}

	s.CheckCollisions(nil, nil, player)

	if s.Len() != 0 {
		t.Errorf("projectile should be consumed, %d left", s.Len())
	}
	if player.hits != 0 {
		t.Errorf("immune player took %d hits", player.hits)
	}
}

func TestHostileProjectileHitsPlayer(t *testing.T) {
	s := NewProjectileSystem(testCanvas(), nil)
	s.Create(ProjectileSpec{X: 400, Y: 480, Kind: ProjectileMeteor, Damage: 1, Source: SourceBoss})
	s.Create(ProjectileSpec{X: 100, Y: 100, Kind: ProjectileMeteor, Damage: 1, Source: SourceBoss})
	player := &stubTarget{rect: core.NewRect(384, 464, 32, 32)}

	s.CheckCollisions(nil, nil, player)

	if player.hits != 1 {
		t.Errorf("hits = %d, want 1", player.hits)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want the miss to survive", s.Len())
	}
}

func TestPlayerProjectileResolvesOnce(t *testing.T) {
	fx := &recordingEffects{}
	s := NewProjectileSystem(testCanvas(), fx)
	a := &Enemy{X: 200, Y: 200, W: 28, H: 28, Health: 5}
	b := &Enemy{X: 205, Y: 200, W: 28, H: 28, Health: 5}
	roster := &stubRoster{list: []*Enemy{a, b}}
	s.Create(ProjectileSpec{X: 202, Y: 200, Kind: ProjectileBurst, Damage: 1, Source: SourcePlayer})

	s.CheckCollisions(roster, nil, &stubTarget{})

	total := 0.0
	for _, d := range roster.damaged {
		total += d
	}
	if total != 1 || len(roster.damaged) != 1 {
		t.Errorf("damage spread = %v, want a single hit", roster.damaged)
	}
	if s.Len() != 0 {
		t.Error("projectile should be removed after its hit")
	}
	if fx.count(EffectHit) != 1 || fx.count(EffectExplosion) != 0 {
		t.Errorf("hits = %d explosions = %d, want 1 and 0", fx.count(EffectHit), fx.count(EffectExplosion))
	}
}

func TestProjectileKillExplodesOnce(t *testing.T) {
	fx := &recordingEffects{}
	enemies := newTestEnemies(&stubPlayer{x: 400, y: 480}, fx, &scoreCounter{})
	e := enemies.SpawnAt(CategoryRammer, TypeTeal, 200, 200)
	s := NewProjectileSystem(testCanvas(), fx)
	s.Create(ProjectileSpec{X: e.X, Y: e.Y, Kind: ProjectileBurst, Damage: 5, Source: SourcePlayer})

	s.CheckCollisions(enemies, nil, &stubTarget{})

	if e.Alive() {
		t.Fatal("enemy should die")
	}
	if n := fx.count(EffectExplosion); n != 1 {
		t.Errorf("explosions for one death = %d, want 1", n)
	}
	if n := fx.count(EffectHit); n != 0 {
		t.Errorf("hit effects for a kill = %d, want 0", n)
	}
}

func TestPlayerProjectileIgnoresPlayer(t *testing.T) {
	s := NewProjectileSystem(testCanvas(), nil)
	s.Create(ProjectileSpec{X: 400, Y: 480, Kind: ProjectileBurst, Damage: 1, Source: SourcePlayer})
	player := &stubTarget{rect: core.NewRect(384, 464, 32, 32)}

	s.CheckCollisions(&stubRoster{}, nil, player)

	if player.hits != 0 || s.Len() != 1 {
		t.Errorf("player shot should pass through the player: hits=%d len=%d", player.hits, s.Len())
	}
}

func TestLaserHitsAlongBeam(t *testing.T) {
	s := NewProjectileSystem(testCanvas(), nil)
	s.CreateLaser(LaserSpec{X: 100, Y: 480, Angle: 0, Length: 400, Damage: 1, Source: SourceEnemy})
	player := &stubTarget{rect: core.NewRect(384, 464, 32, 32)}

	s.CheckCollisions(nil, nil, player)

	if player.hits != 1 {
		t.Errorf("laser hits = %d, want 1", player.hits)
	}
}

func TestLaserMissesOffAngle(t *testing.T) {
	s := NewProjectileSystem(testCanvas(), nil)
	s.CreateLaser(LaserSpec{X: 100, Y: 480, Angle: -math.Pi / 2, Length: 400, Damage: 1, Source: SourceEnemy})
	player := &stubTarget{rect: core.NewRect(384, 464, 32, 32)}

	s.CheckCollisions(nil, nil, player)

	if player.hits != 0 {
		t.Errorf("laser pointing away hit the player")
	}
}

func TestProjectileUpdate(t *testing.T) {
	s := NewProjectileSystem(testCanvas(), nil)
	moving := s.Create(ProjectileSpec{X: 100, Y: 100, VX: 100, VY: 0, Kind: ProjectileBurst})
	laser := s.CreateLaser(LaserSpec{X: 10, Y: 10, Length: 100})
	s.Create(ProjectileSpec{X: 790, Y: 100, VX: 10000, Kind: ProjectileBurst})

	s.Update(0.05)

	if math.Abs(moving.X-105) > 1e-9 {
		t.Errorf("burst X = %f, want 105", moving.X)
	}
	if laser.X != 10 || s.Len() != 2 {
		t.Errorf("laser should stay put and the fast shot leave the canvas: len=%d", s.Len())
	}

	s.Update(0.06)
	for _, p := range s.Projectiles() {
		if p.Kind == ProjectileLaser {
			t.Error("laser should expire after its short lifetime")
		}
	}
}

func TestCreateFallsBackToBurst(t *testing.T) {
	s := NewProjectileSystem(testCanvas(), nil)
	p := s.Create(ProjectileSpec{Kind: ProjectileKind(99)})
	if p.Kind != ProjectileBurst || p.W != 8 {
		t.Errorf("unknown kind should become a burst, got %v %fx%f", p.Kind, p.W, p.H)
	}
}
