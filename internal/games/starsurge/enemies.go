package starsurge

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// Flat score for any kill made while star power runs.
const starPowerKillPoints = 5

// Enemy is one live roster entry. Positions are centers.
type Enemy struct {
	ID       uint64
	Category Category
	Type     EnemyType
	X, Y     float64
	W, H     float64
	Angle    float64

	Health    float64
	MaxHealth float64
	Damage    float64
	Points    int

	Speed         float64
	OriginalSpeed float64
	FreezeTime    float64

	AttackCooldown float64
	AttackTimer    float64
	Color          core.Color

	// Steering state
	waypointX, waypointY float64
	waypointTimer        float64
	surgeTimer           float64
	surging              bool
	strafeDir            float64
	chargeTimer          float64
	chargeRest           float64
	chargeX, chargeY     float64

	dead bool
}

// Bounds returns the collision rectangle.
func (e *Enemy) Bounds() core.Rect {
	return core.NewRect(e.X-e.W/2, e.Y-e.H/2, e.W, e.H)
}

// Frozen reports whether the enemy is frozen.
func (e *Enemy) Frozen() bool {
	return e.FreezeTime > 0
}

// Freeze stops the enemy for d more seconds. Repeated freezes add up.
func (e *Enemy) Freeze(d float64) {
	if d <= 0 {
		return
	}
	if !e.Frozen() {
		e.OriginalSpeed = e.Speed
		e.Speed = 0
	}
	e.FreezeTime += d
}

// Unfreeze restores the stashed speed.
func (e *Enemy) Unfreeze() {
	if e.Frozen() || e.Speed == 0 {
		e.Speed = e.OriginalSpeed
	}
	e.FreezeTime = 0
}

// HealthFraction returns health / maxHealth in [0, 1].
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return core.ClampF(e.Health/e.MaxHealth, 0, 1)
}

// Alive reports whether the enemy is still on the roster.
func (e *Enemy) Alive() bool {
	return !e.dead
}

// PlayerView is the read-only player surface used by AI.
type PlayerView interface {
	Center() (float64, float64)
	Velocity() (float64, float64)
	StarPowered() bool
}

// steerWorld is the per-frame context passed to steering functions.
type steerWorld struct {
	px, py   float64 // Player center
	pvx, pvy float64 // Player velocity
	canvasW  float64
	canvasH  float64
	rng      *SimpleRNG
}

func (w *steerWorld) toPlayer(e *Enemy) (dx, dy, dist float64) {
	dx, dy = w.px-e.X, w.py-e.Y
	dist = math.Hypot(dx, dy)
	nx, ny := core.Normalize(dx, dy)
	return nx, ny, dist
}

// Teal rammers drift between waypoints scattered around the player.
func steerWander(e *Enemy, w *steerWorld, dt float64) (float64, float64, float64) {
	e.waypointTimer -= dt
	if e.waypointTimer <= 0 || core.Distance(e.X, e.Y, e.waypointX, e.waypointY) < 10 {
		e.waypointX = core.ClampF(w.px+w.rng.Range(-120, 120), 0, w.canvasW)
		e.waypointY = core.ClampF(w.py+w.rng.Range(-120, 120), 0, w.canvasH)
		e.waypointTimer = 2
	}
	dx, dy := core.Normalize(e.waypointX-e.X, e.waypointY-e.Y)
	return dx, dy, 1
}

// Silver rammers alternate bursts of speed with slow phases.
func steerSurge(e *Enemy, w *steerWorld, dt float64) (float64, float64, float64) {
	e.surgeTimer -= dt
	if e.surgeTimer <= 0 {
		e.surging = !e.surging
		e.surgeTimer = 1.5
	}
	dx, dy, _ := w.toPlayer(e)
	if e.surging {
		return dx, dy, 1.8
	}
	return dx, dy, 0.5
}

// Blue rammers chase directly, slightly faster than base.
func steerChaseFast(e *Enemy, w *steerWorld, _ float64) (float64, float64, float64) {
	dx, dy, _ := w.toPlayer(e)
	return dx, dy, 1.2
}

// Pink rammers aim at where the player will be half a second from now.
func steerIntercept(e *Enemy, w *steerWorld, _ float64) (float64, float64, float64) {
	tx, ty := w.px+w.pvx*0.5, w.py+w.pvy*0.5
	dx, dy := core.Normalize(tx-e.X, ty-e.Y)
	return dx, dy, 1
}

// Shooters hold a 150-250 band around the player and strafe inside it.
func steerKeepRange(e *Enemy, w *steerWorld, _ float64) (float64, float64, float64) {
	dx, dy, dist := w.toPlayer(e)
	switch {
	case dist < 150:
		return -dx, -dy, 1
	case dist > 250:
		return dx, dy, 1
	}
	if e.strafeDir == 0 {
		e.strafeDir = 1
	}
	return -dy * e.strafeDir, dx * e.strafeDir, 0.7
}

// Beam shooters settle around 250 units and slide slowly.
func steerHoldBeamRange(e *Enemy, w *steerWorld, _ float64) (float64, float64, float64) {
	dx, dy, dist := w.toPlayer(e)
	switch {
	case dist < 230:
		return -dx, -dy, 1
	case dist > 270:
		return dx, dy, 1
	}
	if e.strafeDir == 0 {
		e.strafeDir = -1
	}
	return -dy * e.strafeDir, dx * e.strafeDir, 0.4
}

// Destroyers approach and charge when the player is within 200 units.
func steerCharge(e *Enemy, w *steerWorld, dt float64) (float64, float64, float64) {
	if e.chargeTimer > 0 {
		e.chargeTimer -= dt
		return e.chargeX, e.chargeY, 2
	}
	e.chargeRest = math.Max(0, e.chargeRest-dt)
	dx, dy, dist := w.toPlayer(e)
	if dist < 200 && e.chargeRest <= 0 {
		e.chargeX, e.chargeY = dx, dy
		e.chargeTimer = 0.8
		e.chargeRest = 3
		return dx, dy, 2
	}
	return dx, dy, 1
}

// EnemyDeps are the collaborators an EnemySystem needs.
type EnemyDeps struct {
	Config      config.EnemiesConfig
	Canvas      config.CanvasConfig
	RNG         *SimpleRNG
	Effects     EffectSink
	Score       ScoreSink
	Projectiles ProjectileSpawner
	Timer       Timer
	Player      PlayerView
	Logger      *log.Logger
}

// EnemySystem owns the enemy roster.
type EnemySystem struct {
	deps    EnemyDeps
	log     *log.Logger
	enemies []*Enemy
	level   int
	target  int
	respawn float64
	nextID  uint64
}

// NewEnemySystem creates an enemy system with an empty roster.
func NewEnemySystem(deps EnemyDeps) *EnemySystem {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &EnemySystem{deps: deps, log: logger}
}

// TargetCount returns the roster size for a level. Boss levels return 0.
func (s *EnemySystem) TargetCount(level int, bossLevel bool) int {
	pattern := s.deps.Config.LevelPattern
	if bossLevel || len(pattern) == 0 || level <= 0 {
		return 0
	}
	return pattern[((level-1)%15)%len(pattern)]
}

// CategoryForLevel returns the category used for a level, and whether the
// level rolls a random category per spawn.
func CategoryForLevel(level int) (Category, bool) {
	switch {
	case level <= 15:
		return CategoryRammer, false
	case level <= 30:
		return CategoryShooter, false
	case level <= 45:
		return CategoryBeamShooter, false
	case level <= 60:
		return CategoryDestroyer, false
	default:
		return CategoryRammer, true
	}
}

// SpawnEnemies clears the roster and spawns the level's full target count.
func (s *EnemySystem) SpawnEnemies(level int, bossLevel bool) {
	s.removeAll()
	s.level = level
	s.target = s.TargetCount(level, bossLevel)
	s.respawn = 0
	for range s.target {
		s.SpawnEnemy()
	}
}

// SpawnEnemy adds one enemy chosen for the current level at a canvas edge.
func (s *EnemySystem) SpawnEnemy() *Enemy {
	cat, mixed := CategoryForLevel(s.level)
	if mixed {
		cat = Category(s.deps.RNG.Intn(int(categoryCount)))
	}
	typ := s.rollType(cat)
	x, y := s.edgePosition()
	return s.SpawnAt(cat, typ, x, y)
}

func (s *EnemySystem) rollType(cat Category) EnemyType {
	table := make([]weighted[EnemyType], 0, enemyTypeCount)
	for t := range enemyTypeCount {
		table = append(table, weighted[EnemyType]{value: t, weight: typeWeights[cat][t]})
	}
	t, ok := pickWeighted(s.deps.RNG, table)
	if !ok {
		return TypeTeal
	}
	return t
}

// edgePosition picks a spawn point on the top or side edges, away from the player.
func (s *EnemySystem) edgePosition() (float64, float64) {
	w, h := s.deps.Canvas.Width, s.deps.Canvas.Height
	var x, y float64
	for range 8 {
		switch s.deps.RNG.Intn(3) {
		case 0:
			x, y = s.deps.RNG.Range(20, w-20), 20
		case 1:
			x, y = 20, s.deps.RNG.Range(20, h*0.6)
		default:
			x, y = w-20, s.deps.RNG.Range(20, h*0.6)
		}
		if s.deps.Player == nil {
			break
		}
		px, py := s.deps.Player.Center()
		if core.Distance(x, y, px, py) >= 150 {
			break
		}
	}
	return x, y
}

// SpawnAt instantiates an enemy from its template at (x, y).
// Unknown pairs fall back to the rammer-teal template.
func (s *EnemySystem) SpawnAt(cat Category, typ EnemyType, x, y float64) *Enemy {
	tpl, ok := TemplateFor(cat, typ)
	if !ok {
		s.log.Warn("unknown enemy template, using default", "key", TemplateKey(cat, typ))
		cat, typ = CategoryRammer, TypeTeal
	}
	s.nextID++
	e := &Enemy{
		ID:             s.nextID,
		Category:       cat,
		Type:           typ,
		X:              x,
		Y:              y,
		W:              tpl.W,
		H:              tpl.H,
		Angle:          math.Pi / 2,
		Health:         tpl.Health,
		MaxHealth:      tpl.Health,
		Damage:         tpl.Damage,
		Points:         tpl.Points,
		Speed:          tpl.Speed,
		OriginalSpeed:  tpl.Speed,
		AttackCooldown: tpl.AttackCooldown,
		Color:          typ.Color(),
	}
	if tpl.AttackCooldown > 0 {
		e.AttackTimer = tpl.AttackCooldown * s.deps.RNG.Range(0.5, 1)
	}
	if s.deps.RNG.Chance(0.5) {
		e.strafeDir = 1
	} else {
		e.strafeDir = -1
	}
	s.enemies = append(s.enemies, e)
	return e
}

// Update advances every enemy. worldFrozen suspends movement and attacks.
func (s *EnemySystem) Update(dt float64, worldFrozen bool) {
	w := s.world()
	for _, e := range s.enemies {
		if e.Frozen() {
			e.FreezeTime -= dt
			if e.FreezeTime <= 0 {
				e.Unfreeze()
			}
			continue
		}
		if worldFrozen {
			continue
		}
		s.move(e, w, dt)
		s.tickAttack(e, w, dt)
	}
}

func (s *EnemySystem) world() *steerWorld {
	w := &steerWorld{
		canvasW: s.deps.Canvas.Width,
		canvasH: s.deps.Canvas.Height,
		rng:     s.deps.RNG,
	}
	if s.deps.Player != nil {
		w.px, w.py = s.deps.Player.Center()
		w.pvx, w.pvy = s.deps.Player.Velocity()
	}
	return w
}

func (s *EnemySystem) move(e *Enemy, w *steerWorld, dt float64) {
	steer := steering[e.Category][e.Type]
	dx, dy, mul := steer(e, w, dt)

	oldX, oldY := e.X, e.Y
	e.X = core.ClampF(e.X+dx*e.Speed*mul*dt, e.W/2, w.canvasW-e.W/2)
	e.Y = core.ClampF(e.Y+dy*e.Speed*mul*dt, e.H/2, w.canvasH-e.H/2)

	if mx, my := e.X-oldX, e.Y-oldY; mx != 0 || my != 0 {
		e.Angle = math.Atan2(my, mx)
	}
}

func (s *EnemySystem) tickAttack(e *Enemy, w *steerWorld, dt float64) {
	if e.AttackCooldown <= 0 || s.deps.Projectiles == nil {
		return
	}
	e.AttackTimer -= dt
	if e.AttackTimer > 0 {
		return
	}
	e.AttackTimer = e.AttackCooldown

	switch e.Category {
	case CategoryShooter:
		s.fireBurst(e, w, ProjectileBurst, 200, 0)
	case CategoryBeamShooter:
		tx, ty := s.aimPoint(e, w)
		s.deps.Projectiles.CreateLaser(LaserSpec{
			X:      e.X,
			Y:      e.Y,
			Angle:  math.Atan2(ty-e.Y, tx-e.X),
			Length: 300,
			Damage: e.Damage,
			Speed:  600,
			Source: SourceEnemy,
			Color:  e.Color,
		})
	case CategoryDestroyer:
		if s.deps.RNG.Chance(0.5) {
			s.fireBurst(e, w, ProjectileBurst, 200, 0)
		} else {
			s.fireBurst(e, w, ProjectileBigMeteor, 150, 0)
		}
		if s.deps.RNG.Chance(0.3) && s.deps.Timer != nil {
			s.deps.Timer.After(0.3, func() {
				if e.dead {
					return
				}
				fw := s.world()
				s.fireBurst(e, fw, ProjectileBurst, 200, -0.15)
				s.fireBurst(e, fw, ProjectileBurst, 200, 0.15)
			})
		}
	}
}

// aimPoint returns where an enemy aims. Pink types lead the player.
func (s *EnemySystem) aimPoint(e *Enemy, w *steerWorld) (float64, float64) {
	if e.Type == TypePink {
		return w.px + w.pvx*0.4, w.py + w.pvy*0.4
	}
	return w.px, w.py
}

func (s *EnemySystem) fireBurst(e *Enemy, w *steerWorld, kind ProjectileKind, speed, spread float64) {
	tx, ty := s.aimPoint(e, w)
	a := math.Atan2(ty-e.Y, tx-e.X) + spread
	dmg := e.Damage
	if kind == ProjectileBigMeteor {
		dmg *= 2
	}
	s.deps.Projectiles.Create(ProjectileSpec{
		X:      e.X,
		Y:      e.Y,
		VX:     math.Cos(a) * speed,
		VY:     math.Sin(a) * speed,
		Kind:   kind,
		Damage: dmg,
		Source: SourceEnemy,
		Color:  e.Color,
	})
}

// Damage subtracts health and kills the enemy at <= 0. Returns true on kill.
func (s *EnemySystem) Damage(e *Enemy, amount float64) bool {
	if e == nil || e.dead {
		return false
	}
	e.Health -= amount
	if e.Health > 0 {
		return false
	}
	s.kill(e, true)
	return true
}

// Kill removes an enemy and awards its points.
func (s *EnemySystem) Kill(e *Enemy) {
	if e == nil || e.dead {
		return
	}
	s.kill(e, true)
}

// kill removes e with one explosion and, if rewarded, one score award.
func (s *EnemySystem) kill(e *Enemy, reward bool) {
	e.dead = true
	for i, other := range s.enemies {
		if other == e {
			s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
			break
		}
	}
	if s.deps.Effects != nil {
		s.deps.Effects.Emit(Effect{Kind: EffectExplosion, X: e.X, Y: e.Y, Color: e.Color, Count: 12})
	}
	if !reward || s.deps.Score == nil {
		return
	}
	points := e.Points
	if s.deps.Player != nil && s.deps.Player.StarPowered() {
		points = starPowerKillPoints
	}
	s.deps.Score.AddScore(points)
	if s.deps.Effects != nil {
		s.deps.Effects.Emit(Effect{Kind: EffectScorePopup, X: e.X, Y: e.Y, Value: points, Color: core.ColorBrightYellow})
	}
}

// FreezeAll freezes every live enemy for d more seconds.
func (s *EnemySystem) FreezeAll(d float64) int {
	for _, e := range s.enemies {
		e.Freeze(d)
	}
	return len(s.enemies)
}

// FreezeWithin freezes unfrozen enemies whose center lies within r of (x, y).
// Returns the number of newly frozen enemies.
func (s *EnemySystem) FreezeWithin(x, y, r, d float64) int {
	n := 0
	for _, e := range s.enemies {
		if e.Frozen() || core.Distance(x, y, e.X, e.Y) > r {
			continue
		}
		e.Freeze(d)
		n++
		if s.deps.Effects != nil {
			s.deps.Effects.Emit(Effect{Kind: EffectFreeze, X: e.X, Y: e.Y, Color: core.ColorCyan, Count: 6})
		}
	}
	return n
}

// DamageWithin damages every enemy within r of (x, y) and removes the dead
// without their normal reward. Returns the kill count.
func (s *EnemySystem) DamageWithin(x, y, r, amount float64) int {
	var hit []*Enemy
	for _, e := range s.enemies {
		if core.Distance(x, y, e.X, e.Y) <= r {
			hit = append(hit, e)
		}
	}
	kills := 0
	for _, e := range hit {
		e.Health -= amount
		if e.Health <= 0 {
			s.kill(e, false)
			kills++
		}
	}
	return kills
}

// ClearAll removes every enemy with an explosion but no score.
// Returns how many were removed.
func (s *EnemySystem) ClearAll() int {
	n := len(s.enemies)
	for len(s.enemies) > 0 {
		s.kill(s.enemies[0], false)
	}
	return n
}

// HandleRespawn trickles one replacement in every respawnCooldown seconds
// while the roster is below target.
func (s *EnemySystem) HandleRespawn(dt float64) {
	if len(s.enemies) >= s.target {
		s.respawn = 0
		return
	}
	s.respawn += dt
	cooldown := s.deps.Config.RespawnCooldown
	if cooldown <= 0 || s.respawn < cooldown {
		return
	}
	s.respawn -= cooldown
	s.SpawnEnemy()
}

// Live returns the current roster. Callers must not retain it across mutations.
func (s *EnemySystem) Live() []*Enemy {
	return s.enemies
}

// Count returns the number of live enemies.
func (s *EnemySystem) Count() int {
	return len(s.enemies)
}

// Target returns the roster size the respawn trickle refills toward.
func (s *EnemySystem) Target() int {
	return s.target
}

func (s *EnemySystem) removeAll() {
	for _, e := range s.enemies {
		e.dead = true
	}
	clear(s.enemies)
	s.enemies = s.enemies[:0]
}

// Clear empties the roster and zeroes counters.
func (s *EnemySystem) Clear() {
	s.removeAll()
	s.level = 0
	s.target = 0
	s.respawn = 0
}
