package starsurge

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// Attack numbers shared by every boss.
const (
	meteorSpeed        = 160
	bigMeteorSpeed     = 130
	bossLaserLength    = 420
	laserSpinRate      = 1.0 // Radians per second of game clock
	laserRepeats       = 5
	laserRepeatGap     = 0.2
	bigMeteorStagger   = 0.3
	secondWaveDelay    = 0.4
	toxicCloudSize     = 80
	toxicCloudLifetime = 6
	// ToxicDamageInterval rate-limits cloud damage per contact.
	ToxicDamageInterval = 1.0
	endlessHealthStep   = 0.5
)

// Point is a world-space position.
type Point struct {
	X, Y float64
}

// Boss is the single live boss instance.
type Boss struct {
	ID     uint64
	Key    string
	Name   string
	Level  int
	Cycle  int
	Reward string

	X, Y  float64
	W, H  float64
	Speed float64
	Color core.Color

	Health    float64
	MaxHealth float64
	Phase     int

	Attacks        []AttackPattern
	AttackCooldown float64
	AttackTimer    float64
	HitFlash       float64

	patrolTime float64
	baseY      float64
}

// Bounds returns the boss collision rectangle.
func (b *Boss) Bounds() core.Rect {
	return core.NewRect(b.X-b.W/2, b.Y-b.H/2, b.W, b.H)
}

// HealthFraction returns health / maxHealth in [0, 1].
func (b *Boss) HealthFraction() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return core.ClampF(b.Health/b.MaxHealth, 0, 1)
}

// PhaseFor derives the phase from health: above 66% is 1, at or below 33% is 3.
func (b *Boss) PhaseFor() int {
	switch {
	case b.Health <= b.MaxHealth*0.33:
		return 3
	case b.Health <= b.MaxHealth*0.66:
		return 2
	default:
		return 1
	}
}

// PhaseMultiplier scales the attack cooldown by phase.
func (b *Boss) PhaseMultiplier() float64 {
	switch b.Phase {
	case 2:
		return 0.75
	case 3:
		return 0.5
	default:
		return 1
	}
}

// ToxicCloud is a damage-over-time zone dropped by a boss.
type ToxicCloud struct {
	ID           uint64
	X, Y         float64
	W, H         float64
	LifeTime     float64
	MaxLife      float64
	LastDamageAt float64
}

// Bounds returns the cloud rectangle.
func (c *ToxicCloud) Bounds() core.Rect {
	return core.NewRect(c.X-c.W/2, c.Y-c.H/2, c.W, c.H)
}

// BombWarning marks where an azure bomb will appear.
type BombWarning struct {
	ID     uint64
	X, Y   float64
	FireAt float64
	event  EventID
}

// BossHost receives boss lifecycle callbacks.
type BossHost interface {
	GrantReward(reward string)
	BossDefeated(b *Boss)
	// BossSequenceComplete fires after the level-advance delay.
	BossSequenceComplete(level int)
	AddToxicCloud(c *ToxicCloud)
}

// EnemySpawner places enemies for the summon attack.
type EnemySpawner interface {
	SpawnAt(cat Category, typ EnemyType, x, y float64) *Enemy
}

// BombDropper turns bomb warnings into pickups.
type BombDropper interface {
	SpawnAt(kind CollectibleKind, x, y float64) *Collectible
}

// BossDeps are the collaborators a BossSystem needs.
type BossDeps struct {
	Bosses               map[string]config.BossConfig
	Fight                config.BossFightConfig
	ExtendedWarningDelay float64
	Extended             func() bool
	Canvas               config.CanvasConfig
	RNG                  *SimpleRNG
	Effects              EffectSink
	Projectiles          ProjectileSpawner
	Enemies              EnemySpawner
	Collectibles         BombDropper
	Timer                Timer
	Player               PlayerView
	Host                 BossHost
	Logger               *log.Logger
}

// BossSystem spawns bosses and runs their attacks and bomb loop.
type BossSystem struct {
	deps      BossDeps
	log       *log.Logger
	current   *Boss
	nextID    uint64
	bombTimer float64
	warnings  []*BombWarning
	predicted []Point
}

// NewBossSystem creates an idle boss system.
func NewBossSystem(deps BossDeps) *BossSystem {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BossSystem{deps: deps, log: logger}
}

// Current returns the live boss, or nil.
func (s *BossSystem) Current() *Boss {
	return s.current
}

// Active reports whether a boss is alive.
func (s *BossSystem) Active() bool {
	return s.current != nil
}

// BossBounds returns the live boss rectangle.
func (s *BossSystem) BossBounds() (core.Rect, bool) {
	if s.current == nil {
		return core.Rect{}, false
	}
	return s.current.Bounds(), true
}

// Warnings returns pending bomb warnings.
func (s *BossSystem) Warnings() []*BombWarning {
	return s.warnings
}

// Predictions returns the pre-rolled positions of the next bomb wave.
func (s *BossSystem) Predictions() []Point {
	return s.predicted
}

// SpawnBoss instantiates the boss for level at top center.
// It refuses while another boss is alive.
func (s *BossSystem) SpawnBoss(level int) (*Boss, bool) {
	if s.current != nil {
		return s.current, false
	}
	tpl, cycle, ok := bossTemplateForLevel(level, s.deps.Bosses)
	if !ok {
		s.log.Warn("no boss for level", "level", level)
		return nil, false
	}

	health := tpl.Health * (1 + endlessHealthStep*float64(cycle))
	s.nextID++
	b := &Boss{
		ID:             s.nextID,
		Key:            tpl.Key,
		Name:           tpl.Name,
		Level:          level,
		Cycle:          cycle,
		Reward:         tpl.Reward,
		X:              s.deps.Canvas.Width / 2,
		Y:              tpl.H/2 + 40,
		W:              tpl.W,
		H:              tpl.H,
		Speed:          tpl.Speed,
		Color:          tpl.Color,
		Health:         health,
		MaxHealth:      health,
		Phase:          1,
		Attacks:        tpl.Attacks,
		AttackCooldown: tpl.AttackCooldown,
		AttackTimer:    tpl.AttackCooldown,
	}
	b.baseY = b.Y
	s.current = b
	s.bombTimer = s.deps.Fight.BombInterval
	s.predicted = s.rollBombPositions()

	s.emit(Effect{Kind: EffectBossSpawn, X: b.X, Y: b.Y, Color: b.Color, Count: 30, Text: b.Name})
	s.log.Info("boss spawned", "boss", b.Name, "level", level, "health", health)
	return b, true
}

// Update patrols, checks phase, fires attacks and runs the bomb loop.
func (s *BossSystem) Update(dt float64) {
	b := s.current
	if b == nil {
		return
	}

	b.HitFlash = math.Max(0, b.HitFlash-dt)
	s.patrol(b, dt)
	s.updatePhase(b)

	b.AttackTimer -= dt
	if b.AttackTimer <= 0 {
		for _, a := range b.Attacks {
			s.runAttack(b, a)
		}
		b.AttackTimer = b.AttackCooldown * b.PhaseMultiplier()
	}

	if s.deps.Fight.BombInterval > 0 {
		s.bombTimer -= dt
		if s.bombTimer <= 0 {
			s.dropBombs(b)
			s.bombTimer = s.deps.Fight.BombInterval
		}
	}
}

// patrol sweeps toward a sinusoidal target, limited by boss speed.
func (s *BossSystem) patrol(b *Boss, dt float64) {
	b.patrolTime += dt
	w := s.deps.Canvas.Width
	span := math.Max(0, w/2-b.W/2-20)
	targetX := w/2 + math.Sin(b.patrolTime*0.6)*span
	step := b.Speed * dt
	b.X += core.ClampF(targetX-b.X, -step, step)
	b.Y = b.baseY + math.Sin(b.patrolTime*1.3)*10
}

func (s *BossSystem) updatePhase(b *Boss) {
	phase := b.PhaseFor()
	if phase == b.Phase {
		return
	}
	b.Phase = phase
	s.log.Debug("boss phase", "boss", b.Name, "phase", phase)
}

func (s *BossSystem) runAttack(b *Boss, a AttackPattern) {
	switch a {
	case AttackMeteorSpread:
		s.meteorSpread(b)
	case AttackBigMeteorSpread:
		s.bigMeteorSpread(b)
	case AttackRotatingLasers:
		s.rotatingLasers(b)
	case AttackEnemySpawn:
		s.enemySpawn(b)
	case AttackToxicClouds:
		s.toxicClouds(b)
	default:
		s.log.Warn("unknown boss attack", "attack", int(a))
	}
}

// later schedules fn while b stays the live boss.
func (s *BossSystem) later(b *Boss, delay float64, fn func()) {
	if s.deps.Timer == nil {
		return
	}
	s.deps.Timer.After(delay, func() {
		if s.current != b {
			return
		}
		fn()
	})
}

func (s *BossSystem) now() float64 {
	if s.deps.Timer == nil {
		return 0
	}
	return s.deps.Timer.Now()
}

func (s *BossSystem) meteorSpread(b *Boss) {
	n := 6 + 2*(b.Phase-1)
	offset := s.now() * 0.5
	s.meteorRing(b, n, offset)
	if b.Phase >= 2 {
		s.later(b, secondWaveDelay, func() {
			s.meteorRing(b, n, offset+math.Pi/float64(n))
		})
	}
}

func (s *BossSystem) meteorRing(b *Boss, n int, offset float64) {
	if s.deps.Projectiles == nil {
		return
	}
	for i := range n {
		a := offset + float64(i)*2*math.Pi/float64(n)
		s.deps.Projectiles.Create(ProjectileSpec{
			X:      b.X,
			Y:      b.Y,
			VX:     math.Cos(a) * meteorSpeed,
			VY:     math.Sin(a) * meteorSpeed,
			Kind:   ProjectileMeteor,
			Damage: 1,
			Source: SourceBoss,
			Color:  core.ColorOrange,
		})
	}
}

func (s *BossSystem) bigMeteorSpread(b *Boss) {
	count := 2 + (b.Phase - 1)
	s.aimedBigMeteor(b)
	for i := 1; i < count; i++ {
		s.later(b, float64(i)*bigMeteorStagger, func() { s.aimedBigMeteor(b) })
	}
}

func (s *BossSystem) aimedBigMeteor(b *Boss) {
	if s.deps.Projectiles == nil || s.deps.Player == nil {
		return
	}
	px, py := s.deps.Player.Center()
	a := math.Atan2(py-b.Y, px-b.X)
	s.deps.Projectiles.Create(ProjectileSpec{
		X:      b.X,
		Y:      b.Y + b.H/2,
		VX:     math.Cos(a) * bigMeteorSpeed,
		VY:     math.Sin(a) * bigMeteorSpeed,
		Kind:   ProjectileBigMeteor,
		Damage: 2,
		Source: SourceBoss,
		Color:  core.ColorRed,
	})
}

func (s *BossSystem) rotatingLasers(b *Boss) {
	m := 3 + (b.Phase - 1)
	s.laserFan(b, m)
	for k := 1; k < laserRepeats; k++ {
		s.later(b, float64(k)*laserRepeatGap, func() { s.laserFan(b, m) })
	}
}

// laserFan fires m evenly spaced lasers rotated by the game clock.
func (s *BossSystem) laserFan(b *Boss, m int) {
	if s.deps.Projectiles == nil {
		return
	}
	base := s.now() * laserSpinRate
	for j := range m {
		s.deps.Projectiles.CreateLaser(LaserSpec{
			X:      b.X,
			Y:      b.Y,
			Angle:  base + float64(j)*2*math.Pi/float64(m),
			Length: bossLaserLength,
			Damage: 1,
			Speed:  0,
			Source: SourceBoss,
			Color:  core.ColorBrightRed,
		})
	}
}

func (s *BossSystem) enemySpawn(b *Boss) {
	if s.deps.Enemies == nil {
		return
	}
	k := 1 + b.Phase
	for i := range k {
		x := b.X + (float64(i)-float64(k-1)/2)*50
		y := b.Y + b.H/2 + 30
		cat := Category(s.deps.RNG.Intn(2)) // Rammer or shooter
		typ := EnemyType(s.deps.RNG.Intn(int(enemyTypeCount)))
		s.deps.Enemies.SpawnAt(cat, typ, core.ClampF(x, 20, s.deps.Canvas.Width-20), y)
	}
}

func (s *BossSystem) toxicClouds(b *Boss) {
	if s.deps.Host == nil {
		return
	}
	margin := float64(toxicCloudSize)
	for range b.Phase {
		s.nextID++
		c := &ToxicCloud{
			ID:           s.nextID,
			X:            s.deps.RNG.Range(margin, s.deps.Canvas.Width-margin),
			Y:            s.deps.RNG.Range(s.deps.Canvas.Height*0.3, s.deps.Canvas.Height-margin),
			W:            toxicCloudSize,
			H:            toxicCloudSize,
			LifeTime:     toxicCloudLifetime,
			MaxLife:      toxicCloudLifetime,
			LastDamageAt: math.Inf(-1),
		}
		s.deps.Host.AddToxicCloud(c)
	}
}

// warningDelay is shorter once extended power is unlocked.
func (s *BossSystem) warningDelay() float64 {
	if s.deps.Extended != nil && s.deps.Extended() && s.deps.ExtendedWarningDelay > 0 {
		return s.deps.ExtendedWarningDelay
	}
	return s.deps.Fight.BombWarningDelay
}

func (s *BossSystem) rollBombPositions() []Point {
	n := s.deps.Fight.BombCount
	if n <= 0 {
		return nil
	}
	w, h := s.deps.Canvas.Width, s.deps.Canvas.Height
	out := make([]Point, n)
	for i := range out {
		out[i] = Point{
			X: s.deps.RNG.Range(60, w-60),
			Y: s.deps.RNG.Range(h*0.35, h-60),
		}
	}
	return out
}

// dropBombs places warnings at the predicted positions; each becomes an
// azure bomb after the warning delay. The next wave is rolled right away so
// radar can show it ahead of time.
func (s *BossSystem) dropBombs(b *Boss) {
	positions := s.predicted
	if len(positions) == 0 {
		positions = s.rollBombPositions()
	}
	delay := s.warningDelay()
	for _, p := range positions {
		s.nextID++
		w := &BombWarning{ID: s.nextID, X: p.X, Y: p.Y, FireAt: s.now() + delay}
		s.warnings = append(s.warnings, w)
		s.emit(Effect{Kind: EffectBombWarning, X: p.X, Y: p.Y, Color: core.ColorAzure, Count: 1})
		if s.deps.Timer != nil {
			w.event = s.deps.Timer.After(delay, func() {
				if s.current != b {
					return
				}
				s.removeWarning(w)
				if s.deps.Collectibles != nil {
					s.deps.Collectibles.SpawnAt(AzureBomb, w.X, w.Y)
				}
			})
		}
	}
	s.predicted = s.rollBombPositions()
}

func (s *BossSystem) removeWarning(w *BombWarning) {
	for i, other := range s.warnings {
		if other == w {
			s.warnings = append(s.warnings[:i], s.warnings[i+1:]...)
			return
		}
	}
}

func (s *BossSystem) dropWarnings() {
	for _, w := range s.warnings {
		if s.deps.Timer != nil && w.event != 0 {
			s.deps.Timer.Cancel(w.event)
		}
	}
	s.warnings = nil
	s.predicted = nil
}

// DamageBoss subtracts health and defeats the boss at <= 0.
// Returns true if this hit defeated the boss.
func (s *BossSystem) DamageBoss(amount float64) bool {
	b := s.current
	if b == nil || amount <= 0 {
		return false
	}
	b.Health -= amount
	b.HitFlash = 0.2
	s.emit(Effect{Kind: EffectBossHit, X: b.X, Y: b.Y, Color: core.ColorBrightWhite, Count: 6, Value: int(math.Ceil(amount))})
	if b.Health > 0 {
		s.updatePhase(b)
		return false
	}
	s.defeat(b)
	return true
}

// defeat grants the reward, clears the boss and schedules level completion.
func (s *BossSystem) defeat(b *Boss) {
	b.Health = 0
	if s.deps.Host != nil {
		s.deps.Host.GrantReward(b.Reward)
	}
	s.emit(Effect{Kind: EffectBossDefeat, X: b.X, Y: b.Y, Color: b.Color, Count: 60, Text: b.Name})
	s.emit(Effect{Kind: EffectExplosion, X: b.X, Y: b.Y, Color: core.ColorBrightYellow, Count: 40})

	s.current = nil
	s.dropWarnings()
	s.log.Info("boss defeated", "boss", b.Name, "level", b.Level, "reward", b.Reward)

	if s.deps.Host == nil {
		return
	}
	s.deps.Host.BossDefeated(b)
	level := b.Level
	if s.deps.Timer == nil {
		s.deps.Host.BossSequenceComplete(level)
		return
	}
	s.deps.Timer.After(s.deps.Fight.LevelAdvanceDelay, func() {
		s.deps.Host.BossSequenceComplete(level)
	})
}

func (s *BossSystem) emit(fx Effect) {
	if s.deps.Effects != nil {
		s.deps.Effects.Emit(fx)
	}
}

// Clear removes the boss and every pending warning.
func (s *BossSystem) Clear() {
	s.current = nil
	s.dropWarnings()
	s.bombTimer = 0
}
