package starsurge

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
	"github.com/vovakirdan/starsurge/internal/registry"
)

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
	StateVictory  = "victory" // Campaign completed
)

// GameMode selects campaign or endless play.
type GameMode int

const (
	ModeCampaign GameMode = iota // Win after the last configured level
	ModeEndless                  // Bosses cycle forever
)

// powerUpReadyFlash is how long the HUD highlights a power-up that came ready.
const powerUpReadyFlash = 0.6

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// defaultLogger is used by games created through the registry.
var defaultLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to registry-created games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

func init() {
	registry.Register("starsurge", func() registry.Game { return New() })
	registry.Register("starsurge_endless", func() registry.Game { return NewEndless() })
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the game logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithDocument uses doc instead of loading configuration from disk.
func WithDocument(doc config.Document) Option {
	return func(g *Game) {
		d := doc.Clone()
		g.override = &d
	}
}

// Game is the orchestrator. It owns every subsystem, the scheduler and the
// session counters, and advances them in a fixed order each tick.
type Game struct {
	mode     GameMode
	log      *log.Logger
	override *config.Document
	doc      config.Document
	loaded   bool

	runtime core.RuntimeConfig
	rng     *SimpleRNG
	sched   *Scheduler
	effects *effectBuffer

	player       *Player
	powerState   *PowerUpState
	projectiles  *ProjectileSystem
	enemies      *EnemySystem
	collectibles *CollectibleSystem
	powerups     *PowerUpSystem
	boss         *BossSystem
	clouds       []*ToxicCloud

	state       string
	score       int
	lives       int
	level       int
	stars       int
	tickCount   int
	endless     bool    // Playing past the campaign or in endless mode
	bossFight   bool    // Set from boss spawn until the level advances
	worldFreeze float64 // Enemies and boss hold still while > 0

	iconReady [powerUpKeyCount]bool
	iconFlash [powerUpKeyCount]float64 // HUD highlight after a power-up comes ready
}

// New creates a campaign game. Configuration is loaded on first Reset.
func New(opts ...Option) *Game {
	g := &Game{mode: ModeCampaign, log: defaultLogger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewEndless creates a game that starts in endless mode.
func NewEndless(opts ...Option) *Game {
	g := New(opts...)
	g.mode = ModeEndless
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "starsurge_endless"
	}
	return "starsurge"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Starsurge (Endless)"
	}
	return "Starsurge"
}

func (g *Game) loadDocument() {
	if g.override != nil {
		g.doc = g.override.Clone()
	} else {
		doc, src, err := config.Load(configPath, g.log)
		if err != nil {
			g.log.Error("config load failed, using defaults", "err", err)
			doc = config.DefaultDocument()
			src = config.SourceBuiltin
		}
		g.log.Debug("config loaded", "source", string(src))
		g.doc = doc
	}
	if difficultyPreset != "" && difficultyPreset != config.DifficultyNormal {
		g.doc = config.ApplyPreset(g.doc, difficultyPreset)
	}
	g.loaded = true
}

// build wires every subsystem once. Later resets clear them in place.
func (g *Game) build() {
	doc := &g.doc
	g.rng = NewSimpleRNG(g.runtime.Seed)
	g.sched = NewScheduler()
	g.effects = newEffectBuffer(g.sched.Now)
	g.player = NewPlayer(doc.Player, doc.Canvas)
	g.powerState = NewPowerUpState()
	g.powerState.Subscribe(g.syncPowerUpIcon)
	g.projectiles = NewProjectileSystem(doc.Canvas, g.effects)

	g.enemies = NewEnemySystem(EnemyDeps{
		Config:      doc.Enemies,
		Canvas:      doc.Canvas,
		RNG:         g.rng,
		Effects:     g.effects,
		Score:       g,
		Projectiles: g.projectiles,
		Timer:       g.sched,
		Player:      g.player,
		Logger:      g.log.WithPrefix("enemies"),
	})
	g.powerups = NewPowerUpSystem(PowerUpDeps{
		PowerUps:    doc.PowerUps,
		Extended:    doc.ExtendedPower,
		State:       g.powerState,
		Effects:     g.effects,
		Score:       g,
		Enemies:     g.enemies,
		Projectiles: g.projectiles,
		Player:      g.player,
		Logger:      g.log.WithPrefix("powerups"),
	})
	g.collectibles = NewCollectibleSystem(CollectibleDeps{
		Collectables: doc.Collectables,
		ComboBonus:   doc.GameProgression.ComboBonus,
		Canvas:       doc.Canvas,
		RNG:          g.rng,
		Effects:      g.effects,
		Host:         g,
		Enemies:      g.enemies,
		Boss:         g,
		Logger:       g.log.WithPrefix("collectibles"),
	})
	g.boss = NewBossSystem(BossDeps{
		Bosses:               doc.Bosses,
		Fight:                doc.BossFight,
		ExtendedWarningDelay: doc.ExtendedPower.BombWarningDelay,
		Extended:             g.powerups.Extended,
		Canvas:               doc.Canvas,
		RNG:                  g.rng,
		Effects:              g.effects,
		Projectiles:          g.projectiles,
		Enemies:              g.enemies,
		Collectibles:         g.collectibles,
		Timer:                g.sched,
		Player:               g.player,
		Host:                 g,
		Logger:               g.log.WithPrefix("boss"),
	})
}

// Reset starts a new session. Every subsystem is cleared, pending scheduled
// events are invalidated and the RNG is reseeded. Unlocks survive unless
// gameProgression.resetRelocksPowerUps is set.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if !g.loaded {
		g.loadDocument()
	}

	if g.sched == nil {
		g.build()
	} else {
		relock := g.doc.GameProgression.ResetRelocksPowerUps
		g.sched.Reset()
		g.effects.Clear()
		g.enemies.Clear()
		g.collectibles.Clear()
		g.projectiles.Clear()
		g.boss.Clear()
		g.powerups.Clear(relock)
		g.powerState.Clear(relock)
		*g.rng = *NewSimpleRNG(runtime.Seed)
	}
	g.player.Reset()
	g.clouds = nil

	g.score = 0
	g.lives = g.doc.Player.StartingLives
	g.level = max(1, g.doc.Player.StartingLevel)
	g.stars = 0
	g.tickCount = 0
	g.endless = g.mode == ModeEndless
	g.bossFight = false
	g.worldFreeze = 0
	g.state = StatePlaying

	g.powerups.CheckUnlocks(g.level)
	g.startLevel()
	g.resetPowerUpIcons()
	g.log.Info("session started", "mode", g.ID(), "level", g.level, "lives", g.lives, "seed", runtime.Seed)
}

// isBossLevel reports whether level is fought against a boss. Past the
// configured list, endless play puts a boss on every 15th level.
func (g *Game) isBossLevel(level int) bool {
	if g.doc.IsBossLevel(level) {
		return true
	}
	return g.endless && level%bossCycleLength == 0
}

func (g *Game) startLevel() {
	bossLevel := g.isBossLevel(g.level)
	g.collectibles.SetLevel(g.level, bossLevel)
	g.enemies.SpawnEnemies(g.level, bossLevel)
	if !bossLevel {
		return
	}
	if _, ok := g.boss.SpawnBoss(g.level); ok {
		g.bossFight = true
		g.powerups.StartBossRadar(g.level)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	// Handle restart
	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateVictory) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Continue into endless after the campaign
	if in.Has(core.ActionConfirm) && g.state == StateVictory && g.powerState.IsUnlocked(PowerEndlessMode) {
		g.continueEndless()
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickSeconds()
	g.tickCount++

	g.sched.Advance(dt)
	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}
	g.powerState.Tick(dt)
	for k := range g.iconFlash {
		g.iconFlash[k] = math.Max(0, g.iconFlash[k]-dt)
	}

	mx, my := in.Move()
	g.player.Update(dt, mx, my)

	if in.Has(core.ActionShield) {
		g.powerups.TryActivate(PowerShield)
	}
	if in.Has(core.ActionIonPulse) {
		g.powerups.TryActivate(PowerIonPulse)
	}
	if in.Has(core.ActionRadar) {
		g.powerups.TryActivate(PowerRadar)
	}

	g.worldFreeze = math.Max(0, g.worldFreeze-dt)
	frozen := g.worldFreeze > 0

	g.enemies.Update(dt, frozen)
	g.enemies.HandleRespawn(dt)
	g.powerups.Update(dt)
	g.collectibles.Update(dt, g.player.Bounds())
	g.projectiles.Update(dt)
	if !frozen {
		g.boss.Update(dt)
	}
	g.updateClouds(dt)

	g.checkCollisions()
	g.checkLevelComplete()

	return core.StepResult{State: g.State()}
}

// syncPowerUpIcon flashes a HUD power-up when it becomes usable.
func (g *Game) syncPowerUpIcon(key PowerUpKey, rec PowerUpRecord) {
	ready := rec.Unlocked && !rec.Active && rec.Cooldown <= 0
	was := g.iconReady[key]
	g.iconReady[key] = ready
	if !ready {
		g.iconFlash[key] = 0
		return
	}
	if was || key == PowerStarPower || key == PowerEndlessMode {
		return
	}
	g.iconFlash[key] = powerUpReadyFlash
	px, py := g.player.Center()
	g.effects.Emit(Effect{Kind: EffectPowerUpReady, X: px, Y: py, Color: core.ColorBrightGreen, Text: key.String()})
	g.log.Debug("power-up ready", "key", key)
}

// resetPowerUpIcons takes the current records as the baseline without
// flashing anything.
func (g *Game) resetPowerUpIcons() {
	for _, k := range AllPowerUps {
		rec := g.powerState.Get(k)
		g.iconReady[k] = rec.Unlocked && !rec.Active && rec.Cooldown <= 0
		g.iconFlash[k] = 0
	}
}

func (g *Game) updateClouds(dt float64) {
	kept := g.clouds[:0]
	for _, c := range g.clouds {
		c.LifeTime -= dt
		if c.LifeTime > 0 {
			kept = append(kept, c)
		}
	}
	clear(g.clouds[len(kept):])
	g.clouds = kept
}

// checkCollisions resolves body contact, projectiles and toxic clouds.
func (g *Game) checkCollisions() {
	pb := g.player.Bounds()

	for _, e := range slices.Clone(g.enemies.Live()) {
		if g.state != StatePlaying {
			return
		}
		if !core.RectOverlap(pb, e.Bounds()) {
			continue
		}
		if g.player.StarPowered() {
			g.enemies.Kill(e)
			continue
		}
		g.DamagePlayer(e.Damage)
	}

	if r, ok := g.boss.BossBounds(); ok && core.RectOverlap(pb, r) {
		g.DamagePlayer(1)
	}

	g.projectiles.CheckCollisions(g.enemies, g.boss, playerHitbox{g})

	now := g.sched.Now()
	for _, c := range g.clouds {
		if g.state != StatePlaying {
			return
		}
		if !core.RectOverlap(pb, c.Bounds()) || now-c.LastDamageAt < ToxicDamageInterval {
			continue
		}
		c.LastDamageAt = now
		g.DamagePlayer(1)
	}
}

// checkLevelComplete advances once enough gold stars are collected.
// Boss fights complete through the boss defeat handoff instead.
func (g *Game) checkLevelComplete() {
	if g.state != StatePlaying || g.bossFight {
		return
	}
	if g.stars >= g.doc.GameProgression.StarsPerLevel {
		g.levelComplete()
	}
}

func (g *Game) levelComplete() {
	from := g.level
	g.level++
	g.stars = 0
	g.bossFight = false

	g.projectiles.Clear()
	g.collectibles.ClearItems()
	g.boss.Clear()
	g.clouds = nil
	g.effects.Emit(Effect{Kind: EffectLevelUp, Value: g.level, Color: core.ColorBrightGreen})
	g.log.Info("level complete", "level", from, "score", g.score)

	if !g.endless && g.level > g.doc.GameProgression.MaxLevel {
		g.enemies.Clear()
		g.state = StateVictory
		g.log.Info("campaign complete", "score", g.score)
		return
	}

	g.powerups.CheckUnlocks(g.level)
	g.startLevel()
}

func (g *Game) continueEndless() {
	g.endless = true
	g.state = StatePlaying
	g.log.Info("continuing in endless mode", "level", g.level)
	g.powerups.CheckUnlocks(g.level)
	g.startLevel()
}

// Immune reports whether hits are ignored: shield or star power.
func (g *Game) Immune() bool {
	return g.powerups.ShieldActive() || g.player.StarPowered()
}

// DamagePlayer applies one hit. Returns false if the hit cost a life.
func (g *Game) DamagePlayer(_ float64) bool {
	if g.state != StatePlaying || g.Immune() {
		return true
	}
	if g.player.TakeDamage() {
		return true
	}

	g.lives--
	g.worldFreeze = g.doc.Player.HitFreeze
	g.effects.Emit(Effect{Kind: EffectLifeLost, X: g.player.X, Y: g.player.Y, Color: core.ColorBrightRed, Count: 20, Value: g.lives})
	g.log.Debug("life lost", "lives", g.lives, "level", g.level)

	if g.lives <= 0 {
		g.lives = 0
		g.state = StateGameOver
		g.log.Info("game over", "score", g.score, "level", g.level)
	}
	return false
}

// AddScore adds points to the session score.
func (g *Game) AddScore(points int) {
	if points > 0 {
		g.score += points
	}
}

// AddStar counts one gold star toward level completion.
func (g *Game) AddStar() {
	g.stars++
}

// AddLife grants one extra life.
func (g *Game) AddLife() {
	g.lives++
	g.effects.Emit(Effect{Kind: EffectExtraLife, X: g.player.X, Y: g.player.Y, Color: core.ColorBrightRed, Value: g.lives})
}

// GrantStarPower starts or extends star power.
func (g *Game) GrantStarPower(seconds float64) {
	g.player.GrantStarPower(seconds)
	g.powerState.Activate(PowerStarPower, g.player.StarPowerTime)
}

// DamageBoss forwards azure bomb hits to the live boss.
func (g *Game) DamageBoss(amount float64) bool {
	return g.boss.DamageBoss(amount)
}

// GrantReward applies a boss reward.
func (g *Game) GrantReward(reward string) {
	if !g.powerups.GrantReward(reward) {
		g.log.Warn("boss reward ignored", "reward", reward)
		return
	}
	if reward == config.EndlessMode && !g.endless {
		g.endless = true
		g.log.Info("endless mode unlocked", "level", g.level)
	}
}

// BossDefeated runs while the level-advance delay is pending.
func (g *Game) BossDefeated(b *Boss) {
	g.powerups.StopBossRadar()
	g.clouds = nil
	g.log.Debug("boss sequence resolving", "boss", b.Name, "delay", g.doc.BossFight.LevelAdvanceDelay)
}

// BossSequenceComplete advances past a boss level after the defeat delay.
func (g *Game) BossSequenceComplete(level int) {
	if g.state != StatePlaying || g.level != level {
		return
	}
	g.levelComplete()
}

// AddToxicCloud places a boss cloud.
func (g *Game) AddToxicCloud(c *ToxicCloud) {
	g.clouds = append(g.clouds, c)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Level:    g.level,
		GameOver: g.state == StateGameOver || g.state == StateVictory,
		Victory:  g.state == StateVictory,
		Paused:   g.state == StatePaused,
	}
}

// StateName returns the state string.
func (g *Game) StateName() string { return g.state }

// Mode returns the game mode.
func (g *Game) Mode() GameMode { return g.mode }

// Endless reports whether endless rules are in force.
func (g *Game) Endless() bool { return g.endless }

// Stars returns gold stars collected on the current level.
func (g *Game) Stars() int { return g.stars }

// BossFightInProgress reports whether a boss fight or its defeat delay is running.
func (g *Game) BossFightInProgress() bool { return g.bossFight }

// WorldFreeze returns the remaining world freeze after a life loss.
func (g *Game) WorldFreeze() float64 { return g.worldFreeze }

// Document returns the active configuration.
func (g *Game) Document() config.Document { return g.doc }

// Player returns the avatar.
func (g *Game) Player() *Player { return g.player }

// Enemies returns the enemy system.
func (g *Game) Enemies() *EnemySystem { return g.enemies }

// Collectibles returns the collectible system.
func (g *Game) Collectibles() *CollectibleSystem { return g.collectibles }

// PowerUps returns the power-up system.
func (g *Game) PowerUps() *PowerUpSystem { return g.powerups }

// Projectiles returns the projectile system.
func (g *Game) Projectiles() *ProjectileSystem { return g.projectiles }

// Boss returns the boss system.
func (g *Game) Boss() *BossSystem { return g.boss }

// Scheduler returns the game-owned event queue.
func (g *Game) Scheduler() *Scheduler { return g.sched }

// Clouds returns the live toxic clouds.
func (g *Game) Clouds() []*ToxicCloud { return g.clouds }

// playerHitbox adapts the game to the projectile hit surface.
type playerHitbox struct{ g *Game }

func (h playerHitbox) Bounds() core.Rect { return h.g.player.Bounds() }

func (h playerHitbox) Immune() bool { return h.g.Immune() }

func (h playerHitbox) DamagePlayer(amount float64) bool { return h.g.DamagePlayer(amount) }
