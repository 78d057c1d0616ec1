package starsurge

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// CollectibleKind is a pickup type.
type CollectibleKind int

const (
	GoldStar CollectibleKind = iota
	GreenStar
	BlueStar
	PurpleStar
	RedRocket
	AzureBomb
	collectibleKindCount
)

// Rolling windows for streak tracking, in seconds.
const (
	consecutiveWindow = 3.0
	comboWindow       = 2.0
	comboThreshold    = 5
	collectibleSize   = 20
)

// String returns the config key for the kind.
func (k CollectibleKind) String() string {
	switch k {
	case GoldStar:
		return config.GoldStar
	case GreenStar:
		return config.GreenStar
	case BlueStar:
		return config.BlueStar
	case PurpleStar:
		return config.PurpleStar
	case RedRocket:
		return config.RedRocket
	case AzureBomb:
		return config.AzureBomb
	default:
		return "unknown"
	}
}

// IsStar reports whether the kind counts toward star streaks.
func (k CollectibleKind) IsStar() bool {
	return k >= GoldStar && k <= PurpleStar
}

// Color returns the display color.
func (k CollectibleKind) Color() core.Color {
	switch k {
	case GoldStar:
		return core.ColorBrightYellow
	case GreenStar:
		return core.ColorBrightGreen
	case BlueStar:
		return core.ColorBrightBlue
	case PurpleStar:
		return core.ColorPurple
	case RedRocket:
		return core.ColorBrightRed
	case AzureBomb:
		return core.ColorAzure
	default:
		return core.ColorDefault
	}
}

// Collectible is a timed pickup. Positions are centers.
type Collectible struct {
	ID       uint64
	Kind     CollectibleKind
	X, Y     float64
	W, H     float64
	LifeTime float64
	MaxLife  float64
}

// Bounds returns the pickup rectangle.
func (c *Collectible) Bounds() core.Rect {
	return core.NewRect(c.X-c.W/2, c.Y-c.H/2, c.W, c.H)
}

// CollectibleHost receives the effects of pickups.
type CollectibleHost interface {
	ScoreSink
	AddStar()
	AddLife()
	GrantStarPower(seconds float64)
}

// EnemyControl is the roster surface pickups act on.
type EnemyControl interface {
	Count() int
	FreezeAll(d float64) int
	ClearAll() int
}

// BossDamager is the boss surface hit by azure bombs.
type BossDamager interface {
	DamageBoss(amount float64) bool
}

// CollectibleDeps are the collaborators a CollectibleSystem needs.
type CollectibleDeps struct {
	Collectables map[string]config.CollectableConfig
	ComboBonus   int
	Canvas       config.CanvasConfig
	RNG          *SimpleRNG
	Effects      EffectSink
	Host         CollectibleHost
	Enemies      EnemyControl
	Boss         BossDamager
	Logger       *log.Logger
}

// CollectibleSystem spawns pickups and applies their effects.
type CollectibleSystem struct {
	deps       CollectibleDeps
	log        *log.Logger
	items      []*Collectible
	nextID     uint64
	level      int
	bossLevel  bool
	spawnTimer float64
	clock      float64

	consecutiveStars int
	lastStarAt       float64
	starCombo        int
	lastComboAt      float64
}

// NewCollectibleSystem creates an empty collectible system.
func NewCollectibleSystem(deps CollectibleDeps) *CollectibleSystem {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &CollectibleSystem{deps: deps, log: logger}
	s.resetStreaks()
	return s
}

// SetLevel switches the spawn table to a new level.
func (s *CollectibleSystem) SetLevel(level int, bossLevel bool) {
	s.level = level
	s.bossLevel = bossLevel
	s.spawnTimer = s.SpawnCooldown()
}

// SpawnCooldown returns the delay between spawn attempts for the level.
func (s *CollectibleSystem) SpawnCooldown() float64 {
	return math.Max(0.5, 2.5-float64(s.level)*0.05)
}

func (s *CollectibleSystem) cfg(k CollectibleKind) (config.CollectableConfig, bool) {
	c, ok := s.deps.Collectables[k.String()]
	return c, ok
}

// globalCap is the max across all type-specific caps.
func (s *CollectibleSystem) globalCap() int {
	n := 0
	for _, c := range s.deps.Collectables {
		n = max(n, c.MaxSpawned)
	}
	return n
}

func (s *CollectibleSystem) countKind(k CollectibleKind) int {
	n := 0
	for _, c := range s.items {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Weight returns the current roll weight of k, 0 when it cannot spawn.
func (s *CollectibleSystem) Weight(k CollectibleKind) float64 {
	c, ok := s.cfg(k)
	if !ok {
		return 0
	}
	if c.MaxSpawned > 0 && s.countKind(k) >= c.MaxSpawned {
		return 0
	}
	if s.bossLevel {
		return c.BossWeight
	}
	if s.level < c.SpawnStartLevel {
		return 0
	}
	if c.SpawnFrequency > 0 && s.level%c.SpawnFrequency != 0 {
		return 0
	}
	if k == PurpleStar && c.ConsecutiveThreshold > 0 && s.consecutiveStars >= c.ConsecutiveThreshold {
		return c.BoostedWeight
	}
	return c.Weight
}

// TrySpawn rolls one pickup if the global cap allows it.
func (s *CollectibleSystem) TrySpawn() (*Collectible, bool) {
	if len(s.items) >= s.globalCap() {
		return nil, false
	}
	table := make([]weighted[CollectibleKind], 0, collectibleKindCount)
	for k := range collectibleKindCount {
		table = append(table, weighted[CollectibleKind]{value: k, weight: s.Weight(k)})
	}
	kind, ok := pickWeighted(s.deps.RNG, table)
	if !ok {
		return nil, false
	}
	margin := 40.0
	x := s.deps.RNG.Range(margin, s.deps.Canvas.Width-margin)
	y := s.deps.RNG.Range(margin, s.deps.Canvas.Height-margin)
	return s.SpawnAt(kind, x, y), true
}

// SpawnAt places a pickup directly, bypassing the spawn table and caps.
func (s *CollectibleSystem) SpawnAt(kind CollectibleKind, x, y float64) *Collectible {
	life := 8.0
	if c, ok := s.cfg(kind); ok && c.Duration > 0 {
		life = c.Duration
	}
	s.nextID++
	c := &Collectible{
		ID:       s.nextID,
		Kind:     kind,
		X:        x,
		Y:        y,
		W:        collectibleSize,
		H:        collectibleSize,
		LifeTime: life,
		MaxLife:  life,
	}
	s.items = append(s.items, c)
	return c
}

// Update spawns on cadence, expires old pickups and streak windows, then
// collects everything overlapping the player.
func (s *CollectibleSystem) Update(dt float64, player core.Rect) {
	s.clock += dt

	s.spawnTimer -= dt
	if s.spawnTimer <= 0 {
		s.TrySpawn()
		s.spawnTimer = s.SpawnCooldown()
	}

	kept := s.items[:0]
	for _, c := range s.items {
		c.LifeTime -= dt
		if c.LifeTime > 0 {
			kept = append(kept, c)
		}
	}
	clear(s.items[len(kept):])
	s.items = kept

	if s.consecutiveStars > 0 && s.clock-s.lastStarAt > consecutiveWindow {
		s.consecutiveStars = 0
	}
	if s.starCombo > 0 && s.clock-s.lastComboAt > comboWindow {
		s.starCombo = 0
	}

	s.CheckPickups(player)
}

// CheckPickups collects every pickup overlapping the player rectangle.
func (s *CollectibleSystem) CheckPickups(player core.Rect) int {
	n := 0
	for i := 0; i < len(s.items); {
		c := s.items[i]
		if !core.RectOverlap(c.Bounds(), player) {
			i++
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.Apply(c)
		n++
	}
	return n
}

// Apply runs the pickup effect exactly once.
func (s *CollectibleSystem) Apply(c *Collectible) {
	cfg, _ := s.cfg(c.Kind)
	host := s.deps.Host

	if s.deps.Effects != nil {
		s.deps.Effects.Emit(Effect{Kind: EffectPickup, X: c.X, Y: c.Y, Color: c.Kind.Color(), Count: 8, Text: c.Kind.String()})
	}

	switch c.Kind {
	case GoldStar:
		s.award(cfg.Score, c)
		if host != nil {
			host.AddStar()
		}
	case GreenStar:
		s.award(cfg.Score, c)
		if s.deps.Enemies != nil {
			s.deps.Enemies.FreezeAll(cfg.FreezeDuration)
		}
	case BlueStar:
		s.award(cfg.Score, c)
		if host != nil {
			host.GrantStarPower(cfg.StarPowerDuration)
		}
	case PurpleStar:
		if s.deps.Enemies != nil {
			s.award(s.deps.Enemies.Count(), c)
			s.deps.Enemies.ClearAll()
		}
	case RedRocket:
		if host != nil {
			host.AddLife()
		}
	case AzureBomb:
		if s.deps.Boss != nil {
			s.deps.Boss.DamageBoss(cfg.Damage)
		}
	default:
		s.log.Warn("unknown collectible kind", "kind", int(c.Kind))
		return
	}

	s.trackStreaks(c.Kind)
}

func (s *CollectibleSystem) award(points int, c *Collectible) {
	if points <= 0 || s.deps.Host == nil {
		return
	}
	s.deps.Host.AddScore(points)
	if s.deps.Effects != nil {
		s.deps.Effects.Emit(Effect{Kind: EffectScorePopup, X: c.X, Y: c.Y, Value: points, Color: c.Kind.Color()})
	}
}

func (s *CollectibleSystem) trackStreaks(kind CollectibleKind) {
	if !kind.IsStar() {
		s.consecutiveStars = 0
		s.starCombo = 0
		return
	}

	if kind == PurpleStar {
		s.consecutiveStars = 0
	} else {
		if s.consecutiveStars > 0 && s.clock-s.lastStarAt <= consecutiveWindow {
			s.consecutiveStars++
		} else {
			s.consecutiveStars = 1
		}
		s.lastStarAt = s.clock
	}

	if s.starCombo > 0 && s.clock-s.lastComboAt <= comboWindow {
		s.starCombo++
	} else {
		s.starCombo = 1
	}
	s.lastComboAt = s.clock

	if s.starCombo >= comboThreshold && s.deps.ComboBonus > 0 && s.deps.Host != nil {
		s.deps.Host.AddScore(s.deps.ComboBonus)
		if s.deps.Effects != nil {
			s.deps.Effects.Emit(Effect{Kind: EffectCombo, Value: s.starCombo, Color: core.ColorBrightMagenta})
		}
	}
}

// ConsecutiveStars returns the current 3-second star streak.
func (s *CollectibleSystem) ConsecutiveStars() int {
	return s.consecutiveStars
}

// StarCombo returns the current 2-second combo count.
func (s *CollectibleSystem) StarCombo() int {
	return s.starCombo
}

// Items returns the live pickups. Callers must not retain it across updates.
func (s *CollectibleSystem) Items() []*Collectible {
	return s.items
}

// Len returns the number of live pickups.
func (s *CollectibleSystem) Len() int {
	return len(s.items)
}

// ClearItems drops every pickup but keeps streaks.
func (s *CollectibleSystem) ClearItems() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *CollectibleSystem) resetStreaks() {
	s.consecutiveStars = 0
	s.starCombo = 0
	s.lastStarAt = math.Inf(-1)
	s.lastComboAt = math.Inf(-1)
}

// Clear drops every pickup and zeroes streaks and clocks.
func (s *CollectibleSystem) Clear() {
	s.ClearItems()
	s.resetStreaks()
	s.level = 0
	s.bossLevel = false
	s.spawnTimer = 0
	s.clock = 0
}
