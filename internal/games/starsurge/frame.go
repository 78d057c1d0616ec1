package starsurge

import "github.com/vovakirdan/starsurge/internal/core"

// EntityKind tags an entity in a Frame.
type EntityKind int

const (
	EntityPlayer EntityKind = iota
	EntityEnemy
	EntityBoss
	EntityProjectile
	EntityLaser
	EntityCollectible
	EntityToxicCloud
	EntityBombWarning
	EntityBombPrediction
)

// String returns the entity kind name.
func (k EntityKind) String() string {
	switch k {
	case EntityPlayer:
		return "player"
	case EntityEnemy:
		return "enemy"
	case EntityBoss:
		return "boss"
	case EntityProjectile:
		return "projectile"
	case EntityLaser:
		return "laser"
	case EntityCollectible:
		return "collectible"
	case EntityToxicCloud:
		return "toxicCloud"
	case EntityBombWarning:
		return "bombWarning"
	case EntityBombPrediction:
		return "bombPrediction"
	default:
		return "unknown"
	}
}

// EntityView is the renderer-facing state of one entity.
// X, Y is the center; lasers also carry their far end in X2, Y2.
type EntityView struct {
	Kind   EntityKind
	ID     uint64
	Type   string // Template key, collectible key or projectile kind
	X, Y   float64
	X2, Y2 float64
	W, H   float64
	Angle  float64
	Color  core.Color
	Health float64 // Fraction in [0, 1], 1 for entities without health
	Phase  int
	Frozen bool
	Fading bool // Less than a quarter of the lifetime left
	Marked bool // Highlighted by radar or a power-up
}

// PowerUpView is the HUD state of one power-up.
type PowerUpView struct {
	Key      string
	Unlocked bool
	Active   bool
	Cooldown float64
	Duration float64
	Ready    bool // Came off cooldown or was unlocked moments ago
}

// BossView is the HUD state of the live boss.
type BossView struct {
	Name      string
	Health    float64
	MaxHealth float64
	Phase     int
}

// HUD holds the session numbers shown around the playfield.
type HUD struct {
	Score         int
	Lives         int
	Level         int
	Stars         int
	StarsRequired int
	State         string
	Endless       bool
	Extended      bool
	Radar         bool
	StarPower     float64
	WorldFreeze   float64
	Combo         int
	Streak        int
	Boss          *BossView
	PowerUps      []PowerUpView
}

// Frame is everything a renderer needs to draw one tick.
type Frame struct {
	Tick     int
	Time     float64
	Width    float64
	Height   float64
	Entities []EntityView
	HUD      HUD
	Effects  []Effect // Emitted since the previous Frame call
}

// Frame exports the current state and drains pending effects.
func (g *Game) Frame() Frame {
	f := g.peekFrame()
	f.Effects = g.effects.Drain()
	return f
}

// peekFrame builds a Frame without touching the effect queue.
func (g *Game) peekFrame() Frame {
	f := Frame{
		Tick:   g.tickCount,
		Time:   g.sched.Now(),
		Width:  g.doc.Canvas.Width,
		Height: g.doc.Canvas.Height,
		HUD:    g.hud(),
	}
	radar := g.powerups.RadarActive()

	for _, c := range g.clouds {
		f.Entities = append(f.Entities, EntityView{
			Kind: EntityToxicCloud, ID: c.ID, Type: "toxicCloud",
			X: c.X, Y: c.Y, W: c.W, H: c.H,
			Color: core.ColorToxic, Health: 1,
			Fading: c.LifeTime < c.MaxLife/4,
		})
	}
	for _, w := range g.boss.Warnings() {
		f.Entities = append(f.Entities, EntityView{
			Kind: EntityBombWarning, ID: w.ID, Type: AzureBomb.String(),
			X: w.X, Y: w.Y, W: collectibleSize, H: collectibleSize,
			Color: core.ColorAzure, Health: 1,
		})
	}
	if radar {
		for _, p := range g.boss.Predictions() {
			f.Entities = append(f.Entities, EntityView{
				Kind: EntityBombPrediction, Type: AzureBomb.String(),
				X: p.X, Y: p.Y, W: collectibleSize, H: collectibleSize,
				Color: core.ColorGray, Health: 1, Marked: true,
			})
		}
	}
	for _, c := range g.collectibles.Items() {
		f.Entities = append(f.Entities, EntityView{
			Kind: EntityCollectible, ID: c.ID, Type: c.Kind.String(),
			X: c.X, Y: c.Y, W: c.W, H: c.H,
			Color: c.Kind.Color(), Health: 1,
			Fading: c.LifeTime < c.MaxLife/4,
			Marked: radar,
		})
	}
	for _, e := range g.enemies.Live() {
		f.Entities = append(f.Entities, EntityView{
			Kind: EntityEnemy, ID: e.ID, Type: TemplateKey(e.Category, e.Type),
			X: e.X, Y: e.Y, W: e.W, H: e.H, Angle: e.Angle,
			Color: e.Color, Health: e.HealthFraction(), Frozen: e.Frozen(),
		})
	}
	if b := g.boss.Current(); b != nil {
		f.Entities = append(f.Entities, EntityView{
			Kind: EntityBoss, ID: b.ID, Type: b.Key,
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Color: b.Color, Health: b.HealthFraction(), Phase: b.Phase,
			Marked: b.HitFlash > 0,
		})
	}
	for _, p := range g.projectiles.Projectiles() {
		v := EntityView{
			ID: p.ID, Type: p.Kind.String(),
			X: p.X, Y: p.Y, W: p.W, H: p.H, Angle: p.Angle,
			Color: p.Color, Health: 1,
		}
		if p.Kind == ProjectileLaser {
			v.Kind = EntityLaser
			v.X2, v.Y2 = p.End()
		} else {
			v.Kind = EntityProjectile
		}
		f.Entities = append(f.Entities, v)
	}

	pl := g.player
	f.Entities = append(f.Entities, EntityView{
		Kind: EntityPlayer, Type: "player",
		X: pl.X, Y: pl.Y, W: pl.W, H: pl.H, Angle: pl.Angle,
		Color: core.ColorBrightCyan, Health: 1,
		Fading: pl.DamageFlash > 0,
		Marked: g.Immune(),
	})
	return f
}

func (g *Game) hud() HUD {
	h := HUD{
		Score:         g.score,
		Lives:         g.lives,
		Level:         g.level,
		Stars:         g.stars,
		StarsRequired: g.doc.GameProgression.StarsPerLevel,
		State:         g.state,
		Endless:       g.endless,
		Extended:      g.powerups.Extended(),
		Radar:         g.powerups.RadarActive(),
		StarPower:     g.player.StarPowerTime,
		WorldFreeze:   g.worldFreeze,
		Combo:         g.collectibles.StarCombo(),
		Streak:        g.collectibles.ConsecutiveStars(),
	}
	if b := g.boss.Current(); b != nil {
		h.Boss = &BossView{Name: b.Name, Health: b.Health, MaxHealth: b.MaxHealth, Phase: b.Phase}
	}
	for _, key := range []PowerUpKey{PowerShield, PowerIonPulse, PowerRadar} {
		rec := g.powerState.Get(key)
		h.PowerUps = append(h.PowerUps, PowerUpView{
			Key:      key.String(),
			Unlocked: rec.Unlocked,
			Active:   rec.Active,
			Cooldown: rec.Cooldown,
			Duration: rec.Duration,
			Ready:    g.iconFlash[key] > 0,
		})
	}
	return h
}
