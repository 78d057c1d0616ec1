package starsurge

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// Ion pulse numbers that are not configurable.
const (
	ionPulseKillPoints = 5
	ionShardCount      = 8
	ionShardSpeed      = 300
	ionShardDamage     = 1
)

// EnemyArea is the roster surface shield and ion pulse act on.
type EnemyArea interface {
	FreezeWithin(x, y, r, d float64) int
	DamageWithin(x, y, r, amount float64) int
}

// PowerUpDeps are the collaborators a PowerUpSystem needs.
type PowerUpDeps struct {
	PowerUps    map[string]config.PowerUpConfig
	Extended    config.ExtendedPowerConfig
	State       *PowerUpState
	Effects     EffectSink
	Score       ScoreSink
	Enemies     EnemyArea
	Projectiles ProjectileSpawner
	Player      PlayerView
	Logger      *log.Logger
}

// PowerUpSystem implements shield, ion pulse and radar on top of PowerUpState.
type PowerUpSystem struct {
	deps      PowerUpDeps
	log       *log.Logger
	extended  bool
	bossRadar bool
}

// NewPowerUpSystem creates a power-up system.
func NewPowerUpSystem(deps PowerUpDeps) *PowerUpSystem {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if deps.State == nil {
		deps.State = NewPowerUpState()
	}
	return &PowerUpSystem{deps: deps, log: logger}
}

// State returns the backing store.
func (s *PowerUpSystem) State() *PowerUpState {
	return s.deps.State
}

// Extended reports whether the extended-power upgrade is unlocked.
func (s *PowerUpSystem) Extended() bool {
	return s.extended
}

// UnlockExtended grants the one-way extended-power upgrade.
func (s *PowerUpSystem) UnlockExtended() bool {
	if s.extended {
		return false
	}
	s.extended = true
	s.log.Info("extended power unlocked")
	s.emitUnlock(config.ExtendedPower)
	return true
}

// BossRadar reports whether the boss-fight radar is running.
func (s *PowerUpSystem) BossRadar() bool {
	return s.bossRadar
}

func (s *PowerUpSystem) cfg(key string) config.PowerUpConfig {
	return s.deps.PowerUps[key]
}

// ShieldDuration returns the active time of a shield, extended if unlocked.
func (s *PowerUpSystem) ShieldDuration() float64 {
	if s.extended {
		return s.deps.Extended.ShieldDuration
	}
	return s.cfg(config.Shield).Duration
}

func (s *PowerUpSystem) shieldRecharge() float64 {
	if s.extended {
		return s.deps.Extended.ShieldRechargeTime
	}
	return s.cfg(config.Shield).RechargeTime
}

func (s *PowerUpSystem) shieldFreeze() float64 {
	if s.extended {
		return s.deps.Extended.ShieldFreezeDuration
	}
	return s.cfg(config.Shield).FreezeDuration
}

func (s *PowerUpSystem) shieldRadius() float64 {
	if r := s.cfg(config.Shield).Radius; r > 0 {
		return r
	}
	return 48
}

// IonPulseRadius returns the pulse radius, extended if unlocked.
func (s *PowerUpSystem) IonPulseRadius() float64 {
	if s.extended {
		return s.deps.Extended.IonPulseRadius
	}
	return s.cfg(config.IonPulse).Radius
}

func (s *PowerUpSystem) ionPulseDamage() float64 {
	if s.extended {
		return s.deps.Extended.IonPulseDamage
	}
	return s.cfg(config.IonPulse).Damage
}

func (s *PowerUpSystem) radarDuration() float64 {
	if s.extended {
		return s.deps.Extended.RadarDuration
	}
	return s.cfg(config.Radar).Duration
}

// TryActivate dispatches an activation request. Unknown keys are a no-op.
func (s *PowerUpSystem) TryActivate(key PowerUpKey) bool {
	switch key {
	case PowerShield:
		return s.ActivateShield()
	case PowerIonPulse:
		return s.FireIonPulse()
	case PowerRadar:
		return s.ActivateRadar()
	default:
		s.log.Warn("power-up cannot be activated", "key", key.String())
		return false
	}
}

// ActivateShield requires unlocked, no cooldown and not already active.
func (s *PowerUpSystem) ActivateShield() bool {
	st := s.deps.State
	rec := st.Get(PowerShield)
	if !rec.Unlocked || rec.Cooldown > 0 || rec.Active {
		return false
	}
	st.Activate(PowerShield, s.ShieldDuration())
	st.StartCooldown(PowerShield, s.shieldRecharge())

	px, py := s.playerCenter()
	if s.deps.Effects != nil {
		s.deps.Effects.Emit(Effect{Kind: EffectShieldPulse, X: px, Y: py, Color: core.ColorCyan, Count: 16})
	}
	s.freezeNearby()
	return true
}

// FireIonPulse damages every enemy in range and scores 5 per kill.
func (s *PowerUpSystem) FireIonPulse() bool {
	st := s.deps.State
	rec := st.Get(PowerIonPulse)
	if !rec.Unlocked || rec.Cooldown > 0 {
		return false
	}
	st.StartCooldown(PowerIonPulse, s.cfg(config.IonPulse).RechargeTime)

	px, py := s.playerCenter()
	if s.deps.Effects != nil {
		s.deps.Effects.Emit(Effect{Kind: EffectIonPulse, X: px, Y: py, Color: core.ColorBrightCyan, Count: 24, Value: int(s.IonPulseRadius())})
	}

	if s.deps.Enemies != nil {
		kills := s.deps.Enemies.DamageWithin(px, py, s.IonPulseRadius(), s.ionPulseDamage())
		if kills > 0 && s.deps.Score != nil {
			s.deps.Score.AddScore(ionPulseKillPoints * kills)
		}
	}

	if s.deps.Projectiles != nil {
		for i := range ionShardCount {
			a := float64(i) * 2 * math.Pi / ionShardCount
			s.deps.Projectiles.Create(ProjectileSpec{
				X:      px,
				Y:      py,
				VX:     math.Cos(a) * ionShardSpeed,
				VY:     math.Sin(a) * ionShardSpeed,
				Kind:   ProjectileBurst,
				Damage: ionShardDamage,
				Source: SourcePlayer,
				Color:  core.ColorBrightCyan,
			})
		}
	}
	return true
}

// ActivateRadar reveals collectibles for the radar duration.
func (s *PowerUpSystem) ActivateRadar() bool {
	st := s.deps.State
	rec := st.Get(PowerRadar)
	if !rec.Unlocked || rec.Cooldown > 0 {
		return false
	}
	st.Activate(PowerRadar, s.radarDuration())
	st.StartCooldown(PowerRadar, s.cfg(config.Radar).RechargeTime)

	px, py := s.playerCenter()
	if s.deps.Effects != nil {
		s.deps.Effects.Emit(Effect{Kind: EffectRadarSweep, X: px, Y: py, Color: core.ColorBrightGreen, Count: 1})
	}
	return true
}

// RadarActive reports whether collectibles are revealed.
func (s *PowerUpSystem) RadarActive() bool {
	return s.bossRadar || s.deps.State.IsActive(PowerRadar)
}

// ShieldActive reports whether the shield is up.
func (s *PowerUpSystem) ShieldActive() bool {
	return s.deps.State.IsActive(PowerShield)
}

// StartBossRadar turns on the always-on radar for designated boss levels.
// It runs independently of the player-triggered cooldown.
func (s *PowerUpSystem) StartBossRadar(level int) bool {
	if !slices.Contains(s.cfg(config.Radar).AutoBossLevels, level) {
		return false
	}
	if !s.deps.State.IsUnlocked(PowerRadar) {
		return false
	}
	s.bossRadar = true
	s.log.Debug("boss radar engaged", "level", level)
	return true
}

// StopBossRadar ends the boss-fight radar.
func (s *PowerUpSystem) StopBossRadar() {
	s.bossRadar = false
}

// Update keeps the shield's proximity freeze running while it is up.
func (s *PowerUpSystem) Update(_ float64) {
	if s.ShieldActive() {
		s.freezeNearby()
	}
}

func (s *PowerUpSystem) freezeNearby() {
	if s.deps.Enemies == nil {
		return
	}
	px, py := s.playerCenter()
	n := s.deps.Enemies.FreezeWithin(px, py, s.shieldRadius(), s.shieldFreeze())
	if n > 0 && s.deps.Score != nil {
		s.deps.Score.AddScore(n)
	}
}

// CheckUnlocks applies the level-based fallback unlocks.
// Returns the keys that were newly unlocked.
func (s *PowerUpSystem) CheckUnlocks(level int) []PowerUpKey {
	var unlocked []PowerUpKey
	for _, key := range []PowerUpKey{PowerShield, PowerIonPulse, PowerRadar} {
		c, ok := s.deps.PowerUps[key.String()]
		if !ok || c.AvailableFromLevel <= 0 || level < c.AvailableFromLevel {
			continue
		}
		if s.deps.State.Unlock(key) {
			s.log.Info("power-up unlocked", "key", key.String(), "level", level)
			s.emitUnlock(key.String())
			unlocked = append(unlocked, key)
		}
	}
	if from := s.deps.Extended.AvailableFromLevel; from > 0 && level >= from {
		s.UnlockExtended()
	}
	return unlocked
}

// GrantReward applies a boss reward key. Returns false for unknown keys.
func (s *PowerUpSystem) GrantReward(reward string) bool {
	if reward == config.ExtendedPower {
		s.UnlockExtended()
		return true
	}
	key, ok := ParsePowerUpKey(reward)
	if !ok {
		s.log.Warn("unknown reward key", "reward", reward)
		return false
	}
	if s.deps.State.Unlock(key) {
		s.log.Info("power-up unlocked", "key", reward, "source", "boss")
		s.emitUnlock(reward)
	}
	return true
}

func (s *PowerUpSystem) emitUnlock(label string) {
	if s.deps.Effects == nil {
		return
	}
	px, py := s.playerCenter()
	s.deps.Effects.Emit(Effect{Kind: EffectUnlock, X: px, Y: py, Color: core.ColorBrightWhite, Text: label})
}

func (s *PowerUpSystem) playerCenter() (float64, float64) {
	if s.deps.Player == nil {
		return 0, 0
	}
	return s.deps.Player.Center()
}

// Clear stops the boss radar. When relock is set the extended upgrade is
// revoked too; PowerUpState is cleared by its owner.
func (s *PowerUpSystem) Clear(relock bool) {
	s.bossRadar = false
	if relock {
		s.extended = false
	}
}
