// Package config provides YAML-based configuration loading and
// difficulty presets for the Starsurge simulation.
package config

import "slices"

// Collectible keys used in the collectables section.
const (
	GoldStar   = "goldStar"
	GreenStar  = "greenStar"
	BlueStar   = "blueStar"
	PurpleStar = "purpleStar"
	RedRocket  = "redRocket"
	AzureBomb  = "azureBomb"
)

// Power-up keys used in the powerups section and as boss rewards.
const (
	Shield        = "shield"
	IonPulse      = "ionPulse"
	Radar         = "radar"
	StarPower     = "starPower"
	EndlessMode   = "endlessMode"
	ExtendedPower = "extendedPower"
)

// Document is the full configuration document loaded once per session.
type Document struct {
	Canvas          CanvasConfig                 `yaml:"canvas"`
	Player          PlayerConfig                 `yaml:"player"`
	Collectables    map[string]CollectableConfig `yaml:"collectables"`
	PowerUps        map[string]PowerUpConfig     `yaml:"powerups"`
	ExtendedPower   ExtendedPowerConfig          `yaml:"extendedPower"`
	Enemies         EnemiesConfig                `yaml:"enemies"`
	GameProgression ProgressionConfig            `yaml:"gameProgression"`
	BossFight       BossFightConfig              `yaml:"bossFight"`
	Bosses          map[string]BossConfig        `yaml:"bosses"`
}

// CanvasConfig defines the world size in world units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the avatar and session start values.
type PlayerConfig struct {
	StartingLives int     `yaml:"startingLives"`
	StartingLevel int     `yaml:"startingLevel"`
	Speed         float64 `yaml:"speed"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	DamageFlash   float64 `yaml:"damageFlash"` // Post-hit invulnerability in seconds
	HitFreeze     float64 `yaml:"hitFreeze"`   // World freeze after losing a life
}

// CollectableConfig defines spawn gating and the effect numbers of one pickup type.
type CollectableConfig struct {
	SpawnStartLevel int     `yaml:"spawnStartLevel"`
	MaxSpawned      int     `yaml:"maxSpawned"`
	SpawnFrequency  int     `yaml:"spawnFrequency"` // Spawn only on levels divisible by this (0 = every level)
	Duration        float64 `yaml:"duration"`       // Seconds before an uncollected pickup despawns
	Weight          float64 `yaml:"weight"`
	BossWeight      float64 `yaml:"bossWeight"` // Weight used on boss levels
	Score           int     `yaml:"score"`

	FreezeDuration       float64 `yaml:"freezeDuration,omitempty"`
	StarPowerDuration    float64 `yaml:"starPowerDuration,omitempty"`
	Damage               float64 `yaml:"damage,omitempty"`
	BoostedWeight        float64 `yaml:"boostedWeight,omitempty"`
	ConsecutiveThreshold int     `yaml:"consecutiveThreshold,omitempty"`
}

// PowerUpConfig defines one player-activatable power-up.
type PowerUpConfig struct {
	AvailableFromLevel int     `yaml:"availableFromLevel"`
	RechargeTime       float64 `yaml:"rechargeTime"`
	Duration           float64 `yaml:"duration"`

	FreezeDuration float64 `yaml:"freezeDuration,omitempty"`
	Radius         float64 `yaml:"radius,omitempty"`
	Damage         float64 `yaml:"damage,omitempty"`
	AutoBossLevels []int   `yaml:"autoBossLevels,omitempty"`
}

// ExtendedPowerConfig holds the buffed numbers applied once the upgrade is unlocked.
type ExtendedPowerConfig struct {
	AvailableFromLevel   int     `yaml:"availableFromLevel"`
	ShieldDuration       float64 `yaml:"shieldDuration"`
	ShieldRechargeTime   float64 `yaml:"shieldRechargeTime"`
	ShieldFreezeDuration float64 `yaml:"shieldFreezeDuration"`
	IonPulseDamage       float64 `yaml:"ionPulseDamage"`
	IonPulseRadius       float64 `yaml:"ionPulseRadius"`
	RadarDuration        float64 `yaml:"radarDuration"`
	BombWarningDelay     float64 `yaml:"bombWarningDelay"`
}

// EnemiesConfig defines roster sizes and respawn pacing.
type EnemiesConfig struct {
	RespawnCooldown float64 `yaml:"respawnCooldown"`
	LevelPattern    []int   `yaml:"levelPattern"`
	BossLevels      []int   `yaml:"bossLevels"`
}

// ProgressionConfig defines level completion and reset policy.
type ProgressionConfig struct {
	StarsPerLevel int  `yaml:"starsPerLevel"`
	MaxLevel      int  `yaml:"maxLevel"`
	ComboBonus    int  `yaml:"comboBonus"`
	// ResetRelocksPowerUps makes a restart lock every power-up again.
	// When false, unlocks survive restarts within the same process.
	ResetRelocksPowerUps bool `yaml:"resetRelocksPowerUps"`
}

// BossFightConfig defines the timing of the bomb sub-loop and defeat handoff.
type BossFightConfig struct {
	BombInterval      float64 `yaml:"bombInterval"`
	BombCount         int     `yaml:"bombCount"`
	BombWarningDelay  float64 `yaml:"bombWarningDelay"`
	LevelAdvanceDelay float64 `yaml:"levelAdvanceDelay"`
}

// BossConfig overrides the numbers of one boss template.
type BossConfig struct {
	Level          int     `yaml:"level"`
	Health         float64 `yaml:"health"`
	AttackCooldown float64 `yaml:"attackCooldown"`
	Reward         string  `yaml:"reward"`
}

// Collectable returns the config for a collectible key.
func (d *Document) Collectable(key string) (CollectableConfig, bool) {
	c, ok := d.Collectables[key]
	return c, ok
}

// PowerUp returns the config for a power-up key.
func (d *Document) PowerUp(key string) (PowerUpConfig, bool) {
	p, ok := d.PowerUps[key]
	return p, ok
}

// IsBossLevel reports whether level is listed in enemies.bossLevels.
func (d *Document) IsBossLevel(level int) bool {
	return slices.Contains(d.Enemies.BossLevels, level)
}

// BossForLevel returns the boss name and config configured for level.
func (d *Document) BossForLevel(level int) (string, BossConfig, bool) {
	for name, b := range d.Bosses {
		if b.Level == level {
			return name, b, true
		}
	}
	return "", BossConfig{}, false
}

// Clone returns a deep copy so callers can apply presets without touching shared defaults.
func (d Document) Clone() Document {
	out := d
	out.Collectables = make(map[string]CollectableConfig, len(d.Collectables))
	for k, v := range d.Collectables {
		out.Collectables[k] = v
	}
	out.PowerUps = make(map[string]PowerUpConfig, len(d.PowerUps))
	for k, v := range d.PowerUps {
		v.AutoBossLevels = slices.Clone(v.AutoBossLevels)
		out.PowerUps[k] = v
	}
	out.Bosses = make(map[string]BossConfig, len(d.Bosses))
	for k, v := range d.Bosses {
		out.Bosses[k] = v
	}
	out.Enemies.LevelPattern = slices.Clone(d.Enemies.LevelPattern)
	out.Enemies.BossLevels = slices.Clone(d.Enemies.BossLevels)
	return out
}
