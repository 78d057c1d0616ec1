package config

import (
	_ "embed"
)

//go:embed defaults/starsurge.yaml
var defaultYAML []byte

// DefaultDocument returns the hardcoded configuration document.
// It mirrors defaults/starsurge.yaml and is the last-resort fallback.
func DefaultDocument() Document {
	return Document{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			StartingLives: 3,
			StartingLevel: 1,
			Speed:         260,
			Width:         32,
			Height:        32,
			DamageFlash:   2.0,
			HitFreeze:     1.0,
		},
		Collectables: map[string]CollectableConfig{
			GoldStar: {
				SpawnStartLevel: 1,
				MaxSpawned:      3,
				Duration:        8,
				Weight:          60,
				BossWeight:      20,
				Score:           2,
			},
			GreenStar: {
				SpawnStartLevel: 5,
				MaxSpawned:      1,
				Duration:        6,
				Weight:          10,
				Score:           3,
				FreezeDuration:  3,
			},
			BlueStar: {
				SpawnStartLevel:   10,
				MaxSpawned:        1,
				SpawnFrequency:    3,
				Duration:          6,
				Weight:            8,
				Score:             5,
				StarPowerDuration: 5,
			},
			PurpleStar: {
				SpawnStartLevel:      1,
				MaxSpawned:           1,
				Duration:             5,
				Weight:               1,
				BoostedWeight:        40,
				ConsecutiveThreshold: 5,
			},
			RedRocket: {
				SpawnStartLevel: 8,
				MaxSpawned:      1,
				SpawnFrequency:  4,
				Duration:        6,
				Weight:          3,
			},
			AzureBomb: {
				SpawnStartLevel: 1,
				MaxSpawned:      3,
				Duration:        10,
				BossWeight:      30,
				Damage:          2,
			},
		},
		PowerUps: map[string]PowerUpConfig{
			Shield: {
				AvailableFromLevel: 16,
				RechargeTime:       20,
				Duration:           5,
				FreezeDuration:     3,
				Radius:             48,
			},
			IonPulse: {
				AvailableFromLevel: 31,
				RechargeTime:       15,
				Damage:             2,
				Radius:             150,
			},
			Radar: {
				AvailableFromLevel: 46,
				RechargeTime:       25,
				Duration:           6,
				AutoBossLevels:     []int{60, 75},
			},
		},
		ExtendedPower: ExtendedPowerConfig{
			AvailableFromLevel:   60,
			ShieldDuration:       8,
			ShieldRechargeTime:   15,
			ShieldFreezeDuration: 5,
			IonPulseDamage:       3,
			IonPulseRadius:       220,
			RadarDuration:        10,
			BombWarningDelay:     1.2,
		},
		Enemies: EnemiesConfig{
			RespawnCooldown: 30,
			LevelPattern:    []int{3, 4, 5, 6, 5, 6, 7, 8, 7, 8, 9, 10, 9, 10},
			BossLevels:      []int{15, 30, 45, 60, 75},
		},
		GameProgression: ProgressionConfig{
			StarsPerLevel:        10,
			MaxLevel:             75,
			ComboBonus:           5,
			ResetRelocksPowerUps: false,
		},
		BossFight: BossFightConfig{
			BombInterval:      5,
			BombCount:         3,
			BombWarningDelay:  2.0,
			LevelAdvanceDelay: 3.0,
		},
		Bosses: map[string]BossConfig{
			"meteorCommander": {Level: 15, Health: 20, AttackCooldown: 3.0, Reward: Shield},
			"laserSentinel":   {Level: 30, Health: 30, AttackCooldown: 3.0, Reward: IonPulse},
			"hiveMother":      {Level: 45, Health: 40, AttackCooldown: 3.5, Reward: Radar},
			"toxicOverlord":   {Level: 60, Health: 50, AttackCooldown: 3.5, Reward: ExtendedPower},
			"voidEmperor":     {Level: 75, Health: 70, AttackCooldown: 4.0, Reward: EndlessMode},
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
