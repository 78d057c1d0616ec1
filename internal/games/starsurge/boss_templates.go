package starsurge

import (
	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

// AttackPattern is one scripted boss attack.
type AttackPattern int

const (
	AttackMeteorSpread AttackPattern = iota
	AttackBigMeteorSpread
	AttackRotatingLasers
	AttackEnemySpawn
	AttackToxicClouds
)

// String returns the attack identifier.
func (a AttackPattern) String() string {
	switch a {
	case AttackMeteorSpread:
		return "meteorSpread"
	case AttackBigMeteorSpread:
		return "bigMeteorSpread"
	case AttackRotatingLasers:
		return "rotatingLasers"
	case AttackEnemySpawn:
		return "enemySpawn"
	case AttackToxicClouds:
		return "toxicClouds"
	default:
		return "unknown"
	}
}

// BossTemplate is the fixed shape of one boss.
type BossTemplate struct {
	Key            string // Config key under bosses
	Name           string
	Level          int
	W, H           float64
	Speed          float64
	Health         float64
	AttackCooldown float64
	Attacks        []AttackPattern
	Reward         string
	Color          core.Color
}

// bossTemplates lists the roster in level order.
var bossTemplates = []BossTemplate{
	{
		Key: "meteorCommander", Name: "Meteor Commander", Level: 15,
		W: 96, H: 72, Speed: 60, Health: 20, AttackCooldown: 3.0,
		Attacks: []AttackPattern{AttackMeteorSpread},
		Reward:  config.Shield, Color: core.ColorOrange,
	},
	{
		Key: "laserSentinel", Name: "Laser Sentinel", Level: 30,
		W: 100, H: 80, Speed: 50, Health: 30, AttackCooldown: 3.0,
		Attacks: []AttackPattern{AttackRotatingLasers, AttackMeteorSpread},
		Reward:  config.IonPulse, Color: core.ColorBrightRed,
	},
	{
		Key: "hiveMother", Name: "Hive Mother", Level: 45,
		W: 110, H: 86, Speed: 45, Health: 40, AttackCooldown: 3.5,
		Attacks: []AttackPattern{AttackEnemySpawn, AttackBigMeteorSpread},
		Reward:  config.Radar, Color: core.ColorBrightMagenta,
	},
	{
		Key: "toxicOverlord", Name: "Toxic Overlord", Level: 60,
		W: 116, H: 90, Speed: 45, Health: 50, AttackCooldown: 3.5,
		Attacks: []AttackPattern{AttackToxicClouds, AttackMeteorSpread, AttackRotatingLasers},
		Reward:  config.ExtendedPower, Color: core.ColorToxic,
	},
	{
		Key: "voidEmperor", Name: "Void Emperor", Level: 75,
		W: 128, H: 100, Speed: 40, Health: 70, AttackCooldown: 4.0,
		Attacks: []AttackPattern{
			AttackMeteorSpread, AttackBigMeteorSpread, AttackRotatingLasers,
			AttackEnemySpawn, AttackToxicClouds,
		},
		Reward: config.EndlessMode, Color: core.ColorPurple,
	},
}

// bossCycleLength is the level spacing between boss fights.
const bossCycleLength = 15

// bossTemplateForLevel resolves the template used on level. A boss whose
// config entry names the level wins; otherwise every 15th level walks the
// roster, wrapping around and returning the completed cycle count for health
// scaling. Config overrides for health, cooldown and reward are applied.
func bossTemplateForLevel(level int, overrides map[string]config.BossConfig) (BossTemplate, int, bool) {
	for key, o := range overrides {
		if o.Level != level {
			continue
		}
		if tpl, ok := bossTemplateByKey(key); ok {
			return applyBossOverride(tpl, o), 0, true
		}
	}

	if level <= 0 || level%bossCycleLength != 0 {
		return BossTemplate{}, 0, false
	}
	n := level/bossCycleLength - 1
	tpl := bossTemplates[n%len(bossTemplates)]
	cycle := n / len(bossTemplates)
	if o, ok := overrides[tpl.Key]; ok {
		tpl = applyBossOverride(tpl, o)
	}
	tpl.Attacks = append([]AttackPattern(nil), tpl.Attacks...)
	return tpl, cycle, true
}

func bossTemplateByKey(key string) (BossTemplate, bool) {
	for _, tpl := range bossTemplates {
		if tpl.Key == key {
			tpl.Attacks = append([]AttackPattern(nil), tpl.Attacks...)
			return tpl, true
		}
	}
	return BossTemplate{}, false
}

func applyBossOverride(tpl BossTemplate, o config.BossConfig) BossTemplate {
	if o.Health > 0 {
		tpl.Health = o.Health
	}
	if o.AttackCooldown > 0 {
		tpl.AttackCooldown = o.AttackCooldown
	}
	if o.Reward != "" {
		tpl.Reward = o.Reward
	}
	return tpl
}
