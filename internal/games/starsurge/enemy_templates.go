package starsurge

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/starsurge/internal/core"
)

// Category is the enemy behavior family.
type Category int

const (
	CategoryRammer Category = iota
	CategoryShooter
	CategoryBeamShooter
	CategoryDestroyer
	categoryCount
)

// String returns the category key.
func (c Category) String() string {
	switch c {
	case CategoryRammer:
		return "rammer"
	case CategoryShooter:
		return "shooter"
	case CategoryBeamShooter:
		return "beamShooter"
	case CategoryDestroyer:
		return "destroyer"
	default:
		return "unknown"
	}
}

// EnemyType is the movement variant and stat tier within a category.
type EnemyType int

const (
	TypeTeal EnemyType = iota
	TypeSilver
	TypeBlue
	TypePink
	enemyTypeCount
)

// String returns the type key.
func (t EnemyType) String() string {
	switch t {
	case TypeTeal:
		return "teal"
	case TypeSilver:
		return "silver"
	case TypeBlue:
		return "blue"
	case TypePink:
		return "pink"
	default:
		return "unknown"
	}
}

// Color returns the display color for the type.
func (t EnemyType) Color() core.Color {
	switch t {
	case TypeTeal:
		return core.ColorTeal
	case TypeSilver:
		return core.ColorWhite
	case TypeBlue:
		return core.ColorBlue
	case TypePink:
		return core.ColorPink
	default:
		return core.ColorDefault
	}
}

// EnemyTemplate holds the stats for one category and type pair.
type EnemyTemplate struct {
	W, H           float64
	Health         float64
	Damage         float64
	Points         int
	Speed          float64
	AttackCooldown float64 // 0 means the enemy never shoots
}

// enemyTemplates is the 16-entry stat matrix.
var enemyTemplates = [categoryCount][enemyTypeCount]EnemyTemplate{
	CategoryRammer: {
		TypeTeal:   {W: 28, H: 28, Health: 1, Damage: 1, Points: 10, Speed: 90},
		TypeSilver: {W: 28, H: 28, Health: 1, Damage: 1, Points: 15, Speed: 110},
		TypeBlue:   {W: 28, H: 28, Health: 2, Damage: 1, Points: 20, Speed: 100},
		TypePink:   {W: 28, H: 28, Health: 2, Damage: 1, Points: 25, Speed: 95},
	},
	CategoryShooter: {
		TypeTeal:   {W: 30, H: 30, Health: 2, Damage: 1, Points: 20, Speed: 70, AttackCooldown: 2.5},
		TypeSilver: {W: 30, H: 30, Health: 3, Damage: 1, Points: 25, Speed: 80, AttackCooldown: 2.2},
		TypeBlue:   {W: 30, H: 30, Health: 3, Damage: 1, Points: 30, Speed: 75, AttackCooldown: 2.0},
		TypePink:   {W: 30, H: 30, Health: 4, Damage: 1, Points: 35, Speed: 70, AttackCooldown: 1.8},
	},
	CategoryBeamShooter: {
		TypeTeal:   {W: 32, H: 32, Health: 3, Damage: 1, Points: 40, Speed: 60, AttackCooldown: 3.0},
		TypeSilver: {W: 32, H: 32, Health: 4, Damage: 1, Points: 45, Speed: 65, AttackCooldown: 2.8},
		TypeBlue:   {W: 32, H: 32, Health: 4, Damage: 1, Points: 50, Speed: 60, AttackCooldown: 2.6},
		TypePink:   {W: 32, H: 32, Health: 5, Damage: 1, Points: 55, Speed: 55, AttackCooldown: 2.4},
	},
	CategoryDestroyer: {
		TypeTeal:   {W: 40, H: 40, Health: 5, Damage: 2, Points: 60, Speed: 50, AttackCooldown: 3.0},
		TypeSilver: {W: 40, H: 40, Health: 6, Damage: 2, Points: 70, Speed: 55, AttackCooldown: 2.8},
		TypeBlue:   {W: 40, H: 40, Health: 7, Damage: 2, Points: 80, Speed: 50, AttackCooldown: 2.6},
		TypePink:   {W: 40, H: 40, Health: 8, Damage: 2, Points: 90, Speed: 45, AttackCooldown: 2.4},
	},
}

// typeWeights is the spawn roll table per category (teal, silver, blue, pink).
var typeWeights = [categoryCount][enemyTypeCount]float64{
	CategoryRammer:      {40, 30, 20, 10},
	CategoryShooter:     {35, 30, 20, 15},
	CategoryBeamShooter: {30, 30, 25, 15},
	CategoryDestroyer:   {25, 25, 25, 25},
}

// TemplateFor returns the stat template for a pair.
// Out-of-range values fall back to the rammer-teal template.
func TemplateFor(c Category, t EnemyType) (EnemyTemplate, bool) {
	if c < 0 || c >= categoryCount || t < 0 || t >= enemyTypeCount {
		return enemyTemplates[CategoryRammer][TypeTeal], false
	}
	return enemyTemplates[c][t], true
}

// TemplateKey formats the "category-type" lookup key.
func TemplateKey(c Category, t EnemyType) string {
	return c.String() + "-" + t.String()
}

// ParseTemplateKey parses a "category-type" key.
func ParseTemplateKey(key string) (Category, EnemyType, error) {
	cat, typ, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, fmt.Errorf("starsurge: malformed enemy key %q", key)
	}
	c, t := Category(-1), EnemyType(-1)
	for i := range categoryCount {
		if i.String() == cat {
			c = i
		}
	}
	for i := range enemyTypeCount {
		if i.String() == typ {
			t = i
		}
	}
	if c < 0 || t < 0 {
		return 0, 0, fmt.Errorf("starsurge: unknown enemy key %q", key)
	}
	return c, t, nil
}

// steerFunc returns the desired unit direction and a speed multiplier.
type steerFunc func(e *Enemy, w *steerWorld, dt float64) (dx, dy, speedMul float64)

// steering maps each pair to its movement strategy.
var steering = [categoryCount][enemyTypeCount]steerFunc{
	CategoryRammer:      {steerWander, steerSurge, steerChaseFast, steerIntercept},
	CategoryShooter:     {steerKeepRange, steerKeepRange, steerKeepRange, steerKeepRange},
	CategoryBeamShooter: {steerHoldBeamRange, steerHoldBeamRange, steerHoldBeamRange, steerHoldBeamRange},
	CategoryDestroyer:   {steerCharge, steerCharge, steerCharge, steerCharge},
}
