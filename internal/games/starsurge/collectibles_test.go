package starsurge

import (
	"testing"

	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/core"
)

type stubHost struct {
	scoreCounter
	stars     int
	lives     int
	starPower float64
}

func (h *stubHost) AddStar()                   { h.stars++ }
func (h *stubHost) AddLife()                   { h.lives++ }
func (h *stubHost) GrantStarPower(sec float64) { h.starPower = sec }

type stubEnemyControl struct {
	count   int
	frozen  float64
	cleared int
}

func (c *stubEnemyControl) Count() int { return c.count }
func (c *stubEnemyControl) FreezeAll(d float64) int {
	c.frozen = d
	return c.count
}
func (c *stubEnemyControl) ClearAll() int {
	n := c.count
	c.cleared += n
	c.count = 0
	return n
}

type stubBoss struct {
	damage float64
}

func (b *stubBoss) DamageBoss(amount float64) bool {
	b.damage += amount
	return false
}

var pickupRect = core.NewRect(384, 464, 32, 32)

func newTestCollectibles(host *stubHost, enemies *stubEnemyControl, boss *stubBoss) *CollectibleSystem {
	doc := config.DefaultDocument()
	return NewCollectibleSystem(CollectibleDeps{
		Collectables: doc.Collectables,
		ComboBonus:   doc.GameProgression.ComboBonus,
		Canvas:       doc.Canvas,
		RNG:          NewSimpleRNG(5),
		Host:         host,
		Enemies:      enemies,
		Boss:         boss,
	})
}

func collect(s *CollectibleSystem, kind CollectibleKind) int {
	s.SpawnAt(kind, 400, 480)
	return s.CheckPickups(pickupRect)
}

func TestGoldStarPickup(t *testing.T) {
	host := &stubHost{}
	s := newTestCollectibles(host, &stubEnemyControl{}, &stubBoss{})
	s.SetLevel(1, false)

	if n := collect(s, GoldStar); n != 1 {
		t.Fatalf("CheckPickups = %d, want 1", n)
	}
	if host.total != 2 || host.stars != 1 {
		t.Errorf("score %d stars %d, want 2 and 1", host.total, host.stars)
	}
	if s.Len() != 0 {
		t.Error("collected pickup should be removed")
	}
}

func TestPickupEffects(t *testing.T) {
	host := &stubHost{}
	enemies := &stubEnemyControl{count: 4}
	boss := &stubBoss{}
	s := newTestCollectibles(host, enemies, boss)
	s.SetLevel(10, false)

	collect(s, GreenStar)
	if enemies.frozen != 3 || host.total != 3 {
		t.Errorf("green: freeze %f score %d", enemies.frozen, host.total)
	}

	collect(s, BlueStar)
	if host.starPower != 5 {
		t.Errorf("blue: star power %f, want 5", host.starPower)
	}

	before := host.total
	collect(s, PurpleStar)
	if host.total-before != 4 || enemies.cleared != 4 {
		t.Errorf("purple: scored %d cleared %d, want 4 and 4", host.total-before, enemies.cleared)
	}

	collect(s, RedRocket)
	if host.lives != 1 {
		t.Errorf("red rocket: lives %d, want 1", host.lives)
	}

	collect(s, AzureBomb)
	if boss.damage != 2 {
		t.Errorf("azure bomb: boss damage %f, want 2", boss.damage)
	}
}

func TestConsecutiveStarsBoostPurple(t *testing.T) {
	host := &stubHost{}
	s := newTestCollectibles(host, &stubEnemyControl{}, &stubBoss{})
	s.SetLevel(1, false)
	away := core.NewRect(-500, -500, 10, 10)

	if w := s.Weight(PurpleStar); w != 1 {
		t.Fatalf("base purple weight = %f, want 1", w)
	}

	for range 5 {
		collect(s, GoldStar)
		s.Update(0.3, away)
	}

	if s.ConsecutiveStars() != 5 {
		t.Fatalf("ConsecutiveStars = %d, want 5", s.ConsecutiveStars())
	}
	if w := s.Weight(PurpleStar); w != 40 {
		t.Errorf("boosted purple weight = %f, want 40", w)
	}
	// Five fast stars also trip the combo bonus once.
	if host.total != 5*2+5 {
		t.Errorf("score = %d, want 15", host.total)
	}

	collect(s, PurpleStar)
	if s.ConsecutiveStars() != 0 {
		t.Errorf("purple should reset the streak, got %d", s.ConsecutiveStars())
	}
}

func TestStreakWindowExpires(t *testing.T) {
	s := newTestCollectibles(&stubHost{}, &stubEnemyControl{}, &stubBoss{})
	s.SetLevel(1, false)
	away := core.NewRect(-500, -500, 10, 10)

	collect(s, GoldStar)
	collect(s, GoldStar)
	s.Update(2.1, away)
	if s.StarCombo() != 0 {
		t.Errorf("combo should lapse after 2s, got %d", s.StarCombo())
	}
	if s.ConsecutiveStars() != 2 {
		t.Errorf("streak should survive 2.1s, got %d", s.ConsecutiveStars())
	}
	s.Update(1.0, away)
	if s.ConsecutiveStars() != 0 {
		t.Errorf("streak should lapse after 3s, got %d", s.ConsecutiveStars())
	}
}

func TestNonStarBreaksStreak(t *testing.T) {
	host := &stubHost{}
	s := newTestCollectibles(host, &stubEnemyControl{}, &stubBoss{})
	s.SetLevel(8, false)

	collect(s, GoldStar)
	collect(s, GoldStar)
	collect(s, RedRocket)
	if s.ConsecutiveStars() != 0 || s.StarCombo() != 0 {
		t.Errorf("streaks = %d/%d after a rocket", s.ConsecutiveStars(), s.StarCombo())
	}
}

func TestCollectibleWeights(t *testing.T) {
	tests := []struct {
		name  string
		level int
		boss  bool
		kind  CollectibleKind
		want  float64
	}{
		{"gold level 1", 1, false, GoldStar, 60},
		{"green before start", 4, false, GreenStar, 0},
		{"green from start", 5, false, GreenStar, 10},
		{"blue off frequency", 11, false, BlueStar, 0},
		{"blue on frequency", 12, false, BlueStar, 8},
		{"rocket on frequency", 8, false, RedRocket, 3},
		{"rocket off frequency", 9, false, RedRocket, 0},
		{"azure outside boss", 3, false, AzureBomb, 0},
		{"azure on boss level", 15, true, AzureBomb, 30},
		{"gold on boss level", 15, true, GoldStar, 20},
		{"green on boss level", 15, true, GreenStar, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestCollectibles(&stubHost{}, &stubEnemyControl{}, &stubBoss{})
			s.SetLevel(tt.level, tt.boss)
			if got := s.Weight(tt.kind); got != tt.want {
				t.Errorf("Weight(%v) = %f, want %f", tt.kind, got, tt.want)
			}
		})
	}
}

func TestPerTypeCap(t *testing.T) {
	s := newTestCollectibles(&stubHost{}, &stubEnemyControl{}, &stubBoss{})
	s.SetLevel(1, false)
	for range 3 {
		s.SpawnAt(GoldStar, 100, 100)
	}
	if w := s.Weight(GoldStar); w != 0 {
		t.Errorf("capped gold weight = %f, want 0", w)
	}
}

func TestCollectibleExpiry(t *testing.T) {
	s := NewCollectibleSystem(CollectibleDeps{Canvas: testCanvas(), RNG: NewSimpleRNG(1)})
	away := core.NewRect(-500, -500, 10, 10)
	s.SpawnAt(GoldStar, 100, 100)

	s.Update(7.9, away)
	if s.Len() != 1 {
		t.Fatalf("pickup expired early")
	}
	s.Update(0.2, away)
	if s.Len() != 0 {
		t.Errorf("pickup should expire after its lifetime")
	}
}

func TestTrySpawnRespectsLevelGates(t *testing.T) {
	s := newTestCollectibles(&stubHost{}, &stubEnemyControl{}, &stubBoss{})
	s.SetLevel(1, false)
	for range 50 {
		c, ok := s.TrySpawn()
		if !ok {
			continue
		}
		if c.Kind != GoldStar && c.Kind != PurpleStar {
			t.Fatalf("level 1 spawned %v", c.Kind)
		}
		s.ClearItems()
	}
}
