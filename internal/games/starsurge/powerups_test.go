package starsurge

import (
	"testing"

	"github.com/vovakirdan/starsurge/internal/config"
)

type powerRig struct {
	sys     *PowerUpSystem
	enemies *EnemySystem
	shots   *ProjectileSystem
	score   *scoreCounter
	fx      *recordingEffects
}

func newPowerRig() *powerRig {
	doc := config.DefaultDocument()
	player := &stubPlayer{x: 400, y: 480}
	r := &powerRig{score: &scoreCounter{}, fx: &recordingEffects{}}
	r.enemies = newTestEnemies(player, r.fx, r.score)
	r.shots = NewProjectileSystem(doc.Canvas, r.fx)
	r.sys = NewPowerUpSystem(PowerUpDeps{
		PowerUps:    doc.PowerUps,
		Extended:    doc.ExtendedPower,
		Effects:     r.fx,
		Score:       r.score,
		Enemies:     r.enemies,
		Projectiles: r.shots,
		Player:      player,
	})
	return r
}

func TestShieldFreezesNearbyEnemies(t *testing.T) {
	r := newPowerRig()
	a := r.enemies.SpawnAt(CategoryRammer, TypeTeal, 420, 480)
	b := r.enemies.SpawnAt(CategoryRammer, TypeSilver, 400, 450)
	far := r.enemies.SpawnAt(CategoryRammer, TypeTeal, 100, 100)
	r.sys.State().Unlock(PowerShield)

	if !r.sys.ActivateShield() {
		t.Fatal("shield should activate")
	}

	for _, e := range []*Enemy{a, b} {
		if e.Speed != 0 || e.FreezeTime != 3 {
			t.Errorf("enemy %d: speed %f freeze %f, want 0 and 3", e.ID, e.Speed, e.FreezeTime)
		}
	}
	if far.Frozen() {
		t.Error("enemy outside the radius was frozen")
	}
	if r.score.total != 2 {
		t.Errorf("score = %d, want 2", r.score.total)
	}
	rec := r.sys.State().Get(PowerShield)
	if !rec.Active || rec.Cooldown != 20 || rec.Duration != 5 {
		t.Errorf("shield record = %+v", rec)
	}

	if r.sys.ActivateShield() {
		t.Error("shield should not re-activate while active or cooling down")
	}
}

func TestShieldRequiresUnlock(t *testing.T) {
	r := newPowerRig()
	if r.sys.ActivateShield() {
		t.Error("locked shield activated")
	}
}

func TestShieldKeepsFreezingWhileActive(t *testing.T) {
	r := newPowerRig()
	r.sys.State().Unlock(PowerShield)
	r.sys.ActivateShield()

	late := r.enemies.SpawnAt(CategoryRammer, TypeTeal, 410, 490)
	r.sys.Update(1.0 / 60)

	if !late.Frozen() {
		t.Error("enemy entering the radius should be frozen")
	}
}

func TestShieldExpires(t *testing.T) {
	r := newPowerRig()
	st := r.sys.State()
	st.Unlock(PowerShield)
	r.sys.ActivateShield()

	st.Tick(5)
	if r.sys.ShieldActive() {
		t.Error("shield should deactivate when its duration runs out")
	}
	if st.Get(PowerShield).Cooldown != 15 {
		t.Errorf("cooldown = %f, want 15", st.Get(PowerShield).Cooldown)
	}
}

func TestIonPulse(t *testing.T) {
	r := newPowerRig()
	r.enemies.SpawnAt(CategoryRammer, TypeTeal, 450, 480)
	r.enemies.SpawnAt(CategoryRammer, TypeSilver, 400, 400)
	r.enemies.SpawnAt(CategoryDestroyer, TypePink, 380, 470)
	r.enemies.SpawnAt(CategoryRammer, TypeTeal, 50, 50)
	r.sys.State().Unlock(PowerIonPulse)

	if !r.sys.FireIonPulse() {
		t.Fatal("ion pulse should fire")
	}
	if r.enemies.Count() != 2 {
		t.Errorf("Count = %d, want the destroyer and the far rammer left", r.enemies.Count())
	}
	if r.score.total != 2*ionPulseKillPoints {
		t.Errorf("score = %d, want %d", r.score.total, 2*ionPulseKillPoints)
	}
	if r.shots.Len() != ionShardCount {
		t.Errorf("shards = %d, want %d", r.shots.Len(), ionShardCount)
	}
	for _, p := range r.shots.Projectiles() {
		if p.Source != SourcePlayer {
			t.Errorf("shard source = %v", p.Source)
		}
	}
	if r.sys.FireIonPulse() {
		t.Error("ion pulse should be on cooldown")
	}
}

func TestRadar(t *testing.T) {
	r := newPowerRig()
	r.sys.State().Unlock(PowerRadar)

	if !r.sys.ActivateRadar() || !r.sys.RadarActive() {
		t.Fatal("radar should activate")
	}
	r.sys.State().Tick(6)
	if r.sys.RadarActive() {
		t.Error("radar should expire")
	}

	if r.sys.StartBossRadar(45) {
		t.Error("boss radar should only run on configured levels")
	}
	if !r.sys.StartBossRadar(60) || !r.sys.RadarActive() {
		t.Error("boss radar should engage on level 60")
	}
	r.sys.StopBossRadar()
	if r.sys.RadarActive() {
		t.Error("boss radar should stop")
	}
}

func TestCheckUnlocks(t *testing.T) {
	tests := []struct {
		level    int
		want     []PowerUpKey
		extended bool
	}{
		{1, nil, false},
		{16, []PowerUpKey{PowerShield}, false},
		{31, []PowerUpKey{PowerShield, PowerIonPulse}, false},
		{60, []PowerUpKey{PowerShield, PowerIonPulse, PowerRadar}, true},
	}
	for _, tt := range tests {
		r := newPowerRig()
		got := r.sys.CheckUnlocks(tt.level)
		if len(got) != len(tt.want) {
			t.Errorf("CheckUnlocks(%d) = %v, want %v", tt.level, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("CheckUnlocks(%d) = %v, want %v", tt.level, got, tt.want)
			}
		}
		if r.sys.Extended() != tt.extended {
			t.Errorf("level %d extended = %v", tt.level, r.sys.Extended())
		}
	}
}

func TestGrantReward(t *testing.T) {
	r := newPowerRig()

	if !r.sys.GrantReward(config.Shield) || !r.sys.State().IsUnlocked(PowerShield) {
		t.Error("shield reward should unlock the shield")
	}
	if !r.sys.GrantReward(config.EndlessMode) || !r.sys.State().IsUnlocked(PowerEndlessMode) {
		t.Error("endless reward should unlock endless mode")
	}
	if r.sys.ShieldDuration() != 5 {
		t.Errorf("base shield duration = %f", r.sys.ShieldDuration())
	}
	if !r.sys.GrantReward(config.ExtendedPower) || !r.sys.Extended() {
		t.Error("extended reward should unlock extended power")
	}
	if r.sys.ShieldDuration() != 8 || r.sys.IonPulseRadius() != 220 {
		t.Errorf("extended numbers: shield %f radius %f", r.sys.ShieldDuration(), r.sys.IonPulseRadius())
	}
	if r.sys.GrantReward("warpDrive") {
		t.Error("unknown reward should be refused")
	}
}

func TestPowerUpClear(t *testing.T) {
	r := newPowerRig()
	r.sys.UnlockExtended()
	r.sys.State().Unlock(PowerRadar)
	r.sys.StartBossRadar(60)

	r.sys.Clear(false)
	if r.sys.BossRadar() || !r.sys.Extended() {
		t.Errorf("Clear(false): radar %v extended %v", r.sys.BossRadar(), r.sys.Extended())
	}
	r.sys.Clear(true)
	if r.sys.Extended() {
		t.Error("Clear(true) should revoke extended power")
	}
}
