package starsurge

import "math"

// Snapshot is a flattened view of the simulation for determinism checks
// and headless runs. Positions are stored in hundredths of a world unit.
type Snapshot struct {
	Tick        uint64
	Clock       int // Milliseconds of game time
	Score       int
	Lives       int
	Level       int
	Stars       int
	State       string
	Mode        int // 0=Campaign, 1=Endless
	Endless     bool
	BossFight   bool
	WorldFreeze int

	PlayerX, PlayerY int

	// Each enemy is 5 ints: Category, Type, X, Y, Health
	EnemyCount int
	EnemyData  []int

	// Each projectile is 4 ints: Kind, Source, X, Y
	ProjectileCount int
	ProjectileData  []int

	// Each collectible is 3 ints: Kind, X, Y
	CollectibleCount int
	CollectibleData  []int

	BossHealth int // -1 without a boss
	BossPhase  int

	CloudCount     int
	PendingEvents  int
	PowerUpData    []int // Per key: Unlocked, Active, Cooldown ms, Duration ms
	RNGState       uint64
	SchedulerEpoch uint64
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

func millis(v float64) int {
	return int(math.Round(v * 1000))
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	enemies := g.enemies.Live()
	enemyData := make([]int, 0, len(enemies)*5)
	for _, e := range enemies {
		enemyData = append(enemyData, int(e.Category), int(e.Type), fixed(e.X), fixed(e.Y), fixed(e.Health))
	}

	shots := g.projectiles.Projectiles()
	shotData := make([]int, 0, len(shots)*4)
	for _, p := range shots {
		shotData = append(shotData, int(p.Kind), int(p.Source), fixed(p.X), fixed(p.Y))
	}

	items := g.collectibles.Items()
	itemData := make([]int, 0, len(items)*3)
	for _, c := range items {
		itemData = append(itemData, int(c.Kind), fixed(c.X), fixed(c.Y))
	}

	powerData := make([]int, 0, len(AllPowerUps)*4)
	for _, key := range AllPowerUps {
		rec := g.powerState.Get(key)
		powerData = append(powerData, flag(rec.Unlocked), flag(rec.Active), millis(rec.Cooldown), millis(rec.Duration))
	}

	snap := Snapshot{
		Tick:        uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Clock:       millis(g.sched.Now()),
		Score:       g.score,
		Lives:       g.lives,
		Level:       g.level,
		Stars:       g.stars,
		State:       g.state,
		Mode:        int(g.mode),
		Endless:     g.endless,
		BossFight:   g.bossFight,
		WorldFreeze: millis(g.worldFreeze),

		PlayerX: fixed(g.player.X),
		PlayerY: fixed(g.player.Y),

		EnemyCount:       len(enemies),
		EnemyData:        enemyData,
		ProjectileCount:  len(shots),
		ProjectileData:   shotData,
		CollectibleCount: len(items),
		CollectibleData:  itemData,

		BossHealth: -1,

		CloudCount:     len(g.clouds),
		PendingEvents:  g.sched.Len(),
		PowerUpData:    powerData,
		RNGState:       g.rng.State(),
		SchedulerEpoch: g.sched.Generation(),
	}
	if b := g.boss.Current(); b != nil {
		snap.BossHealth = fixed(b.Health)
		snap.BossPhase = b.Phase
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
// The scheduler epoch is left out so restarted sessions hash like fresh ones.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Clock)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stars)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)        //#nosec G115 -- hash computation
	h = h*31 + uint64(flag(snap.Endless))
	h = h*31 + uint64(flag(snap.BossFight))
	h = h*31 + uint64(snap.WorldFreeze) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BossHealth)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BossPhase)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CloudCount)  //#nosec G115 -- hash computation

	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ProjectileData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.CollectibleData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PowerUpData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState
	return h
}

// StateHash fingerprints the current state.
func (g *Game) StateHash() uint64 {
	snap := g.Snapshot()
	return snap.Hash()
}
