package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/starsurge/internal/config"
	"github.com/vovakirdan/starsurge/internal/games/starsurge"
	"github.com/vovakirdan/starsurge/internal/registry"
)

func testGame() *starsurge.Game {
	return starsurge.New(starsurge.WithDocument(config.DefaultDocument()))
}

func TestRunGameIsDeterministic(t *testing.T) {
	opts := Options{Seed: 42, Ticks: 600}

	opts.Pilot = NewRandomPilot(7, 30)
	a, err := RunGame(context.Background(), testGame(), opts)
	if err != nil {
		t.Fatalf("RunGame() failed: %v", err)
	}
	opts.Pilot = NewRandomPilot(7, 30)
	b, err := RunGame(context.Background(), testGame(), opts)
	if err != nil {
		t.Fatalf("RunGame() failed: %v", err)
	}

	if a.Hash == "" || a.Hash != b.Hash {
		t.Errorf("hashes differ: %q vs %q", a.Hash, b.Hash)
	}
	if a.Ticks == 0 || a.Ticks > opts.Ticks {
		t.Errorf("Ticks = %d", a.Ticks)
	}
	if a.Game != "starsurge" || a.Seed != 42 {
		t.Errorf("report = %+v", a)
	}
}

func TestRunGameSeedMatters(t *testing.T) {
	a, _ := RunGame(context.Background(), testGame(), Options{Seed: 1, Ticks: 300})
	b, _ := RunGame(context.Background(), testGame(), Options{Seed: 2, Ticks: 300})
	if a.Hash == b.Hash {
		t.Error("different seeds produced the same state")
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	if _, err := RunGame(context.Background(), testGame(), Options{Ticks: 0}); err == nil {
		t.Error("expected an error for zero ticks")
	}
	if _, err := Run(context.Background(), Options{GameID: "nope", Ticks: 10}); !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("err = %v, want ErrUnknownGame", err)
	}
}

func TestRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunGame(ctx, testGame(), Options{Ticks: 10}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestVerify(t *testing.T) {
	opts := Options{GameID: "starsurge", Seed: 9, Ticks: 400}
	rep, err := Verify(context.Background(), opts, func() Pilot { return NewRandomPilot(3, 20) })
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if rep.Hash == "" {
		t.Error("Verify should report a hash")
	}
}

func TestIdlePilot(t *testing.T) {
	in := IdlePilot{}.Next(0, starsurge.New().State())
	if x, y := in.Move(); x != 0 || y != 0 || len(in.Actions) != 0 {
		t.Errorf("idle frame = %+v", in)
	}
}

func TestRandomPilotHoldsHeading(t *testing.T) {
	p := NewRandomPilot(5, 10)
	first := p.Next(0, starsurge.New().State())
	for tick := 1; tick < 10; tick++ {
		in := p.Next(tick, starsurge.New().State())
		if in.MoveX != first.MoveX || in.MoveY != first.MoveY {
			t.Fatalf("tick %d changed heading before the hold expired", tick)
		}
	}
}
