package starsurge

import "testing"

func TestEffectBufferCapsUndrained(t *testing.T) {
	b := newEffectBuffer(nil)
	total := maxPendingEffects * 3
	for i := range total {
		b.Emit(Effect{Kind: EffectPickup, Value: i})
	}

	if b.Len() > maxPendingEffects {
		t.Fatalf("Len = %d, want at most %d", b.Len(), maxPendingEffects)
	}
	out := b.Drain()
	if last := out[len(out)-1].Value; last != total-1 {
		t.Errorf("newest effect = %d, want %d", last, total-1)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Value != out[i-1].Value+1 {
			t.Fatalf("pending effects out of order at %d: %d after %d", i, out[i].Value, out[i-1].Value)
		}
	}
	if b.Len() != 0 {
		t.Errorf("Len after drain = %d", b.Len())
	}
}

func TestEffectBufferDrainKeepsRecent(t *testing.T) {
	now := 0.0
	b := newEffectBuffer(func() float64 { return now })
	b.Emit(Effect{Kind: EffectHit})

	if got := len(b.Drain()); got != 1 {
		t.Fatalf("drained %d effects, want 1", got)
	}
	if got := len(b.Recent(0.1)); got != 1 {
		t.Errorf("recent after drain = %d, want 1", got)
	}
	now = 1
	if got := len(b.Recent(now)); got != 0 {
		t.Errorf("recent after the display window = %d, want 0", got)
	}
}
