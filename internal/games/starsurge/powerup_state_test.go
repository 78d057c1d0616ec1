package starsurge

import (
	"slices"
	"testing"
)

func TestPowerUpStateClocksNeverNegative(t *testing.T) {
	s := NewPowerUpState()
	s.Unlock(PowerShield)
	s.Activate(PowerShield, 1.0)
	s.StartCooldown(PowerShield, 2.0)

	for range 10 {
		s.Tick(0.35)
		rec := s.Get(PowerShield)
		if rec.Cooldown < 0 || rec.Duration < 0 {
			t.Fatalf("negative clock: %+v", rec)
		}
	}
	rec := s.Get(PowerShield)
	if rec.Cooldown != 0 || rec.Duration != 0 {
		t.Errorf("clocks should settle at 0, got %+v", rec)
	}
}

func TestPowerUpStateTimedActivationExpires(t *testing.T) {
	s := NewPowerUpState()
	s.Activate(PowerRadar, 0.5)

	if expired := s.Tick(0.25); len(expired) != 0 {
		t.Errorf("expired too early: %v", expired)
	}
	if !s.IsActive(PowerRadar) {
		t.Fatal("radar should still be active")
	}
	expired := s.Tick(0.5)
	if !slices.Equal(expired, []PowerUpKey{PowerRadar}) {
		t.Errorf("expired = %v, want [radar]", expired)
	}
	if s.IsActive(PowerRadar) {
		t.Error("radar should be inactive after expiry")
	}
}

func TestPowerUpStateUntimedActivationStays(t *testing.T) {
	s := NewPowerUpState()
	s.Activate(PowerEndlessMode, 0)
	s.Tick(100)
	if !s.IsActive(PowerEndlessMode) {
		t.Error("untimed activation should not expire")
	}
}

func TestPowerUpStateUnlockIsIdempotent(t *testing.T) {
	s := NewPowerUpState()
	if !s.Unlock(PowerIonPulse) {
		t.Error("first unlock should report true")
	}
	if s.Unlock(PowerIonPulse) {
		t.Error("second unlock should report false")
	}
	if s.Unlock(PowerUpKey(42)) {
		t.Error("invalid key should be a no-op")
	}
	if s.IsUnlocked(PowerUpKey(-1)) {
		t.Error("invalid key should read as locked")
	}
}

func TestPowerUpStateClear(t *testing.T) {
	tests := []struct {
		name         string
		relock       bool
		wantUnlocked bool
	}{
		{"keep unlocks", false, true},
		{"relock", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPowerUpState()
			s.Unlock(PowerShield)
			s.Activate(PowerShield, 3)
			s.StartCooldown(PowerShield, 10)

			s.Clear(tt.relock)

			rec := s.Get(PowerShield)
			if rec.Unlocked != tt.wantUnlocked {
				t.Errorf("Unlocked = %v, want %v", rec.Unlocked, tt.wantUnlocked)
			}
			if rec.Active || rec.Cooldown != 0 || rec.Duration != 0 {
				t.Errorf("Clear should zero the record, got %+v", rec)
			}
		})
	}
}

func TestPowerUpStateNotifiesListeners(t *testing.T) {
	s := NewPowerUpState()
	var keys []PowerUpKey
	s.Subscribe(func(key PowerUpKey, _ PowerUpRecord) { keys = append(keys, key) })

	s.Unlock(PowerShield)
	s.StartCooldown(PowerShield, 1)

	if len(keys) != 2 || keys[0] != PowerShield {
		t.Errorf("notifications = %v", keys)
	}
}

func TestParsePowerUpKey(t *testing.T) {
	for _, k := range AllPowerUps {
		got, ok := ParsePowerUpKey(k.String())
		if !ok || got != k {
			t.Errorf("ParsePowerUpKey(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParsePowerUpKey("warpDrive"); ok {
		t.Error("unknown key should not parse")
	}
}
