package starsurge

import (
	"math"

	"github.com/vovakirdan/starsurge/internal/config"
)

// PowerUpKey identifies one PowerUpState record.
type PowerUpKey int

const (
	PowerShield PowerUpKey = iota
	PowerIonPulse
	PowerRadar
	PowerStarPower
	PowerEndlessMode
	powerUpKeyCount
)

// AllPowerUps lists every key in display order.
var AllPowerUps = [...]PowerUpKey{PowerShield, PowerIonPulse, PowerRadar, PowerStarPower, PowerEndlessMode}

// String returns the config key for the power-up.
func (k PowerUpKey) String() string {
	switch k {
	case PowerShield:
		return config.Shield
	case PowerIonPulse:
		return config.IonPulse
	case PowerRadar:
		return config.Radar
	case PowerStarPower:
		return config.StarPower
	case PowerEndlessMode:
		return config.EndlessMode
	default:
		return "unknown"
	}
}

// ParsePowerUpKey maps a config key to a PowerUpKey.
func ParsePowerUpKey(s string) (PowerUpKey, bool) {
	for _, k := range AllPowerUps {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func (k PowerUpKey) valid() bool {
	return k >= 0 && k < powerUpKeyCount
}

// PowerUpRecord is the observable state of one power-up.
// Cooldown and Duration are independent clocks.
type PowerUpRecord struct {
	Unlocked bool
	Active   bool
	Cooldown float64
	Duration float64
}

// PowerUpListener is notified after a record changes.
type PowerUpListener func(key PowerUpKey, rec PowerUpRecord)

// PowerUpState is a small reactive store holding one record per key.
type PowerUpState struct {
	records   [powerUpKeyCount]PowerUpRecord
	timed     [powerUpKeyCount]bool
	listeners []PowerUpListener
}

// NewPowerUpState creates a store with every power-up locked.
func NewPowerUpState() *PowerUpState {
	return &PowerUpState{}
}

// Subscribe registers a listener for record changes.
func (s *PowerUpState) Subscribe(l PowerUpListener) {
	s.listeners = append(s.listeners, l)
}

func (s *PowerUpState) notify(key PowerUpKey) {
	rec := s.records[key]
	for _, l := range s.listeners {
		l(key, rec)
	}
}

// Get returns a copy of the record for key.
func (s *PowerUpState) Get(key PowerUpKey) PowerUpRecord {
	if !key.valid() {
		return PowerUpRecord{}
	}
	return s.records[key]
}

// IsUnlocked reports whether key is unlocked.
func (s *PowerUpState) IsUnlocked(key PowerUpKey) bool {
	return s.Get(key).Unlocked
}

// IsActive reports whether key is active.
func (s *PowerUpState) IsActive(key PowerUpKey) bool {
	return s.Get(key).Active
}

// Unlock marks key as available. Returns true if it was locked before.
func (s *PowerUpState) Unlock(key PowerUpKey) bool {
	if !key.valid() || s.records[key].Unlocked {
		return false
	}
	s.records[key].Unlocked = true
	s.notify(key)
	return true
}

// Activate sets active and, when duration > 0, the remaining duration.
// Cooldown is left untouched.
func (s *PowerUpState) Activate(key PowerUpKey, duration float64) {
	if !key.valid() {
		return
	}
	r := &s.records[key]
	r.Active = true
	if duration > 0 {
		r.Duration = duration
		s.timed[key] = true
	} else {
		s.timed[key] = false
	}
	s.notify(key)
}

// Deactivate clears active and the remaining duration.
func (s *PowerUpState) Deactivate(key PowerUpKey) {
	if !key.valid() {
		return
	}
	r := &s.records[key]
	r.Active = false
	r.Duration = 0
	s.timed[key] = false
	s.notify(key)
}

// StartCooldown sets the cooldown to seconds.
func (s *PowerUpState) StartCooldown(key PowerUpKey, seconds float64) {
	if !key.valid() {
		return
	}
	s.records[key].Cooldown = math.Max(0, seconds)
	s.notify(key)
}

// Tick decrements every cooldown and duration, floored at zero.
// Timed activations whose duration runs out are deactivated and returned.
// Listeners also hear about cooldowns that just reached zero.
func (s *PowerUpState) Tick(dt float64) []PowerUpKey {
	var expired []PowerUpKey
	for k := range s.records {
		key := PowerUpKey(k)
		r := &s.records[k]
		cooling := r.Cooldown > 0
		r.Cooldown = math.Max(0, r.Cooldown-dt)
		r.Duration = math.Max(0, r.Duration-dt)
		if r.Active && s.timed[k] && r.Duration <= 0 {
			s.Deactivate(key)
			expired = append(expired, key)
			continue
		}
		if cooling && r.Cooldown == 0 {
			s.notify(key)
		}
	}
	return expired
}

// Clear zeroes active, cooldown and duration for every key.
// Unlocked flags survive unless relock is set.
func (s *PowerUpState) Clear(relock bool) {
	for k := range s.records {
		unlocked := s.records[k].Unlocked && !relock
		s.records[k] = PowerUpRecord{Unlocked: unlocked}
		s.timed[k] = false
		s.notify(PowerUpKey(k))
	}
}
