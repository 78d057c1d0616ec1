package starsurge

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG so seeded sessions replay exactly.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 1) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a random float64 in [lo, hi).
func (r *SimpleRNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (r *SimpleRNG) Chance(p float64) bool {
	return r.Float64() < p
}

// State returns the internal state for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// weighted pairs a value with its relative roll weight.
type weighted[T any] struct {
	value  T
	weight float64
}

// pickWeighted rolls one entry from a weight table.
// Entries with weight <= 0 never win. Returns false when nothing can be picked.
func pickWeighted[T any](r *SimpleRNG, table []weighted[T]) (T, bool) {
	var zero T
	total := 0.0
	for _, w := range table {
		if w.weight > 0 {
			total += w.weight
		}
	}
	if total <= 0 {
		return zero, false
	}

	roll := r.Float64() * total
	cumulative := 0.0
	for _, w := range table {
		if w.weight <= 0 {
			continue
		}
		cumulative += w.weight
		if roll < cumulative {
			return w.value, true
		}
	}

	// Float rounding can leave roll == total; fall back to the last eligible entry.
	for i := len(table) - 1; i >= 0; i-- {
		if table[i].weight > 0 {
			return table[i].value, true
		}
	}
	return zero, false
}
