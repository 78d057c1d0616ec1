package starsurge

import "testing"

func TestSimpleRNGDeterminism(t *testing.T) {
	a := NewSimpleRNG(99)
	b := NewSimpleRNG(99)
	for i := range 100 {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("step %d: %d != %d", i, x, y)
		}
	}
}

func TestSimpleRNGRanges(t *testing.T) {
	r := NewSimpleRNG(3)
	for range 1000 {
		if n := r.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn(7) = %d", n)
		}
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f", f)
		}
		if v := r.Range(10, 20); v < 10 || v >= 20 {
			t.Fatalf("Range(10, 20) = %f", v)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should be 0")
	}
}

func TestPickWeighted(t *testing.T) {
	r := NewSimpleRNG(11)

	table := []weighted[string]{{"never", 0}, {"always", 5}, {"negative", -3}}
	for range 200 {
		v, ok := pickWeighted(r, table)
		if !ok || v != "always" {
			t.Fatalf("pickWeighted = %q, %v", v, ok)
		}
	}

	if _, ok := pickWeighted(r, []weighted[int]{{1, 0}, {2, 0}}); ok {
		t.Error("all-zero table should not pick")
	}
}
