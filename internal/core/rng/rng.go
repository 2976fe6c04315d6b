// Package rng provides a seeded, reproducible pseudo-random generator.
// The same seed yields the same sequence on every platform: the state is a
// single uint32 advanced with Mulberry32 mixing and no global state is read.
package rng

// Rand is a Mulberry32 generator. The zero value is a valid generator
// seeded with 0. A Rand is not safe for concurrent use.
type Rand struct {
	state uint32
}

// New returns a generator for seed. Only the low 32 bits of the seed are
// used, so negative seeds wrap the same way an unsigned 32-bit cast would.
func New(seed int64) *Rand {
	return &Rand{state: uint32(seed)}
}

// Uint32 returns the next raw 32-bit output.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	x := (t ^ (t >> 15)) * (1 | t)
	x ^= x + (x^(x>>7))*(61|x)
	return x ^ (x >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296
}

// Intn returns a uniform index in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(r.Float64() * float64(n))
}

// Func returns the generator as a plain draw function.
func (r *Rand) Func() func() float64 {
	return r.Float64
}

// PickIndexWeighted draws one value from next, scales it by the sum of
// weights and returns the first index whose cumulative weight reaches the
// scaled draw. Non-positive weights are never picked while a positive one
// exists. An all-zero vector returns the last index; an empty one returns -1.
func PickIndexWeighted(weights []float64, next func() float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	target := next() * total
	last := len(weights) - 1
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if target <= acc {
			return i
		}
	}
	return last
}
