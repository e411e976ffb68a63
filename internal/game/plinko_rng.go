package game

// RNG is a deterministic pseudo-random stream (mulberry32). Every trajectory
// generation owns its own instance; there is no shared or global random state
// anywhere in the engine.
type RNG struct {
	state uint32
}

// NewRNG creates an RNG from an integer seed. Out-of-range seeds are
// normalized (modulo 2^32) rather than rejected.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// Next returns the next value in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// Fork derives a decorrelated but reproducible child stream. It does not
// advance the parent, so Fork(n) on equal parents always yields equal
// children regardless of how many values were drawn in between.
func (r *RNG) Fork(offset uint32) *RNG {
	return &RNG{state: scramble(r.state ^ 0x9E3779B9*(offset+1))}
}

// scramble is a finalizer-style avalanche so adjacent fork offsets produce
// unrelated starting states.
func scramble(s uint32) uint32 {
	s ^= s >> 16
	s *= 0x45D9F3B
	s ^= s >> 16
	s *= 0x45D9F3B
	s ^= s >> 16
	return s
}
