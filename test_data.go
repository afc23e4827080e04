package mtxmq

// LCG parameters of the input generator. The multiplier is the one used by
// the MT19937 initializer; only the low 31 bits of the state are used to
// build a value, scaled by 2^-31 so the largest value stays below 1.
const (
	lcgMultiplier uint64 = 1812433253
	lcgIncrement  uint64 = 12345
	lcgMask       uint64 = 0x7fffffff
	lcgScale             = 1.0 / (1 << 31)
)

// Generator produces a reproducible stream of doubles in [0, 1) using a
// 64-bit linear congruential generator. Each Generator owns its state, so
// independent streams never interfere.
//
// Example:
//
//	g := NewGenerator(DefaultSeed)
//	g.Fill(a)
//	g.Fill(b)
type Generator struct {
	state uint64
}

// NewGenerator returns a generator positioned at seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{state: seed}
}

// Next advances the state and returns a value in [0, 1).
func (g *Generator) Next() float64 {
	g.state = g.state*lcgMultiplier + lcgIncrement
	return float64(g.state&lcgMask) * lcgScale
}

// Fill overwrites dst with consecutive values from the stream.
func (g *Generator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = g.Next()
	}
}

// State returns the current internal state.
func (g *Generator) State() uint64 {
	return g.state
}

// GenerateFloat64 generates deterministic float64 test data.
//
// Parameters:
//   - size: Number of elements to generate
//   - seed: Random seed for reproducibility
//
// Example:
//
//	data := GenerateFloat64(1024, DefaultSeed)
func GenerateFloat64(size int, seed uint64) []float64 {
	data := make([]float64, size)
	NewGenerator(seed).Fill(data)
	return data
}
