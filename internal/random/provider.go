package random

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	hexAlphabet   = "0123456789abcdef"
	digitAlphabet = "0123456789"
)

// Provider draws independent samples from a single random source.
type Provider struct {
	rng *rand.Rand
}

// New creates a Provider from a fresh, non-reproducible source.
func New() *Provider {
	return &Provider{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded creates a Provider whose sequence is fully determined by seed.
func NewSeeded(seed uint64) *Provider {
	return &Provider{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float returns a uniform sample in [min, max].
func (p *Provider) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + p.rng.Float64()*(max-min)
}

// Int returns a uniform sample in [min, max], both ends inclusive.
func (p *Provider) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + p.rng.IntN(max-min+1)
}

// Index returns a uniform index in [0, n). n must be positive.
func (p *Provider) Index(n int) int {
	return p.rng.IntN(n)
}

// Duration returns a uniform duration in [min, max].
func (p *Provider) Duration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(p.rng.Int64N(int64(max-min)+1))
}

// Hex returns n random lowercase hex digits.
func (p *Provider) Hex(n int) string {
	return p.fromAlphabet(hexAlphabet, n)
}

// Digits returns n random decimal digits. Leading zeros are allowed.
func (p *Provider) Digits(n int) string {
	return p.fromAlphabet(digitAlphabet, n)
}

// Pick returns a uniformly chosen element of choices.
// Panics if choices is empty.
func Pick[T any](p *Provider, choices []T) T {
	return choices[p.Index(len(choices))]
}

func (p *Provider) fromAlphabet(alphabet string, n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[p.rng.IntN(len(alphabet))])
	}
	return b.String()
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
