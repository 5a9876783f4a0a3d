package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/protosim/internal/random"
)

// ErrInvalidBounds is returned when injection bounds cannot produce a proper,
// non-empty subset of the stages.
var ErrInvalidBounds = errors.New("invalid error injection bounds")

// Bounds limits how many stages receive a synthetic error.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds matches the observed behaviour: three to five errors.
var DefaultBounds = Bounds{Min: 3, Max: 5}

// Validate checks that 1 <= Min <= Max < total.
func (b Bounds) Validate(total int) error {
	switch {
	case b.Min < 1:
		return fmt.Errorf("%w: min %d must be at least 1", ErrInvalidBounds, b.Min)
	case b.Min > b.Max:
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidBounds, b.Min, b.Max)
	case b.Max >= total:
		return fmt.Errorf("%w: max %d must be below stage count %d", ErrInvalidBounds, b.Max, total)
	}
	return nil
}

// Injector draws the per-session ErrorPlan.
type Injector struct {
	rng    *random.Provider
	bounds Bounds
	total  int
}

// NewInjector returns an injector over stage indices 1..total.
func NewInjector(rng *random.Provider, bounds Bounds, total int) (*Injector, error) {
	if err := bounds.Validate(total); err != nil {
		return nil, err
	}
	return &Injector{rng: rng, bounds: bounds, total: total}, nil
}

// Plan draws k in [Min, Max] and then k distinct indices from 1..total,
// uniformly and without replacement (partial Fisher-Yates).
func (in *Injector) Plan() *ErrorPlan {
	k := in.rng.Int(in.bounds.Min, in.bounds.Max)

	pool := make([]int, in.total)
	for i := range pool {
		pool[i] = i + 1
	}
	for i := 0; i < k; i++ {
		j := i + in.rng.Index(in.total-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return newErrorPlan(pool[:k])
}

// ErrorPlan is the set of stage indices that raise a synthetic error.
// It is drawn once per session and never resampled.
type ErrorPlan struct {
	indices []int
	set     map[int]struct{}
}

func newErrorPlan(indices []int) *ErrorPlan {
	p := &ErrorPlan{
		indices: append([]int(nil), indices...),
		set:     make(map[int]struct{}, len(indices)),
	}
	for _, i := range indices {
		p.set[i] = struct{}{}
	}
	return p
}

// Contains reports whether the 1-based stage index is in the plan.
func (p *ErrorPlan) Contains(index int) bool {
	_, ok := p.set[index]
	return ok
}

// Len returns the number of planned errors.
func (p *ErrorPlan) Len() int {
	return len(p.indices)
}

// Indices returns the planned indices in ascending order.
func (p *ErrorPlan) Indices() []int {
	out := append([]int(nil), p.indices...)
	sort.Ints(out)
	return out
}
