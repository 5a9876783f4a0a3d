package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/protosim/internal/random"
)

func TestInjector_PlanWithinBounds(t *testing.T) {
	const total = 13
	for seed := uint64(0); seed < 500; seed++ {
		in, err := NewInjector(random.NewSeeded(seed), DefaultBounds, total)
		require.NoError(t, err)

		plan := in.Plan()
		indices := plan.Indices()

		require.GreaterOrEqual(t, len(indices), 3, "seed %d", seed)
		require.LessOrEqual(t, len(indices), 5, "seed %d", seed)
		require.Equal(t, len(indices), plan.Len())

		seen := map[int]bool{}
		for _, idx := range indices {
			require.GreaterOrEqual(t, idx, 1)
			require.LessOrEqual(t, idx, total)
			require.False(t, seen[idx], "duplicate index %d for seed %d", idx, seed)
			require.True(t, plan.Contains(idx))
			seen[idx] = true
		}
	}
}

func TestInjector_EverySizeAndIndexReachable(t *testing.T) {
	in, err := NewInjector(random.NewSeeded(7), DefaultBounds, 13)
	require.NoError(t, err)

	sizes := map[int]bool{}
	hits := map[int]bool{}
	for i := 0; i < 1000; i++ {
		plan := in.Plan()
		sizes[plan.Len()] = true
		for _, idx := range plan.Indices() {
			hits[idx] = true
		}
	}
	assert.Equal(t, map[int]bool{3: true, 4: true, 5: true}, sizes)
	assert.Len(t, hits, 13)
}

func TestInjector_FixedSize(t *testing.T) {
	in, err := NewInjector(random.NewSeeded(1), Bounds{Min: 4, Max: 4}, 13)
	require.NoError(t, err)
	assert.Equal(t, 4, in.Plan().Len())
}

func TestBounds_Validate(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		total  int
		ok     bool
	}{
		{"default", DefaultBounds, 13, true},
		{"largest proper subset", Bounds{Min: 1, Max: 12}, 13, true},
		{"zero min", Bounds{Min: 0, Max: 3}, 13, false},
		{"inverted", Bounds{Min: 5, Max: 3}, 13, false},
		{"max equals total", Bounds{Min: 3, Max: 13}, 13, false},
		{"too few stages", DefaultBounds, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate(tt.total)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidBounds)
		})
	}
}

func TestErrorPlan_IndicesSortedCopy(t *testing.T) {
	plan := newErrorPlan([]int{9, 2, 5})

	got := plan.Indices()
	assert.Equal(t, []int{2, 5, 9}, got)

	got[0] = 100
	assert.False(t, plan.Contains(100))
	assert.True(t, plan.Contains(2))
	assert.False(t, plan.Contains(3))
}
