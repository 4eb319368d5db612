package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/typesim/internal/random"
)

func TestNew_Deterministic(t *testing.T) {
	t.Parallel()

	a := random.New(42)
	b := random.New(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64(), "Same seed should produce same sequence")
	}
}

func TestChance_Bounds(t *testing.T) {
	t.Parallel()

	src := random.New(1)
	for i := 0; i < 200; i++ {
		assert.False(t, random.Chance(src, 0), "0% should never succeed")
		assert.True(t, random.Chance(src, 100), "100% should always succeed")
	}
}

func TestBetween_StaysInRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lo, hi float64
	}{
		{name: "normal range", lo: 500, hi: 2000},
		{name: "swapped bounds", lo: 150, hi: 50},
		{name: "equal bounds", lo: 300, hi: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := random.New(7)
			lo, hi := tt.lo, tt.hi
			if hi < lo {
				lo, hi = hi, lo
			}

			for i := 0; i < 500; i++ {
				v := random.Between(src, tt.lo, tt.hi)
				assert.GreaterOrEqual(t, v, lo)
				assert.LessOrEqual(t, v, hi)
			}
		})
	}
}

func TestIntBetween_Inclusive(t *testing.T) {
	t.Parallel()

	src := random.New(3)
	seen := map[int]bool{}

	for i := 0; i < 1000; i++ {
		v := random.IntBetween(src, 3, 8)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 8)
		seen[v] = true
	}

	assert.Len(t, seen, 6, "Every value in [3,8] should be drawn eventually")
}

func TestJitter_ZeroPercentIsIdentity(t *testing.T) {
	t.Parallel()

	src := random.New(9)
	assert.Equal(t, 300.0, random.Jitter(src, 300, 0))
}

func TestJitter_Symmetric(t *testing.T) {
	t.Parallel()

	src := random.New(11)
	for i := 0; i < 500; i++ {
		v := random.Jitter(src, 200, 30)
		assert.GreaterOrEqual(t, v, 140.0)
		assert.LessOrEqual(t, v, 260.0)
	}
}
