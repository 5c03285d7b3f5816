package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(CSquared, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(CSquared, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + math.Sqrt(CSquared*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("single parent visit has no exploration term", func(t *testing.T) {
		policy := newUCT(CSquared, 1)

		require.Equal(t, -0.5, policy.evaluate(-1, 2), "ln(1) is 0")
	})

	t.Run("exploration term ranks parent and child visits", func(t *testing.T) {
		few := newUCT(CSquared, 100)
		many := newUCT(CSquared, 1000)

		require.Greater(t, many.evaluate(5, 10), few.evaluate(5, 10),
			"More parent visits should increase exploration term")
		require.Greater(t, few.evaluate(5, 10), few.evaluate(10, 20),
			"More child visits at the same mean should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Greater(t, policy.evaluate(10, 10), policy.evaluate(5, 10),
			"More rewards should increase exploitation term")
	})
}
