package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteIdentity(t *testing.T) {
	// Expressions without conditional branches pass through unchanged
	for _, src := range []string{"1.5", "t", "2*t+1", "sin(pi*t)*exp(-t)", "t^2/3"} {
		e, err := Parse(src)
		require.NoError(t, err)
		r, err := RewritePiecewise(e)
		require.NoError(t, err)
		assert.Equal(t, e, r, "input %q", src)
	}
}

func TestRewriteEquivalence(t *testing.T) {
	// The boolean-weighted sum must select the same branch value as the
	// original conditional at every time, including samples straddling
	// each guard boundary.
	samples := []float64{-2, -0.001, 0, 0.001, 0.5, 0.999, 1, 1.001, 1.5, 2, 2.5, 3, 10}
	for _, src := range []string{
		"Piecewise((0, t<0), (1, t>1), (0.5-0.5*cos(pi*t), True))",
		"Piecewise((t^2, t<=1), (2*t-1, True))",
		"3*Piecewise((sin(t), t<2), (sin(2.0), True)) + t",
		"Piecewise((Piecewise((t, t<1), (1, True)), t<2), (0, True))",
	} {
		e, err := Parse(src)
		require.NoError(t, err)
		r, err := RewritePiecewise(e)
		require.NoError(t, err)
		for _, ts := range samples {
			assert.InDelta(t, e.Eval(ts), r.Eval(ts), 1.e-12, "input %q at t=%v", src, ts)
		}
	}
}

func TestRewriteRemovesPiecewise(t *testing.T) {
	e, err := Parse("Piecewise((Piecewise((t, t<1), (1, True)), t<2), (0, True))")
	require.NoError(t, err)
	r, err := RewritePiecewise(e)
	require.NoError(t, err)
	assert.False(t, containsPiecewise(r))
}

func TestRewriteGuardExpressions(t *testing.T) {
	// Piecewise nodes inside a guard comparison are rewritten too, so the
	// result is serializable. H(3) = 1, leaving the guard t < 2.
	e, err := Parse("Piecewise((1, t < 2*H(3)), (0, True))")
	require.NoError(t, err)
	r, err := RewritePiecewise(e)
	require.NoError(t, err)
	assert.False(t, containsPiecewise(r))
	assert.InDelta(t, 1, r.Eval(1), 1.e-12)
	assert.InDelta(t, 0, r.Eval(2.5), 1.e-12)

	// A malformed level hiding inside a guard is still rejected
	e, err = Parse("Piecewise((1, t < Piecewise((1, True), (2, True))), (0, True))")
	require.NoError(t, err)
	_, err = RewritePiecewise(e)
	assert.ErrorIs(t, err, ErrMalformedPiecewise)
}

func TestRewriteCatchAllCount(t *testing.T) {
	// Two catch-all branches
	e, err := Parse("Piecewise((1, True), (2, True))")
	require.NoError(t, err)
	_, err = RewritePiecewise(e)
	assert.ErrorIs(t, err, ErrMalformedPiecewise)

	// No catch-all branch
	e, err = Parse("Piecewise((1, t<0), (2, t>1))")
	require.NoError(t, err)
	_, err = RewritePiecewise(e)
	assert.ErrorIs(t, err, ErrMalformedPiecewise)

	// A nested malformed level is found too
	e, err = Parse("Piecewise((Piecewise((1, True), (2, True)), t<0), (0, True))")
	require.NoError(t, err)
	_, err = RewritePiecewise(e)
	assert.ErrorIs(t, err, ErrMalformedPiecewise)
}

func TestRewriteLoneCatchAll(t *testing.T) {
	e, err := Parse("Piecewise((2*t, True))")
	require.NoError(t, err)
	r, err := RewritePiecewise(e)
	require.NoError(t, err)
	assert.InDelta(t, 6, r.Eval(3), 1.e-12)
	assert.False(t, containsPiecewise(r))
}

func containsPiecewise(e Expr) bool {
	switch v := e.(type) {
	case Piecewise:
		return true
	case Neg:
		return containsPiecewise(v.X)
	case Add:
		for _, term := range v.Terms {
			if containsPiecewise(term) {
				return true
			}
		}
	case Mul:
		for _, f := range v.Factors {
			if containsPiecewise(f) {
				return true
			}
		}
	case Pow:
		return containsPiecewise(v.Base) || containsPiecewise(v.Exp)
	case Call:
		return containsPiecewise(v.Arg)
	case Bool:
		return condContainsPiecewise(v.Cond)
	}
	return false
}

func condContainsPiecewise(c Cond) bool {
	switch v := c.(type) {
	case Cmp:
		return containsPiecewise(v.L) || containsPiecewise(v.R)
	case Or:
		return condContainsPiecewise(v.L) || condContainsPiecewise(v.R)
	case And:
		return condContainsPiecewise(v.L) || condContainsPiecewise(v.R)
	case Not:
		return condContainsPiecewise(v.X)
	}
	return false
}
