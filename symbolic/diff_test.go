package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fdCheck compares the symbolic derivative against a centered finite
// difference at each sample. Samples must stay away from guard boundaries.
func fdCheck(t *testing.T, src string, samples []float64) {
	t.Helper()
	const h = 1.e-6
	e, err := Parse(src)
	require.NoError(t, err)
	d, err := RewritePiecewise(Diff(e))
	require.NoError(t, err)
	for _, ts := range samples {
		fd := (e.Eval(ts+h) - e.Eval(ts-h)) / (2 * h)
		assert.InDelta(t, fd, d.Eval(ts), 1.e-4, "d/dt %q at t=%v", src, ts)
	}
}

func TestDiffSmooth(t *testing.T) {
	fdCheck(t, "3*t^2 + 2*t + 1", []float64{-2, -0.5, 0, 0.7, 3})
	fdCheck(t, "sin(pi*t)", []float64{-1, 0.2, 0.5, 1.3})
	fdCheck(t, "exp(-2*t)*cos(t)", []float64{-1, 0, 0.5, 2})
	fdCheck(t, "sqrt(t+5)", []float64{0, 1, 4})
	fdCheck(t, "log(t+3)/t", []float64{0.5, 1, 2})
	fdCheck(t, "2^t", []float64{-1, 0, 1.5})
}

func TestDiffConstant(t *testing.T) {
	e, err := Parse("4.2")
	require.NoError(t, err)
	assert.Equal(t, Num(0), Diff(e))
}

func TestDiffPiecewise(t *testing.T) {
	// Branch-wise differentiation with guards preserved; sampled away
	// from the guard points 0 and 1.
	fdCheck(t, "Piecewise((0, t<0), (1, t>1), (0.5-0.5*cos(pi*t), True))",
		[]float64{-1, 0.25, 0.5, 0.75, 2})
	fdCheck(t, "H(t-2)", []float64{0, 2.5, 5})
}

func TestDiffPiecewiseStructure(t *testing.T) {
	e, err := Parse("Piecewise((t^2, t<1), (2*t-1, True))")
	require.NoError(t, err)
	d := Diff(e)
	pw, ok := d.(Piecewise)
	require.True(t, ok)
	require.Len(t, pw.Pieces, 2)
	// Guards carry over unchanged
	assert.Equal(t, e.(Piecewise).Pieces[0].Cond, pw.Pieces[0].Cond)
	assert.IsType(t, True{}, pw.Pieces[1].Cond)
	// Derivative of the constant-slope branch is the constant 2
	assert.InDelta(t, 2, pw.Pieces[1].Expr.Eval(7), 1.e-12)
}
