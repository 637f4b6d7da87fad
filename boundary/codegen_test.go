package boundary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSource(t *testing.T) {
	grouped, qw, pts := twoSpecieSetup(t)
	compiled, _, err := CreateBoundaryConditions([]string{"A", "B"},
		"A : inlet -> 1\nB : inlet -> sin(pi*t)", grouped, qw, pts, 0, 1)
	require.NoError(t, err)

	src := string(GenerateSource(compiled))
	assert.Contains(t, src, "package bcgen")
	assert.Contains(t, src, "var points_inlet = []int{0}")
	assert.Contains(t, src, "var qWeights_inlet = []float64{2}")
	assert.Contains(t, src, "func inlet_A(t float64) float64 {\n\treturn 1.0\n}")
	assert.Contains(t, src, "func inlet_B(t float64) float64 {\n\treturn math.Sin(")
	assert.Contains(t, src, "import \"math\"")
	assert.Contains(t, src, "func BoundaryConditions(t float64, ddt [][]float64)")
	assert.Contains(t, src, "ddt[0][p] += inlet_A(t) * qWeights_inlet[i]")
	assert.Contains(t, src, "ddt[1][p] += inlet_B(t) * qWeights_inlet[i]")
}

func TestGenerateSourceEmpty(t *testing.T) {
	grouped, qw, pts := twoSpecieSetup(t)
	compiled, _, err := CreateBoundaryConditions([]string{"A"}, "", grouped, qw, pts, 0, 1)
	require.NoError(t, err)

	src := string(GenerateSource(compiled))
	assert.Contains(t, src, "// No boundary conditions used")
	assert.NotContains(t, src, "import \"math\"")
	assert.NotContains(t, src, "b2f")
}

func TestGenerateSourcePiecewiseHelper(t *testing.T) {
	grouped, qw, pts := twoSpecieSetup(t)
	compiled, _, err := CreateBoundaryConditions([]string{"A"},
		"A : inlet -> Piecewise((0, t<0), (1, True))", grouped, qw, pts, 0, 1)
	require.NoError(t, err)

	src := string(GenerateSource(compiled))
	// Piecewise compiles branch-free: a boolean-weighted product through b2f
	assert.Contains(t, src, "func b2f(b bool) float64")
	assert.Contains(t, src, "b2f(")
	assert.NotContains(t, src, "Piecewise")
}

func TestGenerateSourcePiecewiseInGuard(t *testing.T) {
	// A conditional inside a guard comparison (here via H) must compile
	// through to plain arithmetic rather than failing at emission.
	grouped, qw, pts := twoSpecieSetup(t)
	compiled, _, err := CreateBoundaryConditions([]string{"A"},
		"A : inlet -> Piecewise((1, t < 2*H(3)), (0, True))", grouped, qw, pts, 0, 1)
	require.NoError(t, err)

	src := string(GenerateSource(compiled))
	assert.Contains(t, src, "func inlet_A(t float64) float64")
	assert.Contains(t, src, "b2f(")
	assert.NotContains(t, src, "Piecewise")

	// H(3) = 1, so the guard reduces to t < 2
	assert.InDelta(t, 1, compiled.Pairs[0].Eval(1), 1.e-12)
	assert.InDelta(t, 0, compiled.Pairs[0].Eval(2.5), 1.e-12)
}

func TestWriteGeneratedSource(t *testing.T) {
	grouped, qw, pts := twoSpecieSetup(t)
	compiled, _, err := CreateBoundaryConditions([]string{"A"},
		"A : inlet -> 1", grouped, qw, pts, 0, 1)
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := WriteGeneratedSource(compiled, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, GeneratedFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "func BoundaryConditions")
}

