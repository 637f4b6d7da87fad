package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
Title: "Two Species CSTR"
SpecieNames: [A, B]
BoundaryNames: [inlet, wall]
NoFluxNames: [wall]
NumCompartments: 2
PointsPerModel: 1
BoundaryConditions: |
  A : inlet -> 1
  B : inlet -> H(t-5)
InitialConditions: |
  A -> 0
  B -> 0
PointsForBC:
  inlet: [0]
QWeights:
  inlet: [1.0]
NodeFlows:
  - {I: 0, J: 0, Rate: -1.0}
  - {I: 1, J: 0, Rate: 1.0}
FinalTime: 10
Dt: 0.01
`)
	p := &Parameters{}
	require.NoError(t, p.Parse(data))
	assert.Equal(t, []string{"A", "B"}, p.SpecieNames)
	assert.Equal(t, 2, p.TotalNodes())
	assert.Equal(t, []int{0}, p.PointsForBC["inlet"])
	assert.Equal(t, FlowEntry{I: 1, J: 0, Rate: 1.0}, p.NodeFlows[1])
	assert.Contains(t, p.BoundaryConditions, "H(t-5)")
	// Defaulted
	assert.Equal(t, ".", p.WorkingDirectory)
}

func TestParseValidation(t *testing.T) {
	// Mismatched points and weights
	{
		p := &Parameters{}
		err := p.Parse([]byte(`
SpecieNames: [A]
NumCompartments: 1
PointsPerModel: 1
PointsForBC:
  inlet: [0, 1]
QWeights:
  inlet: [1.0]
`))
		assert.Error(t, err)
	}
	// Missing species
	{
		p := &Parameters{}
		err := p.Parse([]byte("NumCompartments: 1\nPointsPerModel: 1\n"))
		assert.Error(t, err)
	}
	// PFR discretization needs at least one point per model
	{
		p := &Parameters{}
		err := p.Parse([]byte("SpecieNames: [A]\nNumCompartments: 1\nPointsPerModel: 0\n"))
		assert.Error(t, err)
	}
}
