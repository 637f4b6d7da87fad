package boundary

import (
	"fmt"

	"github.com/cmflow/cmflow/InputParameters"
	"github.com/cmflow/cmflow/utils"
)

// Setup runs the whole compile once per simulation setup: it builds the
// boundary registry, allocates the state array, loads initial conditions,
// compiles the boundary conditions, applies the initial-state overrides
// and writes the generated source module. Any failure aborts before the
// generated file is written.
func Setup(p *InputParameters.Parameters) (c0 utils.Matrix, compiled *CompiledBCs, err error) {
	grouped, err := NewGroupedBCs(p.BoundaryNames, p.NoFluxNames)
	if err != nil {
		return utils.Matrix{}, nil, err
	}

	var (
		qWeights    = make(map[int][]float64)
		pointsForBC = make(map[int]utils.Index)
	)
	for name, points := range p.PointsForBC {
		id, errID := grouped.ID(name)
		if errID != nil {
			return utils.Matrix{}, nil, errID
		}
		pointsForBC[id] = utils.Index(points)
		qWeights[id] = p.QWeights[name]
	}

	c0 = utils.NewMatrix(len(p.SpecieNames), p.TotalNodes())
	if err = LoadInitialConditions(p.InitialConditions, p.SpecieNames, c0); err != nil {
		return utils.Matrix{}, nil, err
	}

	compiled, overrides, err := CreateBoundaryConditions(
		p.SpecieNames, p.BoundaryConditions, grouped,
		qWeights, pointsForBC, p.T0, p.PointsPerModel)
	if err != nil {
		return utils.Matrix{}, nil, err
	}
	overrides.Apply(c0)

	if _, err = WriteGeneratedSource(compiled, p.WorkingDirectory); err != nil {
		return utils.Matrix{}, nil, err
	}
	fmt.Printf("compiled %d boundary condition pairs over %d boundaries\n",
		len(compiled.Pairs), len(compiled.Names))
	return c0, compiled, nil
}
