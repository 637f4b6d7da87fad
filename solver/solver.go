package solver

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/cmflow/cmflow/InputParameters"
	"github.com/cmflow/cmflow/boundary"
	"github.com/cmflow/cmflow/utils"
)

// System integrates the compartment network in time. The transport
// operator is a sparse node-to-node rate matrix built from the resolved
// flow entries; boundary inflows enter through the compiled boundary
// conditions, invoked once per Runge-Kutta stage.
type System struct {
	Flow      *sparse.CSR
	BCs       *boundary.CompiledBCs
	U         utils.Matrix // state, [specie, node]
	Time      float64
	FinalTime float64
	Dt        float64
}

func NewSystem(p *InputParameters.Parameters, c0 utils.Matrix, bcs *boundary.CompiledBCs) (*System, error) {
	var (
		n   = p.TotalNodes()
		dok = sparse.NewDOK(n, n)
	)
	for _, f := range p.NodeFlows {
		if f.I < 0 || f.I >= n || f.J < 0 || f.J >= n {
			return nil, fmt.Errorf("flow entry (%d,%d) outside node range [0,%d)", f.I, f.J, n)
		}
		dok.Set(f.I, f.J, dok.At(f.I, f.J)+f.Rate)
	}
	if p.Dt <= 0 {
		return nil, fmt.Errorf("Dt must be positive, got %v", p.Dt)
	}
	return &System{
		Flow:      dok.ToCSR(),
		BCs:       bcs,
		U:         c0,
		Time:      p.T0,
		FinalTime: p.FinalTime,
		Dt:        p.Dt,
	}, nil
}

// RHS computes dU/dt at time t: transport between nodes plus the boundary
// contributions.
func (s *System) RHS(t float64, U utils.Matrix) (ddt utils.Matrix) {
	var (
		nSpecies, nNodes = U.Dims()
	)
	ddt = utils.NewMatrix(nSpecies, nNodes)
	s.Flow.DoNonZero(func(i, j int, rate float64) {
		for row := 0; row < nSpecies; row++ {
			ddt.AddAt(row, i, rate*U.At(row, j))
		}
	})
	s.BCs.Apply(t, ddt)
	return
}

// Run steps the network to FinalTime with the low-storage five-stage RK4
// scheme. Returns the final state (aliasing the system's state array).
func (s *System) Run() utils.Matrix {
	var (
		nSpecies, nNodes = s.U.Dims()
		resid            = utils.NewMatrix(nSpecies, nNodes)
		logFrequency     = 50
		tstep            int
	)
	for s.Time < s.FinalTime {
		dt := s.Dt
		if s.Time+dt > s.FinalTime {
			dt = s.FinalTime - s.Time
		}
		for INTRK := 0; INTRK < 5; INTRK++ {
			timelocal := s.Time + dt*utils.RK4c[INTRK]
			RHSU := s.RHS(timelocal, s.U)
			resid.Scale(utils.RK4a[INTRK]).Add(RHSU.Scale(dt))
			s.U.Add(resid.Copy().Scale(utils.RK4b[INTRK]))
		}
		s.Time += dt
		tstep++
		if tstep%logFrequency == 0 {
			fmt.Printf("Time = %8.4f, umin = %8.4f, umax = %8.4f\n", s.Time, s.U.Min(), s.U.Max())
		}
	}
	return s.U
}
