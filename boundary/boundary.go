package boundary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmflow/cmflow/symbolic"
	"github.com/cmflow/cmflow/utils"
)

// EvalFunc evaluates one compiled (boundary, specie) expression at time t.
type EvalFunc func(t float64) float64

// Pair is one compiled (boundary, specie) boundary condition.
type Pair struct {
	BCName string
	Specie string
	Row    int // specie row in the state array
	Eval   EvalFunc
	expr   symbolic.Expr // rewritten form behind Eval, kept for codegen
}

// CompiledBCs is the product of one compiler run: per-boundary node and
// weight tables plus one evaluator per (boundary, specie) pair, ordered by
// boundary name for reproducible emission. It holds no mutable state after
// compilation; Apply only reads it.
type CompiledBCs struct {
	Names          []string // used boundary names, sorted
	Points         map[string]utils.Index
	Weights        map[string][]float64
	Pairs          []Pair
	DerivativeForm bool
}

// Apply adds every boundary's time-weighted contribution into the
// state-derivative array: ddt[row, points[i]] += eval(t) * weights[i].
// Called once per integration step by the stepping loop. A compile with no
// boundary conditions yields a no-op.
func (c *CompiledBCs) Apply(t float64, ddt utils.Matrix) {
	for _, pair := range c.Pairs {
		var (
			val     = pair.Eval(t)
			points  = c.Points[pair.BCName]
			weights = c.Weights[pair.BCName]
		)
		for i, node := range points {
			ddt.AddAt(pair.Row, node, val*weights[i])
		}
	}
}

// PairsFor returns the compiled pairs for one boundary, in specification
// order.
func (c *CompiledBCs) PairsFor(bcName string) (pairs []Pair) {
	for _, pair := range c.Pairs {
		if pair.BCName == bcName {
			pairs = append(pairs, pair)
		}
	}
	return
}

// CreateBoundaryConditions compiles the boundary condition text, one
// clause per line in the form "specie : boundary_name -> expression".
//
// Stirred (single node) compartments consume the boundary value directly.
// When any compartment carries more than one node the network is driven by
// a differential-algebraic system, and the need for a DAE solver is
// avoided by storing the time derivative of each boundary value instead;
// in that mode the returned Overrides folds the start-time values into the
// initial state (the caller applies them).
//
// Expressions must be uniform over the boundary: a value may vary in time
// but not in space, so any free variable other than t is rejected. A
// constant expression (no free variables at all) is allowed deliberately.
func CreateBoundaryConditions(
	specieNames []string,
	bcText string,
	grouped *GroupedBCs,
	qWeights map[int][]float64,
	pointsForBC map[int]utils.Index,
	t0 float64,
	pointsPerModel int,
) (compiled *CompiledBCs, overrides *Overrides, err error) {

	// CSTR models have one discretization point per model; PFRs have at
	// least two (inlet and outlet).
	needTimeDeriv := pointsPerModel > 1

	nNodes := 0
	for id, points := range pointsForBC {
		if len(points) != len(qWeights[id]) {
			return nil, nil, fmt.Errorf("boundary id %d: %d points but %d flow weights",
				id, len(points), len(qWeights[id]))
		}
		if m := points.Max() + 1; m > nNodes {
			nNodes = m
		}
	}
	if nNodes == 0 {
		nNodes = 1
	}

	var (
		seen      = make(map[int]map[string]bool) // bc id -> species already specified
		namesUsed = make(map[string]bool)
	)
	compiled = &CompiledBCs{
		Points:         make(map[string]utils.Index),
		Weights:        make(map[string][]float64),
		DerivativeForm: needTimeDeriv,
	}
	overrides = newOverrides(len(specieNames), nNodes)

	type pending struct {
		bcName string
		specie string
		row    int
		stored symbolic.Expr // value form, or derivative form when needed
	}
	var all []pending

	for _, line := range strings.Split(bcText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		specie, bcName, exprText, errLine := splitBCLine(line)
		if errLine != nil {
			return nil, nil, errLine
		}

		row := specieIndex(specieNames, specie)
		if row < 0 {
			return nil, nil, fmt.Errorf("%w: %q in boundary condition %q", ErrUnknownSpecie, specie, line)
		}
		if grouped.IsNoFlux(bcName) {
			return nil, nil, fmt.Errorf("%w: %q", ErrForbiddenBoundary, bcName)
		}
		id, errID := grouped.ID(bcName)
		if errID != nil {
			return nil, nil, errID
		}
		if _, ok := pointsForBC[id]; !ok {
			return nil, nil, fmt.Errorf("boundary %q has no resolved points or flow weights", bcName)
		}
		if seen[id] == nil {
			seen[id] = make(map[string]bool)
		}
		if seen[id][specie] {
			return nil, nil, fmt.Errorf("%w: specie %q has multiple conditions for boundary %q",
				ErrDuplicateSpec, specie, bcName)
		}
		seen[id][specie] = true
		namesUsed[bcName] = true

		eqn, errParse := symbolic.Parse(exprText)
		if errParse != nil {
			return nil, nil, fmt.Errorf("boundary condition %q: %w", line, errParse)
		}
		if errVars := checkTimeOnly(eqn, line); errVars != nil {
			return nil, nil, errVars
		}

		stored := eqn
		if needTimeDeriv {
			stored = symbolic.Diff(eqn)
			// The boundary nodes stop holding the plain initial condition:
			// zero them now and fill them from the un-differentiated value
			// at t0, flow weighted, accumulated across inlets sharing a node.
			overrides.zeroRow(row, pointsForBC[id])
			v0 := eqn.Eval(t0)
			for i, node := range pointsForBC[id] {
				overrides.addAt(row, node, qWeights[id][i]*v0)
			}
		}
		rewritten, errRw := symbolic.RewritePiecewise(stored)
		if errRw != nil {
			return nil, nil, fmt.Errorf("boundary condition %q: %w", line, errRw)
		}
		all = append(all, pending{bcName: bcName, specie: specie, row: row, stored: rewritten})
	}

	// Sorted boundary order keeps emission reproducible across reruns.
	for name := range namesUsed {
		compiled.Names = append(compiled.Names, name)
	}
	sort.Strings(compiled.Names)

	for _, name := range compiled.Names {
		id, _ := grouped.ID(name)
		compiled.Points[name] = pointsForBC[id]
		compiled.Weights[name] = qWeights[id]
		for _, p := range all {
			if p.bcName != name {
				continue
			}
			compiled.Pairs = append(compiled.Pairs, Pair{
				BCName: name,
				Specie: p.specie,
				Row:    p.row,
				Eval:   p.stored.Eval,
				expr:   p.stored,
			})
		}
	}
	return compiled, overrides, nil
}

func splitBCLine(line string) (specie, bcName, exprText string, err error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("boundary condition %q: want \"specie : boundary -> expression\"", line)
	}
	specie = strings.TrimSpace(parts[0])
	rest := strings.SplitN(parts[1], "->", 2)
	if len(rest) != 2 {
		return "", "", "", fmt.Errorf("boundary condition %q: want \"specie : boundary -> expression\"", line)
	}
	bcName = strings.TrimSpace(rest[0])
	exprText = strings.TrimSpace(rest[1])
	return specie, bcName, exprText, nil
}

func specieIndex(specieNames []string, specie string) int {
	for i, name := range specieNames {
		if name == specie {
			return i
		}
	}
	return -1
}

// checkTimeOnly rejects expressions over spatial coordinates or any free
// variable other than t. Zero free variables means a constant boundary
// value, which is allowed.
func checkTimeOnly(e symbolic.Expr, line string) error {
	for _, name := range symbolic.FreeVars(e) {
		switch name {
		case "t":
		case "x", "y", "z":
			return fmt.Errorf("%w: %q is written in terms of a spatial coordinate (%s)",
				ErrExprDomain, line, name)
		default:
			return fmt.Errorf("%w: %q uses %q", ErrExprDomain, line, name)
		}
	}
	return nil
}
