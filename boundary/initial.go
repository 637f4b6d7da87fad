package boundary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmflow/cmflow/symbolic"
	"github.com/cmflow/cmflow/utils"
)

// LoadInitialConditions parses the initial condition text, one clause per
// line in the form "specie -> expression", and assigns each value across
// the full node range of that specie's row in c0. Every specie must get
// exactly one initial condition, no more no fewer; expressions must be
// constants (boundary overrides are applied separately, afterwards, by the
// boundary compiler's Overrides).
func LoadInitialConditions(icText string, specieNames []string, c0 utils.Matrix) error {
	outstanding := make(map[string]bool, len(specieNames))
	for _, name := range specieNames {
		if outstanding[name] {
			return fmt.Errorf("%w: specie %q registered twice", ErrDuplicateSpec, name)
		}
		outstanding[name] = true
	}

	_, nNodes := c0.Dims()
	for _, line := range strings.Split(icText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			return fmt.Errorf("initial condition %q: want \"specie -> expression\"", line)
		}
		specie := strings.TrimSpace(parts[0])
		if !outstanding[specie] {
			if specieIndex(specieNames, specie) >= 0 {
				return fmt.Errorf("%w: multiple initial conditions for specie %q", ErrDuplicateSpec, specie)
			}
			return fmt.Errorf("%w: %q in initial conditions", ErrUnknownSpecie, specie)
		}
		delete(outstanding, specie)

		eqn, err := symbolic.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("initial condition %q: %w", line, err)
		}
		if vars := symbolic.FreeVars(eqn); len(vars) > 0 {
			return fmt.Errorf("%w: initial condition %q uses %q", ErrExprDomain, line, vars[0])
		}
		val := eqn.Eval(0)
		c0.AssignScalar(specieIndex(specieNames, specie), utils.NewRange(0, nNodes-1), val)
	}

	// Every specie needs an explicit initial condition so nothing is missed
	if len(outstanding) > 0 {
		var missing []string
		for name := range outstanding {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingIC, strings.Join(missing, ", "))
	}
	return nil
}
