package boundary

import (
	"fmt"
)

// GroupedBCs is the boundary name registry. It assigns each named boundary
// a stable integer id in registration order and records which names are
// no-flux. The compiler looks ids up by name and never invents them.
type GroupedBCs struct {
	ids    map[string]int
	names  []string
	noFlux map[string]bool
}

func NewGroupedBCs(names, noFluxNames []string) (g *GroupedBCs, err error) {
	g = &GroupedBCs{
		ids:    make(map[string]int),
		noFlux: make(map[string]bool),
	}
	for _, name := range names {
		if _, dup := g.ids[name]; dup {
			return nil, fmt.Errorf("boundary %q registered twice", name)
		}
		g.ids[name] = len(g.names)
		g.names = append(g.names, name)
	}
	for _, name := range noFluxNames {
		if _, ok := g.ids[name]; !ok {
			return nil, fmt.Errorf("no-flux name %q is not a registered boundary", name)
		}
		g.noFlux[name] = true
	}
	return g, nil
}

func (g *GroupedBCs) ID(name string) (int, error) {
	id, ok := g.ids[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBoundary, name)
	}
	return id, nil
}

func (g *GroupedBCs) Name(id int) string {
	return g.names[id]
}

func (g *GroupedBCs) IsNoFlux(name string) bool {
	return g.noFlux[name]
}
