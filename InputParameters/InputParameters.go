package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// FlowEntry is one resolved node-to-node transport rate: the contribution
// of node J's concentration to node I's rate of change. Rates already
// carry the 1/volume factor, so the diagonal holds each node's total
// outflow as a negative rate.
type FlowEntry struct {
	I    int     `yaml:"I"`
	J    int     `yaml:"J"`
	Rate float64 `yaml:"Rate"`
}

// Parameters obtained from the YAML input file. Boundary topology arrives
// fully resolved: the compiler never discovers which node a boundary
// touches, it is told.
type Parameters struct {
	Title              string               `yaml:"Title"`
	SpecieNames        []string             `yaml:"SpecieNames"`
	BoundaryNames      []string             `yaml:"BoundaryNames"`
	NoFluxNames        []string             `yaml:"NoFluxNames"`
	NumCompartments    int                  `yaml:"NumCompartments"`
	PointsPerModel     int                  `yaml:"PointsPerModel"` // 1 = CSTR, >=2 = PFR
	BoundaryConditions string               `yaml:"BoundaryConditions"`
	InitialConditions  string               `yaml:"InitialConditions"`
	PointsForBC        map[string][]int     `yaml:"PointsForBC"`
	QWeights           map[string][]float64 `yaml:"QWeights"`
	NodeFlows          []FlowEntry          `yaml:"NodeFlows"`
	T0                 float64              `yaml:"T0"`
	FinalTime          float64              `yaml:"FinalTime"`
	Dt                 float64              `yaml:"Dt"`
	WorkingDirectory   string               `yaml:"WorkingDirectory"`
}

func (p *Parameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, p); err != nil {
		return err
	}
	return p.validate()
}

func (p *Parameters) validate() error {
	if len(p.SpecieNames) == 0 {
		return fmt.Errorf("no specie names given")
	}
	if p.NumCompartments <= 0 {
		return fmt.Errorf("NumCompartments must be positive, got %d", p.NumCompartments)
	}
	if p.PointsPerModel <= 0 {
		return fmt.Errorf("PointsPerModel must be positive, got %d", p.PointsPerModel)
	}
	for name, points := range p.PointsForBC {
		if len(points) != len(p.QWeights[name]) {
			return fmt.Errorf("boundary %q: %d points but %d flow weights",
				name, len(points), len(p.QWeights[name]))
		}
	}
	if p.WorkingDirectory == "" {
		p.WorkingDirectory = "."
	}
	return nil
}

// TotalNodes is the node-axis length of the state array: every compartment
// contributes PointsPerModel nodes.
func (p *Parameters) TotalNodes() int {
	return p.NumCompartments * p.PointsPerModel
}

func (p *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("%v\t\t= Specie Names\n", p.SpecieNames)
	fmt.Printf("[%d x %d]\t\t= Compartments x Points\n", p.NumCompartments, p.PointsPerModel)
	fmt.Printf("%8.5f\t\t= T0\n", p.T0)
	fmt.Printf("%8.5f\t\t= FinalTime\n", p.FinalTime)
	keys := make([]string, len(p.PointsForBC))
	i := 0
	for k := range p.PointsForBC {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BC[%s] points = %v, weights = %v\n", key, p.PointsForBC[key], p.QWeights[key])
	}
}
