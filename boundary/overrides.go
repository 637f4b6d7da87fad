package boundary

import (
	"github.com/james-bowman/sparse"

	"github.com/cmflow/cmflow/utils"
)

// Overrides carries the initial-state changes the boundary compiler wants
// applied when the derivative form is in use: the boundary nodes of every
// specified specie row are first zeroed, then each inlet's flow-weighted
// value at the start time is accumulated. Accumulation is additive because
// several boundaries may map to the same node index. The compiler returns
// this value instead of mutating the state array itself; Apply performs
// the mutation on the caller's array.
type Overrides struct {
	zeros map[int]utils.Index // specie row -> nodes to zero
	adds  *sparse.DOK         // (specie row, node) -> accumulated value
}

func newOverrides(nSpecies, nNodes int) *Overrides {
	return &Overrides{
		zeros: make(map[int]utils.Index),
		adds:  sparse.NewDOK(nSpecies, nNodes),
	}
}

func (o *Overrides) zeroRow(row int, nodes utils.Index) {
	for _, node := range nodes {
		if !o.zeros[row].Contains(node) {
			o.zeros[row] = append(o.zeros[row], node)
		}
	}
}

func (o *Overrides) addAt(row, node int, val float64) {
	o.adds.Set(row, node, o.adds.At(row, node)+val)
}

// Empty reports whether applying the overrides would change nothing,
// which is always the case outside derivative mode.
func (o *Overrides) Empty() bool {
	return o == nil || len(o.zeros) == 0 && o.adds.NNZ() == 0
}

// Apply zeroes the override nodes and folds the accumulated values into
// c0 in place.
func (o *Overrides) Apply(c0 utils.Matrix) {
	if o == nil {
		return
	}
	for row, nodes := range o.zeros {
		c0.AssignScalar(row, nodes, 0)
	}
	o.adds.DoNonZero(func(i, j int, v float64) {
		c0.AddAt(i, j, v)
	})
}
