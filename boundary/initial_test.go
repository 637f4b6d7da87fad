package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmflow/cmflow/utils"
)

func TestLoadInitialConditions(t *testing.T) {
	species := []string{"A", "B"}
	// Each specie row is filled uniformly across every node
	{
		c0 := utils.NewMatrix(2, 3)
		err := LoadInitialConditions("A -> 1.5\nB -> 2*3", species, c0)
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			assert.InDelta(t, 1.5, c0.At(0, j), 1.e-12)
			assert.InDelta(t, 6, c0.At(1, j), 1.e-12)
		}
	}
	// A missing specie is an error
	{
		c0 := utils.NewMatrix(2, 3)
		err := LoadInitialConditions("A -> 1", species, c0)
		assert.ErrorIs(t, err, ErrMissingIC)
	}
	// Duplicate lines for the same specie
	{
		c0 := utils.NewMatrix(2, 3)
		err := LoadInitialConditions("A -> 1\nA -> 2\nB -> 0", species, c0)
		assert.ErrorIs(t, err, ErrDuplicateSpec)
	}
	// Unknown specie
	{
		c0 := utils.NewMatrix(2, 3)
		err := LoadInitialConditions("A -> 1\nB -> 0\nC -> 2", species, c0)
		assert.ErrorIs(t, err, ErrUnknownSpecie)
	}
	// Initial conditions must be constants
	{
		c0 := utils.NewMatrix(2, 3)
		err := LoadInitialConditions("A -> t\nB -> 0", species, c0)
		assert.ErrorIs(t, err, ErrExprDomain)
	}
}
