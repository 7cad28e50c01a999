package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-powerflow/pkg/matrix"
)

func loadSystem(t *testing.T, a [][]float64, b []float64) *matrix.System {
	t.Helper()

	sys, err := matrix.NewSystem(len(b))
	require.NoError(t, err)
	t.Cleanup(sys.Destroy)

	for i, row := range a {
		for j, v := range row {
			if v != 0 {
				require.NoError(t, sys.AddElement(i, j, v))
			}
		}
		require.NoError(t, sys.AddRHS(i, b[i]))
	}
	return sys
}

func TestSystem_Solve(t *testing.T) {
	sys := loadSystem(t,
		[][]float64{
			{4, -2, 1},
			{-2, 4, -2},
			{1, -2, 4},
		},
		[]float64{11, -16, 17},
	)

	assert.Nil(t, sys.Solution())
	require.NoError(t, sys.Solve())

	x := sys.Solution()
	require.Len(t, x, 3)
	assert.InDelta(t, 1.0, x[0], 1e-12)
	assert.InDelta(t, -2.0, x[1], 1e-12)
	assert.InDelta(t, 3.0, x[2], 1e-12)
}

func TestSystem_Singular(t *testing.T) {
	t.Run("dependent rows", func(t *testing.T) {
		sys := loadSystem(t, [][]float64{{1, 2}, {2, 4}}, []float64{1, 2})
		require.ErrorIs(t, sys.Solve(), matrix.ErrSingular)
		assert.Nil(t, sys.Solution())
	})

	t.Run("empty row", func(t *testing.T) {
		sys := loadSystem(t, [][]float64{{1, 1}, {0, 0}}, []float64{1, 0})
		require.ErrorIs(t, sys.Solve(), matrix.ErrSingular)
	})
}

func TestSystem_IndexChecks(t *testing.T) {
	_, err := matrix.NewSystem(0)
	require.ErrorIs(t, err, matrix.ErrBadSize)

	sys, err := matrix.NewSystem(2)
	require.NoError(t, err)
	defer sys.Destroy()

	require.ErrorIs(t, sys.AddElement(2, 0, 1), matrix.ErrIndexOutOfRange)
	require.ErrorIs(t, sys.AddElement(0, -1, 1), matrix.ErrIndexOutOfRange)
	require.ErrorIs(t, sys.AddRHS(2, 1), matrix.ErrIndexOutOfRange)
}
