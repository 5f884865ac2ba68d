package lavarandom

import (
	"testing"

	"github.com/samuelfneumann/lavagrid/environment/minigrid"
	"github.com/samuelfneumann/lavagrid/environment/minigrid/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidConfig(t *testing.T) {
	_, _, err := New(NewConfig(4, false), 0.99, 1)
	assert.Error(t, err)

	c := NewConfig(5, false)
	c.Obstacles = -1
	_, _, err = New(c, 0.99, 1)
	assert.Error(t, err)
}

func TestLayoutInvariants(t *testing.T) {
	for _, size := range []int{5, 6, 7} {
		for _, arrows := range []bool{false, true} {
			for _, placement := range []AgentPlacement{Fixed, Random} {
				c := NewConfig(size, arrows)
				c.Placement = placement

				e, _, err := New(c, 0.99, uint64(size))
				require.NoError(t, err)

				for episode := 0; episode < 50; episode++ {
					_, err := e.Reset()
					require.NoError(t, err)
					checkEpisode(t, e)
				}
			}
		}
	}
}

func checkEpisode(t *testing.T, e *LavaRandom) {
	t.Helper()

	c := e.Config()
	l := e.Layout()
	grid := e.Grid()
	goal := minigrid.Cell{X: c.Size - 2, Y: c.Size - 2}

	assert.Equal(t, Mission, e.Mission())
	assert.Equal(t, minigrid.Goal{}, grid.At(goal))

	require.Len(t, l.Hazards, c.Obstacles)
	for _, h := range l.Hazards {
		assert.True(t, h.X >= 1 && h.X < c.Size-1, "hazard %v", h)
		assert.True(t, h.Y >= 1 && h.Y < c.Size-1, "hazard %v", h)
		assert.NotEqual(t, goal, h)
		assert.NotEqual(t, e.AgentPos(), h)

		if c.ShowArrows {
			assert.Equal(t, minigrid.HiddenLava{}, grid.At(h))
		} else {
			assert.Equal(t, minigrid.Lava{}, grid.At(h))
		}
	}

	arrows := 0
	for x := 0; x < c.Size; x++ {
		for y := 0; y < c.Size; y++ {
			if _, ok := grid.Get(x, y).(minigrid.Arrow); ok {
				arrows++
			}
		}
	}

	if !c.ShowArrows {
		assert.Nil(t, l.Indicators)
		assert.Zero(t, arrows)
		return
	}

	require.Len(t, l.Indicators, len(l.Hazards))
	assert.Equal(t, len(l.Indicators), arrows)
	for _, ind := range l.Indicators {
		assert.Equal(t, ind.Arrow(), grid.At(ind.Cell))
		assert.Equal(t, layout.TierFor(ind.Distance).Color(),
			grid.At(ind.Cell).Color())
	}
}

func TestSeedReproducesLayout(t *testing.T) {
	c := NewConfig(7, true)
	c.Obstacles = 3

	a, firstA, err := New(c, 0.99, 2024)
	require.NoError(t, err)
	b, firstB, err := New(c, 0.99, 2024)
	require.NoError(t, err)

	assert.Equal(t, a.Layout(), b.Layout())
	assert.Equal(t, firstA.Observation.RawVector().Data,
		firstB.Observation.RawVector().Data)
	initial := a.Layout()

	for i := 0; i < 10; i++ {
		_, err := a.Reset()
		require.NoError(t, err)
		_, err = b.Reset()
		require.NoError(t, err)
		assert.Equal(t, a.Layout(), b.Layout())
	}

	a.Seed(2024)
	_, err = a.Reset()
	require.NoError(t, err)
	assert.Equal(t, initial, a.Layout())
	assert.Equal(t, firstA.Observation.RawVector().Data,
		a.Observation().RawVector().Data)
}

func TestResetRegeneratesLayout(t *testing.T) {
	e, _, err := New(NewConfig(7, true), 0.99, 5)
	require.NoError(t, err)

	first := e.Layout()
	changed := false
	for i := 0; i < 20 && !changed; i++ {
		_, err := e.Reset()
		require.NoError(t, err)
		changed = !assert.ObjectsAreEqual(first, e.Layout())
	}
	assert.True(t, changed, "layout never changed across resets")
}

func TestRandomPlacement(t *testing.T) {
	c := NewConfig(5, false)
	c.Placement = Random
	e, _, err := New(c, 0.99, 9)
	require.NoError(t, err)

	positions := make(map[minigrid.Cell]bool)
	for i := 0; i < 100; i++ {
		_, err := e.Reset()
		require.NoError(t, err)

		pos := e.AgentPos()
		positions[pos] = true
		assert.True(t, pos.X >= 1 && pos.X < 3 && pos.Y >= 1 && pos.Y < 3,
			"agent at %v", pos)
		assert.True(t, e.AgentDir() >= 0 &&
			e.AgentDir() < minigrid.NumDirections)
	}
	assert.Greater(t, len(positions), 1)
}

func TestFixedPlacement(t *testing.T) {
	e, _, err := New(NewConfig(6, false), 0.99, 9)
	require.NoError(t, err)

	assert.Equal(t, minigrid.Cell{X: 1, Y: 1}, e.AgentPos())
	assert.Equal(t, minigrid.Right, e.AgentDir())
	assert.Equal(t, 4*6*6, e.MaxSteps())
}
