package minigrid

import (
	"testing"

	ts "github.com/samuelfneumann/lavagrid/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// fixedBuilder builds a walled grid holding objects, with the agent at
// (1, 1) facing right
type fixedBuilder struct {
	objects map[Cell]Object
}

func (f fixedBuilder) Build(width, height int, _ *RNG) (Scene, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return Scene{}, err
	}
	grid.WallRect(0, 0, width, height)
	for c, o := range f.objects {
		grid.Put(o, c.X, c.Y)
	}

	return Scene{
		Grid:     grid,
		AgentPos: Cell{1, 1},
		AgentDir: Right,
		Mission:  "test",
	}, nil
}

func action(a Action) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(a)})
}

func TestGrid(t *testing.T) {
	g, err := NewGrid(5, 4)
	require.NoError(t, err)
	g.WallRect(0, 0, 5, 4)

	walls := 0
	for x := 0; x < 5; x++ {
		for y := 0; y < 4; y++ {
			if _, ok := g.Get(x, y).(Wall); ok {
				walls++
			}
		}
	}
	assert.Equal(t, 2*5+2*4-4, walls)

	assert.Nil(t, g.Get(2, 2))
	assert.Nil(t, g.Get(-1, 2))
	assert.Error(t, g.Put(Goal{}, 5, 0))

	require.NoError(t, g.Put(Arrow{Orientation: West, Colour: Yellow}, 4, 2))
	assert.Equal(t, Arrow{West, Yellow}, g.Get(4, 2))

	_, err = NewGrid(0, 3)
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	g, err := NewGrid(4, 4)
	require.NoError(t, err)
	g.WallRect(0, 0, 4, 4)
	g.Put(Lava{}, 2, 1)
	g.Put(HiddenLava{}, 1, 2)
	g.Put(Arrow{Orientation: South, Colour: Red}, 2, 0)

	enc := g.Encode(Cell{1, 1}, Down)
	assert.Equal(t, []int{4, 4, 3}, []int(enc.Shape()))

	tests := []struct {
		c    Cell
		want [3]float64
	}{
		{Cell{0, 0}, [3]float64{float64(WallType), float64(Grey), 0}},
		{Cell{1, 1}, [3]float64{float64(AgentType), float64(Red), float64(Down)}},
		{Cell{2, 1}, [3]float64{float64(LavaType), float64(Red), 0}},
		{Cell{1, 2}, [3]float64{float64(EmptyType), 0, 0}},
		{Cell{2, 2}, [3]float64{float64(EmptyType), 0, 0}},
		{Cell{2, 0}, [3]float64{float64(ArrowType), float64(Red), float64(South)}},
	}

	for _, test := range tests {
		for k := 0; k < 3; k++ {
			v, err := enc.At(test.c.X, test.c.Y, k)
			require.NoError(t, err)
			assert.Equal(t, test.want[k], v, "cell %v channel %d", test.c, k)
		}
	}
}

func TestRender(t *testing.T) {
	g, err := NewGrid(5, 5)
	require.NoError(t, err)
	g.WallRect(0, 0, 5, 5)
	g.Put(Goal{}, 3, 3)
	g.Put(Lava{}, 2, 2)
	g.Put(Arrow{Orientation: South, Colour: Yellow}, 2, 0)

	want := "##S##\n" +
		"#>..#\n" +
		"#.L.#\n" +
		"#..G#\n" +
		"#####"
	assert.Equal(t, want, g.Render(Cell{1, 1}, Right))
}

func TestRNG(t *testing.T) {
	a, b := NewRNG(11), NewRNG(11)
	for i := 0; i < 100; i++ {
		x := a.Int(1, 4)
		assert.Equal(t, x, b.Int(1, 4))
		assert.True(t, x >= 1 && x < 4)
	}

	a.Seed(3)
	first := a.Pos(1, 6, 1, 6)
	a.Seed(3)
	assert.Equal(t, first, a.Pos(1, 6, 1, 6))
}

func TestStepMovement(t *testing.T) {
	e, step, err := New(fixedBuilder{}, 5, 0.99, 1)
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, 4*5*5, e.MaxSteps())
	assert.Equal(t, 5*5*3, step.Observation.Len())

	step, done, err := e.Step(action(Forward))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, Cell{2, 1}, e.AgentPos())
	assert.Equal(t, 1, step.Number)

	// Walk into the east wall
	e.Step(action(Forward))
	e.Step(action(Forward))
	assert.Equal(t, Cell{3, 1}, e.AgentPos())

	e.Step(action(TurnRight))
	assert.Equal(t, Down, e.AgentDir())
	e.Step(action(TurnLeft))
	e.Step(action(TurnLeft))
	assert.Equal(t, Up, e.AgentDir())

	_, _, err = e.Step(action(Action(7)))
	assert.Error(t, err)
	_, _, err = e.Step(mat.NewVecDense(2, nil))
	assert.Error(t, err)
}

func TestStepGoal(t *testing.T) {
	b := fixedBuilder{map[Cell]Object{{2, 1}: Goal{}}}
	e, _, err := New(b, 5, 1.0, 1)
	require.NoError(t, err)

	step, done, err := e.Step(action(Forward))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.InDelta(t, 1-0.9*(1.0/100.0), step.Reward, 1e-12)

	_, _, err = e.Step(action(Forward))
	assert.Error(t, err)

	step, err = e.Reset()
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, 0, e.StepCount())
}

func TestStepHazard(t *testing.T) {
	for _, lava := range []Object{Lava{}, HiddenLava{}} {
		b := fixedBuilder{map[Cell]Object{{2, 1}: lava}}
		e, _, err := New(b, 5, 1.0, 1)
		require.NoError(t, err)

		step, done, err := e.Step(action(Forward))
		require.NoError(t, err)
		assert.True(t, done, "%T", lava)
		assert.Equal(t, 0.0, step.Reward)
		assert.Equal(t, ts.TerminalStateReached, step.EndType())
	}
}

func TestStepLimit(t *testing.T) {
	e, _, err := New(fixedBuilder{}, 3, 1.0, 1)
	require.NoError(t, err)

	var step ts.TimeStep
	var done bool
	for i := 0; i < e.MaxSteps(); i++ {
		require.False(t, done, "episode ended early at step %d", i)
		step, done, err = e.Step(action(TurnLeft))
		require.NoError(t, err)
	}
	assert.True(t, done)
	assert.Equal(t, ts.TimestepLimitReached, step.EndType())
}

func TestResetWithAgent(t *testing.T) {
	e, _, err := New(fixedBuilder{}, 5, 1.0, 1)
	require.NoError(t, err)

	step, err := e.ResetWithAgent(Cell{3, 2}, Left)
	require.NoError(t, err)
	assert.Equal(t, Cell{3, 2}, e.AgentPos())
	assert.Equal(t, Left, e.AgentDir())
	assert.True(t, mat.Equal(step.Observation, e.Observation()))

	assert.Error(t, e.SetAgent(Cell{0, 0}, Left))
	assert.Error(t, e.SetAgent(Cell{9, 9}, Left))
	assert.Error(t, e.SetAgent(Cell{2, 2}, Direction(4)))

	_, _, err = New(fixedBuilder{}, 2, 1.0, 1)
	assert.Error(t, err)
}

func TestSpecs(t *testing.T) {
	e, _, err := New(fixedBuilder{}, 6, 0.9, 1)
	require.NoError(t, err)

	assert.Equal(t, 6*6*3, e.ObservationSpec().Shape.Len())
	assert.Equal(t, float64(NumActions-1), e.ActionSpec().UpperBound.AtVec(0))
	assert.Equal(t, 0.9, e.DiscountSpec().LowerBound.AtVec(0))
	assert.Equal(t, 1.0, e.RewardSpec().UpperBound.AtVec(0))
}
