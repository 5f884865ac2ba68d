// Package lavarandom implements gridworlds in which the agent must reach
// a goal in the corner of the grid while avoiding randomly placed lava.
// Optionally, the lava is hidden and arrows on the border of the grid
// point at each lava cell, coloured by how far away the lava is.
package lavarandom

import (
	"fmt"

	"github.com/samuelfneumann/lavagrid/environment/minigrid"
	"github.com/samuelfneumann/lavagrid/environment/minigrid/layout"
	ts "github.com/samuelfneumann/lavagrid/timestep"
)

const (
	// MinSize is the smallest supported grid side length
	MinSize int = 5

	// DefaultObstacles is the default number of lava cells
	DefaultObstacles int = 2

	Mission string = "avoid the lava and get to the green goal square"
)

// AgentPlacement determines where the agent starts each episode
type AgentPlacement int

const (
	// Fixed starts the agent in the top left corner facing right
	Fixed AgentPlacement = iota

	// Random starts the agent in a random cell of the top left 2x2
	// block, excluding the goal, facing a random direction
	Random
)

func (a AgentPlacement) String() string {
	if a == Random {
		return "Random"
	}
	return "Fixed"
}

// Config configures a LavaRandom environment
type Config struct {
	Size       int
	Obstacles  int
	ShowArrows bool
	Placement  AgentPlacement

	// MaxRetries caps rejection sampling during layout generation, see
	// layout.Config
	MaxRetries int
}

// NewConfig returns a Config of the given size with the default number
// of obstacles and a fixed agent start
func NewConfig(size int, showArrows bool) Config {
	return Config{
		Size:       size,
		Obstacles:  DefaultObstacles,
		ShowArrows: showArrows,
		Placement:  Fixed,
	}
}

// LavaRandom is a gridworld with randomly placed lava. A new layout is
// generated on every call to Reset.
type LavaRandom struct {
	*minigrid.Env
	builder *builder
}

// New returns a new LavaRandom environment and its first TimeStep
func New(c Config, discount float64, seed uint64) (*LavaRandom, ts.TimeStep,
	error) {
	if c.Size < MinSize {
		return nil, ts.TimeStep{}, fmt.Errorf("new: size must be at least "+
			"%d, got %d", MinSize, c.Size)
	}
	if c.Obstacles < 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: obstacles must be "+
			"non-negative, got %d", c.Obstacles)
	}

	b := &builder{config: c}
	e, step, err := minigrid.New(b, c.Size, discount, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	return &LavaRandom{e, b}, step, nil
}

// Layout returns the layout of the current episode
func (l *LavaRandom) Layout() layout.Layout {
	return l.builder.layout
}

// Config returns the configuration of the environment
func (l *LavaRandom) Config() Config {
	return l.builder.config
}

// builder lays out LavaRandom episodes
type builder struct {
	config Config
	layout layout.Layout
}

func (b *builder) Build(width, height int, rng *minigrid.RNG) (minigrid.Scene,
	error) {
	if width < MinSize || height < MinSize {
		return minigrid.Scene{}, fmt.Errorf("build: grid must be at least "+
			"%dx%d", MinSize, MinSize)
	}

	grid, err := minigrid.NewGrid(width, height)
	if err != nil {
		return minigrid.Scene{}, fmt.Errorf("build: %v", err)
	}
	grid.WallRect(0, 0, width, height)

	goal := minigrid.Cell{X: width - 2, Y: height - 2}
	grid.Put(minigrid.Goal{}, goal.X, goal.Y)

	agent, dir := minigrid.Cell{X: 1, Y: 1}, minigrid.Right
	if b.config.Placement == Random {
		agent, dir = randomAgent(goal, rng)
	}

	l, err := layout.Generate(layout.Config{
		Width:          width,
		Height:         height,
		Hazards:        b.config.Obstacles,
		ShowIndicators: b.config.ShowArrows,
		MaxRetries:     b.config.MaxRetries,
	}, []minigrid.Cell{agent, goal}, rng.Source())
	if err != nil {
		return minigrid.Scene{}, fmt.Errorf("build: %w", err)
	}

	for _, h := range l.Hazards {
		grid.Put(b.obstacle(), h.X, h.Y)
	}
	for _, ind := range l.Indicators {
		grid.Put(ind.Arrow(), ind.Cell.X, ind.Cell.Y)
	}
	b.layout = l

	return minigrid.Scene{
		Grid:     grid,
		AgentPos: agent,
		AgentDir: dir,
		Mission:  Mission,
	}, nil
}

// obstacle returns the object used for lava. When arrows are shown the
// lava is hidden so that the arrows are the only cue.
func (b *builder) obstacle() minigrid.Object {
	if b.config.ShowArrows {
		return minigrid.HiddenLava{}
	}
	return minigrid.Lava{}
}

func randomAgent(goal minigrid.Cell, rng *minigrid.RNG) (minigrid.Cell,
	minigrid.Direction) {
	pos := goal
	for pos == goal {
		pos = rng.Pos(1, 3, 1, 3)
	}
	dir := minigrid.Direction(rng.Int(0, minigrid.NumDirections))
	return pos, dir
}
