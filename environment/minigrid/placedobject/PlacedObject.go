// Package placedobject implements a gridworld without any randomness,
// into which lava and arrows are placed by hand. It is used to check
// how arrows and the lava they point to are seen by the agent.
package placedobject

import (
	"fmt"

	"github.com/samuelfneumann/lavagrid/environment/minigrid"
	"github.com/samuelfneumann/lavagrid/environment/minigrid/lavarandom"
	ts "github.com/samuelfneumann/lavagrid/timestep"
)

// PlacedObject is an empty walled gridworld with a goal in the bottom
// right corner and the agent in the top left corner
type PlacedObject struct {
	*minigrid.Env
}

// New returns a new PlacedObject environment and its first TimeStep
func New(size int, discount float64, seed uint64) (*PlacedObject,
	ts.TimeStep, error) {
	if size < lavarandom.MinSize {
		return nil, ts.TimeStep{}, fmt.Errorf("new: size must be at least "+
			"%d, got %d", lavarandom.MinSize, size)
	}

	e, step, err := minigrid.New(builder{}, size, discount, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	return &PlacedObject{e}, step, nil
}

// PlaceLava puts lava at cell c
func (p *PlacedObject) PlaceLava(c minigrid.Cell) error {
	if err := p.Grid().Put(minigrid.Lava{}, c.X, c.Y); err != nil {
		return fmt.Errorf("placeLava: %v", err)
	}
	return nil
}

// PlaceArrow puts an arrow of the given colour and orientation at cell c
func (p *PlacedObject) PlaceArrow(color minigrid.Color,
	o minigrid.Orientation, c minigrid.Cell) error {
	arrow := minigrid.Arrow{Orientation: o, Colour: color}
	if err := p.Grid().Put(arrow, c.X, c.Y); err != nil {
		return fmt.Errorf("placeArrow: %v", err)
	}
	return nil
}

type builder struct{}

func (builder) Build(width, height int, _ *minigrid.RNG) (minigrid.Scene,
	error) {
	grid, err := minigrid.NewGrid(width, height)
	if err != nil {
		return minigrid.Scene{}, fmt.Errorf("build: %v", err)
	}
	grid.WallRect(0, 0, width, height)
	grid.Put(minigrid.Goal{}, width-2, height-2)

	return minigrid.Scene{
		Grid:     grid,
		AgentPos: minigrid.Cell{X: 1, Y: 1},
		AgentDir: minigrid.Right,
		Mission:  lavarandom.Mission,
	}, nil
}
