package minigrid

import (
	"fmt"
	"strings"

	"gorgonia.org/tensor"
)

// Grid stores the object, if any, in each cell of a width x height
// gridworld. A nil entry is an empty cell.
type Grid struct {
	width, height int
	cells         []Object
}

// NewGrid returns a new empty Grid
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("newGrid: dimensions must be positive, got "+
			"(%d, %d)", width, height)
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Object, width*height),
	}, nil
}

// Dims returns the width and height of the Grid
func (g *Grid) Dims() (width, height int) {
	return g.width, g.height
}

// Put places o at cell (x, y), replacing whatever was there
func (g *Grid) Put(o Object, x, y int) error {
	if !(Cell{x, y}).In(g.width, g.height) {
		return fmt.Errorf("put: cell (%d, %d) outside grid of size (%d, %d)",
			x, y, g.width, g.height)
	}
	g.cells[y*g.width+x] = o
	return nil
}

// Get returns the object at cell (x, y). Empty cells and cells outside
// the grid return nil.
func (g *Grid) Get(x, y int) Object {
	if !(Cell{x, y}).In(g.width, g.height) {
		return nil
	}
	return g.cells[y*g.width+x]
}

// At is Get for a Cell
func (g *Grid) At(c Cell) Object {
	return g.Get(c.X, c.Y)
}

// HorzWall draws a horizontal wall of length cells starting at (x, y)
func (g *Grid) HorzWall(x, y, length int) {
	for i := x; i < x+length; i++ {
		g.Put(Wall{}, i, y)
	}
}

// VertWall draws a vertical wall of length cells starting at (x, y)
func (g *Grid) VertWall(x, y, length int) {
	for j := y; j < y+length; j++ {
		g.Put(Wall{}, x, j)
	}
}

// WallRect draws the outline of a w x h rectangle of walls with top
// left corner (x, y)
func (g *Grid) WallRect(x, y, w, h int) {
	g.HorzWall(x, y, w)
	g.HorzWall(x, y+h-1, w)
	g.VertWall(x, y, h)
	g.VertWall(x+w-1, y, h)
}

// Encode returns a fully observable encoding of the grid as a tensor of
// shape (width, height, 3). Each cell holds the (type, colour, state)
// triple of its object, and the agent is drawn over its cell with its
// direction as state.
func (g *Grid) Encode(agent Cell, dir Direction) *tensor.Dense {
	backing := make([]float64, g.width*g.height*3)

	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			var enc [3]int
			if x == agent.X && y == agent.Y {
				enc = [3]int{int(AgentType), int(Red), int(dir)}
			} else if o := g.Get(x, y); o != nil {
				enc = o.Encode()
			} else {
				enc = [3]int{int(EmptyType), 0, 0}
			}

			offset := (x*g.height + y) * 3
			for k := range enc {
				backing[offset+k] = float64(enc[k])
			}
		}
	}

	return tensor.New(
		tensor.WithShape(g.width, g.height, 3),
		tensor.WithBacking(backing),
	)
}

// Render returns a text rendering of the grid, one row per line, with
// the agent drawn at agent facing dir.
//
//	#  wall         G  goal
//	L  lava         x  hidden lava
//	N S E W  arrow  > v < ^  agent
func (g *Grid) Render(agent Cell, dir Direction) string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x == agent.X && y == agent.Y {
				b.WriteByte(">v<^"[dir%NumDirections])
				continue
			}
			b.WriteString(symbol(g.Get(x, y)))
		}
		if y < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func symbol(o Object) string {
	switch o := o.(type) {
	case nil:
		return "."
	case Wall:
		return "#"
	case Goal:
		return "G"
	case Lava:
		return "L"
	case HiddenLava:
		return "x"
	case Arrow:
		return o.Orientation.String()
	}
	return "?"
}
