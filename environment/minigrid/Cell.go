package minigrid

import "fmt"

// Cell is an (x, y) coordinate in a Grid. The x coordinate indexes
// columns and the y coordinate indexes rows, with (0, 0) in the top
// left corner.
type Cell struct {
	X, Y int
}

// Add returns the cell offset from c by d
func (c Cell) Add(d Cell) Cell {
	return Cell{c.X + d.X, c.Y + d.Y}
}

// In returns whether c lies within [0, width) x [0, height)
func (c Cell) In(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction is the direction the agent faces
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

// NumDirections is the number of directions an agent can face
const NumDirections = 4

// Vec returns the unit offset of one step in direction d
func (d Direction) Vec() Cell {
	switch d {
	case Right:
		return Cell{1, 0}
	case Down:
		return Cell{0, 1}
	case Left:
		return Cell{-1, 0}
	default:
		return Cell{0, -1}
	}
}

// TurnLeft returns the direction after a counter-clockwise quarter turn
func (d Direction) TurnLeft() Direction {
	return (d + NumDirections - 1) % NumDirections
}

// TurnRight returns the direction after a clockwise quarter turn
func (d Direction) TurnRight() Direction {
	return (d + 1) % NumDirections
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Up:
		return "Up"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Orientation names the border edge an Arrow was projected onto
type Orientation int

const (
	North Orientation = iota
	South
	East
	West
)

// Orientations lists every Orientation in sampling order
var Orientations = []Orientation{North, South, East, West}

func (o Orientation) String() string {
	switch o {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Color is the colour index of a world object
type Color int

const (
	Red Color = iota
	Green
	Blue
	Purple
	Yellow
	Grey
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Purple:
		return "purple"
	case Yellow:
		return "yellow"
	case Grey:
		return "grey"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}
