// Package layout randomly lays out hazards in a bordered gridworld and
// places arrows on the border which point at each hazard and encode,
// through their colour, how far away the hazard is.
//
// All functions take the random source explicitly, so that a layout is
// a pure function of the grid dimensions, the reserved cells, and the
// state of the source.
package layout

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/lavagrid/environment/minigrid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultMaxRetries is the number of rejected draws allowed for a
// single placement when no cap is configured
const DefaultMaxRetries = 1000

// ErrLayoutTooConstrained is returned when a layout cannot be completed
// because the cells available for some placement are exhausted
var ErrLayoutTooConstrained = errors.New("layout too constrained")

// ColorTier buckets the distance between an arrow and its hazard
type ColorTier int

const (
	Near ColorTier = iota
	Mid
	Far
)

// TierFor returns the ColorTier of an arrow distance away from its
// hazard
func TierFor(distance int) ColorTier {
	switch distance {
	case 1:
		return Near
	case 2:
		return Mid
	default:
		return Far
	}
}

// Color returns the colour arrows of tier c are drawn with
func (c ColorTier) Color() minigrid.Color {
	switch c {
	case Near:
		return minigrid.Red
	case Mid:
		return minigrid.Yellow
	default:
		return minigrid.Purple
	}
}

func (c ColorTier) String() string {
	switch c {
	case Near:
		return "Near"
	case Mid:
		return "Mid"
	default:
		return "Far"
	}
}

// Indicator is an arrow on the border of the grid pointing at Hazard
type Indicator struct {
	Cell        minigrid.Cell
	Orientation minigrid.Orientation
	Tier        ColorTier
	Distance    int
	Hazard      minigrid.Cell
}

// Arrow returns the grid object which draws the Indicator
func (i Indicator) Arrow() minigrid.Arrow {
	return minigrid.Arrow{Orientation: i.Orientation, Colour: i.Tier.Color()}
}

// Layout is the hazards and indicators of one episode
type Layout struct {
	Hazards    []minigrid.Cell
	Indicators []Indicator
}

// Config configures the generation of a Layout
type Config struct {
	Width, Height int
	Hazards       int

	// ShowIndicators determines whether Indicators are placed
	ShowIndicators bool

	// MaxRetries caps the rejected draws of a single placement. Values
	// less than 1 use DefaultMaxRetries.
	MaxRetries int
}

// Generate places c.Hazards hazards avoiding the reserved cells and,
// if c.ShowIndicators is set, one Indicator per hazard
func Generate(c Config, reserved []minigrid.Cell, src rand.Source) (Layout,
	error) {
	hazards, err := PlaceHazards(c.Width, c.Height, c.Hazards, reserved, src,
		c.MaxRetries)
	if err != nil {
		return Layout{}, fmt.Errorf("generate: %w", err)
	}

	l := Layout{Hazards: hazards}
	if !c.ShowIndicators {
		return l, nil
	}

	l.Indicators, err = PlaceIndicators(c.Width, c.Height, hazards, src,
		c.MaxRetries)
	if err != nil {
		return Layout{}, fmt.Errorf("generate: %w", err)
	}
	return l, nil
}

// PlaceHazards draws count cells uniformly from the interior
// [1, width-1) x [1, height-1) of the grid, redrawing any cell in
// reserved. Hazards are not checked against each other, so the same
// cell may be drawn more than once.
func PlaceHazards(width, height, count int, reserved []minigrid.Cell,
	src rand.Source, maxRetries int) ([]minigrid.Cell, error) {
	if count < 0 {
		return nil, fmt.Errorf("placeHazards: count must be non-negative, "+
			"got %d", count)
	}
	if count == 0 {
		return []minigrid.Cell{}, nil
	}
	if free := freeInterior(width, height, reserved); free == 0 {
		return nil, fmt.Errorf("placeHazards: no free interior cell in "+
			"%dx%d grid: %w", width, height, ErrLayoutTooConstrained)
	}
	maxRetries = retries(maxRetries)

	rng := rand.New(src)
	draw := func() minigrid.Cell {
		x := 1 + rng.Intn(width-2)
		y := 1 + rng.Intn(height-2)
		return minigrid.Cell{X: x, Y: y}
	}

	hazards := make([]minigrid.Cell, 0, count)
	for i := 0; i < count; i++ {
		cell := draw()
		for rejected := 0; contains(reserved, cell); rejected++ {
			if rejected >= maxRetries {
				return nil, fmt.Errorf("placeHazards: hazard %d rejected "+
					"%d times: %w", i, rejected, ErrLayoutTooConstrained)
			}
			cell = draw()
		}
		hazards = append(hazards, cell)
	}
	return hazards, nil
}

// PlaceIndicators places one Indicator per hazard, in hazard order.
// For each hazard an edge is drawn uniformly and the hazard is
// projected onto it; edges whose projection is already taken by an
// earlier Indicator are redrawn.
func PlaceIndicators(width, height int, hazards []minigrid.Cell,
	src rand.Source, maxRetries int) ([]Indicator, error) {
	maxRetries = retries(maxRetries)

	weights := make([]float64, len(minigrid.Orientations))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	edge := distuv.NewCategorical(weights, src)
	draw := func() minigrid.Orientation {
		return minigrid.Orientations[int(edge.Rand())]
	}

	taken := make(map[minigrid.Cell]bool, len(hazards))
	indicators := make([]Indicator, 0, len(hazards))

	for i, hazard := range hazards {
		if exhausted(width, height, hazard, taken) {
			return nil, fmt.Errorf("placeIndicators: every border cell "+
				"in line with hazard %d at %v is taken: %w", i, hazard,
				ErrLayoutTooConstrained)
		}

		o := draw()
		cell, dist := Project(width, height, hazard, o)
		for rejected := 0; taken[cell]; rejected++ {
			if rejected >= maxRetries {
				return nil, fmt.Errorf("placeIndicators: indicator %d "+
					"rejected %d times: %w", i, rejected,
					ErrLayoutTooConstrained)
			}
			o = draw()
			cell, dist = Project(width, height, hazard, o)
		}

		taken[cell] = true
		indicators = append(indicators, Indicator{
			Cell:        cell,
			Orientation: o,
			Tier:        TierFor(dist),
			Distance:    dist,
			Hazard:      hazard,
		})
	}
	return indicators, nil
}

// Project projects hazard onto the border named by o, keeping the
// coordinate along that border fixed, and returns the projected cell
// together with its Euclidean distance to the hazard truncated to an
// integer. South is row 0, North is row height-1, West is column
// width-1 and East is column 0.
func Project(width, height int, hazard minigrid.Cell,
	o minigrid.Orientation) (minigrid.Cell, int) {
	var cell minigrid.Cell
	switch o {
	case minigrid.South:
		cell = minigrid.Cell{X: hazard.X, Y: 0}
	case minigrid.North:
		cell = minigrid.Cell{X: hazard.X, Y: height - 1}
	case minigrid.West:
		cell = minigrid.Cell{X: width - 1, Y: hazard.Y}
	default:
		cell = minigrid.Cell{X: 0, Y: hazard.Y}
	}

	dist := floats.Distance(
		[]float64{float64(cell.X), float64(cell.Y)},
		[]float64{float64(hazard.X), float64(hazard.Y)},
		2,
	)
	return cell, int(dist)
}

// exhausted returns whether all four projections of hazard are taken
func exhausted(width, height int, hazard minigrid.Cell,
	taken map[minigrid.Cell]bool) bool {
	for _, o := range minigrid.Orientations {
		if cell, _ := Project(width, height, hazard, o); !taken[cell] {
			return false
		}
	}
	return true
}

// freeInterior counts the interior cells not in reserved
func freeInterior(width, height int, reserved []minigrid.Cell) int {
	if width < 3 || height < 3 {
		return 0
	}

	free := (width - 2) * (height - 2)
	seen := make(map[minigrid.Cell]bool, len(reserved))
	for _, c := range reserved {
		interior := c.X >= 1 && c.X < width-1 && c.Y >= 1 && c.Y < height-1
		if interior && !seen[c] {
			seen[c] = true
			free--
		}
	}
	return free
}

func contains(cells []minigrid.Cell, c minigrid.Cell) bool {
	for _, cell := range cells {
		if cell == c {
			return true
		}
	}
	return false
}

func retries(maxRetries int) int {
	if maxRetries < 1 {
		return DefaultMaxRetries
	}
	return maxRetries
}
