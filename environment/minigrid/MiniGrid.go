// Package minigrid implements a small fully observable gridworld engine
// in the style of MiniGrid. Concrete environments supply a Builder which
// lays out the grid at the start of each episode; the engine owns the
// random number generator, the agent and the episode loop.
package minigrid

import (
	"fmt"

	env "github.com/samuelfneumann/lavagrid/environment"
	ts "github.com/samuelfneumann/lavagrid/timestep"
	"gonum.org/v1/gonum/mat"
)

// Action is an action the agent can take
type Action int

const (
	TurnLeft Action = iota
	TurnRight
	Forward
)

// NumActions is the number of actions available to the agent
const NumActions = 3

// MinSize is the smallest grid which has an interior cell
const MinSize = 3

// Scene is everything a Builder produces for one episode
type Scene struct {
	Grid     *Grid
	AgentPos Cell
	AgentDir Direction
	Mission  string
}

// Builder lays out a new episode. Build must draw all of its randomness
// from rng.
type Builder interface {
	Build(width, height int, rng *RNG) (Scene, error)
}

// Env is a square gridworld environment. The agent starts each episode
// in the Scene produced by the Builder and receives a reward of
// 1 - 0.9 * (steps / max steps) for reaching a Goal. Moving onto a
// Hazard ends the episode with zero reward.
type Env struct {
	builder       Builder
	width, height int
	discount      float64
	rng           *RNG
	stepLimit     env.StepLimit

	scene       Scene
	stepCount   int
	currentStep ts.TimeStep
}

// New creates a new size x size Env whose episodes are laid out by b.
// Episodes are cut off after 4 * size * size steps.
func New(b Builder, size int, discount float64, seed uint64) (*Env,
	ts.TimeStep, error) {
	if size < MinSize {
		return nil, ts.TimeStep{}, fmt.Errorf("new: size must be at "+
			"least %d, got %d", MinSize, size)
	}

	e := &Env{
		builder:   b,
		width:     size,
		height:    size,
		discount:  discount,
		rng:       NewRNG(seed),
		stepLimit: env.NewStepLimit(4 * size * size),
	}

	step, err := e.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return e, step, nil
}

// Seed reseeds the environment's random number generator. The next
// call to Reset lays out the same episode as any other Env reseeded
// with the same seed.
func (e *Env) Seed(seed uint64) {
	e.rng.Seed(seed)
}

// Reset lays out a new episode and returns its first TimeStep
func (e *Env) Reset() (ts.TimeStep, error) {
	scene, err := e.builder.Build(e.width, e.height, e.rng)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not build grid: %w",
			err)
	}
	if err := e.validStart(scene.Grid, scene.AgentPos); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	e.scene = scene
	return e.restart(), nil
}

// ResetWithAgent lays out a new episode and then moves the agent to
// pos facing dir
func (e *Env) ResetWithAgent(pos Cell, dir Direction) (ts.TimeStep, error) {
	if _, err := e.Reset(); err != nil {
		return ts.TimeStep{}, err
	}
	if err := e.SetAgent(pos, dir); err != nil {
		return ts.TimeStep{}, fmt.Errorf("resetWithAgent: %v", err)
	}
	return e.restart(), nil
}

// restart begins a new episode in the current scene
func (e *Env) restart() ts.TimeStep {
	e.stepCount = 0
	e.currentStep = ts.New(ts.First, 0, e.discount, e.Observation(), 0)
	return e.currentStep
}

// SetAgent moves the agent to pos facing dir without ending the episode
func (e *Env) SetAgent(pos Cell, dir Direction) error {
	if err := e.validStart(e.scene.Grid, pos); err != nil {
		return fmt.Errorf("setAgent: %v", err)
	}
	if dir < 0 || dir >= NumDirections {
		return fmt.Errorf("setAgent: no such direction %d", dir)
	}

	e.scene.AgentPos = pos
	e.scene.AgentDir = dir
	return nil
}

func (e *Env) validStart(g *Grid, pos Cell) error {
	if g == nil {
		return fmt.Errorf("no grid")
	}
	if !pos.In(g.Dims()) {
		return fmt.Errorf("agent position %v outside grid", pos)
	}
	if o := g.At(pos); o != nil && !o.CanOverlap() {
		return fmt.Errorf("agent position %v blocked by %T", pos, o)
	}
	return nil
}

// Step takes one action in the environment. The action must be a
// 1-dimensional vector holding one of TurnLeft, TurnRight, or Forward.
func (e *Env) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != 1 {
		return ts.TimeStep{}, false, fmt.Errorf("step: actions must be " +
			"1-dimensional")
	}
	if e.currentStep.Last() {
		return ts.TimeStep{}, false, fmt.Errorf("step: episode has " +
			"ended, call Reset")
	}

	e.stepCount++
	reward := 0.0
	terminal := false

	switch a := Action(action.AtVec(0)); a {
	case TurnLeft:
		e.scene.AgentDir = e.scene.AgentDir.TurnLeft()

	case TurnRight:
		e.scene.AgentDir = e.scene.AgentDir.TurnRight()

	case Forward:
		next := e.scene.AgentPos.Add(e.scene.AgentDir.Vec())
		cell := e.scene.Grid.At(next)
		if next.In(e.width, e.height) && (cell == nil || cell.CanOverlap()) {
			e.scene.AgentPos = next
		}

		if _, ok := cell.(Goal); ok {
			terminal = true
			reward = e.goalReward()
		} else if isHazard(cell) {
			terminal = true
		}

	default:
		e.stepCount--
		return ts.TimeStep{}, false, fmt.Errorf("step: no such action %v", a)
	}

	next := ts.New(ts.Mid, reward, e.discount, e.Observation(), e.stepCount)
	if terminal {
		next.StepType = ts.Last
		next.SetEnd(ts.TerminalStateReached)
	} else {
		e.stepLimit.End(&next)
	}

	e.currentStep = next
	return next, next.Last(), nil
}

func (e *Env) goalReward() float64 {
	return 1 - 0.9*(float64(e.stepCount)/float64(e.MaxSteps()))
}

// Observation returns the flattened fully observable encoding of the
// current grid
func (e *Env) Observation() *mat.VecDense {
	enc := e.scene.Grid.Encode(e.scene.AgentPos, e.scene.AgentDir)
	data := enc.Data().([]float64)
	return mat.NewVecDense(len(data), data)
}

// CurrentTimeStep returns the last TimeStep produced by the environment
func (e *Env) CurrentTimeStep() ts.TimeStep {
	return e.currentStep
}

// Grid returns the current grid
func (e *Env) Grid() *Grid {
	return e.scene.Grid
}

// AgentPos returns the agent's position
func (e *Env) AgentPos() Cell {
	return e.scene.AgentPos
}

// AgentDir returns the direction the agent faces
func (e *Env) AgentDir() Direction {
	return e.scene.AgentDir
}

// Mission returns the mission string of the current episode
func (e *Env) Mission() string {
	return e.scene.Mission
}

// StepCount returns the number of steps taken in the current episode
func (e *Env) StepCount() int {
	return e.stepCount
}

// MaxSteps returns the number of steps after which episodes are cut off
func (e *Env) MaxSteps() int {
	return e.stepLimit.EpisodeSteps()
}

// Size returns the side length of the grid
func (e *Env) Size() int {
	return e.width
}

// String renders the current grid as text
func (e *Env) String() string {
	return e.scene.Grid.Render(e.scene.AgentPos, e.scene.AgentDir)
}

// ActionSpec returns the action specification of the environment
func (e *Env) ActionSpec() env.Spec {
	return env.NewUniformSpec(1, env.Action, 0, NumActions-1, env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (e *Env) ObservationSpec() env.Spec {
	return env.NewUniformSpec(e.width*e.height*3, env.Observation, 0,
		float64(MaxObjectType), env.Discrete)
}

// DiscountSpec returns the discount specification of the environment
func (e *Env) DiscountSpec() env.Spec {
	return env.NewUniformSpec(1, env.Discount, e.discount, e.discount,
		env.Continuous)
}

// RewardSpec returns the reward specification of the environment
func (e *Env) RewardSpec() env.Spec {
	return env.NewUniformSpec(1, env.Reward, 0, 1, env.Continuous)
}
