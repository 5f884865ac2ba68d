// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments
package environment

import (
	ts "github.com/samuelfneumann/lavagrid/timestep"
	"gonum.org/v1/gonum/mat"
)

// Ender determines when an episode should end. If End returns true,
// the TimeStep argument is modified so that its StepType is Last and
// its EndType records the reason for ending.
type Ender interface {
	End(t *ts.TimeStep) bool
}

// Environment implements a simualted environment
type Environment interface {
	Reset() (ts.TimeStep, error)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	CurrentTimeStep() ts.TimeStep
	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
