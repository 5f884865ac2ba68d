package environment

import ts "github.com/samuelfneumann/lavagrid/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// EpisodeSteps returns the number of steps after which an episode is
// cut off
func (s StepLimit) EpisodeSteps() int {
	return s.episodeSteps
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode temrination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is TimestepLimitReached
func (s StepLimit) End(t *ts.TimeStep) bool {
	if t.Number >= s.episodeSteps {
		t.StepType = ts.Last
		t.SetEnd(ts.TimestepLimitReached)
		return true
	}
	return false
}
