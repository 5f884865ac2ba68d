package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSetEnd(t *testing.T) {
	step := New(Mid, 1.0, 0.99, mat.NewVecDense(1, nil), 3)
	assert.Equal(t, Unset, step.EndType())
	assert.True(t, step.Mid())

	step.SetEnd(TerminalStateReached)
	step.SetEnd(TimestepLimitReached)
	assert.Equal(t, TerminalStateReached, step.EndType())
	assert.Contains(t, step.String(), "TerminalStateReached")
}
