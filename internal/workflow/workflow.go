// Package workflow models the navigation between the stages of an upload
// session.
package workflow

import (
	"errors"
	"fmt"
	"slices"
)

// Step is one stage of the workflow.
type Step string

const (
	StepDashboard Step = "dashboard"
	StepPrompts   Step = "prompts"
	StepMapping   Step = "mapping"
	StepOutput    Step = "output"
	StepComplete  Step = "complete"
)

// Steps lists the navigable steps in order. StepComplete is terminal and not
// part of the list.
var Steps = []Step{StepDashboard, StepPrompts, StepMapping, StepOutput}

var ErrInvalidTransition = errors.New("invalid workflow transition")

func (s Step) index() int {
	if s == StepComplete {
		return len(Steps)
	}
	return slices.Index(Steps, s)
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	return s.index() >= 0
}

// Next returns the step after s. The step after the last navigable step
// is StepComplete; StepComplete has no next step.
func Next(s Step) (Step, bool) {
	i := s.index()
	switch {
	case i < 0 || s == StepComplete:
		return "", false
	case i+1 < len(Steps):
		return Steps[i+1], true
	default:
		return StepComplete, true
	}
}

// Previous returns the step before s, if any.
func Previous(s Step) (Step, bool) {
	i := s.index()
	if i <= 0 || s == StepComplete {
		return "", false
	}
	return Steps[i-1], true
}

// CanTransition reports whether the workflow may move from one step to
// another. Any earlier step may be revisited, forward moves go to the next
// step only, and a completed workflow may only restart.
func CanTransition(from, to Step) bool {
	fi, ti := from.index(), to.index()
	if fi < 0 || ti < 0 || from == to {
		return false
	}
	if from == StepComplete {
		return to == StepDashboard
	}
	return ti <= fi+1
}

// State tracks the current step and which steps were completed.
type State struct {
	Current   Step
	completed []Step
}

// NewState returns a workflow positioned on the dashboard.
func NewState() *State {
	return &State{Current: StepDashboard}
}

// GoTo moves to step if the transition is allowed.
func (s *State) GoTo(step Step) error {
	if !CanTransition(s.Current, step) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Current, step)
	}
	if step == StepDashboard && s.Current == StepComplete {
		s.completed = nil
	}
	s.Current = step
	return nil
}

// Advance marks the current step completed and moves to the next one.
func (s *State) Advance() error {
	next, ok := Next(s.Current)
	if !ok {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, s.Current)
	}
	if !slices.Contains(s.completed, s.Current) {
		s.completed = append(s.completed, s.Current)
	}
	s.Current = next
	return nil
}

// Back moves to the previous step, if any.
func (s *State) Back() error {
	prev, ok := Previous(s.Current)
	if !ok {
		return fmt.Errorf("%w: no step before %s", ErrInvalidTransition, s.Current)
	}
	s.Current = prev
	return nil
}

// Completed reports whether step has been completed.
func (s *State) Completed(step Step) bool {
	return slices.Contains(s.completed, step)
}

// Progress returns the position of the current step as a percentage.
func (s *State) Progress() int {
	i := s.Current.index()
	if i < 0 {
		return 0
	}
	if i >= len(Steps) {
		return 100
	}
	return (i + 1) * 100 / len(Steps)
}
