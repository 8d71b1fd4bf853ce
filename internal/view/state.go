package view

import (
	"errors"

	"github.com/ManthanKaria/fraud-job-detector/internal/services"
)

// Phase is where a page is in its submit cycle.
type Phase int

const (
	Idle Phase = iota
	Loading
	Settled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

var ErrNotLoading = errors.New("cannot settle: no submission in flight")

// State is the view state of one page instance.
type State struct {
	phase   Phase
	outcome services.Outcome
	// pendingScroll is armed by Settle and consumed by the first render after it.
	pendingScroll bool
}

// NewState returns an idle page.
func NewState() *State {
	return &State{}
}

func (s *State) Phase() Phase {
	return s.phase
}

// Outcome is only meaningful once settled.
func (s *State) Outcome() services.Outcome {
	return s.outcome
}

// Begin starts a submission, dropping whatever the previous one settled to.
func (s *State) Begin() {
	s.phase = Loading
	s.outcome = services.Outcome{}
	s.pendingScroll = false
}

// Settle stores the outcome of the in-flight submission.
func (s *State) Settle(o services.Outcome) error {
	if s.phase != Loading {
		return ErrNotLoading
	}
	s.phase = Settled
	s.outcome = o
	s.pendingScroll = true
	return nil
}

// TakeScroll reports whether the result panel should be scrolled into view.
// It is true once per settlement.
func (s *State) TakeScroll() bool {
	scroll := s.pendingScroll
	s.pendingScroll = false
	return scroll
}
