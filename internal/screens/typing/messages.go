package typing

import "github.com/abhisek/cardiz/internal/problemgen"

// promptReadyMsg carries the next prompt or the reason there is none.
type promptReadyMsg struct {
	problem *problemgen.TypeProblem
	err     error
}

// explainedMsg carries an explanation for problem.
type explainedMsg struct {
	problem  *problemgen.TypeProblem
	markdown string
	err      error
}
