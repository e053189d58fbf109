package match

import "github.com/abhisek/cardiz/internal/problemgen"

// problemMsg carries the next problem or the reason there is none.
type problemMsg struct {
	problem *problemgen.MatchProblem
	err     error
}

// explainedMsg carries an explanation for problem.
type explainedMsg struct {
	problem  *problemgen.MatchProblem
	markdown string
	err      error
}
