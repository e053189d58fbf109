package session

// Phase is the position of a session in its state machine.
type Phase int

const (
	PhaseRunning         Phase = iota // A problem is shown or about to be drawn
	PhaseAnswerCorrect                // The last answer was correct
	PhaseAnswerIncorrect              // The last answer was wrong
	PhaseCompleted                    // Count limit reached or pool exhausted
	PhaseQuit                         // The learner quit
	PhaseAborted                      // The decks could not produce a problem
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseAnswerCorrect:
		return "correct"
	case PhaseAnswerIncorrect:
		return "incorrect"
	case PhaseCompleted:
		return "completed"
	case PhaseQuit:
		return "quit"
	case PhaseAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further problems can be drawn.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseQuit || p == PhaseAborted
}

// Mode selects how cards are quizzed.
type Mode string

const (
	ModeMatch Mode = "match"
	ModeFlash Mode = "flash"
	ModeType  Mode = "type"
)
