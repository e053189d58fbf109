package session

import "fmt"

// Progress is the running score of a session.
type Progress struct {
	Correct int
	Total   int

	// Limit is the problem count limit, 0 when unbounded.
	Limit int
}

func (p *Progress) record(correct bool) {
	p.Total++
	if correct {
		p.Correct++
	}
}

// Ratio returns Correct/Total in [0,1], 0 before the first answer.
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Total)
}

// Percent returns the ratio as a percentage.
func (p Progress) Percent() float64 {
	return p.Ratio() * 100
}

// Label formats the progress the way the gauge shows it, e.g.
// "075.00% (3/4)".
func (p Progress) Label() string {
	return fmt.Sprintf("%05.2f%% (%d/%d)", p.Percent(), p.Correct, p.Total)
}

// Remaining returns how many problems are left before the limit, or -1
// when unbounded.
func (p Progress) Remaining() int {
	if p.Limit <= 0 {
		return -1
	}
	return max(p.Limit-p.Total, 0)
}
