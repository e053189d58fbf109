// Package stats tracks per-card answer counts and turns them into sampling
// weights.
package stats

// CardStats counts how often a card was answered correctly and incorrectly.
type CardStats struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Total returns the number of recorded answers.
func (s CardStats) Total() int {
	return s.Correct + s.Incorrect
}

// Weight maps answer counts to a sampling weight. Cards answered correctly
// more often than not shrink towards zero as the margin grows. Cards missed
// more often than not grow linearly with the miss margin. The result is
// always positive.
func Weight(s CardStats) float64 {
	ahead := max(s.Correct-s.Incorrect, 0)
	behind := max(s.Incorrect-s.Correct, 0)
	return 1.0/float64(ahead+1) + float64(behind)
}
