package domain

import "math"

const KFactor = 32.0

// ExpectedScore is the Elo win expectation of a rating against another.
func ExpectedScore(rating, against float64) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, (against-rating)/400.0))
}

// UpdateRatings applies one game result to both ratings. score is 1 when
// a won, 0.5 for a draw and 0 when b won.
func UpdateRatings(a, b, score float64) (float64, float64) {
	delta := KFactor * (score - ExpectedScore(a, b))
	return a + delta, b - delta
}
