package searcher

import "math"

type ucb struct {
	exploration float64
	logN        float64
}

func newUCB(exploration float64, parentVisits int) ucb {
	u := ucb{exploration: exploration}
	if parentVisits > 0 {
		u.logN = math.Log(float64(parentVisits))
	}
	return u
}

// evaluate is mean + c*sqrt(ln(N)/n). Unvisited children rank by prior, far
// above any visited one.
func (u ucb) evaluate(s stats, prior float64) float64 {
	if s.visits == 0 {
		return UnvisitedWeight * prior
	}
	return s.mean() + u.exploration*math.Sqrt(u.logN/float64(s.visits))
}
