package grading

// PointsPerCorrect is the flat score awarded for a correct answer.
const PointsPerCorrect = 10

// Scorer turns a verdict into points. It receives the problem text so
// richer schemes can weigh problems differently.
type Scorer interface {
	Score(problemText string, isCorrect bool) int
}

// FlatScorer awards a fixed number of points per correct answer.
type FlatScorer struct {
	Points int
}

// Score implements Scorer.
func (f FlatScorer) Score(_ string, isCorrect bool) int {
	if isCorrect {
		return f.Points
	}
	return 0
}

// DefaultScorer awards PointsPerCorrect for a correct answer.
func DefaultScorer() Scorer {
	return FlatScorer{Points: PointsPerCorrect}
}
