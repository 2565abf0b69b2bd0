package classify

import (
	"fmt"

	"structcheck/internal/session"
)

// OwnerType is one of the closed set of owner classifications assigned once
// diagnosis completes.
type OwnerType string

const (
	OwnerIntuitive   OwnerType = "intuitive"
	OwnerOverworked  OwnerType = "overworked"
	OwnerAdDependent OwnerType = "adDependent"
	OwnerStagnant    OwnerType = "stagnant"
	OwnerNoSystem    OwnerType = "noSystem"
)

// OwnerTypes lists the closed label set in its canonical order. The order is
// load-bearing: it is the tie-break sequence for scoring.
var OwnerTypes = []OwnerType{
	OwnerIntuitive,
	OwnerOverworked,
	OwnerAdDependent,
	OwnerStagnant,
	OwnerNoSystem,
}

// ValidOwnerType reports whether label belongs to the closed set.
func ValidOwnerType(label string) bool {
	for _, t := range OwnerTypes {
		if string(t) == label {
			return true
		}
	}
	return false
}

// OptionWeights maps owner-type labels to the score contribution of one
// answer option.
type OptionWeights map[OwnerType]int

// Scorer computes the owner type from a dense answer vector. Weights come
// from the content catalog (weights[question][option]), keeping this package
// free of any literal question text.
type Scorer struct {
	weights [][]OptionWeights
}

// NewScorer builds a scorer over per-question, per-option weight tables.
func NewScorer(weights [][]OptionWeights) *Scorer {
	return &Scorer{weights: weights}
}

// QuestionCount returns the number of questions the scorer was built for.
func (s *Scorer) QuestionCount() int {
	return len(s.weights)
}

// OwnerType tallies the weights of every chosen option and returns the label
// with the highest total, breaking ties by the canonical OwnerTypes order.
// The vector must be dense and every option index in range; anything else is
// a contract violation on the caller's side.
func (s *Scorer) OwnerType(answers []int) (OwnerType, error) {
	if len(answers) != len(s.weights) {
		return "", fmt.Errorf("answer vector has %d slots, want %d", len(answers), len(s.weights))
	}
	totals := make(map[OwnerType]int, len(OwnerTypes))
	for i, opt := range answers {
		if opt == session.Unanswered {
			return "", fmt.Errorf("question %d is unanswered", i)
		}
		if opt < 0 || opt >= len(s.weights[i]) {
			return "", fmt.Errorf("question %d has no option %d", i, opt)
		}
		for label, w := range s.weights[i][opt] {
			totals[label] += w
		}
	}
	best := OwnerTypes[0]
	for _, label := range OwnerTypes[1:] {
		if totals[label] > totals[best] {
			best = label
		}
	}
	return best, nil
}
