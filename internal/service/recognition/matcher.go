package recognition

import (
	"errors"
	"fmt"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/recognition"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/faceindex"
)

// Matcher decides which enrolled employee, if any, a probe embedding belongs
// to. It is a pure function over the current face index snapshot.
type Matcher struct {
	index     *faceindex.Index
	threshold float64
	epsilon   float64
}

func NewMatcher(index *faceindex.Index, threshold, epsilon float64) *Matcher {
	return &Matcher{
		index:     index,
		threshold: threshold,
		epsilon:   epsilon,
	}
}

// Match returns the closest enrolled identity and whether the distance
// clears the threshold. When the two best candidates are within epsilon of
// each other the result is unmatched-ambiguous: picking one arbitrarily is
// explicitly not allowed.
//
// An empty index yields an unmatched result, not an error.
func (m *Matcher) Match(probe []float32) (recognition.MatchResult, error) {
	neighbors, err := m.index.Nearest(probe, 2)
	if err != nil {
		if errors.Is(err, faceindex.ErrDimensionMismatch) {
			return recognition.MatchResult{}, fmt.Errorf("%w: %v", recognition.ErrInvalidEmbedding, err)
		}
		return recognition.MatchResult{}, err
	}

	if len(neighbors) == 0 {
		return recognition.MatchResult{}, nil
	}

	best := neighbors[0]
	result := recognition.MatchResult{
		Legajo:   best.Legajo,
		Distance: best.Distance,
	}

	if len(neighbors) > 1 && neighbors[1].Legajo != best.Legajo {
		if neighbors[1].Distance-best.Distance <= m.epsilon {
			result.Ambiguous = true
			return result, nil
		}
	}

	result.Matched = best.Distance < m.threshold
	return result, nil
}
