package predict

import (
	"errors"
	"fmt"

	"partyPredictor/domain"
)

// ErrMissingFeature means an algorithm asks for a column the score mapping
// does not carry. It is a configuration error; columns are never zero-filled.
var ErrMissingFeature = errors.New("missing feature column")

// BuildFeatureVector lays the mapping out as one row, columns in the order
// the scoring API emitted them.
func BuildFeatureVector(scores domain.ScoreMap) domain.FeatureVector {
	v := domain.FeatureVector{
		Columns: make([]string, 0, len(scores.Keys)),
		Values:  make([]float64, 0, len(scores.Keys)),
	}
	for _, k := range scores.Keys {
		v.Columns = append(v.Columns, k)
		v.Values = append(v.Values, scores.Values[k])
	}
	return v
}

// Project keeps exactly the given columns, in the given order. An empty
// column list keeps the vector as is.
func Project(v domain.FeatureVector, columns []string) (domain.FeatureVector, error) {
	if len(columns) == 0 {
		return v, nil
	}

	index := make(map[string]int, len(v.Columns))
	for i, c := range v.Columns {
		index[c] = i
	}

	out := domain.FeatureVector{
		Columns: make([]string, 0, len(columns)),
		Values:  make([]float64, 0, len(columns)),
	}
	for _, c := range columns {
		i, ok := index[c]
		if !ok {
			return domain.FeatureVector{}, fmt.Errorf("%w: %q", ErrMissingFeature, c)
		}
		out.Columns = append(out.Columns, c)
		out.Values = append(out.Values, v.Values[i])
	}
	return out, nil
}
