package domain

import "fmt"

// ScoreMap is a feature name → value mapping that remembers the order the
// scoring API emitted its keys in. Models trained on the full mapping depend
// on that order.
type ScoreMap struct {
	Keys   []string
	Values map[string]float64
}

func NewScoreMap() ScoreMap {
	return ScoreMap{Values: make(map[string]float64)}
}

// Set appends key on first sight and overwrites its value otherwise.
func (m *ScoreMap) Set(key string, value float64) {
	if m.Values == nil {
		m.Values = make(map[string]float64)
	}
	if _, ok := m.Values[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = value
}

func (m ScoreMap) Get(key string) (float64, bool) {
	v, ok := m.Values[key]
	return v, ok
}

func (m ScoreMap) Len() int {
	return len(m.Keys)
}

// ScoreBundle holds the three mappings one scoring call produces.
type ScoreBundle struct {
	Raw         ScoreMap
	Percentile  ScoreMap
	Categorical ScoreMap
}

func (b ScoreBundle) Select(kind ScoreKind) (ScoreMap, error) {
	switch kind {
	case ScoreRaw:
		return b.Raw, nil
	case ScorePercentile:
		return b.Percentile, nil
	case ScoreCategorical:
		return b.Categorical, nil
	default:
		return ScoreMap{}, fmt.Errorf("invalid score kind %d", int(kind))
	}
}

// FeatureVector is the single row handed to a model.
type FeatureVector struct {
	Columns []string
	Values  []float64
}
