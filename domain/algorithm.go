package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm is the closed set of classifiers the service can run.
type Algorithm int

const (
	AlgorithmRawScore Algorithm = iota
	AlgorithmRawScoreBig5
	AlgorithmRawScoreAggressive
	AlgorithmPercentileScore
	AlgorithmCategoricalScore
	AlgorithmCategoricalScoreTop5
)

// Algorithms lists every variant in display order.
var Algorithms = []Algorithm{
	AlgorithmRawScore,
	AlgorithmRawScoreBig5,
	AlgorithmRawScoreAggressive,
	AlgorithmPercentileScore,
	AlgorithmCategoricalScore,
	AlgorithmCategoricalScoreTop5,
}

// ScoreKind selects one mapping out of a ScoreBundle.
type ScoreKind int

const (
	ScoreRaw ScoreKind = iota
	ScorePercentile
	ScoreCategorical
)

func (k ScoreKind) String() string {
	switch k {
	case ScoreRaw:
		return "raw"
	case ScorePercentile:
		return "percentile"
	case ScoreCategorical:
		return "categorical"
	default:
		return fmt.Sprintf("ScoreKind(%d)", int(k))
	}
}

type AlgorithmDescriptor struct {
	DisplayName    string    `json:"display_name"`
	ArtifactName   string    `json:"artifact_name"`
	ScoreKind      ScoreKind `json:"score_index"`
	FeatureColumns []string  `json:"feature_columns"`
}

// Descriptor returns the static metadata bound to a. Columns are empty when
// the model consumes the whole score mapping.
func (a Algorithm) Descriptor() AlgorithmDescriptor {
	switch a {
	case AlgorithmRawScore:
		return AlgorithmDescriptor{
			DisplayName:    "NeuralNet- Raw Score",
			ArtifactName:   "liwc_raw_scores_full",
			ScoreKind:      ScoreRaw,
			FeatureColumns: []string{},
		}
	case AlgorithmRawScoreBig5:
		return AlgorithmDescriptor{
			DisplayName:    "NeuralNet- Raw Score - Big5",
			ArtifactName:   "liwc_raw_scores_full_big5",
			ScoreKind:      ScoreRaw,
			FeatureColumns: []string{"openness", "conscientiousness", "extraversion", "agreeableness", "neuroticism"},
		}
	case AlgorithmRawScoreAggressive:
		return AlgorithmDescriptor{
			DisplayName:    "NeuralNet- Raw Score - Aggressive",
			ArtifactName:   "liwc_raw_scores_full_aggressive",
			ScoreKind:      ScoreRaw,
			FeatureColumns: []string{"aggressive"},
		}
	case AlgorithmPercentileScore:
		return AlgorithmDescriptor{
			DisplayName:    "NeuralNet- Percentile Score",
			ArtifactName:   "liwc_percentile_scores_full",
			ScoreKind:      ScorePercentile,
			FeatureColumns: []string{},
		}
	case AlgorithmCategoricalScore:
		return AlgorithmDescriptor{
			DisplayName:    "NeuralNet- Categorical Score",
			ArtifactName:   "liwc_categorical_scores_full",
			ScoreKind:      ScoreCategorical,
			FeatureColumns: []string{},
		}
	case AlgorithmCategoricalScoreTop5:
		return AlgorithmDescriptor{
			DisplayName:    "NeuralNet- Categorical Score - Top5",
			ArtifactName:   "liwc_categorical_scores_full_top5",
			ScoreKind:      ScoreCategorical,
			FeatureColumns: []string{"cogproc", "function", "relativ", "verb", "social"},
		}
	default:
		panic(fmt.Sprintf("domain: unhandled algorithm %d", int(a)))
	}
}

func (a Algorithm) String() string {
	return a.Descriptor().DisplayName
}

// ParseAlgorithm resolves a display name as submitted by the form.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if a.Descriptor().DisplayName == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
