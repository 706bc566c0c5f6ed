package predict

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"partyPredictor/business/textclean"
	"partyPredictor/domain"
	"partyPredictor/pkg/logger"
	"partyPredictor/pkg/metrics"
	"partyPredictor/pkg/nn"
)

var (
	ErrHistoryDisabled    = errors.New("prediction history is disabled")
	ErrModelCacheDisabled = errors.New("model cache is disabled")
)

// ---- Repository interfaces ----

type FeedRepository interface {
	FetchTimeline(ctx context.Context, handle string) ([]domain.Post, error)
}

type ScoringRepository interface {
	Score(ctx context.Context, text string) (domain.ScoreBundle, error)
}

type ScoreCacheRepository interface {
	GetScores(ctx context.Context, key string) (domain.ScoreBundle, bool, error)
	SaveScores(ctx context.Context, key string, bundle domain.ScoreBundle, ttl time.Duration) error
}

type ModelRepository interface {
	LoadModel(ctx context.Context, artifactName string) (*nn.Network, error)
}

type MatrixRepository interface {
	LoadMatrix(ctx context.Context, artifactName string) (domain.ComparisonMatrix, error)
}

type PredictionRepository interface {
	SaveEvent(ctx context.Context, event domain.PredictionEvent) error
	FindRecent(ctx context.Context, handle string, limit int) ([]domain.PredictionEvent, error)
}

type Config struct {
	ScoreCacheTTL time.Duration
}

// ---- Service ----

type PredictService struct {
	feedRepo       FeedRepository
	scoringRepo    ScoringRepository
	modelRepo      ModelRepository
	matrixRepo     MatrixRepository
	scoreCacheRepo ScoreCacheRepository
	historyRepo    PredictionRepository
	cfg            Config
}

// NewPredictService wires the pipeline. scoreCacheRepo and historyRepo may
// be nil to run without the score cache or prediction history.
func NewPredictService(
	feedRepo FeedRepository,
	scoringRepo ScoringRepository,
	modelRepo ModelRepository,
	matrixRepo MatrixRepository,
	scoreCacheRepo ScoreCacheRepository,
	historyRepo PredictionRepository,
	cfg Config,
) *PredictService {
	return &PredictService{
		feedRepo:       feedRepo,
		scoringRepo:    scoringRepo,
		modelRepo:      modelRepo,
		matrixRepo:     matrixRepo,
		scoreCacheRepo: scoreCacheRepo,
		historyRepo:    historyRepo,
		cfg:            cfg,
	}
}

// Predict runs the whole pipeline for one handle: timeline → cleaned text →
// scores → feature row → model → party label → packet.
func (s *PredictService) Predict(ctx context.Context, handle, algoName string) (domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Prediction{}, fmt.Errorf("context error: %w", err)
	}

	algorithm, err := domain.ParseAlgorithm(algoName)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("lookup").Inc()
		return domain.Prediction{}, err
	}
	desc := algorithm.Descriptor()

	start := time.Now()
	tid := TraceIDFromContext(ctx)
	logger.Info("Predicting for handle",
		"trace_id", tid,
		"handle", handle,
		"algorithm", desc.DisplayName,
	)

	// 1) timeline
	posts, err := s.feedRepo.FetchTimeline(ctx, handle)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("feed").Inc()
		return domain.Prediction{}, fmt.Errorf("fetch timeline: %w", err)
	}

	texts := make([]string, 0, len(posts))
	for _, p := range posts {
		texts = append(texts, p.FullText)
	}
	text := textclean.Aggregate(texts)

	// 2) scores
	bundle, err := s.scores(ctx, text)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("scoring").Inc()
		return domain.Prediction{}, fmt.Errorf("score text: %w", err)
	}

	// 3) feature row
	scoreMap, err := bundle.Select(desc.ScoreKind)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("features").Inc()
		return domain.Prediction{}, err
	}
	features, err := Project(BuildFeatureVector(scoreMap), desc.FeatureColumns)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("features").Inc()
		return domain.Prediction{}, fmt.Errorf("algorithm %q: %w", desc.DisplayName, err)
	}

	logger.Debug("predict_features",
		"trace_id", tid,
		"artifact", desc.ArtifactName,
		"columns", features.Columns,
		"values", features.Values,
	)

	// 4) model, loaded per request and passed explicitly
	network, err := s.modelRepo.LoadModel(ctx, desc.ArtifactName)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("model").Inc()
		return domain.Prediction{}, fmt.Errorf("load model: %w", err)
	}

	if err := network.CheckColumns(features.Columns); err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("inference").Inc()
		return domain.Prediction{}, fmt.Errorf("algorithm %q: %w", desc.DisplayName, err)
	}

	class, err := network.PredictClass(features.Values)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("inference").Inc()
		return domain.Prediction{}, fmt.Errorf("predict class: %w", err)
	}

	if !isExpectedClass(class) {
		logger.Warn("Model returned unexpected class, reporting Democrat",
			"trace_id", tid,
			"artifact", desc.ArtifactName,
			"class", class,
		)
		metrics.UnexpectedClassTotal.WithLabelValues(desc.ArtifactName).Inc()
	}
	predicted := PartyLabel(class)

	// 5) packet
	matrix, err := s.matrixRepo.LoadMatrix(ctx, desc.ArtifactName)
	if err != nil {
		metrics.PredictFailuresTotal.WithLabelValues("matrix").Inc()
		return domain.Prediction{}, fmt.Errorf("load matrix: %w", err)
	}

	prediction := domain.Prediction{
		Handle:         handle,
		Algorithm:      algorithm,
		PredictedClass: class,
		Predicted:      predicted,
		PostCount:      len(posts),
		Packet:         BuildPacket(handle, desc, predicted, matrix),
	}

	s.recordHistory(ctx, tid, prediction)

	metrics.PredictionsTotal.WithLabelValues(desc.ArtifactName, predicted).Inc()
	metrics.PredictLatency.WithLabelValues(desc.ArtifactName).Observe(time.Since(start).Seconds())

	logger.Info("Predicted party",
		"trace_id", tid,
		"handle", handle,
		"algorithm", desc.DisplayName,
		"posts", len(posts),
		"predicted", predicted,
	)

	return prediction, nil
}

// scores consults the score cache first when one is configured. Cache
// failures only cost a scoring call.
func (s *PredictService) scores(ctx context.Context, text string) (domain.ScoreBundle, error) {
	if s.scoreCacheRepo == nil {
		return s.scoringRepo.Score(ctx, text)
	}

	key := ScoreCacheKey(text)
	bundle, found, err := s.scoreCacheRepo.GetScores(ctx, key)
	if err != nil {
		logger.Warn("Score cache lookup failed", "key", key, "error", err)
	}
	if found {
		metrics.ScoreCacheLookups.WithLabelValues("hit").Inc()
		return bundle, nil
	}
	metrics.ScoreCacheLookups.WithLabelValues("miss").Inc()

	bundle, err = s.scoringRepo.Score(ctx, text)
	if err != nil {
		return domain.ScoreBundle{}, err
	}

	if err := s.scoreCacheRepo.SaveScores(ctx, key, bundle, s.cfg.ScoreCacheTTL); err != nil {
		logger.Warn("Score cache write failed", "key", key, "error", err)
	}
	return bundle, nil
}

func (s *PredictService) recordHistory(ctx context.Context, traceID string, p domain.Prediction) {
	if s.historyRepo == nil {
		return
	}

	event := domain.PredictionEvent{
		TraceID:        traceID,
		Handle:         p.Handle,
		AlgoName:       p.Algorithm.Descriptor().DisplayName,
		ArtifactName:   p.Algorithm.Descriptor().ArtifactName,
		PredictedClass: p.PredictedClass,
		Predicted:      p.Predicted,
		PostCount:      p.PostCount,
		CreatedAt:      time.Now(),
	}
	if err := s.historyRepo.SaveEvent(ctx, event); err != nil {
		logger.Error("Failed to save prediction event", "trace_id", traceID, "error", err)
	}
}

// ScoreCacheKey derives the cache key of an aggregate text.
func ScoreCacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "party:scores:v1:" + hex.EncodeToString(hash[:])
}

// Algorithms lists every supported algorithm descriptor in display order.
func (s *PredictService) Algorithms() []domain.AlgorithmDescriptor {
	out := make([]domain.AlgorithmDescriptor, 0, len(domain.Algorithms))
	for _, a := range domain.Algorithms {
		out = append(out, a.Descriptor())
	}
	return out
}

func (s *PredictService) History(ctx context.Context, handle string, limit int) ([]domain.PredictionEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if s.historyRepo == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = 50
	}
	return s.historyRepo.FindRecent(ctx, handle, limit)
}

// FlushModelCache empties the model cache when one is wired in.
func (s *PredictService) FlushModelCache() (int, error) {
	flusher, ok := s.modelRepo.(interface{ Flush() int })
	if !ok {
		return 0, ErrModelCacheDisabled
	}
	n := flusher.Flush()
	logger.Info("Model cache flushed", "evicted", n)
	return n, nil
}
