package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the full /predict pipeline
	PredictLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "predict_latency_seconds",
		Help:    "Latency of the predict pipeline by algorithm",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"algorithm"})

	// Predictions served, by algorithm and predicted party
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Total predictions served by algorithm and predicted party",
	}, []string{"algorithm", "predicted"})

	PredictFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_failures_total",
		Help: "Failed predict requests by pipeline stage",
	}, []string{"stage"})

	// Model emitted a class id outside {0, 1}; it is reported as Democrat
	UnexpectedClassTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_unexpected_class_total",
		Help: "Predictions whose class id was neither 0 nor 1",
	}, []string{"algorithm"})

	FeedPostsFetched = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "feed_posts_fetched",
		Help:    "Posts collected per timeline fetch",
		Buckets: []float64{0, 1, 10, 50, 100, 150, 200},
	})

	FeedSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_skipped_total",
		Help: "Timeline pages or items skipped because of errors",
	}, []string{"kind"})

	ScoringRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scoring_requests_total",
		Help: "Calls to the linguistic scoring API by outcome",
	}, []string{"outcome"})

	ScoreCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "score_cache_lookups_total",
		Help: "Score cache lookups by result",
	}, []string{"result"})

	ModelLoadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "model_load_duration_seconds",
		Help:    "Time spent reading and decoding model artifacts",
		Buckets: prometheus.DefBuckets,
	}, []string{"artifact"})

	ModelCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "model_cache_lookups_total",
		Help: "Model cache lookups by result",
	}, []string{"result"})
)

func Init() {
	prometheus.MustRegister(
		PredictLatency,
		PredictionsTotal,
		PredictFailuresTotal,
		UnexpectedClassTotal,
		FeedPostsFetched,
		FeedSkippedTotal,
		ScoringRequestsTotal,
		ScoreCacheLookups,
		ModelLoadDuration,
		ModelCacheLookups,
	)
}
