package receptiviti

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"partyPredictor/domain"
	"partyPredictor/pkg/metrics"

	"github.com/tidwall/gjson"
)

var ErrMalformedScores = errors.New("malformed scoring response")

const (
	rawScoresPath   = "receptiviti_scores.raw_scores"
	percentilesPath = "receptiviti_scores.percentiles"
	categoriesPath  = "liwc_scores.categories"
)

type ReceptivitiConfig struct {
	Url          string
	ApiKey       string
	ApiSecretKey string
	Timeout      time.Duration
}

type ReceptivitiRepository struct {
	receptivitiConfig ReceptivitiConfig
	client            *http.Client
}

func NewReceptivitiRepository(cfg ReceptivitiConfig) *ReceptivitiRepository {
	return &ReceptivitiRepository{
		receptivitiConfig: cfg,
		client:            &http.Client{Timeout: cfg.Timeout},
	}
}

type payloadContent struct {
	ContentTags     []string `json:"content_tags"`
	ContentHandle   string   `json:"content_handle"`
	Language        string   `json:"language"`
	ContentSource   int      `json:"content_source"`
	ContentDate     string   `json:"content_date"`
	RecipientID     string   `json:"recipient_id"`
	LanguageContent string   `json:"language_content"`
}

func newPayload(text string) payloadContent {
	return payloadContent{
		ContentTags:     []string{"string"},
		ContentHandle:   "string",
		Language:        "english",
		ContentSource:   4,
		ContentDate:     "2018-12-25T00:46:05.119779",
		RecipientID:     "string",
		LanguageContent: text,
	}
}

// Score submits text once and extracts the raw, percentile and categorical
// score mappings. Any transport failure or missing field is returned as is;
// nothing is retried.
func (r *ReceptivitiRepository) Score(ctx context.Context, text string) (domain.ScoreBundle, error) {
	bundle, err := r.score(ctx, text)
	if err != nil {
		metrics.ScoringRequestsTotal.WithLabelValues("error").Inc()
		return domain.ScoreBundle{}, err
	}
	metrics.ScoringRequestsTotal.WithLabelValues("ok").Inc()
	return bundle, nil
}

func (r *ReceptivitiRepository) score(ctx context.Context, text string) (domain.ScoreBundle, error) {
	payloadByte, err := json.Marshal(newPayload(text))
	if err != nil {
		return domain.ScoreBundle{}, fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.receptivitiConfig.Url, bytes.NewReader(payloadByte))
	if err != nil {
		return domain.ScoreBundle{}, err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("X-API-KEY", r.receptivitiConfig.ApiKey)
	req.Header.Add("X-API-SECRET-KEY", r.receptivitiConfig.ApiSecretKey)

	res, err := r.client.Do(req)
	if err != nil {
		return domain.ScoreBundle{}, fmt.Errorf("scoring request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.ScoreBundle{}, fmt.Errorf("failed to read scoring response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.ScoreBundle{}, fmt.Errorf("scoring service return negative response %v", res.StatusCode)
	}

	return ParseScores(body)
}

// ParseScores extracts the three score mappings from a scoring response body,
// keeping each mapping's keys in document order.
func ParseScores(body []byte) (domain.ScoreBundle, error) {
	if !gjson.ValidBytes(body) {
		return domain.ScoreBundle{}, fmt.Errorf("%w: invalid json", ErrMalformedScores)
	}

	raw, err := extractScores(body, rawScoresPath)
	if err != nil {
		return domain.ScoreBundle{}, err
	}
	percentile, err := extractScores(body, percentilesPath)
	if err != nil {
		return domain.ScoreBundle{}, err
	}
	categorical, err := extractScores(body, categoriesPath)
	if err != nil {
		return domain.ScoreBundle{}, err
	}

	return domain.ScoreBundle{
		Raw:         raw,
		Percentile:  percentile,
		Categorical: categorical,
	}, nil
}

func extractScores(body []byte, path string) (domain.ScoreMap, error) {
	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return domain.ScoreMap{}, fmt.Errorf("%w: %s missing", ErrMalformedScores, path)
	}
	if !result.IsObject() {
		return domain.ScoreMap{}, fmt.Errorf("%w: %s is not an object", ErrMalformedScores, path)
	}

	scores := domain.NewScoreMap()
	var badKey string
	result.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			badKey = key.String()
			return false
		}
		scores.Set(key.String(), value.Float())
		return true
	})
	if badKey != "" {
		return domain.ScoreMap{}, fmt.Errorf("%w: %s.%s is not numeric", ErrMalformedScores, path, badKey)
	}

	return scores, nil
}
