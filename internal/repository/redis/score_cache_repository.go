package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"partyPredictor/business/predict"
	"partyPredictor/domain"

	"github.com/redis/go-redis/v9"
)

// scoreMapData keeps keys and values as parallel lists so the mapping order
// survives the round trip.
type scoreMapData struct {
	Keys   []string  `json:"keys"`
	Values []float64 `json:"values"`
}

type scoreBundleData struct {
	Raw         scoreMapData `json:"raw"`
	Percentile  scoreMapData `json:"percentile"`
	Categorical scoreMapData `json:"categorical"`
	CachedAt    time.Time    `json:"cached_at"`
}

type ScoreCacheRepository struct {
	client *redis.Client
}

var _ predict.ScoreCacheRepository = (*ScoreCacheRepository)(nil)

func NewScoreCacheRepository(client *redis.Client) *ScoreCacheRepository {
	return &ScoreCacheRepository{
		client: client,
	}
}

func (r *ScoreCacheRepository) SaveScores(ctx context.Context, key string, bundle domain.ScoreBundle, ttl time.Duration) error {
	data := scoreBundleData{
		Raw:         toData(bundle.Raw),
		Percentile:  toData(bundle.Percentile),
		Categorical: toData(bundle.Categorical),
		CachedAt:    time.Now(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal score bundle: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store score bundle in Redis: %w", err)
	}

	return nil
}

// GetScores reports found=false without an error when the key is absent.
func (r *ScoreCacheRepository) GetScores(ctx context.Context, key string) (domain.ScoreBundle, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ScoreBundle{}, false, nil
		}
		return domain.ScoreBundle{}, false, fmt.Errorf("failed to get score bundle from Redis: %w", err)
	}

	var data scoreBundleData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return domain.ScoreBundle{}, false, fmt.Errorf("failed to unmarshal score bundle: %w", err)
	}

	raw, err := fromData(data.Raw)
	if err != nil {
		return domain.ScoreBundle{}, false, err
	}
	percentile, err := fromData(data.Percentile)
	if err != nil {
		return domain.ScoreBundle{}, false, err
	}
	categorical, err := fromData(data.Categorical)
	if err != nil {
		return domain.ScoreBundle{}, false, err
	}

	return domain.ScoreBundle{Raw: raw, Percentile: percentile, Categorical: categorical}, true, nil
}

func toData(m domain.ScoreMap) scoreMapData {
	d := scoreMapData{
		Keys:   make([]string, 0, len(m.Keys)),
		Values: make([]float64, 0, len(m.Keys)),
	}
	for _, k := range m.Keys {
		d.Keys = append(d.Keys, k)
		d.Values = append(d.Values, m.Values[k])
	}
	return d
}

func fromData(d scoreMapData) (domain.ScoreMap, error) {
	if len(d.Keys) != len(d.Values) {
		return domain.ScoreMap{}, fmt.Errorf("corrupt cached score map: %d keys, %d values", len(d.Keys), len(d.Values))
	}
	m := domain.NewScoreMap()
	for i, k := range d.Keys {
		m.Set(k, d.Values[i])
	}
	return m, nil
}
