package redis

import (
	"context"
	"reflect"
	"testing"
	"time"

	"partyPredictor/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRepo(t *testing.T) (*ScoreCacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewScoreCacheRepository(client), mr
}

func bundle() domain.ScoreBundle {
	raw := domain.NewScoreMap()
	raw.Set("openness", 1.5)
	raw.Set("agreeableness", 2)
	cat := domain.NewScoreMap()
	cat.Set("social", 3)
	return domain.ScoreBundle{Raw: raw, Percentile: domain.NewScoreMap(), Categorical: cat}
}

func TestScoreCache_RoundTripKeepsOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveScores(ctx, "k", bundle(), time.Hour); err != nil {
		t.Fatalf("SaveScores() error = %v", err)
	}

	got, found, err := repo.GetScores(ctx, "k")
	if err != nil || !found {
		t.Fatalf("GetScores() = found %v, err %v", found, err)
	}
	if !reflect.DeepEqual(got.Raw.Keys, []string{"openness", "agreeableness"}) {
		t.Errorf("raw keys = %v", got.Raw.Keys)
	}
	if v, _ := got.Raw.Get("agreeableness"); v != 2 {
		t.Errorf("agreeableness = %v", v)
	}
	if got.Percentile.Len() != 0 || got.Categorical.Len() != 1 {
		t.Errorf("unexpected bundle %+v", got)
	}
}

func TestScoreCache_MissAndExpiry(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	if _, found, err := repo.GetScores(ctx, "absent"); found || err != nil {
		t.Fatalf("GetScores(absent) = %v, %v", found, err)
	}

	if err := repo.SaveScores(ctx, "k", bundle(), time.Minute); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)

	if _, found, _ := repo.GetScores(ctx, "k"); found {
		t.Error("entry should have expired")
	}
}

func TestScoreCache_Corrupt(t *testing.T) {
	repo, mr := newTestRepo(t)
	if err := mr.Set("bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	if err := mr.Set("ragged", `{"raw":{"keys":["a"],"values":[]}}`); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"bad", "ragged"} {
		if _, _, err := repo.GetScores(context.Background(), key); err == nil {
			t.Errorf("GetScores(%q) should fail", key)
		}
	}
}
