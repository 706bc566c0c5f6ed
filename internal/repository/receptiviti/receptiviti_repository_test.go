package receptiviti

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const scoresBody = `{
  "receptiviti_scores": {
    "raw_scores": {"openness": 41.5, "conscientiousness": 12, "extraversion": 3.25, "agreeableness": 9, "neuroticism": 1, "aggressive": 0.5},
    "percentiles": {"openness": 80, "conscientiousness": 20}
  },
  "liwc_scores": {
    "categories": {"social": 7.1, "verb": 12.2, "cogproc": 9.9, "function": 50, "relativ": 14}
  }
}`

func TestScore(t *testing.T) {
	var got payloadContent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("X-API-KEY") != "key" || r.Header.Get("X-API-SECRET-KEY") != "secret" {
			t.Errorf("missing credentials: %v", r.Header)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		fmt.Fprint(w, scoresBody)
	}))
	defer server.Close()

	repo := NewReceptivitiRepository(ReceptivitiConfig{Url: server.URL, ApiKey: "key", ApiSecretKey: "secret", Timeout: 5 * time.Second})
	bundle, err := repo.Score(context.Background(), "hello.world.")
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if got.LanguageContent != "hello.world." || got.Language != "english" || got.ContentSource != 4 {
		t.Errorf("unexpected payload %+v", got)
	}
	if len(got.ContentTags) != 1 || got.ContentTags[0] != "string" {
		t.Errorf("content_tags = %v", got.ContentTags)
	}

	wantRaw := []string{"openness", "conscientiousness", "extraversion", "agreeableness", "neuroticism", "aggressive"}
	if len(bundle.Raw.Keys) != len(wantRaw) {
		t.Fatalf("raw keys = %v", bundle.Raw.Keys)
	}
	for i, k := range wantRaw {
		if bundle.Raw.Keys[i] != k {
			t.Errorf("raw key %d = %q, want %q (document order)", i, bundle.Raw.Keys[i], k)
		}
	}
	if v, _ := bundle.Raw.Get("extraversion"); v != 3.25 {
		t.Errorf("extraversion = %v", v)
	}
	if bundle.Percentile.Len() != 2 || bundle.Categorical.Len() != 5 {
		t.Errorf("percentile %d categorical %d", bundle.Percentile.Len(), bundle.Categorical.Len())
	}
	if bundle.Categorical.Keys[0] != "social" {
		t.Errorf("categorical order = %v", bundle.Categorical.Keys)
	}
}

func TestScore_NegativeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	repo := NewReceptivitiRepository(ReceptivitiConfig{Url: server.URL, Timeout: time.Second})
	if _, err := repo.Score(context.Background(), ""); err == nil {
		t.Fatal("expected error for 401")
	}
}

func TestParseScores_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"empty object", `{}`},
		{"missing categories", `{"receptiviti_scores": {"raw_scores": {}, "percentiles": {}}}`},
		{"raw not object", `{"receptiviti_scores": {"raw_scores": [1], "percentiles": {}}, "liwc_scores": {"categories": {}}}`},
		{"non numeric", `{"receptiviti_scores": {"raw_scores": {"a": "x"}, "percentiles": {}}, "liwc_scores": {"categories": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScores([]byte(tt.body)); !errors.Is(err, ErrMalformedScores) {
				t.Fatalf("ParseScores() error = %v, want ErrMalformedScores", err)
			}
		})
	}
}

func TestParseScores_EmptyMappings(t *testing.T) {
	body := `{"receptiviti_scores": {"raw_scores": {}, "percentiles": {}}, "liwc_scores": {"categories": {}}}`
	bundle, err := ParseScores([]byte(body))
	if err != nil {
		t.Fatalf("ParseScores() error = %v", err)
	}
	if bundle.Raw.Len() != 0 {
		t.Errorf("raw should be empty")
	}
}
