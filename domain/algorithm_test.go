package domain

import (
	"errors"
	"testing"
)

func TestParseAlgorithm_RoundTrip(t *testing.T) {
	for _, a := range Algorithms {
		got, err := ParseAlgorithm(a.Descriptor().DisplayName)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) error = %v", a.Descriptor().DisplayName, err)
		}
		if got != a {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", a.Descriptor().DisplayName, got, a)
		}
	}
}

func TestParseAlgorithm_Unknown(t *testing.T) {
	for _, name := range []string{"DoesNotExist", "", "neuralnet- raw score"} {
		if _, err := ParseAlgorithm(name); !errors.Is(err, ErrUnknownAlgorithm) {
			t.Errorf("ParseAlgorithm(%q) error = %v, want ErrUnknownAlgorithm", name, err)
		}
	}
}

func TestDescriptors_AreWellFormed(t *testing.T) {
	names := map[string]bool{}
	artifacts := map[string]bool{}

	for _, a := range Algorithms {
		d := a.Descriptor()
		if names[d.DisplayName] {
			t.Errorf("duplicate display name %q", d.DisplayName)
		}
		names[d.DisplayName] = true

		if artifacts[d.ArtifactName] {
			t.Errorf("duplicate artifact %q", d.ArtifactName)
		}
		artifacts[d.ArtifactName] = true

		if d.ScoreKind < ScoreRaw || d.ScoreKind > ScoreCategorical {
			t.Errorf("%q: score kind %d out of range", d.DisplayName, d.ScoreKind)
		}
		if d.FeatureColumns == nil {
			t.Errorf("%q: feature columns must be non-nil", d.DisplayName)
		}

		seen := map[string]bool{}
		for _, c := range d.FeatureColumns {
			if seen[c] {
				t.Errorf("%q: duplicate column %q", d.DisplayName, c)
			}
			seen[c] = true
		}
	}
}

func TestDescriptor_Big5Columns(t *testing.T) {
	d := AlgorithmRawScoreBig5.Descriptor()
	want := []string{"openness", "conscientiousness", "extraversion", "agreeableness", "neuroticism"}

	if len(d.FeatureColumns) != len(want) {
		t.Fatalf("columns = %v, want %v", d.FeatureColumns, want)
	}
	for i := range want {
		if d.FeatureColumns[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, d.FeatureColumns[i], want[i])
		}
	}
	if d.ScoreKind != ScoreRaw {
		t.Errorf("score kind = %v, want raw", d.ScoreKind)
	}
}

func TestScoreBundle_Select(t *testing.T) {
	raw := NewScoreMap()
	raw.Set("openness", 1)
	pct := NewScoreMap()
	pct.Set("openness", 2)
	cat := NewScoreMap()
	cat.Set("social", 3)

	b := ScoreBundle{Raw: raw, Percentile: pct, Categorical: cat}

	for kind, want := range map[ScoreKind]ScoreMap{ScoreRaw: raw, ScorePercentile: pct, ScoreCategorical: cat} {
		got, err := b.Select(kind)
		if err != nil {
			t.Fatalf("Select(%v) error = %v", kind, err)
		}
		if got.Keys[0] != want.Keys[0] || got.Values[got.Keys[0]] != want.Values[want.Keys[0]] {
			t.Errorf("Select(%v) returned wrong mapping", kind)
		}
	}

	if _, err := b.Select(ScoreKind(7)); err == nil {
		t.Error("Select(7) should fail")
	}
}

func TestScoreMap_SetKeepsFirstOrder(t *testing.T) {
	m := NewScoreMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	if len(m.Keys) != 2 || m.Keys[0] != "b" || m.Keys[1] != "a" {
		t.Fatalf("keys = %v, want [b a]", m.Keys)
	}
	if v, _ := m.Get("b"); v != 3 {
		t.Errorf("b = %v, want 3", v)
	}
}
