package artifact

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestModelRepository_LoadModel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "liwc_raw_scores_full_aggressive.json"),
		`{"layers": [{"activation": "sigmoid", "weights": [[4]], "bias": [-2]}]}`)

	repo := NewModelRepository(dir, ".json")
	network, err := repo.LoadModel(context.Background(), "liwc_raw_scores_full_aggressive")
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if network.Name != "liwc_raw_scores_full_aggressive" {
		t.Errorf("name = %q, want artifact name fallback", network.Name)
	}

	class, err := network.PredictClass([]float64{1})
	if err != nil || class != 1 {
		t.Errorf("PredictClass = %d, %v", class, err)
	}
}

func TestModelRepository_Missing(t *testing.T) {
	repo := NewModelRepository(t.TempDir(), ".json")
	_, err := repo.LoadModel(context.Background(), "nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestModelRepository_Path(t *testing.T) {
	repo := NewModelRepository("models", ".h5")
	if got := repo.Path("liwc_raw_scores_full"); got != filepath.Join("models", "liwc_raw_scores_full.h5") {
		t.Errorf("Path() = %q", got)
	}
}

func TestMatrixRepository_LoadMatrix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "liwc_raw_scores_full_matrix.txt"),
		`{"accuracy": 0.71, "confusion": [[10, 2], [3, 9]], "handle": "matrix wins"}`)

	repo := NewMatrixRepository(dir)
	m, err := repo.LoadMatrix(context.Background(), "liwc_raw_scores_full")
	if err != nil {
		t.Fatalf("LoadMatrix() error = %v", err)
	}
	if m["accuracy"] != 0.71 {
		t.Errorf("accuracy = %v", m["accuracy"])
	}
	if _, ok := m["confusion"].([]any); !ok {
		t.Errorf("confusion = %T", m["confusion"])
	}
}

func TestMatrixRepository_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad_matrix.txt"), `not json`)
	writeFile(t, filepath.Join(dir, "null_matrix.txt"), `null`)

	repo := NewMatrixRepository(dir)
	for _, name := range []string{"missing", "bad", "null"} {
		if _, err := repo.LoadMatrix(context.Background(), name); err == nil {
			t.Errorf("LoadMatrix(%q) should fail", name)
		}
	}
}
