package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"partyPredictor/domain"
)

const matrixSuffix = "_matrix.txt"

// MatrixRepository reads the JSON comparison matrices stored next to the
// model artifacts.
type MatrixRepository struct {
	dir string
}

func NewMatrixRepository(dir string) *MatrixRepository {
	return &MatrixRepository{dir: dir}
}

func (r *MatrixRepository) Path(artifactName string) string {
	return filepath.Join(r.dir, artifactName+matrixSuffix)
}

func (r *MatrixRepository) LoadMatrix(ctx context.Context, artifactName string) (domain.ComparisonMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	path := r.Path(artifactName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix %s: %w", path, err)
	}

	var matrix domain.ComparisonMatrix
	if err := json.Unmarshal(raw, &matrix); err != nil {
		return nil, fmt.Errorf("failed to decode matrix %s: %w", path, err)
	}
	if matrix == nil {
		return nil, fmt.Errorf("matrix %s is not a json object", path)
	}

	return matrix, nil
}
