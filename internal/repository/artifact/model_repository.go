package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"partyPredictor/pkg/metrics"
	"partyPredictor/pkg/nn"
)

// ModelRepository reads model artifacts from a directory on disk.
type ModelRepository struct {
	dir string
	ext string
}

func NewModelRepository(dir, ext string) *ModelRepository {
	return &ModelRepository{dir: dir, ext: ext}
}

func (r *ModelRepository) Path(artifactName string) string {
	return filepath.Join(r.dir, artifactName+r.ext)
}

// LoadModel opens and decodes the artifact on every call.
func (r *ModelRepository) LoadModel(ctx context.Context, artifactName string) (*nn.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()
	path := r.Path(artifactName)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	defer f.Close()

	network, err := nn.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	if network.Name == "" {
		network.Name = artifactName
	}

	metrics.ModelLoadDuration.WithLabelValues(artifactName).Observe(time.Since(start).Seconds())
	return network, nil
}
