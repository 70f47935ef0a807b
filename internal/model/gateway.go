package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
	"github.com/couchcryptid/pm25-forecast-service/internal/observability"
)

// Gateway owns the process-wide regressor. The artifact is read from disk on
// the first Load; every later call returns the same *Ensemble.
type Gateway struct {
	path     string
	logger   *slog.Logger
	metrics  *observability.Metrics
	readFile func(string) ([]byte, error)

	once  sync.Once
	model *Ensemble
	err   error
}

// NewGateway creates a Gateway for the artifact at path. Nothing is read
// until Load or Predict is called.
func NewGateway(path string, logger *slog.Logger, metrics *observability.Metrics) *Gateway {
	return &Gateway{
		path:     path,
		logger:   logger,
		metrics:  metrics,
		readFile: os.ReadFile,
	}
}

// Load returns the memoized ensemble, reading it on first use. A failed load
// is memoized too.
func (g *Gateway) Load() (*Ensemble, error) {
	g.once.Do(func() {
		g.model, g.err = g.load()
	})
	return g.model, g.err
}

func (g *Gateway) load() (*Ensemble, error) {
	data, err := g.readFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load model artifact %s: %w", g.path, err)
	}

	g.metrics.ModelLoaded.Set(1)
	g.metrics.ModelTrees.Set(float64(m.Trees()))
	g.logger.Info("model loaded",
		"path", g.path,
		"name", m.Name,
		"trees", m.Trees(),
		"features", m.Schema.Width(),
	)
	return m, nil
}

// Predict runs the regressor on one record. Any failure, including a failed
// load, is returned as a *domain.PredictionFailure.
func (g *Gateway) Predict(_ context.Context, record domain.FeatureRecord) (float64, error) {
	m, err := g.Load()
	if err != nil {
		return 0, &domain.PredictionFailure{Err: err}
	}
	v, err := m.Predict(record)
	if err != nil {
		return 0, &domain.PredictionFailure{Err: err}
	}
	return v, nil
}

// CheckReadiness reports ready once the artifact has loaded successfully.
func (g *Gateway) CheckReadiness(_ context.Context) error {
	_, err := g.Load()
	return err
}
