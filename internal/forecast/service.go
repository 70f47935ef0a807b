// Package forecast runs one prediction cycle per form submission: derive
// features, call the regressor, classify the result.
package forecast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
	"github.com/couchcryptid/pm25-forecast-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Result is a classified prediction ready for rendering.
type Result struct {
	ID          string
	Record      domain.FeatureRecord
	Value       float64
	Band        domain.Band
	PredictedAt time.Time
}

// Service orchestrates the derive-predict-classify cycle.
type Service struct {
	predictor domain.Predictor
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a Service around a predictor.
func NewService(predictor domain.Predictor, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		predictor: predictor,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// Forecast runs one prediction for a submission. Failures are returned as a
// *domain.PredictionFailure and are never retried; no partial Result is
// produced.
func (s *Service) Forecast(ctx context.Context, raw domain.RawInputs) (Result, error) {
	start := s.clock.Now()
	id := uuid.NewString()
	record := domain.Derive(raw)

	value, err := s.predictor.Predict(ctx, record)
	elapsed := s.clock.Since(start)
	s.metrics.PredictionDuration.Observe(elapsed.Seconds())
	if err != nil {
		var pf *domain.PredictionFailure
		if !errors.As(err, &pf) {
			err = &domain.PredictionFailure{Err: err}
		}
		s.metrics.Predictions.WithLabelValues("failure").Inc()
		s.logger.Warn("prediction failed",
			"prediction_id", id,
			"city", raw.CityName,
			"error", err,
			"duration", elapsed,
		)
		return Result{}, err
	}

	band := domain.Classify(value)

	s.metrics.Predictions.WithLabelValues("success").Inc()
	s.metrics.Severity.WithLabelValues(band.Label).Inc()
	s.logger.Info("prediction complete",
		"prediction_id", id,
		"city", raw.CityName,
		"pm25", value,
		"band", band.Label,
		"duration", elapsed,
	)

	return Result{
		ID:          id,
		Record:      record,
		Value:       value,
		Band:        band,
		PredictedAt: s.clock.Now().UTC(),
	}, nil
}
