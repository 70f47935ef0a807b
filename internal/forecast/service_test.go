package forecast_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
	"github.com/couchcryptid/pm25-forecast-service/internal/forecast"
	"github.com/couchcryptid/pm25-forecast-service/internal/model"
	"github.com/couchcryptid/pm25-forecast-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPredictor struct {
	value float64
	err   error
	calls int
	got   domain.FeatureRecord
}

func (m *mockPredictor) Predict(_ context.Context, record domain.FeatureRecord) (float64, error) {
	m.calls++
	m.got = record
	return m.value, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedTime = time.Date(2024, 7, 4, 18, 30, 0, 0, time.UTC)

// --- tests ---

func TestForecast_HappyPath(t *testing.T) {
	pred := &mockPredictor{value: 41.7}
	metrics := observability.NewMetricsForTesting()
	svc := forecast.NewService(pred, clockwork.NewFakeClockAt(fixedTime), discardLogger(), metrics)

	res, err := svc.Forecast(context.Background(), domain.DefaultInputs())
	require.NoError(t, err)

	assert.Equal(t, 1, pred.calls)
	assert.Equal(t, domain.Derive(domain.DefaultInputs()), pred.got)
	assert.Equal(t, pred.got, res.Record)
	assert.Equal(t, 41.7, res.Value)
	assert.Equal(t, "Unhealthy for Sensitive Groups", res.Band.Label)
	assert.Equal(t, fixedTime, res.PredictedAt)
	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Predictions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Severity.WithLabelValues("Unhealthy for Sensitive Groups")))
}

func TestForecast_UniqueIDs(t *testing.T) {
	svc := forecast.NewService(&mockPredictor{value: 5}, clockwork.NewFakeClock(), discardLogger(), observability.NewMetricsForTesting())

	a, err := svc.Forecast(context.Background(), domain.DefaultInputs())
	require.NoError(t, err)
	b, err := svc.Forecast(context.Background(), domain.DefaultInputs())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestForecast_PlainErrorWrapped(t *testing.T) {
	cause := errors.New("feature_names mismatch")
	pred := &mockPredictor{err: cause}
	metrics := observability.NewMetricsForTesting()
	svc := forecast.NewService(pred, clockwork.NewFakeClock(), discardLogger(), metrics)

	res, err := svc.Forecast(context.Background(), domain.DefaultInputs())

	var pf *domain.PredictionFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, "feature_names mismatch", pf.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, forecast.Result{}, res)
	assert.Equal(t, 1, pred.calls, "failures are not retried")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Predictions.WithLabelValues("failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Predictions.WithLabelValues("success")))
}

// slowPredictor advances the fake clock while predicting.
type slowPredictor struct {
	clock *clockwork.FakeClock
	delay time.Duration
	err   error
}

func (p *slowPredictor) Predict(_ context.Context, _ domain.FeatureRecord) (float64, error) {
	p.clock.Advance(p.delay)
	return 3, p.err
}

func TestForecast_LatencyRecordedOnBothPaths(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{name: "success", level: "INFO"},
		{name: "failure", err: errors.New("boom"), level: "WARN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClockAt(fixedTime)
			reg := prometheus.NewRegistry()
			metrics := observability.NewMetricsWith(reg)
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			svc := forecast.NewService(&slowPredictor{clock: clock, delay: 250 * time.Millisecond, err: tt.err}, clock, logger, metrics)

			_, err := svc.Forecast(context.Background(), domain.DefaultInputs())
			if tt.err != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, float64(250*time.Millisecond), entry["duration"])

			families, err := reg.Gather()
			require.NoError(t, err)
			var samples uint64
			for _, mf := range families {
				if mf.GetName() == "pm25_prediction_duration_seconds" {
					samples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
				}
			}
			assert.Equal(t, uint64(1), samples)
		})
	}
}

func TestForecast_PredictionFailurePassedThrough(t *testing.T) {
	original := &domain.PredictionFailure{Err: errors.New("boom")}
	svc := forecast.NewService(&mockPredictor{err: original}, clockwork.NewFakeClock(), discardLogger(), observability.NewMetricsForTesting())

	_, err := svc.Forecast(context.Background(), domain.DefaultInputs())

	assert.Same(t, original, err)
}

func TestForecast_WithGateway(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	gw := model.NewGateway("../model/testdata/ensemble.json", discardLogger(), metrics)
	svc := forecast.NewService(gw, clockwork.NewFakeClockAt(fixedTime), discardLogger(), metrics)

	res, err := svc.Forecast(context.Background(), domain.DefaultInputs())
	require.NoError(t, err)
	assert.InDelta(t, 9.9, res.Value, 1e-9)
	assert.Equal(t, "Good", res.Band.Label)
	assert.Equal(t, "9.90 µg/m³", domain.FormatConcentration(res.Value))

	in := domain.DefaultInputs()
	in.WindGustsMax = -3
	_, err = svc.Forecast(context.Background(), in)
	var pf *domain.PredictionFailure
	require.True(t, errors.As(err, &pf))
	assert.ErrorIs(t, err, model.ErrNonFinite)
}
