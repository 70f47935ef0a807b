package domain

import "context"

// Predictor produces a PM2.5 concentration for a feature record.
type Predictor interface {
	Predict(ctx context.Context, record FeatureRecord) (float64, error)
}

// PredictionFailure is the single error kind a prediction can end in. Its
// message is the cause's message, unchanged, so it can be shown verbatim.
type PredictionFailure struct {
	Err error
}

func (e *PredictionFailure) Error() string {
	if e.Err == nil {
		return "prediction failed"
	}
	return e.Err.Error()
}

func (e *PredictionFailure) Unwrap() error {
	return e.Err
}
