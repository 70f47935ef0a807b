// Command predict runs a single PM2.5 prediction from command-line flags,
// using the same model artifact and defaults as the web form.
//
// Usage:
//
//	go run ./cmd/predict --city "Los Angeles" --wind-speed-max 8 --temperature-max 33
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
	"github.com/couchcryptid/pm25-forecast-service/internal/forecast"
	"github.com/couchcryptid/pm25-forecast-service/internal/model"
	"github.com/couchcryptid/pm25-forecast-service/internal/observability"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const (
	exitSuccess    = 0
	exitPrediction = 1
	exitSetup      = 2
)

type options struct {
	modelPath string
	verbose   bool
	inputs    domain.RawInputs
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	code := exitSuccess
	opts := &options{inputs: domain.DefaultInputs()}

	cmd := &cobra.Command{
		Use:           "predict",
		Short:         "Predict the PM2.5 concentration for one day of weather in a city",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code = predict(cmd.Context(), opts, stdout, stderr)
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&opts.modelPath, "model", sharedcfg.EnvOrDefault("MODEL_PATH", "models/pm25_regressor.json"), "path to the regressor artifact")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log model loading and prediction details to stderr")
	f.StringVar(&opts.inputs.CityName, "city", opts.inputs.CityName, "city name")
	f.Float64Var(&opts.inputs.TemperatureMax, "temperature-max", opts.inputs.TemperatureMax, "maximum temperature (°C)")
	f.Float64Var(&opts.inputs.TemperatureMin, "temperature-min", opts.inputs.TemperatureMin, "minimum temperature (°C)")
	f.Float64Var(&opts.inputs.PrecipitationSum, "precipitation-sum", opts.inputs.PrecipitationSum, "precipitation sum (mm)")
	f.Float64Var(&opts.inputs.RainSum, "rain-sum", opts.inputs.RainSum, "rain sum (mm)")
	f.Float64Var(&opts.inputs.SnowfallSum, "snowfall-sum", opts.inputs.SnowfallSum, "snowfall sum (mm)")
	f.Float64Var(&opts.inputs.PrecipitationHours, "precipitation-hours", opts.inputs.PrecipitationHours, "hours with precipitation")
	f.Float64Var(&opts.inputs.WindSpeedMax, "wind-speed-max", opts.inputs.WindSpeedMax, "maximum wind speed (km/h)")
	f.Float64Var(&opts.inputs.WindGustsMax, "wind-gusts-max", opts.inputs.WindGustsMax, "maximum wind gusts (km/h)")
	f.Float64Var(&opts.inputs.WindDirectionDominant, "wind-direction", opts.inputs.WindDirectionDominant, "dominant wind direction (°)")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitSetup
	}
	return code
}

func predict(ctx context.Context, opts *options, stdout, stderr io.Writer) int {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	metrics := observability.NewMetricsWith(prometheus.NewRegistry())

	gateway := model.NewGateway(opts.modelPath, logger, metrics)
	if _, err := gateway.Load(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitSetup
	}

	svc := forecast.NewService(gateway, clockwork.NewRealClock(), logger, metrics)
	res, err := svc.Forecast(ctx, opts.inputs)
	if err != nil {
		fmt.Fprintf(stderr, "Prediction Error: %v\n", err)
		return exitPrediction
	}

	fmt.Fprintf(stdout, "City:               %s\n", opts.inputs.CityName)
	fmt.Fprintf(stdout, "PM2.5 Value:        %s\n", domain.FormatConcentration(res.Value))
	fmt.Fprintf(stdout, "Air Quality Status: %s\n", res.Band.Status())
	return exitSuccess
}
