// Package domain models daily weather observations and the PM2.5 air-quality
// scale used to present regression forecasts.
//
// # Inputs
//
// A submission carries one city and nine daily weather aggregates, matching
// the Open-Meteo daily fields the regressor was trained on:
//
//	temperature_max / temperature_min   °C
//	precipitation_sum / rain_sum        mm
//	snowfall_sum                        mm (water equivalent)
//	precipitation_hours                 hours with measurable precipitation
//	wind_speed_max / wind_gusts_max     km/h at 10 m
//	wind_direction_dominant             degrees, meteorological convention
//
// # Derived Features
//
// The six skewed precipitation and wind fields are also supplied to the model
// as ln(1+x), see [Derive]. Values are passed through unchanged: a raw value of
// -1 yields -Inf and anything below -1 yields NaN. The model gateway rejects
// non-finite features, so those submissions surface as a [PredictionFailure].
//
// # Air Quality Scale
//
// Predictions are classified with the US EPA 24-hour PM2.5 breakpoints
// (µg/m³), upper bound inclusive:
//
//	≤ 12.0   Good
//	≤ 35.4   Moderate
//	≤ 55.4   Unhealthy for Sensitive Groups
//	≤ 150.4  Unhealthy
//	> 150.4  Hazardous
//
// The EPA "Very Unhealthy" band is folded into Hazardous. See [Classify].
package domain
