package domain

import "math"

// Feature record column names.
const (
	ColCityName              = "city_name"
	ColTemperatureMax        = "temperature_max"
	ColTemperatureMin        = "temperature_min"
	ColWindDirectionDominant = "wind_direction_dominant"
	ColPrecipitationSum      = "precipitation_sum"
	ColRainSum               = "rain_sum"
	ColSnowfallSum           = "snowfall_sum"
	ColPrecipitationHours    = "precipitation_hours"
	ColWindSpeedMax          = "wind_speed_max"
	ColWindGustsMax          = "wind_gusts_max"
	ColLogRainSum            = "log_rain_sum"
	ColLogPrecipitationHours = "log_precipitation_hours"
	ColLogWindSpeedMax       = "log_wind_speed_max"
	ColLogSnowfallSum        = "log_snowfall_sum"
	ColLogPrecipitationSum   = "log_precipitation_sum"
	ColLogWindGustsMax       = "log_wind_gusts_max"
)

// columns is the canonical column order of a FeatureRecord.
var columns = []string{
	ColCityName,
	ColTemperatureMax,
	ColTemperatureMin,
	ColWindDirectionDominant,
	ColPrecipitationSum,
	ColRainSum,
	ColSnowfallSum,
	ColPrecipitationHours,
	ColWindSpeedMax,
	ColWindGustsMax,
	ColLogRainSum,
	ColLogPrecipitationHours,
	ColLogWindSpeedMax,
	ColLogSnowfallSum,
	ColLogPrecipitationSum,
	ColLogWindGustsMax,
}

// Cities lists the cities the regressor was trained on. Order matters: the
// first entry is the form's default selection.
var Cities = []string{
	"Denver", "Los Angeles", "New York", "Chicago", "Houston", "Phoenix", "San Antonio",
	"San Diego", "Dallas", "San Jose", "Washington", "Austin", "Boston", "Seattle",
}

// RawInputs holds the user-supplied observation for one submission.
type RawInputs struct {
	CityName              string  `json:"city_name"`
	TemperatureMax        float64 `json:"temperature_max"`
	TemperatureMin        float64 `json:"temperature_min"`
	PrecipitationSum      float64 `json:"precipitation_sum"`
	RainSum               float64 `json:"rain_sum"`
	SnowfallSum           float64 `json:"snowfall_sum"`
	PrecipitationHours    float64 `json:"precipitation_hours"`
	WindSpeedMax          float64 `json:"wind_speed_max"`
	WindGustsMax          float64 `json:"wind_gusts_max"`
	WindDirectionDominant float64 `json:"wind_direction_dominant"`
}

// DefaultInputs returns the values the input form starts with.
func DefaultInputs() RawInputs {
	return RawInputs{
		CityName:              Cities[0],
		TemperatureMax:        25.0,
		TemperatureMin:        15.0,
		PrecipitationSum:      0.5,
		RainSum:               0.3,
		SnowfallSum:           0.0,
		PrecipitationHours:    0.0,
		WindSpeedMax:          20.0,
		WindGustsMax:          28.0,
		WindDirectionDominant: 180.0,
	}
}

// FeatureRecord is the flat 16-column row consumed by the regressor: the raw
// inputs plus their log1p-transformed counterparts.
type FeatureRecord struct {
	RawInputs

	LogRainSum            float64 `json:"log_rain_sum"`
	LogPrecipitationHours float64 `json:"log_precipitation_hours"`
	LogWindSpeedMax       float64 `json:"log_wind_speed_max"`
	LogSnowfallSum        float64 `json:"log_snowfall_sum"`
	LogPrecipitationSum   float64 `json:"log_precipitation_sum"`
	LogWindGustsMax       float64 `json:"log_wind_gusts_max"`
}

// Derive builds a FeatureRecord from raw inputs. Each log field is
// math.Log1p of exactly one raw field; no clamping is applied.
func Derive(raw RawInputs) FeatureRecord {
	return FeatureRecord{
		RawInputs:             raw,
		LogRainSum:            math.Log1p(raw.RainSum),
		LogPrecipitationHours: math.Log1p(raw.PrecipitationHours),
		LogWindSpeedMax:       math.Log1p(raw.WindSpeedMax),
		LogSnowfallSum:        math.Log1p(raw.SnowfallSum),
		LogPrecipitationSum:   math.Log1p(raw.PrecipitationSum),
		LogWindGustsMax:       math.Log1p(raw.WindGustsMax),
	}
}

// Columns returns the record's column names in canonical order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Categorical returns the value of a string-typed column.
func (r FeatureRecord) Categorical(name string) (string, bool) {
	if name == ColCityName {
		return r.CityName, true
	}
	return "", false
}

// Numeric returns the value of a float-typed column.
func (r FeatureRecord) Numeric(name string) (float64, bool) {
	switch name {
	case ColTemperatureMax:
		return r.TemperatureMax, true
	case ColTemperatureMin:
		return r.TemperatureMin, true
	case ColWindDirectionDominant:
		return r.WindDirectionDominant, true
	case ColPrecipitationSum:
		return r.PrecipitationSum, true
	case ColRainSum:
		return r.RainSum, true
	case ColSnowfallSum:
		return r.SnowfallSum, true
	case ColPrecipitationHours:
		return r.PrecipitationHours, true
	case ColWindSpeedMax:
		return r.WindSpeedMax, true
	case ColWindGustsMax:
		return r.WindGustsMax, true
	case ColLogRainSum:
		return r.LogRainSum, true
	case ColLogPrecipitationHours:
		return r.LogPrecipitationHours, true
	case ColLogWindSpeedMax:
		return r.LogWindSpeedMax, true
	case ColLogSnowfallSum:
		return r.LogSnowfallSum, true
	case ColLogPrecipitationSum:
		return r.LogPrecipitationSum, true
	case ColLogWindGustsMax:
		return r.LogWindGustsMax, true
	default:
		return 0, false
	}
}

// IsCategorical reports whether the named record column holds a string.
func IsCategorical(name string) bool {
	return name == ColCityName
}
