package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
)

// numericField is one float input on the form.
type numericField struct {
	Name  string
	Label string
	set   func(*domain.RawInputs, float64)
	get   func(domain.RawInputs) float64
}

// numericFields lists the form's number inputs in display order.
var numericFields = []numericField{
	{
		Name: domain.ColTemperatureMax, Label: "🌡️ Temperature Max (°C)",
		set: func(r *domain.RawInputs, v float64) { r.TemperatureMax = v },
		get: func(r domain.RawInputs) float64 { return r.TemperatureMax },
	},
	{
		Name: domain.ColTemperatureMin, Label: "🌡️ Temperature Min (°C)",
		set: func(r *domain.RawInputs, v float64) { r.TemperatureMin = v },
		get: func(r domain.RawInputs) float64 { return r.TemperatureMin },
	},
	{
		Name: domain.ColPrecipitationSum, Label: "🌧️ Precipitation Sum (mm)",
		set: func(r *domain.RawInputs, v float64) { r.PrecipitationSum = v },
		get: func(r domain.RawInputs) float64 { return r.PrecipitationSum },
	},
	{
		Name: domain.ColRainSum, Label: "🌦️ Rain Sum (mm)",
		set: func(r *domain.RawInputs, v float64) { r.RainSum = v },
		get: func(r domain.RawInputs) float64 { return r.RainSum },
	},
	{
		Name: domain.ColSnowfallSum, Label: "❄️ Snowfall Sum (mm)",
		set: func(r *domain.RawInputs, v float64) { r.SnowfallSum = v },
		get: func(r domain.RawInputs) float64 { return r.SnowfallSum },
	},
	{
		Name: domain.ColPrecipitationHours, Label: "🌧️ Precipitation Hours",
		set: func(r *domain.RawInputs, v float64) { r.PrecipitationHours = v },
		get: func(r domain.RawInputs) float64 { return r.PrecipitationHours },
	},
	{
		Name: domain.ColWindSpeedMax, Label: "💨 Max Wind Speed (km/h)",
		set: func(r *domain.RawInputs, v float64) { r.WindSpeedMax = v },
		get: func(r domain.RawInputs) float64 { return r.WindSpeedMax },
	},
	{
		Name: domain.ColWindGustsMax, Label: "🌬️ Max Wind Gusts (km/h)",
		set: func(r *domain.RawInputs, v float64) { r.WindGustsMax = v },
		get: func(r domain.RawInputs) float64 { return r.WindGustsMax },
	},
	{
		Name: domain.ColWindDirectionDominant, Label: "🧭 Wind Direction (°)",
		set: func(r *domain.RawInputs, v float64) { r.WindDirectionDominant = v },
		get: func(r domain.RawInputs) float64 { return r.WindDirectionDominant },
	},
}

// formState is what the page echoes back into the inputs. Problem is a
// form-level message for submissions that could not be read at all.
type formState struct {
	City    string
	Values  map[string]string
	Errors  map[string]string
	Problem string
}

const unreadableForm = "Could not read the form submission, so the default values were restored."

func defaultFormState() formState {
	def := domain.DefaultInputs()
	values := make(map[string]string, len(numericFields))
	for _, f := range numericFields {
		values[f.Name] = formatInput(f.get(def))
	}
	return formState{City: def.CityName, Values: values}
}

// parseForm coerces the submitted fields to RawInputs. Coercion is the only
// check: the city string is passed through as submitted and numbers are not
// range-checked.
func parseForm(r *http.Request) (domain.RawInputs, formState, error) {
	state := formState{Values: make(map[string]string, len(numericFields))}
	if err := r.ParseForm(); err != nil {
		state = defaultFormState()
		state.Problem = unreadableForm
		return domain.RawInputs{}, state, fmt.Errorf("parse form: %w", err)
	}

	var raw domain.RawInputs
	raw.CityName = r.PostForm.Get(domain.ColCityName)
	state.City = raw.CityName

	for _, f := range numericFields {
		s := strings.TrimSpace(r.PostForm.Get(f.Name))
		state.Values[f.Name] = s
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if state.Errors == nil {
				state.Errors = make(map[string]string)
			}
			state.Errors[f.Name] = "must be a number"
			continue
		}
		f.set(&raw, v)
	}

	if len(state.Errors) > 0 {
		return domain.RawInputs{}, state, errInvalidForm
	}
	return raw, state, nil
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
