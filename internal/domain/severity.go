package domain

import "fmt"

// ConcentrationUnit is the display unit for PM2.5 values.
const ConcentrationUnit = "µg/m³"

// Band is one air-quality category with its display styling.
type Band struct {
	Label string
	Color string
	Emoji string
	// Upper is the inclusive upper bound in µg/m³. The last band is unbounded.
	Upper float64
}

// Status is the label as shown on the status panel.
func (b Band) Status() string {
	return b.Label + " " + b.Emoji
}

// Bands is the fixed ordered PM2.5 scale. Classify walks it in order.
var Bands = []Band{
	{Label: "Good", Color: "green", Emoji: "😊", Upper: 12.0},
	{Label: "Moderate", Color: "gold", Emoji: "😐", Upper: 35.4},
	{Label: "Unhealthy for Sensitive Groups", Color: "orange", Emoji: "😷", Upper: 55.4},
	{Label: "Unhealthy", Color: "red", Emoji: "🤢", Upper: 150.4},
	{Label: "Hazardous", Color: "purple", Emoji: "☠️"},
}

// Classify maps a PM2.5 concentration to its band. The raw float is compared
// against each inclusive upper bound without rounding. Anything that is not
// ≤ 150.4, including NaN, is Hazardous.
func Classify(value float64) Band {
	switch {
	case value <= Bands[0].Upper:
		return Bands[0]
	case value <= Bands[1].Upper:
		return Bands[1]
	case value <= Bands[2].Upper:
		return Bands[2]
	case value <= Bands[3].Upper:
		return Bands[3]
	default:
		return Bands[4]
	}
}

// FormatConcentration renders a prediction the way the result page shows it,
// e.g. "9.90 µg/m³".
func FormatConcentration(value float64) string {
	return fmt.Sprintf("%.2f %s", value, ConcentrationUnit)
}
