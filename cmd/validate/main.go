// Command validate checks a regressor artifact against the feature record
// before it is deployed. It verifies that the artifact decodes, that its
// schema agrees column-for-column with the feature record, that every form
// city is a known category, and that the form defaults predict a finite,
// classifiable value.
//
// Usage:
//
//	go run ./cmd/validate -model models/pm25_regressor.json
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
	"github.com/couchcryptid/pm25-forecast-service/internal/model"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	modelPath := flag.String("model", "models/pm25_regressor.json", "path to the regressor artifact")
	flag.Parse()

	os.Exit(run(*modelPath, os.Stdout))
}

func run(modelPath string, out io.Writer) int {
	fmt.Fprintln(out, "=== Model Artifact Validation ===")
	fmt.Fprintln(out)

	data, err := os.ReadFile(modelPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: read artifact: %v\n", err)
		return 1
	}
	m, err := model.Decode(data)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchemaAlignment(m.Schema),
		validateCityCoverage(m.Schema),
		validateDefaultScenario(m),
		validateCitySweep(m),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Model: %s, %d trees, %d encoded features\n", m.Name, m.Trees(), m.Schema.Width())
	if v, err := m.Predict(domain.Derive(domain.DefaultInputs())); err == nil {
		fmt.Fprintf(out, "Defaults: %s (%s)\n", domain.FormatConcentration(v), domain.Classify(v).Label)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// validateSchemaAlignment checks the artifact columns match the feature
// record exactly: same names, same kinds, nothing extra, nothing missing.
func validateSchemaAlignment(s model.Schema) *phase {
	p := &phase{name: "Phase 1: Schema ↔ feature record"}

	inSchema := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		inSchema[c.Name] = true
		if !slices.Contains(domain.Columns(), c.Name) {
			p.errorf("schema column %q is not a feature record column", c.Name)
			continue
		}
		wantKind := model.KindNumeric
		if domain.IsCategorical(c.Name) {
			wantKind = model.KindCategorical
		}
		if c.Kind != wantKind {
			p.errorf("column %q: kind %q, feature record has %q", c.Name, c.Kind, wantKind)
		}
	}
	for _, name := range domain.Columns() {
		if !inSchema[name] {
			p.errorf("feature record column %q missing from schema", name)
		}
	}
	return p
}

// validateCityCoverage checks every selectable city is a trained category.
func validateCityCoverage(s model.Schema) *phase {
	p := &phase{name: "Phase 2: City categories"}

	idx := slices.IndexFunc(s.Columns, func(c model.Column) bool { return c.Name == domain.ColCityName })
	if idx < 0 {
		p.errorf("schema has no %s column", domain.ColCityName)
		return p
	}
	categories := s.Columns[idx].Categories
	for _, city := range domain.Cities {
		if !slices.Contains(categories, city) {
			p.errorf("form city %q is not a trained category", city)
		}
	}
	return p
}

// validateDefaultScenario predicts the form defaults and checks the result
// is finite.
func validateDefaultScenario(m *model.Ensemble) *phase {
	p := &phase{name: "Phase 3: Default scenario"}

	v, err := m.Predict(domain.Derive(domain.DefaultInputs()))
	if err != nil {
		p.errorf("predict defaults: %v", err)
		return p
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.errorf("defaults predicted non-finite value %v", v)
		return p
	}
	return p
}

// validateCitySweep predicts the defaults once per city.
func validateCitySweep(m *model.Ensemble) *phase {
	p := &phase{name: "Phase 4: Per-city predictions"}

	for _, city := range domain.Cities {
		in := domain.DefaultInputs()
		in.CityName = city
		v, err := m.Predict(domain.Derive(in))
		if err != nil {
			p.errorf("%s: %v", city, err)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			p.errorf("%s: non-finite prediction %v", city, v)
		}
	}
	return p
}
