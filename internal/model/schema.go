package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
)

// Column kinds understood by the encoder.
const (
	KindNumeric     = "numeric"
	KindCategorical = "categorical"
)

var (
	// ErrSchemaMismatch means the feature record does not carry a column the
	// artifact was trained on, or carries it with the wrong type.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUnknownCategory means a categorical value was not seen during training.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNonFinite means a numeric feature is NaN or infinite.
	ErrNonFinite = errors.New("non-finite feature value")
)

// Column is one input column of the trained pipeline.
type Column struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Categories []string `json:"categories,omitempty"`
}

// Schema is the versioned column agreement between the artifact and the
// feature record. Categorical columns are one-hot encoded in category order;
// numeric columns pass through.
type Schema struct {
	Columns []Column `json:"columns"`
}

func (s Schema) validate() error {
	if len(s.Columns) == 0 {
		return errors.New("schema has no columns")
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return errors.New("schema column without a name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate schema column %q", c.Name)
		}
		seen[c.Name] = true

		switch c.Kind {
		case KindNumeric:
		case KindCategorical:
			if len(c.Categories) == 0 {
				return fmt.Errorf("categorical column %q has no categories", c.Name)
			}
		default:
			return fmt.Errorf("column %q has unsupported kind %q", c.Name, c.Kind)
		}
	}
	return nil
}

// EncodedNames returns the names of the dense feature vector positions.
// One-hot positions are named "<column>_<category>".
func (s Schema) EncodedNames() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Kind == KindCategorical {
			for _, cat := range c.Categories {
				names = append(names, c.Name+"_"+cat)
			}
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// Width is the length of the encoded feature vector.
func (s Schema) Width() int {
	n := 0
	for _, c := range s.Columns {
		if c.Kind == KindCategorical {
			n += len(c.Categories)
			continue
		}
		n++
	}
	return n
}

// Encode turns a feature record into the dense vector the trees index into.
func (s Schema) Encode(record domain.FeatureRecord) ([]float64, error) {
	x := make([]float64, 0, s.Width())
	for _, c := range s.Columns {
		if c.Kind == KindCategorical {
			v, ok := record.Categorical(c.Name)
			if !ok {
				return nil, fmt.Errorf("%w: column %q is not a categorical field of the feature record", ErrSchemaMismatch, c.Name)
			}
			hit := false
			for _, cat := range c.Categories {
				if cat == v {
					x = append(x, 1)
					hit = true
					continue
				}
				x = append(x, 0)
			}
			if !hit {
				return nil, fmt.Errorf("%w %q in column %q", ErrUnknownCategory, v, c.Name)
			}
			continue
		}

		v, ok := record.Numeric(c.Name)
		if !ok {
			return nil, fmt.Errorf("%w: column %q is not a numeric field of the feature record", ErrSchemaMismatch, c.Name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: column %q is %v", ErrNonFinite, c.Name, v)
		}
		x = append(x, v)
	}
	return x, nil
}
