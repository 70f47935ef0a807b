package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
)

// artifact is the on-disk regressor document.
type artifact struct {
	Name      string     `json:"name"`
	Schema    Schema     `json:"schema"`
	BaseScore float64    `json:"base_score"`
	Trees     []dumpNode `json:"trees"`
}

// Ensemble is a loaded gradient-boosted regressor. It is immutable after
// decoding and safe for concurrent use.
type Ensemble struct {
	Name      string
	Schema    Schema
	BaseScore float64

	trees []tree
}

// Decode parses and compiles a regressor artifact.
func Decode(data []byte) (*Ensemble, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := a.Schema.validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	if len(a.Trees) == 0 {
		return nil, errors.New("artifact has no trees")
	}

	names := a.Schema.EncodedNames()
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	trees := make([]tree, 0, len(a.Trees))
	for i, root := range a.Trees {
		t, err := compileTree(root, index, len(names))
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees = append(trees, t)
	}

	return &Ensemble{
		Name:      a.Name,
		Schema:    a.Schema,
		BaseScore: a.BaseScore,
		trees:     trees,
	}, nil
}

// Trees returns the number of boosted trees.
func (e *Ensemble) Trees() int {
	return len(e.trees)
}

// Predict encodes the record and sums the base score with every tree's leaf.
func (e *Ensemble) Predict(record domain.FeatureRecord) (float64, error) {
	x, err := e.Schema.Encode(record)
	if err != nil {
		return 0, err
	}
	sum := e.BaseScore
	for _, t := range e.trees {
		sum += t.eval(x)
	}
	return sum, nil
}
