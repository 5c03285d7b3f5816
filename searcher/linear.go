package searcher

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// LinearPredictor is a logistic-style model over the feature schema:
// tanh(bias + sum of weight * feature).
type LinearPredictor struct {
	bias    float64
	weights map[FeatureKey]float64
}

type linearWeights struct {
	Bias    float64            `yaml:"bias"`
	Weights map[string]float64 `yaml:"weights"`
}

func NewLinearPredictor(bias float64, weights map[FeatureKey]float64) *LinearPredictor {
	for k := range weights {
		if !k.valid() {
			panic(fmt.Sprintf("feature key %+v is not in the schema", k))
		}
	}
	return &LinearPredictor{bias: bias, weights: weights}
}

// LoadLinearPredictor reads weights from a YAML file.
func LoadLinearPredictor(path string) (*LinearPredictor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weights: %w", err)
	}
	defer f.Close()
	return ReadLinearPredictor(f)
}

// ReadLinearPredictor decodes weights of the form
//
//	bias: 0.1
//	weights:
//	  self.hero_hp: 0.02
//	  opponent.minion_attack.0: -0.05
func ReadLinearPredictor(r io.Reader) (*LinearPredictor, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var raw linearWeights
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}

	weights := make(map[FeatureKey]float64, len(raw.Weights))
	var errs []error
	for name, w := range raw.Weights {
		key, err := ParseFeatureKey(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		weights[key] = w
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return NewLinearPredictor(raw.Bias, weights), nil
}

func (p *LinearPredictor) Predict(f *Features) float64 {
	sum := p.bias
	for k, w := range p.weights {
		sum += w * f.Get(k)
	}
	return math.Tanh(sum)
}
