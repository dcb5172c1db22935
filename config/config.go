// Package config holds the shared run parameters: which algorithm and
// methods to use plus every index and clustering constant. Params is
// yaml-serializable so runs can be described by a file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration value")

// Algorithm selects the item kind and metric of a run.
type Algorithm string

const (
	AlgVector            Algorithm = "vector"
	AlgFrechetDiscrete   Algorithm = "frechet-discrete"
	AlgFrechetContinuous Algorithm = "frechet-continuous"
)

// Assignment selects the clustering assignment step.
type Assignment string

const (
	AssignLloyd     Assignment = "lloyd"
	AssignLSH       Assignment = "lsh"
	AssignHypercube Assignment = "hypercube"
	AssignFrechet   Assignment = "frechet"
)

// Update selects the clustering update step.
type Update string

const (
	UpdateMeanVector  Update = "mean-vector"
	UpdateMeanFrechet Update = "mean-frechet"
)

// Seeds are the independent rng streams of the randomized components.
type Seeds struct {
	Seeder uint64 `yaml:"seeder"`
	Hasher uint64 `yaml:"hasher"`
	Grid   uint64 `yaml:"grid"`
}

// Params carries every constant an index or clustering run needs.
type Params struct {
	K             int        `yaml:"clusters"`
	LSHHashes     int        `yaml:"lsh_hashes"`  // k, base hashes per amplified key
	LSHTables     int        `yaml:"lsh_tables"`  // L
	W             float64    `yaml:"window"`      // p-stable window width
	CubeBits      int        `yaml:"cube_bits"`   // hypercube dimension
	Probes        int        `yaml:"probes"`      // hypercube bucket budget
	M             int        `yaml:"max_checked"` // hypercube item budget
	MaxIterations int        `yaml:"max_iterations"`
	EpsVector     float64    `yaml:"eps_vector"`
	EpsFrechet    float64    `yaml:"eps_frechet"`
	Delta         float64    `yaml:"delta"` // Fréchet grid cell width
	MeanCurveCap  int        `yaml:"mean_curve_cap"`
	Algorithm     Algorithm  `yaml:"algorithm"`
	Assignment    Assignment `yaml:"assignment"`
	Update        Update     `yaml:"update"`
	Seeds         Seeds      `yaml:"seeds"`
}

// Defaults mirror the values the original experiments ran with; the
// convergence thresholds are configuration, not contract.
func Defaults() Params {
	return Params{
		K:             10,
		LSHHashes:     4,
		LSHTables:     5,
		W:             4.0,
		CubeBits:      3,
		Probes:        2,
		M:             10,
		MaxIterations: 12,
		EpsVector:     1.0,
		EpsFrechet:    20.0,
		Delta:         1.0,
		MeanCurveCap:  200,
		Algorithm:     AlgVector,
		Assignment:    AssignLloyd,
		Update:        UpdateMeanVector,
		Seeds:         Seeds{Seeder: 1, Hasher: 2, Grid: 3},
	}
}

// Load reads a yaml params file over the defaults.
func Load(path string) (Params, error) {
	p := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func (p *Params) Validate() error {
	checks := []struct {
		name string
		bad  bool
	}{
		{"clusters", p.K <= 0},
		{"lsh_hashes", p.LSHHashes <= 0},
		{"lsh_tables", p.LSHTables <= 0},
		{"window", p.W <= 0},
		{"cube_bits", p.CubeBits <= 0},
		{"delta", p.Delta <= 0},
		{"max_iterations", p.MaxIterations <= 0},
	}
	for _, c := range checks {
		if c.bad {
			return fmt.Errorf("%s must be positive: %w", c.name, ErrInvalidConfig)
		}
	}
	if p.MeanCurveCap < 2 {
		return fmt.Errorf("mean_curve_cap must be at least 2: %w", ErrInvalidConfig)
	}
	return nil
}
