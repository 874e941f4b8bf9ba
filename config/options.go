// Package config holds the tunables that cut across the similarity kernel:
// how many consecutive tokens make a tile worth reporting, and how that
// value may be supplied from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MinMatchFloor and MinMatchCeil bound MinimumTokenMatch; values outside this
// range are clamped rather than rejected, matching the rolling hasher's own
// window bound.
const (
	MinMatchFloor = 1
	MinMatchCeil  = 25

	// DefaultMinimumTokenMatch is the recommended tile length absent any
	// configuration.
	DefaultMinimumTokenMatch = 9
)

// Options controls the Matcher and BaseCodePass.
type Options struct {
	// MinimumTokenMatch is the shortest tile length the Matcher reports, and
	// the rolling hash window it builds indexes with.
	MinimumTokenMatch int `yaml:"minimumTokenMatch"`
}

// Default returns Options populated with this module's recommended values.
func Default() Options {
	return Options{MinimumTokenMatch: DefaultMinimumTokenMatch}
}

// Normalize clamps MinimumTokenMatch into [MinMatchFloor, MinMatchCeil].
// Zero clamps to MinMatchFloor like any other below-floor value; callers
// that want the recommended value absent any configuration should start
// from Default, not rely on Normalize to supply it. It never errors;
// instead it returns a warning for every field it had to adjust so the
// caller can log or ignore it.
func (o Options) Normalize() (Options, []string) {
	var warnings []string
	if o.MinimumTokenMatch < MinMatchFloor {
		warnings = append(warnings, fmt.Sprintf("minimumTokenMatch %d below floor, clamped to %d", o.MinimumTokenMatch, MinMatchFloor))
		o.MinimumTokenMatch = MinMatchFloor
	}
	if o.MinimumTokenMatch > MinMatchCeil {
		warnings = append(warnings, fmt.Sprintf("minimumTokenMatch %d above ceiling, clamped to %d", o.MinimumTokenMatch, MinMatchCeil))
		o.MinimumTokenMatch = MinMatchCeil
	}
	return o, warnings
}

// Load reads Options from a YAML file at path and normalizes them.
func Load(path string) (Options, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	normalized, warnings := o.Normalize()
	return normalized, warnings, nil
}
