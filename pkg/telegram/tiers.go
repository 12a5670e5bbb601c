package telegram

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tiers maps a price to one of three bands, each with its own emoji. Bounds
// are half-open on the lower side: price < Cheap is tier 0, price < Mid is
// tier 1, anything else tier 2. Comparisons use the raw value, unrounded.
type Tiers struct {
	Cheap  float64   `yaml:"cheap"`
	Mid    float64   `yaml:"mid"`
	Emojis [3]string `yaml:"emojis"`
}

// DefaultTiers returns the standard bands: <0.10 cheap, <0.15 mid, else
// expensive.
func DefaultTiers() Tiers {
	return Tiers{
		Cheap:  0.10,
		Mid:    0.15,
		Emojis: [3]string{"🔵", "🟡", "🟤"},
	}
}

// LoadTiers reads a YAML tier definition file.
func LoadTiers(path string) (Tiers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tiers{}, fmt.Errorf("read tiers file %s: %w", path, err)
	}

	tiers := DefaultTiers()
	if err := yaml.Unmarshal(data, &tiers); err != nil {
		return Tiers{}, fmt.Errorf("parse tiers file %s: %w", path, err)
	}
	if tiers.Cheap >= tiers.Mid {
		return Tiers{}, fmt.Errorf("tiers file %s: cheap bound %v must be below mid bound %v", path, tiers.Cheap, tiers.Mid)
	}

	return tiers, nil
}

// Emoji returns the emoji for the band the price falls into.
func (t Tiers) Emoji(price float64) string {
	switch {
	case price < t.Cheap:
		return t.Emojis[0]
	case price < t.Mid:
		return t.Emojis[1]
	default:
		return t.Emojis[2]
	}
}
