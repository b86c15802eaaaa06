package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/san-kum/bookloader/internal/book"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset adjusts a default config.
type Preset struct {
	Description string
	Scale       float64
	Policy      book.Policy
	Duration    float64
}

var Presets = map[string]Preset{
	"default": {Description: "stock timing", Scale: 0.4, Duration: 10},
	"gentle":  {Description: "slower, calmer loop", Scale: 0.7, Duration: 15},
	"brisk":   {Description: "snappy loop for short waits", Scale: 0.25, Duration: 6},
	"slowmo":  {Description: "one second per unit, for inspecting the choreography", Scale: 1, Duration: 25},
	"overlap": {Description: "stock timing, taps stack cascades instead of restarting", Scale: 0.4, Policy: book.PolicyOverlap, Duration: 10},
}

// GetPreset returns a default config with the named preset applied. Unknown
// names wrap ErrUnknownPreset and suggest the closest matches.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		if s := Suggest(name); len(s) > 0 {
			return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownPreset, name, s[0])
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}

	cfg := DefaultConfig()
	cfg.Scale = p.Scale
	if p.Policy != "" {
		cfg.Policy = string(p.Policy)
	}
	if p.Duration > 0 {
		cfg.Duration = p.Duration
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns preset names that fuzzily match name, best first.
func Suggest(name string) []string {
	matches := fuzzy.Find(name, ListPresets())
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
