package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset describes a seeding profile loaded from a YAML file, e.g.:
//
//	clean: true
//	randomize: true
//	per_status:
//	  R: 10
//	  A: 3
type Preset struct {
	Clean     bool           `yaml:"clean"`
	Randomize bool           `yaml:"randomize"`
	PerStatus map[string]int `yaml:"per_status"`
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset %s: %w", path, err)
	}
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return &p, nil
}

// Count returns the configured count for a status, defaulting to
// MockCountPerStatus when the preset does not name it.
func (p *Preset) Count(statusID string) int {
	if p == nil || p.PerStatus == nil {
		return MockCountPerStatus
	}
	if n, ok := p.PerStatus[statusID]; ok && n >= 0 {
		return n
	}
	return MockCountPerStatus
}
