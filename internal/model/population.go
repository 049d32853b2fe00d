package model

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

type populationFile struct {
	Characters []*Character `yaml:"characters"`
}

// LoadPopulation loads character state from a YAML file.
// Used when the database is disabled (local runs, fixtures).
func LoadPopulation(path string) ([]*Character, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading population %s: %w", path, err)
	}
	return ParsePopulation(raw)
}

// ParsePopulation decodes a YAML population document.
func ParsePopulation(raw []byte) ([]*Character, error) {
	var f populationFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding population: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Characters))
	for i, c := range f.Characters {
		if c == nil || c.ID == "" {
			return nil, fmt.Errorf("character #%d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate character id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Species == "" {
			c.Species = "human"
		}
	}
	if len(f.Characters) == 0 {
		return nil, errors.New("population is empty")
	}
	return f.Characters, nil
}

// Clone returns a deep copy of c.
func (c *Character) Clone() *Character {
	cp := *c
	cp.RolledBonuses = slices.Clone(c.RolledBonuses)
	cp.Skills = slices.Clone(c.Skills)
	cp.Affinities = slices.Clone(c.Affinities)
	if c.Equipment != nil {
		cp.Equipment = maps.Clone(c.Equipment)
	}
	return &cp
}
