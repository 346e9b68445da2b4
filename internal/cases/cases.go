// Package cases holds the oracle: the ordered list of Singlish inputs and
// the Sinhala output the translator is expected to render for each.
package cases

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"swiftcheck/internal/domain"
)

//go:embed cases.yaml
var embedded []byte

type file struct {
	Cases []domain.TestCase `yaml:"cases"`
}

// Default returns the cases compiled into the binary
func Default() ([]domain.TestCase, error) {
	return Parse(embedded)
}

// Load reads cases from a YAML file. An empty path returns the embedded set.
func Load(path string) ([]domain.TestCase, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases file: %w", err)
	}
	cs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cs, nil
}

// Parse decodes and validates a cases document. Case order is file order.
func Parse(data []byte) ([]domain.TestCase, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cases: %w", err)
	}
	if err := Validate(f.Cases); err != nil {
		return nil, err
	}
	return f.Cases, nil
}

// Validate rejects empty or duplicate labels
func Validate(cs []domain.TestCase) error {
	seen := make(map[string]int, len(cs))
	for i, c := range cs {
		if c.Label == "" {
			return fmt.Errorf("case %d: empty label", i+1)
		}
		if prev, ok := seen[c.Label]; ok {
			return fmt.Errorf("case %d: duplicate label %q (first seen at case %d)", i+1, c.Label, prev+1)
		}
		seen[c.Label] = i
	}
	return nil
}
