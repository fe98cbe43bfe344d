package plan

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Load reads a plan from a YAML file
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}

	if err := Validate(&p); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}

	return &p, nil
}

// Validate checks a plan for the fields staging cannot work without
func Validate(p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if p.Namespace == "" {
		return fmt.Errorf("plan namespace is required")
	}
	if len(p.Scripts) == 0 {
		return fmt.Errorf("plan must list at least one script")
	}
	for i, s := range p.Scripts {
		if s.Path == "" {
			return fmt.Errorf("script %d has no path", i)
		}
	}
	if p.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative")
	}
	return nil
}
