package gen

import (
	"fmt"
	"path/filepath"
)

// Generate loads the schema at path and renders its owner.
func Generate(path string) ([]byte, error) {
	schema, err := Load(path)
	if err != nil {
		return nil, err
	}

	plan, err := NewPlan(schema, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return Render(plan)
}
