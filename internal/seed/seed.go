// Package seed carries the bundled audit checklist template and the default
// learning-hub guidance. Both ship inside the binary so a fresh install has a
// working checklist before any state is persisted.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"auditkit/domain/checklist"
	"auditkit/domain/guidance"
)

//go:embed checklist.json
var checklistJSON []byte

//go:embed guidance.json
var guidanceJSON []byte

// Template returns the bundled checklist template in its storage shape.
func Template() ([]checklist.RawCategory, error) {
	cats, err := checklist.ParseImport(checklistJSON)
	if err != nil {
		return nil, fmt.Errorf("bundled checklist template: %w", err)
	}
	return cats, nil
}

// TemplateFromFile loads an operator-supplied template instead of the bundled
// one. path is validated the same way imports are.
func TemplateFromFile(path string) ([]checklist.RawCategory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	cats, err := checklist.ParseImport(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return cats, nil
}

// Guidance returns the default learning-hub entries.
func Guidance() (guidance.List, error) {
	var entries guidance.List
	if err := json.Unmarshal(guidanceJSON, &entries); err != nil {
		return nil, fmt.Errorf("bundled guidance: %w", err)
	}
	return entries, nil
}
