// Package seed reads portfolio content from a YAML file so a fresh store
// can be filled without the dashboard.
package seed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{\s*(FOLIO_VAR_[A-Z0-9_]+)\s*\}\}`)

// Loader handles loading and parsing of a seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file
func (l *Loader) Load() (Document, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document after expanding template variables.
func Parse(data []byte) (Document, error) {
	data = expandTemplateVariables(data)

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return doc, nil
}

// expandTemplateVariables replaces {{FOLIO_VAR_...}} with the value of the
// environment variable of the same name, or nothing when it is unset.
func expandTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAllFunc(data, func(m []byte) []byte {
		name := templateVar.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
