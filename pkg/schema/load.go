package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes an authored schema document into the raw mapping
// accepted by Compile. YAML is a superset of JSON, so both formats decode
// through the same path.
func ParseDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}
	return doc, nil
}

// LoadFile reads and compiles a schema document from disk.
func LoadFile(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	raw, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return Compile(raw)
}
