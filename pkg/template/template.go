package template

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTemplate reads and validates a template from a YAML file at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: reading %s: %w", path, err)
	}
	return LoadTemplateFromBytes(data)
}

// LoadTemplateFromBytes parses and validates a template from YAML bytes.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("template: parsing YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Hash returns a deterministic digest of the template, used as the
// configHash input when deriving the run's single RNG.
func (t *Template) Hash() []byte {
	data, err := yaml.Marshal(t)
	if err != nil {
		h := sha256.Sum256([]byte(t.Settings.Name))
		return h[:]
	}
	h := sha256.Sum256(data)
	return h[:]
}

// ZoneByID returns the zone description with the given id, or nil.
func (t *Template) ZoneByID(id string) *ZoneDescription {
	for i := range t.Content.Zones {
		if t.Content.Zones[i].ID == id {
			return &t.Content.Zones[i]
		}
	}
	return nil
}
