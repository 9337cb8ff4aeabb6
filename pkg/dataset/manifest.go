package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest maps a category name to an ordered list of file locations. The
// order of locations within a category is the row order of the resampled
// matrix downstream, so it is preserved everywhere.
type Manifest struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadManifest reads a YAML manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the manifest file %q: %w", path, err)
	}
	return ParseManifest(raw)
}

// ParseManifest parses YAML manifest content.
func ParseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unable to parse the manifest: %w", err)
	}
	if len(m.Categories) == 0 {
		return nil, fmt.Errorf("the manifest defines no categories")
	}
	for name, locations := range m.Categories {
		if len(locations) == 0 {
			return nil, fmt.Errorf("category %q lists no locations", name)
		}
	}
	return &m, nil
}

// Locations returns the ordered location list of one category.
func (m *Manifest) Locations(category string) ([]string, error) {
	locations, ok := m.Categories[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q (the manifest defines %d categories)", category, len(m.Categories))
	}
	return locations, nil
}
