package export

import (
	"encoding/json"
	"os"

	"github.com/bartonsun/D2RSG/pkg/scenario"
)

// ExportJSON serializes the complete scenario to JSON with indentation.
// Returns formatted JSON with 2-space indentation for readability.
func ExportJSON(s *scenario.Scenario) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ExportJSONCompact serializes the scenario to JSON without indentation.
// Returns compact JSON suitable for storage or transmission.
func ExportJSONCompact(s *scenario.Scenario) ([]byte, error) {
	return json.Marshal(s)
}

// SaveJSONToFile exports the scenario to a JSON file with indentation.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveJSONToFile(s *scenario.Scenario, filepath string) error {
	data, err := ExportJSON(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile exports the scenario to a compact JSON file.
// The file is created with 0644 permissions (readable by all, writable by owner).
func SaveJSONCompactToFile(s *scenario.Scenario, filepath string) error {
	data, err := ExportJSONCompact(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
